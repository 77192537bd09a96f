// Copyright (c) 2020, Sylabs Inc. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the
// LICENSE.md file distributed with the sources of this project regarding your
// rights to use or distribute this software.

package cli

import (
	"fmt"
	"strings"

	"github.com/mrchemsoft/mrchem-recipe/internal/app/mrchemrecipe"
	"github.com/mrchemsoft/mrchem-recipe/internal/pkg/config"
	"github.com/mrchemsoft/mrchem-recipe/internal/pkg/sylog"
	"github.com/mrchemsoft/mrchem-recipe/pkg/cmdline"
	"github.com/mrchemsoft/mrchem-recipe/pkg/recipe/render"
	"github.com/spf13/cobra"
)

var (
	mrchemVersion      string
	openmpiVersion     string
	useMOFED           bool
	recipeFormat       string
	singularityVersion string
	configPath         string
	strictMode         bool
	outputPath         string
)

// --mrchem
var generateMRChemFlag = cmdline.Flag{
	ID:           "generateMRChemFlag",
	Value:        &mrchemVersion,
	DefaultValue: "",
	Name:         "mrchem",
	Usage:        "MRChem release to build, like 1.0.0",
	EnvKeys:      []string{"MRCHEM"},
	Required:     true,
}

// --openmpi
var generateOpenMPIFlag = cmdline.Flag{
	ID:           "generateOpenMPIFlag",
	Value:        &openmpiVersion,
	DefaultValue: "",
	Name:         "openmpi",
	Usage:        "build MRChem with this OpenMPI release, like 4.0.5",
	EnvKeys:      []string{"OPENMPI"},
}

// --mofed
var generateMOFEDFlag = cmdline.Flag{
	ID:           "generateMOFEDFlag",
	Value:        &useMOFED,
	DefaultValue: false,
	Name:         "mofed",
	Usage:        "use Mellanox OFED instead of the inbox OFED packages (requires --openmpi)",
	EnvKeys:      []string{"MOFED"},
}

// -f|--format
var generateFormatFlag = cmdline.Flag{
	ID:           "generateFormatFlag",
	Value:        &recipeFormat,
	DefaultValue: string(render.Docker),
	Name:         "format",
	ShortHand:    "f",
	Usage:        fmt.Sprintf("recipe format, one of %s", formatList()),
	EnvKeys:      []string{"FORMAT"},
}

// --singularity-version
var generateSingularityVersionFlag = cmdline.Flag{
	ID:           "generateSingularityVersionFlag",
	Value:        &singularityVersion,
	DefaultValue: render.DefaultSingularityVersion,
	Name:         "singularity-version",
	Usage:        "Singularity release the definition file targets",
}

// --config
var generateConfigFlag = cmdline.Flag{
	ID:           "generateConfigFlag",
	Value:        &configPath,
	DefaultValue: "",
	Name:         "config",
	Usage:        "path to a YAML or TOML defaults file",
}

// --strict
var generateStrictFlag = cmdline.Flag{
	ID:           "generateStrictFlag",
	Value:        &strictMode,
	DefaultValue: false,
	Name:         "strict",
	Usage:        "treat inconsistent options as errors instead of warnings",
}

// -o|--output
var generateOutputFlag = cmdline.Flag{
	ID:           "generateOutputFlag",
	Value:        &outputPath,
	DefaultValue: "",
	Name:         "output",
	ShortHand:    "o",
	Usage:        "write the recipe to this file instead of standard output",
}

func init() {
	cmdManager.RegisterFlagForCmd(&generateMRChemFlag, recipeCmd)
	cmdManager.RegisterFlagForCmd(&generateOpenMPIFlag, recipeCmd)
	cmdManager.RegisterFlagForCmd(&generateMOFEDFlag, recipeCmd)
	cmdManager.RegisterFlagForCmd(&generateFormatFlag, recipeCmd)
	cmdManager.RegisterFlagForCmd(&generateSingularityVersionFlag, recipeCmd)
	cmdManager.RegisterFlagForCmd(&generateConfigFlag, recipeCmd)
	cmdManager.RegisterFlagForCmd(&generateStrictFlag, recipeCmd)
	cmdManager.RegisterFlagForCmd(&generateOutputFlag, recipeCmd)
}

func formatList() string {
	var names []string
	for _, f := range render.Formats() {
		names = append(names, string(f))
	}
	return strings.Join(names, "|")
}

// loadConfig returns the defaults file configuration, flags set on the
// command line or through the environment take precedence.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg := config.Defaults()

	path := configPath
	if path == "" {
		path, _ = config.DefaultPath()
	}
	if path != "" {
		c, err := config.Load(path)
		if err != nil {
			return cfg, err
		}
		cfg = c
	}

	flags := cmd.Flags()
	if flags.Changed("format") {
		cfg.Format = recipeFormat
	}
	if flags.Changed("singularity-version") {
		cfg.SingularityVersion = singularityVersion
	}
	if flags.Changed("strict") {
		cfg.Strict = strictMode
	}
	return cfg, nil
}

func generateRunE(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if _, err := render.ParseFormat(cfg.Format); err != nil {
		return cmdline.FlagError(err.Error())
	}
	sylog.Debugf("Configuration: %+v", cfg)

	req := mrchemrecipe.Request{
		MRChemVersion:  mrchemVersion,
		OpenMPIVersion: openmpiVersion,
		MOFED:          useMOFED,
	}

	if outputPath != "" {
		return mrchemrecipe.GenerateFile(outputPath, cfg, req)
	}
	return mrchemrecipe.Generate(cmd.OutOrStdout(), cfg, req)
}
