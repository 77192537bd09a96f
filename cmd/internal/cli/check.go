// Copyright (c) 2020, Sylabs Inc. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the
// LICENSE.md file distributed with the sources of this project regarding your
// rights to use or distribute this software.

package cli

import (
	"fmt"

	"github.com/mrchemsoft/mrchem-recipe/docs"
	"github.com/mrchemsoft/mrchem-recipe/internal/app/mrchemrecipe"
	"github.com/mrchemsoft/mrchem-recipe/pkg/cmdline"
	"github.com/mrchemsoft/mrchem-recipe/pkg/recipe/render"
	"github.com/spf13/cobra"
)

var checkFormat string

// -f|--format
var checkFormatFlag = cmdline.Flag{
	ID:           "checkFormatFlag",
	Value:        &checkFormat,
	DefaultValue: string(render.Docker),
	Name:         "format",
	ShortHand:    "f",
	Usage:        fmt.Sprintf("recipe format, one of %s", formatList()),
	EnvKeys:      []string{"FORMAT"},
}

func init() {
	cmdManager.RegisterCmd(CheckCmd)
	cmdManager.RegisterFlagForCmd(&checkFormatFlag, CheckCmd)
}

// CheckCmd validates a generated recipe
var CheckCmd = &cobra.Command{
	DisableFlagsInUseLine: true,
	Args:                  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := render.ParseFormat(checkFormat); err != nil {
			return cmdline.FlagError(err.Error())
		}

		res, err := mrchemrecipe.Check(args[0], checkFormat)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: valid %s recipe based on %s\n", args[0], res.Format, res.BaseImage)
		return nil
	},

	Use:     docs.CheckUse,
	Short:   docs.CheckShort,
	Long:    docs.CheckLong,
	Example: docs.CheckExample,
}
