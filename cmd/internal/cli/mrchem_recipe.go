// Copyright (c) 2020, Sylabs Inc. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the
// LICENSE.md file distributed with the sources of this project regarding your
// rights to use or distribute this software.

package cli

import (
	"fmt"
	"io"
	"os"
	"text/template"

	"github.com/mrchemsoft/mrchem-recipe/docs"
	"github.com/mrchemsoft/mrchem-recipe/internal/pkg/buildcfg"
	"github.com/mrchemsoft/mrchem-recipe/internal/pkg/sylog"
	"github.com/mrchemsoft/mrchem-recipe/pkg/cmdline"
	"github.com/spf13/cobra"
)

var cmdManager = cmdline.NewCommandManager(recipeCmd)

const (
	envPrefix = "MRCHEM_RECIPE_"
)

// mrchem-recipe global flags
var (
	debug   bool
	nocolor bool
	silent  bool
	verbose bool
	quiet   bool
)

// -d|--debug
var recipeDebugFlag = cmdline.Flag{
	ID:           "recipeDebugFlag",
	Value:        &debug,
	DefaultValue: false,
	Name:         "debug",
	ShortHand:    "d",
	Usage:        "print debugging information (highest verbosity)",
}

// --nocolor
var recipeNoColorFlag = cmdline.Flag{
	ID:           "recipeNoColorFlag",
	Value:        &nocolor,
	DefaultValue: false,
	Name:         "nocolor",
	Usage:        "print without color output (default False)",
}

// -s|--silent
var recipeSilentFlag = cmdline.Flag{
	ID:           "recipeSilentFlag",
	Value:        &silent,
	DefaultValue: false,
	Name:         "silent",
	ShortHand:    "s",
	Usage:        "only print errors",
}

// -q|--quiet
var recipeQuietFlag = cmdline.Flag{
	ID:           "recipeQuietFlag",
	Value:        &quiet,
	DefaultValue: false,
	Name:         "quiet",
	ShortHand:    "q",
	Usage:        "suppress normal output",
}

// -v|--verbose
var recipeVerboseFlag = cmdline.Flag{
	ID:           "recipeVerboseFlag",
	Value:        &verbose,
	DefaultValue: false,
	Name:         "verbose",
	ShortHand:    "v",
	Usage:        "print additional information",
}

func init() {
	templateFuncs := template.FuncMap{
		"TraverseParentsUses": TraverseParentsUses,
	}
	cobra.AddTemplateFuncs(templateFuncs)

	recipeCmd.SetHelpTemplate(docs.HelpTemplate)
	recipeCmd.SetUsageTemplate(docs.UseTemplate)

	vt := fmt.Sprintf("%s version {{printf \"%%s\" .Version}}\n", buildcfg.PACKAGE_NAME)
	recipeCmd.SetVersionTemplate(vt)

	// set here to avoid an initialization loop through cmdManager
	recipeCmd.PersistentPreRunE = persistentPreRunE

	cmdManager.RegisterFlagForCmd(&recipeDebugFlag, recipeCmd)
	cmdManager.RegisterFlagForCmd(&recipeNoColorFlag, recipeCmd)
	cmdManager.RegisterFlagForCmd(&recipeSilentFlag, recipeCmd)
	cmdManager.RegisterFlagForCmd(&recipeQuietFlag, recipeCmd)
	cmdManager.RegisterFlagForCmd(&recipeVerboseFlag, recipeCmd)

	cmdManager.RegisterCmd(VersionCmd)
}

// setSylogMessageLevel applies the verbosity flags, without any the level
// seeded from the environment is kept.
func setSylogMessageLevel() {
	switch {
	case debug:
		sylog.SetLevel(5)
	case verbose:
		sylog.SetLevel(4)
	case quiet:
		sylog.SetLevel(-1)
	case silent:
		sylog.SetLevel(-3)
	}
}

func setSylogColor() {
	if nocolor {
		sylog.DisableColor()
	}
}

// recipeCmd is the base command, it writes a recipe when called without any
// subcommand
var recipeCmd = &cobra.Command{
	TraverseChildren:      true,
	DisableFlagsInUseLine: true,
	Args:                  cobra.NoArgs,
	RunE:                  generateRunE,

	Use:           docs.RecipeUse,
	Version:       buildcfg.PACKAGE_VERSION,
	Short:         docs.RecipeShort,
	Long:          docs.RecipeLong,
	Example:       docs.RecipeExample,
	SilenceErrors: true,
	SilenceUsage:  true,
}

func persistentPreRunE(cmd *cobra.Command, _ []string) error {
	setSylogMessageLevel()
	setSylogColor()
	return cmdManager.UpdateCmdFlagFromEnv(cmd, envPrefix)
}

// RootCmd returns the root mrchem-recipe cobra command.
func RootCmd() *cobra.Command {
	return recipeCmd
}

// ExecuteRecipe runs the root command and exits with status 1 on error. This
// is called by main.main().
func ExecuteRecipe() {
	for _, e := range cmdManager.GetError() {
		sylog.Errorf("%s", e)
	}
	// any error reported by command manager is considered as fatal
	cliErrors := len(cmdManager.GetError())
	if cliErrors > 0 {
		sylog.Fatalf("CLI command manager reported %d error(s)", cliErrors)
	}

	if cmd, err := recipeCmd.ExecuteC(); err != nil {
		name := cmd.Name()
		switch err.(type) {
		case cmdline.FlagError:
			usage := cmd.Flags().FlagUsagesWrapped(getColumns())
			recipeCmd.Printf("Error for command %q: %s\n\n", name, err)
			recipeCmd.Printf("Options for %s command:\n\n%s\n", name, usage)
		case cmdline.CommandError:
			recipeCmd.Println(cmd.UsageString())
		default:
			sylog.Errorf("%s", err)
		}
		recipeCmd.Printf("Run '%s --help' for more detailed usage information.\n",
			cmd.CommandPath())
		os.Exit(1)
	}
}

// GenBashCompletion writes the bash completion script of mrchem-recipe.
func GenBashCompletion(w io.Writer) error {
	return recipeCmd.GenBashCompletion(w)
}

// TraverseParentsUses walks the parent commands and outputs a properly formatted use string
func TraverseParentsUses(cmd *cobra.Command) string {
	if cmd.HasParent() {
		return TraverseParentsUses(cmd.Parent()) + cmd.Use + " "
	}

	return cmd.Use + " "
}

// VersionCmd displays the mrchem-recipe version
var VersionCmd = &cobra.Command{
	DisableFlagsInUseLine: true,
	Args:                  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), buildcfg.PACKAGE_VERSION)
	},

	Use:   "version",
	Short: docs.VersionShort,
}
