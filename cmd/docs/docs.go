// Copyright (c) 2020, Sylabs Inc. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the
// LICENSE.md file distributed with the sources of this project regarding your
// rights to use or distribute this software.

package main

import (
	"github.com/mrchemsoft/mrchem-recipe/cmd/internal/cli"
	"github.com/mrchemsoft/mrchem-recipe/internal/pkg/buildcfg"
	"github.com/mrchemsoft/mrchem-recipe/internal/pkg/sylog"
	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
	"golang.org/x/sys/unix"
)

func assertAccess(dir string) {
	if err := unix.Access(dir, unix.W_OK); err != nil {
		sylog.Fatalf("Given directory (%s) does not exist or is not writable by calling user", dir)
	}
}

func markdownDocs(rootCmd *cobra.Command, outDir string) {
	assertAccess(outDir)
	sylog.Infof("Creating %s markdown docs at %s", buildcfg.PACKAGE_NAME, outDir)
	if err := doc.GenMarkdownTree(rootCmd, outDir); err != nil {
		sylog.Fatalf("Failed to create markdown docs: %s", err)
	}
}

func manDocs(rootCmd *cobra.Command, outDir string) {
	assertAccess(outDir)
	sylog.Infof("Creating %s man pages at %s", buildcfg.PACKAGE_NAME, outDir)
	header := &doc.GenManHeader{
		Title:   buildcfg.PACKAGE_NAME,
		Section: "1",
	}

	if err := doc.GenManTree(rootCmd, header, outDir); err != nil {
		sylog.Fatalf("Failed to create man pages: %s", err)
	}
}

func main() {
	var dir string
	var rootCmd = &cobra.Command{
		ValidArgs: []string{"markdown", "man"},
		Args:      cobra.ExactValidArgs(1),
		Use:       "makeDocs {markdown | man}",
		Short:     "Generates mrchem-recipe documentation",
		Run: func(cmd *cobra.Command, args []string) {
			rootCmd := cli.RootCmd()
			rootCmd.DisableAutoGenTag = true
			switch args[0] {
			case "markdown":
				markdownDocs(rootCmd, dir)
			case "man":
				manDocs(rootCmd, dir)
			}
		},
	}
	rootCmd.Flags().StringVarP(&dir, "dir", "d", ".", "Directory in which to put the generated documentation")
	if err := rootCmd.Execute(); err != nil {
		sylog.Fatalf("%s", err)
	}
}
