// Copyright (c) 2020, Sylabs Inc. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the
// LICENSE.md file distributed with the sources of this project regarding your
// rights to use or distribute this software.

package cli

import (
	"bytes"
	"io/ioutil"
	"path/filepath"
	"strings"
	"testing"

	"github.com/adrg/xdg"
	"github.com/mrchemsoft/mrchem-recipe/internal/pkg/buildcfg"
	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	recipeCmd.SetOut(&out)
	recipeCmd.SetArgs(args)
	defer recipeCmd.SetOut(nil)

	_, err := recipeCmd.ExecuteC()
	return out.String(), err
}

func TestCommandManager(t *testing.T) {
	assert.Equal(t, len(cmdManager.GetError()), 0)
	assert.Assert(t, cmdManager.GetCmd("check") != nil)
	assert.Assert(t, cmdManager.GetCmd("version") != nil)
	assert.Equal(t, TraverseParentsUses(CheckCmd), RootCmd().Use+" "+CheckCmd.Use+" ")
}

func TestCommands(t *testing.T) {
	dir := t.TempDir()
	t.Cleanup(xdg.Reload)
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("XDG_CONFIG_DIRS", dir)
	t.Setenv(envPrefix+"OPENMPI", "4.0.5")
	xdg.Reload()

	// flag values persist between executions of the same command tree,
	// the steps below only ever add flags
	out, err := execute(t, "version")
	assert.NilError(t, err)
	assert.Equal(t, out, buildcfg.PACKAGE_VERSION+"\n")

	dockerfile := filepath.Join(dir, "Dockerfile")
	_, err = execute(t, "--mrchem", "1.0.0", "-o", dockerfile)
	assert.NilError(t, err)

	data, err := ioutil.ReadFile(dockerfile)
	assert.NilError(t, err)
	assert.Assert(t, is.Contains(string(data), "FROM ubuntu:18.04 AS build"))
	// --openmpi came from the environment
	assert.Assert(t, is.Contains(string(data), "-D CXX_COMPILER=mpicxx"))

	out, err = execute(t, "check", dockerfile)
	assert.NilError(t, err)
	assert.Assert(t, is.Contains(out, "valid docker recipe based on ubuntu:18.04"))

	out, err = execute(t, "check", "--format", "singularity", dockerfile)
	assert.ErrorContains(t, err, "is not a valid singularity recipe")
	assert.Equal(t, out, "")

	_, err = execute(t, "check", "--format", "podman", dockerfile)
	assert.ErrorContains(t, err, "unknown output format")
}

func TestGenBashCompletion(t *testing.T) {
	var buf bytes.Buffer
	assert.NilError(t, GenBashCompletion(&buf))
	assert.Assert(t, strings.Contains(buf.String(), "mrchem-recipe"))
}
