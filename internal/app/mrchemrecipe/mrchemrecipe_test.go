// Copyright (c) 2020, Sylabs Inc. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the
// LICENSE.md file distributed with the sources of this project regarding your
// rights to use or distribute this software.

package mrchemrecipe

import (
	"bytes"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mrchemsoft/mrchem-recipe/internal/pkg/assemble"
	"github.com/mrchemsoft/mrchem-recipe/internal/pkg/config"
	"github.com/mrchemsoft/mrchem-recipe/internal/pkg/sylog"
	"github.com/mrchemsoft/mrchem-recipe/pkg/recipe/render"
	"github.com/pkg/errors"
	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"
)

func TestGenerate(t *testing.T) {
	tests := []struct {
		name   string
		format string
		req    Request
		want   []string
	}{
		{
			name:   "Docker",
			format: "docker",
			req:    Request{MRChemVersion: "1.0.0"},
			want:   []string{"# MRChem image", "FROM ubuntu:18.04 AS build", "-D ENABLE_MPI=OFF", "ENV PATH=/usr/local/mrchem/bin:$PATH"},
		},
		{
			name:   "DockerMPI",
			format: "docker",
			req:    Request{MRChemVersion: "1.0.0", OpenMPIVersion: "4.0.5", MOFED: true},
			want:   []string{"openmpi-4.0.5.tar.bz2", "-D CXX_COMPILER=mpicxx", "mlnx"},
		},
		{
			name:   "Singularity",
			format: "singularity",
			req:    Request{MRChemVersion: "1.0.0", OpenMPIVersion: "4.0.5"},
			want:   []string{"BootStrap: docker", "Stage: build", "%environment"},
		},
		{
			name:   "YAML",
			format: "yaml",
			req:    Request{MRChemVersion: "1.0.0"},
			want:   []string{"kind: generic_cmake", "- -D ENABLE_MPI=OFF"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Defaults()
			cfg.Format = tt.format

			var buf bytes.Buffer
			assert.NilError(t, Generate(&buf, cfg, tt.req))
			for _, w := range tt.want {
				assert.Assert(t, is.Contains(buf.String(), w))
			}
		})
	}
}

func TestGenerateErrors(t *testing.T) {
	cfg := config.Defaults()
	var buf bytes.Buffer

	err := Generate(&buf, cfg, Request{})
	assert.Equal(t, errors.Cause(err), assemble.ErrMissingApplicationVersion)

	cfg.Strict = true
	err = Generate(&buf, cfg, Request{MRChemVersion: "1.0.0", MOFED: true})
	assert.Equal(t, errors.Cause(err), assemble.ErrVendorDriversWithoutMPI)

	cfg = config.Defaults()
	cfg.Format = "podman"
	err = Generate(&buf, cfg, Request{MRChemVersion: "1.0.0"})
	assert.Equal(t, errors.Cause(err), render.ErrUnknownFormat)

	assert.Equal(t, buf.Len(), 0)
}

func TestGenerateWarning(t *testing.T) {
	var logs bytes.Buffer
	old := sylog.SetWriter(&logs)
	level := sylog.GetLevel()
	sylog.SetLevel(1)
	defer func() {
		sylog.SetWriter(old)
		sylog.SetLevel(level)
	}()

	var buf bytes.Buffer
	assert.NilError(t, Generate(&buf, config.Defaults(), Request{MRChemVersion: "1.0.0", MOFED: true}))
	assert.Assert(t, is.Contains(logs.String(), string(assemble.WarnVendorDriversIgnored)))
	assert.Assert(t, !strings.Contains(buf.String(), "mlnx"))
}

func TestGenerateFileAndCheck(t *testing.T) {
	dir := t.TempDir()

	for _, f := range render.Formats() {
		t.Run(string(f), func(t *testing.T) {
			cfg := config.Defaults()
			cfg.Format = string(f)
			path := filepath.Join(dir, "recipe."+string(f))

			assert.NilError(t, GenerateFile(path, cfg, Request{MRChemVersion: "1.0.0", OpenMPIVersion: "4.0.5"}))

			res, err := Check(path, string(f))
			assert.NilError(t, err)
			assert.Equal(t, res.BaseImage, assemble.DefaultBaseImage)
		})
	}

	bad := filepath.Join(dir, "bad")
	err := GenerateFile(bad, config.Defaults(), Request{})
	assert.Assert(t, err != nil)
	_, err = os.Stat(bad)
	assert.Assert(t, os.IsNotExist(err))
}

func TestCheckErrors(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Dockerfile")
	assert.NilError(t, ioutil.WriteFile(path, []byte("RUN true\n"), 0o644))

	_, err := Check(path, "docker")
	assert.ErrorContains(t, err, "is not a valid docker recipe")

	_, err = Check(filepath.Join(dir, "missing"), "docker")
	assert.ErrorContains(t, err, "while opening recipe")

	_, err = Check(path, "podman")
	assert.Equal(t, errors.Cause(err), render.ErrUnknownFormat)
}

func TestGenerateFileKeepsExisting(t *testing.T) {
	const existing = "FROM ubuntu:18.04\n"

	tests := []struct {
		name string
		cfg  func() config.Config
		req  Request
	}{
		{"InvalidVersion", config.Defaults, Request{MRChemVersion: "latest"}},
		{"MissingVersion", config.Defaults, Request{}},
		{"UnknownFormat", func() config.Config {
			cfg := config.Defaults()
			cfg.Format = "podman"
			return cfg
		}, Request{MRChemVersion: "1.0.0"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			path := filepath.Join(dir, "Dockerfile")
			assert.NilError(t, ioutil.WriteFile(path, []byte(existing), 0o644))

			assert.Assert(t, GenerateFile(path, tt.cfg(), tt.req) != nil)

			data, err := ioutil.ReadFile(path)
			assert.NilError(t, err)
			assert.Equal(t, string(data), existing)

			entries, err := ioutil.ReadDir(dir)
			assert.NilError(t, err)
			assert.Equal(t, len(entries), 1)
		})
	}
}

func TestGenerateFileReplacesExisting(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Dockerfile")
	assert.NilError(t, ioutil.WriteFile(path, []byte("FROM scratch\n"), 0o600))

	assert.NilError(t, GenerateFile(path, config.Defaults(), Request{MRChemVersion: "1.0.0"}))

	data, err := ioutil.ReadFile(path)
	assert.NilError(t, err)
	assert.Assert(t, is.Contains(string(data), "FROM ubuntu:18.04 AS build"))

	fi, err := os.Stat(path)
	assert.NilError(t, err)
	assert.Equal(t, fi.Mode().Perm(), os.FileMode(0o644))

	entries, err := ioutil.ReadDir(dir)
	assert.NilError(t, err)
	assert.Equal(t, len(entries), 1)
}
