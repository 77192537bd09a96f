// Copyright (c) 2020, Sylabs Inc. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the
// LICENSE.md file distributed with the sources of this project regarding your
// rights to use or distribute this software.

// Package config loads the defaults file of mrchem-recipe. Values found in
// the file override the built-in defaults, environment variables and
// command line flags are applied on top by the caller.
package config

import (
	"bytes"
	"io/ioutil"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/mrchemsoft/mrchem-recipe/internal/pkg/assemble"
	"github.com/mrchemsoft/mrchem-recipe/internal/pkg/buildcfg"
	"github.com/mrchemsoft/mrchem-recipe/internal/pkg/sylog"
	"github.com/mrchemsoft/mrchem-recipe/pkg/recipe/render"
	"github.com/pelletier/go-toml"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

// Application holds the packaged application settings.
type Application struct {
	Name   string `yaml:"name" toml:"name"`
	URL    string `yaml:"url" toml:"url"`
	Prefix string `yaml:"prefix" toml:"prefix"`
}

// Config is the resolved configuration.
type Config struct {
	BaseImage          string
	Stage              string
	Format             string
	SingularityVersion string
	Strict             bool
	Application        Application
	Versions           assemble.Versions
}

// file mirrors the file layout, Strict is a pointer so that an explicit
// false is told apart from a missing key.
type file struct {
	BaseImage          string            `yaml:"baseimage" toml:"baseimage"`
	Stage              string            `yaml:"stage" toml:"stage"`
	Format             string            `yaml:"format" toml:"format"`
	SingularityVersion string            `yaml:"singularity-version" toml:"singularity-version"`
	Strict             *bool             `yaml:"strict" toml:"strict"`
	Application        Application       `yaml:"application" toml:"application"`
	Versions           assemble.Versions `yaml:"versions" toml:"versions"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		BaseImage:          assemble.DefaultBaseImage,
		Stage:              assemble.DefaultStage,
		Format:             string(render.Docker),
		SingularityVersion: render.DefaultSingularityVersion,
		Application: Application{
			Name: assemble.DefaultApplicationName,
			URL:  assemble.DefaultApplicationURL,
		},
		Versions: assemble.DefaultVersions(),
	}
}

// DefaultPath returns the user configuration file if one exists.
func DefaultPath() (string, bool) {
	for _, name := range []string{"config.yaml", "config.yml", "config.toml"} {
		path, err := xdg.SearchConfigFile(filepath.Join(buildcfg.PACKAGE_NAME, name))
		if err == nil {
			return path, true
		}
	}
	return "", false
}

// Load returns the defaults overridden by the file at path. The decoder is
// chosen by file extension and rejects unknown keys.
func Load(path string) (Config, error) {
	cfg := Defaults()

	var f file
	if err := loadInto(path, &f); err != nil {
		return cfg, err
	}
	sylog.Debugf("Loaded configuration from %s", path)

	cfg.merge(f)
	return cfg, nil
}

func loadInto(path string, f *file) error {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, "while reading configuration")
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.UnmarshalStrict(data, f)
	case ".toml":
		err = toml.NewDecoder(bytes.NewReader(data)).Strict(true).Decode(f)
	default:
		return errors.Errorf("unsupported configuration format %q", ext)
	}
	return errors.Wrapf(err, "while decoding %s", path)
}

func set(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func (c *Config) merge(f file) {
	set(&c.BaseImage, f.BaseImage)
	set(&c.Stage, f.Stage)
	set(&c.Format, f.Format)
	set(&c.SingularityVersion, f.SingularityVersion)
	if f.Strict != nil {
		c.Strict = *f.Strict
	}

	set(&c.Application.Name, f.Application.Name)
	set(&c.Application.URL, f.Application.URL)
	set(&c.Application.Prefix, f.Application.Prefix)

	set(&c.Versions.UCX, f.Versions.UCX)
	set(&c.Versions.SlurmPMI2, f.Versions.SlurmPMI2)
	set(&c.Versions.MLNXOFED, f.Versions.MLNXOFED)
	set(&c.Versions.CMake, f.Versions.CMake)
}

// Input returns the assembler input for an application version and MPI
// selection, using c for everything else.
func (c Config) Input(version, mpi string, vendor bool) assemble.Input {
	return assemble.Input{
		ApplicationName:    c.Application.Name,
		ApplicationVersion: version,
		ApplicationURL:     c.Application.URL,
		ApplicationPrefix:  c.Application.Prefix,
		MPIVersion:         mpi,
		VendorDrivers:      vendor,
		BaseImage:          c.BaseImage,
		Stage:              c.Stage,
		Versions:           c.Versions,
		Strict:             c.Strict,
	}
}
