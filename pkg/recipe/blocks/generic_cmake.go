// Copyright (c) 2020, Sylabs Inc. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the
// LICENSE.md file distributed with the sources of this project regarding your
// rights to use or distribute this software.

package blocks

import (
	"fmt"
	"path"
	"strings"

	"github.com/mrchemsoft/mrchem-recipe/pkg/recipe"
)

// GenericCMakeConfig holds the parameters of a CMake source build.
type GenericCMakeConfig struct {
	// URL is the source tarball location.
	URL string
	// Directory is the top level directory of the extracted tarball.
	Directory string
	// Prefix is the install prefix.
	Prefix string
	// CMakeOpts are passed to the configure step, in order.
	CMakeOpts []string
}

// GenericCMake downloads a source tarball, configures it with CMake, builds
// and installs it.
type GenericCMake struct {
	cfg GenericCMakeConfig
}

// NewGenericCMake returns a CMake source build directive.
func NewGenericCMake(cfg GenericCMakeConfig) (*GenericCMake, error) {
	if err := required(recipe.KindGenericCMake, "url", cfg.URL); err != nil {
		return nil, err
	}
	if err := required(recipe.KindGenericCMake, "directory", cfg.Directory); err != nil {
		return nil, err
	}
	if err := required(recipe.KindGenericCMake, "prefix", cfg.Prefix); err != nil {
		return nil, err
	}
	if path.IsAbs(cfg.Directory) || strings.Contains(cfg.Directory, "..") {
		return nil, paramError(recipe.KindGenericCMake, "directory", "%q must be relative to the tarball root", cfg.Directory)
	}
	if !path.IsAbs(cfg.Prefix) {
		return nil, paramError(recipe.KindGenericCMake, "prefix", "%q is not an absolute path", cfg.Prefix)
	}

	opts := make([]string, len(cfg.CMakeOpts))
	copy(opts, cfg.CMakeOpts)
	cfg.CMakeOpts = opts

	return &GenericCMake{cfg: cfg}, nil
}

// URL returns the source tarball location.
func (g *GenericCMake) URL() string {
	return g.cfg.URL
}

// Directory returns the extracted source directory name.
func (g *GenericCMake) Directory() string {
	return g.cfg.Directory
}

// Prefix returns the install prefix.
func (g *GenericCMake) Prefix() string {
	return g.cfg.Prefix
}

// CMakeOpts returns a copy of the configure options.
func (g *GenericCMake) CMakeOpts() []string {
	opts := make([]string, len(g.cfg.CMakeOpts))
	copy(opts, g.cfg.CMakeOpts)
	return opts
}

func (g *GenericCMake) Kind() recipe.Kind {
	return recipe.KindGenericCMake
}

func (g *GenericCMake) Params() recipe.Params {
	return recipe.Params{
		{Key: "cmake_opts", Value: g.CMakeOpts()},
		{Key: "prefix", Value: g.cfg.Prefix},
		{Key: "url", Value: g.cfg.URL},
		{Key: "directory", Value: g.cfg.Directory},
	}
}

func (g *GenericCMake) Instructions(recipe.Platform) []recipe.Instruction {
	src := path.Join(workDir, g.cfg.Directory)
	build := path.Join(src, "build")

	configure := []string{"cmake", "-DCMAKE_INSTALL_PREFIX=" + g.cfg.Prefix}
	configure = append(configure, g.cfg.CMakeOpts...)
	configure = append(configure, src)

	cmds, tarball := fetchSource(g.cfg.URL)
	cmds = append(cmds,
		fmt.Sprintf("mkdir -p %[1]s && cd %[1]s && %[2]s", build, strings.Join(configure, " ")),
		fmt.Sprintf("cmake --build %s --target all -- -j$(nproc)", build),
		fmt.Sprintf("cmake --build %s --target install -- -j$(nproc)", build),
		cleanup(src, tarball),
	)

	return []recipe.Instruction{
		recipe.Comment{Text: g.cfg.URL},
		recipe.Shell{Commands: cmds},
	}
}
