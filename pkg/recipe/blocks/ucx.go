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

// DefaultUCXPrefix is where UCX is installed.
const DefaultUCXPrefix = "/usr/local/ucx"

// UCX builds the UCX communication framework from a release tarball on top
// of an OFED driver stack.
type UCX struct {
	version string
	prefix  string
	driver  Driver
}

// NewUCX returns a UCX directive for version built against driver.
func NewUCX(version string, driver Driver) (*UCX, error) {
	if _, err := parseVersion(recipe.KindUCX, version); err != nil {
		return nil, err
	}
	if driver != InboxDriver && driver != MellanoxDriver {
		return nil, paramError(recipe.KindUCX, "driver", "unknown driver %q", driver)
	}
	return &UCX{
		version: strings.TrimPrefix(version, "v"),
		prefix:  DefaultUCXPrefix,
		driver:  driver,
	}, nil
}

// Prefix returns the UCX install prefix.
func (u *UCX) Prefix() string {
	return u.prefix
}

// Driver returns the driver stack UCX is built against.
func (u *UCX) Driver() Driver {
	return u.driver
}

func (u *UCX) Kind() recipe.Kind {
	return recipe.KindUCX
}

func (u *UCX) Params() recipe.Params {
	return recipe.Params{
		{Key: "version", Value: u.version},
		{Key: "prefix", Value: u.prefix},
		{Key: "ofed", Value: true},
		{Key: "driver", Value: string(u.driver)},
		{Key: "cuda", Value: false},
	}
}

func (u *UCX) configureOpts() []string {
	opts := []string{
		"--prefix=" + u.prefix,
		"--disable-assertions",
		"--disable-debug",
		"--disable-doxygen-doc",
		"--disable-logging",
		"--disable-params-check",
		"--enable-optimizations",
		"--with-rdmacm",
		"--with-verbs",
		"--without-cuda",
	}
	if u.driver == MellanoxDriver {
		opts = append(opts, "--with-mlx5-dv")
	} else {
		opts = append(opts, "--without-mlx5-dv")
	}
	return opts
}

func (u *UCX) Instructions(p recipe.Platform) []recipe.Instruction {
	url := fmt.Sprintf("https://github.com/openucx/ucx/releases/download/v%[1]s/ucx-%[1]s.tar.gz", u.version)
	src := path.Join(workDir, "ucx-"+u.version)

	cmds, tarball := fetchSource(url)
	cmds = append(cmds,
		fmt.Sprintf("cd %s && ./configure %s", src, strings.Join(u.configureOpts(), " ")),
		"make -j$(nproc)",
		"make -j$(nproc) install",
		cleanup(src, tarball),
	)

	return []recipe.Instruction{
		recipe.Comment{Text: "UCX version " + u.version},
		installPackages(p,
			[]string{"binutils-dev", "file", "libnuma-dev", "make", "wget"},
			[]string{"binutils-devel", "file", "make", "numactl-devel", "wget"},
		),
		recipe.Shell{Commands: cmds},
		recipe.Env{Variables: []recipe.Variable{
			prependPath("CPATH", path.Join(u.prefix, "include")),
			prependPath("LD_LIBRARY_PATH", path.Join(u.prefix, "lib")),
			prependPath("LIBRARY_PATH", path.Join(u.prefix, "lib")),
			prependPath("PATH", path.Join(u.prefix, "bin")),
		}},
	}
}
