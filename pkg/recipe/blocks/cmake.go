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

// CMake installs a CMake binary release into /usr/local.
type CMake struct {
	version string
}

// NewCMake returns a CMake directive. The binary installer ships under the
// CMake end user license, eula must be true to accept it.
func NewCMake(version string, eula bool) (*CMake, error) {
	if _, err := parseVersion(recipe.KindCMake, version); err != nil {
		return nil, err
	}
	if !eula {
		return nil, paramError(recipe.KindCMake, "eula", "the CMake end user license must be accepted")
	}
	return &CMake{version: strings.TrimPrefix(version, "v")}, nil
}

func (c *CMake) Kind() recipe.Kind {
	return recipe.KindCMake
}

func (c *CMake) Params() recipe.Params {
	return recipe.Params{
		{Key: "version", Value: c.version},
		{Key: "eula", Value: true},
	}
}

func (c *CMake) Instructions(p recipe.Platform) []recipe.Instruction {
	installer := fmt.Sprintf("cmake-%s-Linux-x86_64.sh", c.version)
	url := fmt.Sprintf("https://github.com/Kitware/CMake/releases/download/v%s/%s", c.version, installer)

	return []recipe.Instruction{
		recipe.Comment{Text: "CMake version " + c.version},
		installPackages(p,
			[]string{"make", "wget"},
			[]string{"make", "wget"},
		),
		recipe.Shell{Commands: []string{
			download(url, workDir),
			fmt.Sprintf("mkdir -p /usr/local && /bin/sh %s --prefix=/usr/local --skip-license", path.Join(workDir, installer)),
			cleanup(path.Join(workDir, installer)),
		}},
		recipe.Env{Variables: []recipe.Variable{
			prependPath("PATH", "/usr/local/bin"),
		}},
	}
}
