// Copyright (c) 2020, Sylabs Inc. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the
// LICENSE.md file distributed with the sources of this project regarding your
// rights to use or distribute this software.

package blocks

import (
	"github.com/mrchemsoft/mrchem-recipe/pkg/recipe"
)

// GNU installs the distribution GNU C, C++ and Fortran compilers.
type GNU struct {
	toolchain recipe.Toolchain
}

// NewGNU returns a GNU compiler directive.
func NewGNU() *GNU {
	return &GNU{
		toolchain: recipe.Toolchain{
			CC:  "gcc",
			CXX: "g++",
			F77: "gfortran",
			F90: "gfortran",
			FC:  "gfortran",
		},
	}
}

// Toolchain returns the compilers installed by the directive, later build
// steps are configured with it.
func (g *GNU) Toolchain() recipe.Toolchain {
	return g.toolchain
}

func (g *GNU) Kind() recipe.Kind {
	return recipe.KindGNU
}

func (g *GNU) Params() recipe.Params {
	return recipe.Params{
		{Key: "cc", Value: g.toolchain.CC},
		{Key: "cxx", Value: g.toolchain.CXX},
		{Key: "fc", Value: g.toolchain.FC},
	}
}

func (g *GNU) Instructions(p recipe.Platform) []recipe.Instruction {
	return []recipe.Instruction{
		recipe.Comment{Text: "GNU compiler"},
		installPackages(p,
			[]string{"gcc", "g++", "gfortran"},
			[]string{"gcc", "gcc-c++", "gcc-gfortran"},
		),
	}
}
