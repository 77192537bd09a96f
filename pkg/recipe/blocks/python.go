// Copyright (c) 2020, Sylabs Inc. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the
// LICENSE.md file distributed with the sources of this project regarding your
// rights to use or distribute this software.

package blocks

import (
	"github.com/mrchemsoft/mrchem-recipe/pkg/recipe"
)

// Python installs the distribution Python interpreters.
type Python struct {
	python2 bool
	python3 bool
}

// NewPython returns a Python directive, at least one interpreter must be
// selected.
func NewPython(python2, python3 bool) (*Python, error) {
	if !python2 && !python3 {
		return nil, paramError(recipe.KindPython, "python3", "no interpreter selected")
	}
	return &Python{python2: python2, python3: python3}, nil
}

func (py *Python) Kind() recipe.Kind {
	return recipe.KindPython
}

func (py *Python) Params() recipe.Params {
	return recipe.Params{
		{Key: "python2", Value: py.python2},
		{Key: "python3", Value: py.python3},
	}
}

func (py *Python) Instructions(p recipe.Platform) []recipe.Instruction {
	var apt, yum []string
	if py.python2 {
		apt = append(apt, "python")
		yum = append(yum, "python2")
	}
	if py.python3 {
		apt = append(apt, "python3")
		yum = append(yum, "python3")
	}

	return []recipe.Instruction{
		recipe.Comment{Text: "Python"},
		installPackages(p, apt, yum),
	}
}
