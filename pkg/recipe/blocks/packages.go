// Copyright (c) 2020, Sylabs Inc. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the
// LICENSE.md file distributed with the sources of this project regarding your
// rights to use or distribute this software.

package blocks

import (
	"strings"

	"github.com/mrchemsoft/mrchem-recipe/pkg/recipe"
)

// Packages installs an explicit list of OS packages.
type Packages struct {
	apt []string
	yum []string
}

// NewPackages returns a package installation directive. When the list for
// the platform package manager is empty the other list is used, package
// names are often the same.
func NewPackages(apt, yum []string) (*Packages, error) {
	if len(apt) == 0 && len(yum) == 0 {
		return nil, paramError(recipe.KindPackages, "packages", "empty package list")
	}
	for _, p := range append(append([]string{}, apt...), yum...) {
		if p == "" || strings.ContainsAny(p, " \t\n;&|") {
			return nil, paramError(recipe.KindPackages, "packages", "invalid package name %q", p)
		}
	}

	if len(apt) == 0 {
		apt = yum
	}
	if len(yum) == 0 {
		yum = apt
	}

	return &Packages{
		apt: append([]string{}, apt...),
		yum: append([]string{}, yum...),
	}, nil
}

func (pk *Packages) Kind() recipe.Kind {
	return recipe.KindPackages
}

func (pk *Packages) Params() recipe.Params {
	return recipe.Params{
		{Key: "apt", Value: append([]string{}, pk.apt...)},
		{Key: "yum", Value: append([]string{}, pk.yum...)},
	}
}

func (pk *Packages) Instructions(p recipe.Platform) []recipe.Instruction {
	return []recipe.Instruction{
		installPackages(p, pk.apt, pk.yum),
	}
}
