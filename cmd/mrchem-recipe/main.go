// Copyright (c) 2020, Sylabs Inc. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the
// LICENSE.md file distributed with the sources of this project regarding your
// rights to use or distribute this software.

package main

import (
	"github.com/mrchemsoft/mrchem-recipe/cmd/internal/cli"
)

func main() {
	// In cmd/internal/cli/mrchem_recipe.go
	cli.ExecuteRecipe()
}
