// Copyright (c) 2020, Sylabs Inc. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the
// LICENSE.md file distributed with the sources of this project regarding your
// rights to use or distribute this software.

package blocks

import (
	"strings"

	"github.com/mrchemsoft/mrchem-recipe/pkg/recipe"
)

// BaseImage selects the image the recipe builds on.
type BaseImage struct {
	image string
	stage string
}

// NewBaseImage returns a base image directive, stage is optional and names
// the build stage for multi-stage recipes.
func NewBaseImage(image, stage string) (*BaseImage, error) {
	if err := required(recipe.KindBaseImage, "image", image); err != nil {
		return nil, err
	}
	if strings.ContainsAny(image, " \t\n") {
		return nil, paramError(recipe.KindBaseImage, "image", "%q contains white space", image)
	}
	if strings.ContainsAny(stage, " \t\n") {
		return nil, paramError(recipe.KindBaseImage, "stage", "%q contains white space", stage)
	}
	return &BaseImage{image: image, stage: stage}, nil
}

// Image returns the image reference.
func (b *BaseImage) Image() string {
	return b.image
}

// Stage returns the build stage name.
func (b *BaseImage) Stage() string {
	return b.stage
}

func (b *BaseImage) Kind() recipe.Kind {
	return recipe.KindBaseImage
}

func (b *BaseImage) Params() recipe.Params {
	return recipe.Params{
		{Key: "image", Value: b.image},
		{Key: "stage", Value: b.stage},
	}
}

func (b *BaseImage) Instructions(recipe.Platform) []recipe.Instruction {
	return []recipe.Instruction{
		recipe.From{Image: b.image, Stage: b.stage},
	}
}
