// Copyright (c) 2020, Sylabs Inc. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the
// LICENSE.md file distributed with the sources of this project regarding your
// rights to use or distribute this software.

package mrchemrecipe

import (
	"os"

	"github.com/mrchemsoft/mrchem-recipe/internal/pkg/lint"
	"github.com/mrchemsoft/mrchem-recipe/internal/pkg/sylog"
	"github.com/mrchemsoft/mrchem-recipe/pkg/recipe/render"
	"github.com/pkg/errors"
)

// Check validates the recipe at path as format.
func Check(path, format string) (lint.Result, error) {
	f, err := render.ParseFormat(format)
	if err != nil {
		return lint.Result{}, err
	}

	r, err := os.Open(path)
	if err != nil {
		return lint.Result{}, errors.Wrap(err, "while opening recipe")
	}
	defer r.Close()

	res, err := lint.Check(r, f)
	if err != nil {
		return res, errors.Wrapf(err, "%s is not a valid %s recipe", path, f)
	}
	for _, w := range res.Warnings {
		sylog.Warningf("%s: %s", path, w)
	}
	sylog.Verbosef("%s: %d steps, base image %s", path, res.Steps, res.BaseImage)

	return res, nil
}
