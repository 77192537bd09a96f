// Copyright (c) 2020, Sylabs Inc. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the
// LICENSE.md file distributed with the sources of this project regarding your
// rights to use or distribute this software.

// Package lint checks that generated recipes are well formed for the tool
// consuming them.
package lint

import (
	"bytes"
	"fmt"
	"io"
	"io/ioutil"
	"strings"

	"github.com/moby/buildkit/frontend/dockerfile/command"
	dockerfile "github.com/moby/buildkit/frontend/dockerfile/parser"
	"github.com/mrchemsoft/mrchem-recipe/pkg/build/types/parser"
	"github.com/mrchemsoft/mrchem-recipe/pkg/recipe"
	"github.com/mrchemsoft/mrchem-recipe/pkg/recipe/render"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

// Result summarizes a checked recipe.
type Result struct {
	Format render.Format
	// BaseImage is the image of the first stage.
	BaseImage string
	Stage     string
	// Steps counts instructions, sections or directives depending on
	// the format.
	Steps    int
	Warnings []string
}

// Check parses the recipe read from r as format f.
func Check(r io.Reader, f render.Format) (Result, error) {
	data, err := ioutil.ReadAll(r)
	if err != nil {
		return Result{}, errors.Wrap(err, "while reading recipe")
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return Result{}, errors.New("empty recipe")
	}

	switch f {
	case render.Docker:
		return checkDockerfile(data)
	case render.Singularity:
		return checkDefinition(data)
	case render.YAML:
		return checkPlan(data)
	}
	return Result{}, errors.Wrapf(render.ErrUnknownFormat, "%q", f)
}

func checkDockerfile(data []byte) (Result, error) {
	res := Result{Format: render.Docker}

	parsed, err := dockerfile.Parse(bytes.NewReader(data))
	if err != nil {
		return res, errors.Wrap(err, "while parsing Dockerfile")
	}
	for _, w := range parsed.Warnings {
		res.Warnings = append(res.Warnings, w.Short)
	}

	seenFrom := false
	for _, n := range parsed.AST.Children {
		// the parser keeps the source spelling, instruction names are lowercase
		cmd := strings.ToLower(n.Value)
		if _, ok := command.Commands[cmd]; !ok {
			return res, fmt.Errorf("line %d: unknown instruction %q", n.StartLine, n.Value)
		}
		if n.Next == nil {
			return res, fmt.Errorf("line %d: %s requires arguments", n.StartLine, n.Value)
		}

		switch {
		case cmd == command.From:
			if !seenFrom {
				res.BaseImage = n.Next.Value
				if as := n.Next.Next; as != nil && as.Next != nil {
					res.Stage = as.Next.Value
				}
			}
			seenFrom = true
		case !seenFrom && cmd != command.Arg:
			return res, fmt.Errorf("line %d: %s before FROM", n.StartLine, n.Value)
		}
		res.Steps++
	}

	if !seenFrom {
		return res, errors.New("Dockerfile has no FROM instruction")
	}
	return res, nil
}

func checkDefinition(data []byte) (Result, error) {
	res := Result{Format: render.Singularity}

	d, err := parser.ParseDefinitionFile(bytes.NewReader(data))
	if err != nil {
		return res, errors.Wrap(err, "while parsing definition file")
	}

	if d.Bootstrap() == "" {
		return res, errors.New("definition has no bootstrap header")
	}
	if d.Bootstrap() != "docker" {
		res.Warnings = append(res.Warnings, fmt.Sprintf("bootstrap agent %q is not docker", d.Bootstrap()))
	}
	if d.BaseImage() == "" {
		return res, errors.New("definition has no From header")
	}
	res.BaseImage = d.BaseImage()
	res.Stage = d.Stage()

	for _, s := range [][]byte{[]byte(d.BuildData.Post), []byte(d.Environment)} {
		if len(bytes.TrimSpace(s)) > 0 {
			res.Steps++
		}
	}
	if len(d.Labels) > 0 {
		res.Steps++
	}
	return res, nil
}

func checkPlan(data []byte) (Result, error) {
	res := Result{Format: render.YAML}

	var plan render.Plan
	if err := yaml.UnmarshalStrict(data, &plan); err != nil {
		return res, errors.Wrap(err, "while decoding plan")
	}
	if len(plan.Directives) == 0 {
		return res, errors.New("plan has no directives")
	}

	first := plan.Directives[0]
	if first.Kind != string(recipe.KindBaseImage) {
		return res, fmt.Errorf("plan starts with %s, expecting %s", first.Kind, recipe.KindBaseImage)
	}
	for _, item := range first.Params {
		switch item.Key {
		case "image":
			res.BaseImage = fmt.Sprint(item.Value)
		case "stage":
			res.Stage = fmt.Sprint(item.Value)
		}
	}
	res.Steps = len(plan.Directives)
	return res, nil
}
