// Copyright (c) 2020, Sylabs Inc. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the
// LICENSE.md file distributed with the sources of this project regarding your
// rights to use or distribute this software.

package blocks

import (
	"regexp"

	"github.com/mrchemsoft/mrchem-recipe/pkg/recipe"
)

var envNameRegexp = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Environment sets environment variables in the image.
type Environment struct {
	variables []recipe.Variable
}

// NewEnvironment returns an environment directive, variables keep their
// order.
func NewEnvironment(variables ...recipe.Variable) (*Environment, error) {
	if len(variables) == 0 {
		return nil, paramError(recipe.KindEnvironment, "variables", "no variable set")
	}
	for _, v := range variables {
		if !envNameRegexp.MatchString(v.Name) {
			return nil, paramError(recipe.KindEnvironment, "variables", "invalid variable name %q", v.Name)
		}
	}
	return &Environment{variables: append([]recipe.Variable{}, variables...)}, nil
}

// Variables returns a copy of the variables.
func (e *Environment) Variables() []recipe.Variable {
	return append([]recipe.Variable{}, e.variables...)
}

func (e *Environment) Kind() recipe.Kind {
	return recipe.KindEnvironment
}

func (e *Environment) Params() recipe.Params {
	params := make(recipe.Params, 0, len(e.variables))
	for _, v := range e.variables {
		params = append(params, recipe.Param{Key: v.Name, Value: v.Value})
	}
	return params
}

func (e *Environment) Instructions(recipe.Platform) []recipe.Instruction {
	return []recipe.Instruction{
		recipe.Env{Variables: e.Variables()},
	}
}

// Label attaches metadata labels to the image.
type Label struct {
	labels []recipe.KeyValue
}

// NewLabel returns a label directive, labels keep their order.
func NewLabel(labels ...recipe.KeyValue) (*Label, error) {
	if len(labels) == 0 {
		return nil, paramError(recipe.KindLabel, "labels", "no label set")
	}
	for _, l := range labels {
		if l.Key == "" {
			return nil, paramError(recipe.KindLabel, "labels", "empty label key")
		}
	}
	return &Label{labels: append([]recipe.KeyValue{}, labels...)}, nil
}

func (l *Label) Kind() recipe.Kind {
	return recipe.KindLabel
}

func (l *Label) Params() recipe.Params {
	params := make(recipe.Params, 0, len(l.labels))
	for _, kv := range l.labels {
		params = append(params, recipe.Param{Key: kv.Key, Value: kv.Value})
	}
	return params
}

func (l *Label) Instructions(recipe.Platform) []recipe.Instruction {
	return []recipe.Instruction{
		recipe.Label{Labels: append([]recipe.KeyValue{}, l.labels...)},
	}
}
