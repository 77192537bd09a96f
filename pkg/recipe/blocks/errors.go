// Copyright (c) 2020, Sylabs Inc. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the
// LICENSE.md file distributed with the sources of this project regarding your
// rights to use or distribute this software.

package blocks

import (
	"fmt"

	"github.com/mrchemsoft/mrchem-recipe/pkg/recipe"
	"github.com/pkg/errors"
)

// ParameterError records a building block parameter that was rejected.
type ParameterError struct {
	Kind   recipe.Kind
	Param  string
	Reason string
}

func (e *ParameterError) Error() string {
	return fmt.Sprintf("%s: invalid %s: %s", e.Kind, e.Param, e.Reason)
}

// IsParameterError returns a boolean indicating whether the error
// is reporting a rejected building block parameter
func IsParameterError(err error) bool {
	_, ok := errors.Cause(err).(*ParameterError)
	return ok
}

func paramError(kind recipe.Kind, param, format string, a ...interface{}) error {
	return &ParameterError{
		Kind:   kind,
		Param:  param,
		Reason: fmt.Sprintf(format, a...),
	}
}

func required(kind recipe.Kind, param, value string) error {
	if value == "" {
		return paramError(kind, param, "value required")
	}
	return nil
}
