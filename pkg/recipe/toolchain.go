// Copyright (c) 2020, Sylabs Inc. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the
// LICENSE.md file distributed with the sources of this project regarding your
// rights to use or distribute this software.

package recipe

import (
	"strings"
)

// Toolchain is the set of compilers a build step is configured with.
type Toolchain struct {
	CC  string
	CXX string
	F77 string
	F90 string
	FC  string
}

// Environment returns the toolchain as a variable assignment prefix for a
// configure command, unset compilers are omitted:
//	CC=gcc CXX=g++ F77=gfortran F90=gfortran FC=gfortran
func (t Toolchain) Environment() string {
	vars := []Variable{
		{"CC", t.CC},
		{"CXX", t.CXX},
		{"F77", t.F77},
		{"F90", t.F90},
		{"FC", t.FC},
	}

	var parts []string
	for _, v := range vars {
		if v.Value != "" {
			parts = append(parts, v.Name+"="+v.Value)
		}
	}
	return strings.Join(parts, " ")
}
