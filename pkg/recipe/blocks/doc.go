// Copyright (c) 2020, Sylabs Inc. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the
// LICENSE.md file distributed with the sources of this project regarding your
// rights to use or distribute this software.

// Package blocks implements the building blocks a recipe is made of: base
// image, compilers, network stack, MPI, build tools and generic source
// builds. Every block is a recipe.Directive. Constructors validate their
// parameters and return a *ParameterError on bad input, a constructed block
// always expands into valid instructions.
package blocks
