// Copyright (c) 2020, Sylabs Inc. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the
// LICENSE.md file distributed with the sources of this project regarding your
// rights to use or distribute this software.

// Package recipe holds the data model shared by building blocks and
// renderers.
//
// A Recipe is an ordered list of Directives. Each Directive describes one
// image construction step (install a compiler, build OpenMPI, ...) and
// expands into format independent Instructions: comments, base image
// selection, shell commands, environment variables and labels. Renderers in
// the render package turn those Instructions into Dockerfile or Singularity
// definition text.
package recipe
