// Copyright (c) 2020, Sylabs Inc. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the
// LICENSE.md file distributed with the sources of this project regarding your
// rights to use or distribute this software.

// Package buildcfg holds values stamped into the binary at link time with
//	-ldflags "-X github.com/mrchemsoft/mrchem-recipe/internal/pkg/buildcfg.PACKAGE_VERSION=..."
package buildcfg

// nolint:golint
var (
	PACKAGE_NAME    = "mrchem-recipe"
	PACKAGE_VERSION = "0.0.0-dev"
)
