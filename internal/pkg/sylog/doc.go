// Copyright (c) 2020, Sylabs Inc. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the
// LICENSE.md file distributed with the sources of this project regarding your
// rights to use or distribute this software.

// Package sylog implements a basic leveled logger writing to stderr. Recipe
// text is written to stdout by the caller, so anything logged here never ends
// up in a generated Dockerfile or definition file.
package sylog
