// Copyright (c) 2020, Sylabs Inc. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the
// LICENSE.md file distributed with the sources of this project regarding your
// rights to use or distribute this software.

package cmdline

// FlagError reports a bad flag value or combination, the command options are
// printed along with it.
type FlagError string

func (e FlagError) Error() string {
	return string(e)
}

// CommandError reports a bad command line, the command usage is printed
// along with it.
type CommandError string

func (e CommandError) Error() string {
	return string(e)
}
