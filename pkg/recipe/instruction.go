// Copyright (c) 2020, Sylabs Inc. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the
// LICENSE.md file distributed with the sources of this project regarding your
// rights to use or distribute this software.

package recipe

// Instruction is a format independent recipe primitive. The concrete types
// are Comment, From, Shell, Env and Label.
type Instruction interface {
	isInstruction()
}

// Comment is a free text comment, one recipe comment line per text line.
type Comment struct {
	Text string
}

// From selects the base image, Stage names the build stage when not empty.
type From struct {
	Image string
	Stage string
}

// Shell is a list of commands executed in order during the build, a failing
// command aborts the build.
type Shell struct {
	Commands []string
}

// Variable is a single environment variable assignment.
type Variable struct {
	Name  string
	Value string
}

// Env sets environment variables for later build steps and for the running
// container.
type Env struct {
	Variables []Variable
}

// KeyValue is a single label.
type KeyValue struct {
	Key   string
	Value string
}

// Label attaches metadata to the image.
type Label struct {
	Labels []KeyValue
}

func (Comment) isInstruction() {}
func (From) isInstruction()    {}
func (Shell) isInstruction()   {}
func (Env) isInstruction()     {}
func (Label) isInstruction()   {}
