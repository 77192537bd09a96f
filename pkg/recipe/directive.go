// Copyright (c) 2020, Sylabs Inc. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the
// LICENSE.md file distributed with the sources of this project regarding your
// rights to use or distribute this software.

package recipe

// Kind identifies the type of a directive.
type Kind string

// Directive kinds known by the building blocks.
const (
	KindBaseImage    Kind = "baseimage"
	KindGNU          Kind = "gnu"
	KindOFED         Kind = "ofed"
	KindMLNXOFED     Kind = "mlnx_ofed"
	KindUCX          Kind = "ucx"
	KindSlurmPMI2    Kind = "slurm_pmi2"
	KindOpenMPI      Kind = "openmpi"
	KindCMake        Kind = "cmake"
	KindPython       Kind = "python"
	KindPackages     Kind = "packages"
	KindGenericCMake Kind = "generic_cmake"
	KindEnvironment  Kind = "environment"
	KindLabel        Kind = "label"
)

// Directive is one image construction step of a recipe.
type Directive interface {
	// Kind returns the directive type.
	Kind() Kind
	// Params returns the options the directive was created with, in a
	// stable order.
	Params() Params
	// Instructions expands the directive for the given platform.
	Instructions(p Platform) []Instruction
}

// Param is a single named directive option.
type Param struct {
	Key   string      `yaml:"key"`
	Value interface{} `yaml:"value"`
}

// Params is an ordered list of directive options.
type Params []Param

// Get returns the value stored for key.
func (p Params) Get(key string) (interface{}, bool) {
	for _, param := range p {
		if param.Key == key {
			return param.Value, true
		}
	}
	return nil, false
}

// String returns the value stored for key if it is a string, an empty
// string otherwise.
func (p Params) String(key string) string {
	v, _ := p.Get(key)
	s, _ := v.(string)
	return s
}

// Bool returns the value stored for key if it is a boolean, false
// otherwise.
func (p Params) Bool(key string) bool {
	v, _ := p.Get(key)
	b, _ := v.(bool)
	return b
}

// Strings returns the value stored for key if it is a string list.
func (p Params) Strings(key string) []string {
	v, _ := p.Get(key)
	s, _ := v.([]string)
	return s
}
