// Copyright (c) 2020, Sylabs Inc. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the
// LICENSE.md file distributed with the sources of this project regarding your
// rights to use or distribute this software.

package assemble

import (
	"strings"
	"testing"

	"github.com/mrchemsoft/mrchem-recipe/pkg/recipe"
	"github.com/mrchemsoft/mrchem-recipe/pkg/recipe/blocks"
	"github.com/pkg/errors"
	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"
)

func mustOptions(t *testing.T, in Input) Options {
	t.Helper()
	o, _, err := NewOptions(in)
	assert.NilError(t, err)
	return o
}

func mustAssemble(t *testing.T, in Input) *recipe.Recipe {
	t.Helper()
	r, err := Assemble(mustOptions(t, in))
	assert.NilError(t, err)
	return r
}

func buildDirective(t *testing.T, r *recipe.Recipe) recipe.Directive {
	t.Helper()
	builds := r.Filter(recipe.KindGenericCMake)
	assert.Equal(t, len(builds), 1)
	return builds[0]
}

var mpiKinds = []recipe.Kind{
	recipe.KindOFED,
	recipe.KindMLNXOFED,
	recipe.KindUCX,
	recipe.KindSlurmPMI2,
	recipe.KindOpenMPI,
}

func TestAssembleOrder(t *testing.T) {
	tests := []struct {
		name  string
		in    Input
		kinds []recipe.Kind
	}{
		{
			name: "NoMPI",
			in:   Input{ApplicationVersion: "1.0.0"},
			kinds: []recipe.Kind{
				recipe.KindBaseImage, recipe.KindLabel, recipe.KindGNU,
				recipe.KindCMake, recipe.KindPython, recipe.KindPackages,
				recipe.KindGenericCMake, recipe.KindEnvironment,
			},
		},
		{
			name: "OpenMPI",
			in:   Input{ApplicationVersion: "1.0.0", MPIVersion: "4.0.5"},
			kinds: []recipe.Kind{
				recipe.KindBaseImage, recipe.KindLabel, recipe.KindGNU,
				recipe.KindOFED, recipe.KindUCX, recipe.KindSlurmPMI2, recipe.KindOpenMPI,
				recipe.KindCMake, recipe.KindPython, recipe.KindPackages,
				recipe.KindGenericCMake, recipe.KindEnvironment,
			},
		},
		{
			name: "OpenMPIVendor",
			in:   Input{ApplicationVersion: "1.0.0", MPIVersion: "4.0.5", VendorDrivers: true},
			kinds: []recipe.Kind{
				recipe.KindBaseImage, recipe.KindLabel, recipe.KindGNU,
				recipe.KindMLNXOFED, recipe.KindUCX, recipe.KindSlurmPMI2, recipe.KindOpenMPI,
				recipe.KindCMake, recipe.KindPython, recipe.KindPackages,
				recipe.KindGenericCMake, recipe.KindEnvironment,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := mustAssemble(t, tt.in)
			kinds := r.Kinds()
			assert.DeepEqual(t, kinds, tt.kinds)

			assert.Equal(t, kinds[0], recipe.KindBaseImage)
			assert.Equal(t, kinds[len(kinds)-2], recipe.KindGenericCMake)
			assert.Equal(t, kinds[len(kinds)-1], recipe.KindEnvironment)
		})
	}
}

func TestScenarioNoMPI(t *testing.T) {
	r := mustAssemble(t, Input{ApplicationName: "app", ApplicationVersion: "1.0.0"})

	for _, k := range mpiKinds {
		assert.Equal(t, len(r.Filter(k)), 0, "unexpected %s directive", k)
	}

	params := buildDirective(t, r).Params()
	opts := params.Strings("cmake_opts")
	assert.Assert(t, is.Contains(opts, "-D ENABLE_MPI=OFF"))
	assert.Assert(t, is.Contains(opts, "-D CXX_COMPILER=g++"))
	assert.Assert(t, strings.HasSuffix(params.String("url"), "v1.0.0.tar.gz"))
	assert.Equal(t, params.String("directory"), "app-1.0.0")
	assert.Equal(t, params.String("prefix"), "/usr/local/app")
}

func TestScenarioOpenMPI(t *testing.T) {
	tests := []struct {
		name   string
		vendor bool
		driver recipe.Kind
		other  recipe.Kind
	}{
		{"Inbox", false, recipe.KindOFED, recipe.KindMLNXOFED},
		{"Vendor", true, recipe.KindMLNXOFED, recipe.KindOFED},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := mustAssemble(t, Input{
				ApplicationName:    "app",
				ApplicationVersion: "1.0.0",
				MPIVersion:         "4.0.5",
				VendorDrivers:      tt.vendor,
			})

			assert.Equal(t, len(r.Filter(tt.driver)), 1)
			assert.Equal(t, len(r.Filter(tt.other)), 0)
			assert.Equal(t, len(r.Filter(recipe.KindUCX)), 1)
			assert.Equal(t, len(r.Filter(recipe.KindSlurmPMI2)), 1)

			ompi := r.Filter(recipe.KindOpenMPI)
			assert.Equal(t, len(ompi), 1)
			p := ompi[0].Params()
			assert.Equal(t, p.String("version"), "4.0.5")
			assert.Equal(t, p.String("ucx"), "/usr/local/ucx")
			assert.Equal(t, p.String("pmi"), "/usr/local/slurm-pmi2")
			assert.Equal(t, p.String("toolchain"), "CC=gcc CXX=g++ F77=gfortran F90=gfortran FC=gfortran")

			opts := buildDirective(t, r).Params().Strings("cmake_opts")
			assert.Assert(t, is.Contains(opts, "-D ENABLE_MPI=ON"))
			assert.Assert(t, is.Contains(opts, "-D CXX_COMPILER=mpicxx"))
		})
	}
}

func TestScenarioVendorOnlyChangesDriver(t *testing.T) {
	inbox := mustAssemble(t, Input{ApplicationVersion: "1.0.0", MPIVersion: "4.0.5"})
	vendor := mustAssemble(t, Input{ApplicationVersion: "1.0.0", MPIVersion: "4.0.5", VendorDrivers: true})

	a, b := inbox.Directives(), vendor.Directives()
	assert.Equal(t, len(a), len(b))

	for i := range a {
		switch a[i].Kind() {
		case recipe.KindOFED:
			assert.Equal(t, b[i].Kind(), recipe.KindMLNXOFED)
		case recipe.KindUCX:
			// the transport is built against the selected driver
			assert.Equal(t, b[i].Params().String("driver"), "mlnx")
		default:
			assert.Equal(t, a[i].Kind(), b[i].Kind())
			assert.DeepEqual(t, a[i].Params(), b[i].Params())
		}
	}
}

func TestAssembleDeterministic(t *testing.T) {
	in := Input{ApplicationVersion: "1.0.0", MPIVersion: "4.0.5", VendorDrivers: true}
	a := mustAssemble(t, in)
	b := mustAssemble(t, in)

	assert.DeepEqual(t, a.Kinds(), b.Kinds())
	for i, d := range a.Directives() {
		assert.DeepEqual(t, d.Params(), b.Directives()[i].Params())
	}
}

func TestAssembleEnvironment(t *testing.T) {
	r := mustAssemble(t, Input{ApplicationVersion: "1.0.0"})
	env := r.Filter(recipe.KindEnvironment)
	assert.Equal(t, len(env), 1)

	var found bool
	for _, inst := range env[0].Instructions(r.Platform()) {
		if e, ok := inst.(recipe.Env); ok {
			assert.DeepEqual(t, e.Variables, []recipe.Variable{{Name: "PATH", Value: "/usr/local/mrchem/bin:$PATH"}})
			found = true
		}
	}
	assert.Assert(t, found)
}

func TestAssembleLabels(t *testing.T) {
	r := mustAssemble(t, Input{ApplicationVersion: "1.0.0"})
	labels := r.Filter(recipe.KindLabel)
	assert.Equal(t, len(labels), 1)

	insts := labels[0].Instructions(r.Platform())
	assert.Equal(t, len(insts), 1)
	l, ok := insts[0].(recipe.Label)
	assert.Assert(t, ok)
	assert.DeepEqual(t, l.Labels, []recipe.KeyValue{
		{Key: "org.opencontainers.image.title", Value: "mrchem"},
		{Key: "org.opencontainers.image.version", Value: "1.0.0"},
		{Key: "org.opencontainers.image.source", Value: "http://github.com/MRChemSoft/mrchem/archive/v1.0.0.tar.gz"},
	})
}

func TestAssembleErrors(t *testing.T) {
	_, err := Assemble(Options{})
	assert.Equal(t, errors.Cause(err), ErrMissingApplicationVersion)

	o := mustOptions(t, Input{ApplicationVersion: "1.0.0"})
	o.Application.Prefix = "relative"
	_, err = Assemble(o)
	assert.ErrorContains(t, err, "prefix")
}

func TestBuildFlags(t *testing.T) {
	o := mustOptions(t, Input{ApplicationVersion: "1.0.0"})
	assert.DeepEqual(t, BuildFlags(o, blocks.NewGNU().Toolchain()), []string{
		"-D CMAKE_BUILD_TYPE=Release",
		"-D ENABLE_MPI=OFF",
		"-D ENABLE_OPENMP=ON",
		"-D ENABLE_ARCH_FLAGS=OFF",
		"-D CXX_COMPILER=g++",
	})
}

func TestBuildFlagsCompilerFromDirective(t *testing.T) {
	tests := []struct {
		name     string
		in       Input
		compiler recipe.Kind
		cxx      string
	}{
		{"GNU", Input{ApplicationVersion: "1.0.0"}, recipe.KindGNU, "g++"},
		{"OpenMPI", Input{ApplicationVersion: "1.0.0", MPIVersion: "4.0.5"}, recipe.KindOpenMPI, "mpicxx"},
	}

	type toolchainer interface {
		Toolchain() recipe.Toolchain
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := mustAssemble(t, tt.in)

			compiler := r.Filter(tt.compiler)
			assert.Equal(t, len(compiler), 1)
			assert.Equal(t, compiler[0].(toolchainer).Toolchain().CXX, tt.cxx)

			app := r.Filter(recipe.KindGenericCMake)
			assert.Equal(t, len(app), 1)
			assert.Assert(t, is.Contains(app[0].(*blocks.GenericCMake).CMakeOpts(), "-D CXX_COMPILER="+tt.cxx))
		})
	}
}
