// Copyright (c) 2020, Sylabs Inc. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the
// LICENSE.md file distributed with the sources of this project regarding your
// rights to use or distribute this software.

// Package assemble turns resolved options into the ordered directive list of
// an application image: base image, compilers, the optional MPI stack, build
// tools and finally the application itself.
package assemble

import (
	"github.com/mrchemsoft/mrchem-recipe/pkg/recipe"
	"github.com/mrchemsoft/mrchem-recipe/pkg/recipe/blocks"
	ocispec "github.com/opencontainers/image-spec/specs-go/v1"
	"github.com/pkg/errors"
)

// patchPackages are needed by the patch step of the application sources.
var patchPackages = []string{"patch"}

// BuildFlags returns the CMake options the application is configured with,
// tc holds the compilers of the last compiler directive.
func BuildFlags(o Options, tc recipe.Toolchain) []string {
	mpi := "OFF"
	if o.MPIEnabled() {
		mpi = "ON"
	}
	return []string{
		"-D CMAKE_BUILD_TYPE=Release",
		"-D ENABLE_MPI=" + mpi,
		"-D ENABLE_OPENMP=ON",
		"-D ENABLE_ARCH_FLAGS=OFF",
		"-D CXX_COMPILER=" + tc.CXX,
	}
}

// Assemble returns the recipe for o. It does not perform any I/O, the same
// options always produce the same recipe.
func Assemble(o Options) (*recipe.Recipe, error) {
	if o.Application.Version == "" {
		return nil, ErrMissingApplicationVersion
	}
	if o.MPI == nil {
		o.MPI = NoMPI{}
	}

	r := recipe.New()

	base, err := blocks.NewBaseImage(o.BaseImage, o.Stage)
	if err != nil {
		return nil, err
	}
	r.Append(base)

	label, err := blocks.NewLabel(
		recipe.KeyValue{Key: ocispec.AnnotationTitle, Value: o.Application.Name},
		recipe.KeyValue{Key: ocispec.AnnotationVersion, Value: o.Application.Version},
		recipe.KeyValue{Key: ocispec.AnnotationSource, Value: o.Application.URL},
	)
	if err != nil {
		return nil, err
	}
	r.Append(label)

	compiler := blocks.NewGNU()
	r.Append(compiler)
	toolchain := compiler.Toolchain()

	if mpi, ok := o.MPI.(OpenMPI); ok {
		stack, ompi, err := mpiStack(mpi, o.Versions, toolchain)
		if err != nil {
			return nil, errors.Wrap(err, "while assembling MPI stack")
		}
		r.Append(stack...)
		toolchain = ompi.Toolchain()
	}

	cmake, err := blocks.NewCMake(o.Versions.CMake, true)
	if err != nil {
		return nil, err
	}
	r.Append(cmake)

	python, err := blocks.NewPython(false, true)
	if err != nil {
		return nil, err
	}
	r.Append(python)

	pkgs, err := blocks.NewPackages(patchPackages, nil)
	if err != nil {
		return nil, err
	}
	r.Append(pkgs)

	app, err := blocks.NewGenericCMake(blocks.GenericCMakeConfig{
		URL:       o.Application.URL,
		Directory: o.Application.Directory(),
		Prefix:    o.Application.Prefix,
		CMakeOpts: BuildFlags(o, toolchain),
	})
	if err != nil {
		return nil, errors.Wrapf(err, "while assembling %s build", o.Application.Name)
	}
	r.Append(app)

	env, err := blocks.NewEnvironment(recipe.Variable{
		Name:  "PATH",
		Value: o.Application.Prefix + "/bin:$PATH",
	})
	if err != nil {
		return nil, err
	}
	r.Append(env)

	return r, nil
}

// mpiStack returns the driver, transport, process manager and MPI
// directives, in install order, along with the MPI directive itself.
func mpiStack(mpi OpenMPI, v Versions, tc recipe.Toolchain) ([]recipe.Directive, *blocks.OpenMPI, error) {
	var driver recipe.Directive
	kind := blocks.InboxDriver

	if mpi.VendorDrivers {
		mofed, err := blocks.NewMLNXOFED(v.MLNXOFED)
		if err != nil {
			return nil, nil, err
		}
		driver, kind = mofed, blocks.MellanoxDriver
	} else {
		driver = blocks.NewOFED()
	}

	ucx, err := blocks.NewUCX(v.UCX, kind)
	if err != nil {
		return nil, nil, err
	}

	pmi, err := blocks.NewSlurmPMI2(v.SlurmPMI2)
	if err != nil {
		return nil, nil, err
	}

	ompi, err := blocks.NewOpenMPI(blocks.OpenMPIConfig{
		Version:   mpi.Version,
		PMI:       pmi.Prefix(),
		UCX:       ucx.Prefix(),
		Toolchain: tc,
	})
	if err != nil {
		return nil, nil, err
	}

	return []recipe.Directive{driver, ucx, pmi, ompi}, ompi, nil
}
