// Copyright (c) 2020, Sylabs Inc. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the
// LICENSE.md file distributed with the sources of this project regarding your
// rights to use or distribute this software.

package assemble

import (
	"testing"

	"github.com/pkg/errors"
	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"
)

func TestNewOptionsErrors(t *testing.T) {
	tests := []struct {
		name    string
		in      Input
		err     error
		version bool
	}{
		{name: "MissingVersion", in: Input{}, err: ErrMissingApplicationVersion},
		{name: "BlankVersion", in: Input{ApplicationVersion: "  "}, err: ErrMissingApplicationVersion},
		{name: "BadVersion", in: Input{ApplicationVersion: "latest"}, version: true},
		{name: "BadMPIVersion", in: Input{ApplicationVersion: "1.0.0", MPIVersion: "four"}, version: true},
		{name: "BadUCX", in: Input{ApplicationVersion: "1.0.0", MPIVersion: "4.0.5", Versions: Versions{UCX: "x"}}, version: true},
		{name: "BadPMI", in: Input{ApplicationVersion: "1.0.0", MPIVersion: "4.0.5", Versions: Versions{SlurmPMI2: "19.05.x"}}, version: true},
		{name: "BadMOFED", in: Input{ApplicationVersion: "1.0.0", MPIVersion: "4.0.5", VendorDrivers: true, Versions: Versions{MLNXOFED: "latest"}}, version: true},
		{name: "BadCMake", in: Input{ApplicationVersion: "1.0.0", Versions: Versions{CMake: "three"}}, version: true},
		{name: "StrictVendor", in: Input{ApplicationVersion: "1.0.0", VendorDrivers: true, Strict: true}, err: ErrVendorDriversWithoutMPI},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := NewOptions(tt.in)
			assert.Assert(t, err != nil)
			if tt.version {
				assert.Assert(t, IsVersionError(err), "got %v", err)
				return
			}
			assert.Equal(t, errors.Cause(err), tt.err)
		})
	}
}

func TestNewOptionsDefaults(t *testing.T) {
	o, warnings, err := NewOptions(Input{ApplicationVersion: "v1.0.0"})
	assert.NilError(t, err)
	assert.Equal(t, len(warnings), 0)

	assert.DeepEqual(t, o.Application, Application{
		Name:    "mrchem",
		Version: "1.0.0",
		URL:     "http://github.com/MRChemSoft/mrchem/archive/v1.0.0.tar.gz",
		Prefix:  "/usr/local/mrchem",
	})
	assert.Equal(t, o.Application.Directory(), "mrchem-1.0.0")
	assert.Equal(t, o.MPI, MPIProfile(NoMPI{}))
	assert.Equal(t, o.Versions, DefaultVersions())
	assert.Equal(t, o.BaseImage, DefaultBaseImage)
	assert.Equal(t, o.Stage, DefaultStage)
	assert.Assert(t, !o.MPIEnabled())
}

func TestNewOptionsMPI(t *testing.T) {
	o, warnings, err := NewOptions(Input{
		ApplicationVersion: "1.0.0",
		MPIVersion:         "4.0.5",
		VendorDrivers:      true,
		Versions:           Versions{UCX: "1.8.0"},
	})
	assert.NilError(t, err)
	assert.Equal(t, len(warnings), 0)
	assert.Equal(t, o.MPI, MPIProfile(OpenMPI{Version: "4.0.5", VendorDrivers: true}))
	assert.Assert(t, o.MPIEnabled())
	assert.Equal(t, o.Versions.UCX, "1.8.0")
	assert.Equal(t, o.Versions.CMake, DefaultVersions().CMake)
}

func TestNewOptionsWarnings(t *testing.T) {
	o, warnings, err := NewOptions(Input{ApplicationVersion: "1.0.0", VendorDrivers: true})
	assert.NilError(t, err)
	assert.DeepEqual(t, warnings, []Warning{WarnVendorDriversIgnored})
	assert.Equal(t, o.MPI, MPIProfile(NoMPI{}))

	_, warnings, err = NewOptions(Input{ApplicationVersion: "1.0.0", BaseImage: "alpine:3.12"})
	assert.NilError(t, err)
	assert.DeepEqual(t, warnings, []Warning{WarnUnknownDistro})
}

func TestNewOptionsApplication(t *testing.T) {
	o, _, err := NewOptions(Input{
		ApplicationName:    "app",
		ApplicationVersion: "1.0.0",
		ApplicationURL:     "https://example.org/{version}/app-{version}.tar.gz",
	})
	assert.NilError(t, err)
	assert.Equal(t, o.Application.URL, "https://example.org/1.0.0/app-1.0.0.tar.gz")
	assert.Equal(t, o.Application.Prefix, "/usr/local/app")
	assert.Equal(t, o.Application.Directory(), "app-1.0.0")
}

func TestVersionError(t *testing.T) {
	err := &VersionError{Field: "openmpi", Version: "x", Err: errors.New("bad")}
	assert.Error(t, err, `invalid openmpi version "x": bad`)
	assert.Assert(t, IsVersionError(errors.Wrap(err, "wrapped")))
	assert.Assert(t, !IsVersionError(ErrMissingApplicationVersion))
	assert.Assert(t, is.Equal(WarnUnknownDistro.String(), string(WarnUnknownDistro)))
}
