// Copyright (c) 2020, Sylabs Inc. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the
// LICENSE.md file distributed with the sources of this project regarding your
// rights to use or distribute this software.

package assemble

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/blang/semver"
	"github.com/mrchemsoft/mrchem-recipe/pkg/recipe"
	"github.com/pkg/errors"
)

const (
	// DefaultApplicationName is the packaged application.
	DefaultApplicationName = "mrchem"
	// DefaultApplicationURL is the source archive template, {version} is
	// replaced by the application version.
	DefaultApplicationURL = "http://github.com/MRChemSoft/mrchem/archive/v{version}.tar.gz"
	// DefaultBaseImage is the image the recipe starts from.
	DefaultBaseImage = "ubuntu:18.04"
	// DefaultStage names the build stage.
	DefaultStage = "build"

	versionPlaceholder = "{version}"
)

var (
	// ErrMissingApplicationVersion is returned when no application version was given.
	ErrMissingApplicationVersion = errors.New("application version is required")
	// ErrVendorDriversWithoutMPI is returned in strict mode when vendor
	// drivers are requested for a build without MPI.
	ErrVendorDriversWithoutMPI = errors.New("vendor drivers requested without MPI")
)

// Warning is a non fatal problem found while resolving options.
type Warning string

const (
	// WarnVendorDriversIgnored is reported when vendor drivers are requested
	// for a build without MPI.
	WarnVendorDriversIgnored Warning = "vendor drivers have no effect without MPI, ignoring"
	// WarnUnknownDistro is reported when the base image distribution is not
	// recognized.
	WarnUnknownDistro Warning = "base image distribution not recognized, assuming ubuntu"
)

func (w Warning) String() string {
	return string(w)
}

// VersionError records a version string that could not be parsed.
type VersionError struct {
	Field   string
	Version string
	Err     error
}

func (e *VersionError) Error() string {
	return fmt.Sprintf("invalid %s version %q: %s", e.Field, e.Version, e.Err)
}

// IsVersionError returns a boolean indicating whether the error
// is reporting an unparsable version
func IsVersionError(err error) bool {
	_, ok := errors.Cause(err).(*VersionError)
	return ok
}

// Versions pins the releases of the supporting components.
type Versions struct {
	UCX       string `yaml:"ucx" toml:"ucx"`
	SlurmPMI2 string `yaml:"slurm-pmi2" toml:"slurm-pmi2"`
	MLNXOFED  string `yaml:"mlnx-ofed" toml:"mlnx-ofed"`
	CMake     string `yaml:"cmake" toml:"cmake"`
}

// DefaultVersions returns the component releases known to build the
// application.
func DefaultVersions() Versions {
	return Versions{
		UCX:       "1.7.0",
		SlurmPMI2: "19.05.5",
		MLNXOFED:  "5.0-2.1.8.0",
		CMake:     "3.16.3",
	}
}

// merge fills empty fields of v from d.
func (v Versions) merge(d Versions) Versions {
	if v.UCX == "" {
		v.UCX = d.UCX
	}
	if v.SlurmPMI2 == "" {
		v.SlurmPMI2 = d.SlurmPMI2
	}
	if v.MLNXOFED == "" {
		v.MLNXOFED = d.MLNXOFED
	}
	if v.CMake == "" {
		v.CMake = d.CMake
	}
	return v
}

// Application describes the application built from source.
type Application struct {
	Name    string
	Version string
	// URL is the resolved source archive location.
	URL string
	// Prefix is the install prefix.
	Prefix string
}

// Directory returns the top level directory of the source archive.
func (a Application) Directory() string {
	return a.Name + "-" + a.Version
}

// MPIProfile selects the MPI stack of the image, it is either NoMPI or
// OpenMPI.
type MPIProfile interface {
	isMPIProfile()
}

// NoMPI builds the application without MPI.
type NoMPI struct{}

// OpenMPI builds the application against OpenMPI.
type OpenMPI struct {
	Version string
	// VendorDrivers selects Mellanox OFED instead of the inbox drivers.
	VendorDrivers bool
}

func (NoMPI) isMPIProfile()   {}
func (OpenMPI) isMPIProfile() {}

// Input is the raw user selection, NewOptions resolves it.
type Input struct {
	ApplicationName    string
	ApplicationVersion string
	ApplicationURL     string
	ApplicationPrefix  string

	MPIVersion    string
	VendorDrivers bool

	BaseImage string
	Stage     string
	Versions  Versions

	// Strict turns inconsistent combinations into errors.
	Strict bool
}

// Options is the resolved configuration of one recipe.
type Options struct {
	Application Application
	MPI         MPIProfile
	Versions    Versions
	BaseImage   string
	Stage       string
}

// MPIEnabled reports whether the application is built with MPI.
func (o Options) MPIEnabled() bool {
	_, ok := o.MPI.(OpenMPI)
	return ok
}

// releasePattern matches dotted numeric releases with optional dash
// separated build numbers, like 19.05.5 or 5.0-2.1.8.0.
var releasePattern = regexp.MustCompile(`^[0-9]+(\.[0-9]+)*(-[0-9]+(\.[0-9]+)*)?$`)

func checkSemver(field, version string) error {
	if _, err := semver.ParseTolerant(version); err != nil {
		return &VersionError{Field: field, Version: version, Err: err}
	}
	return nil
}

func checkRelease(field, version string) error {
	if !releasePattern.MatchString(version) {
		return &VersionError{Field: field, Version: version, Err: errors.New("not a release number")}
	}
	return nil
}

// NewOptions validates in and resolves defaults.
func NewOptions(in Input) (Options, []Warning, error) {
	var warnings []Warning

	version := strings.TrimSpace(in.ApplicationVersion)
	if version == "" {
		return Options{}, nil, ErrMissingApplicationVersion
	}
	version = strings.TrimPrefix(version, "v")
	if err := checkSemver("application", version); err != nil {
		return Options{}, nil, err
	}

	app := Application{
		Name:    strings.TrimSpace(in.ApplicationName),
		Version: version,
		URL:     in.ApplicationURL,
		Prefix:  in.ApplicationPrefix,
	}
	if app.Name == "" {
		app.Name = DefaultApplicationName
	}
	if app.URL == "" {
		app.URL = DefaultApplicationURL
	}
	app.URL = strings.ReplaceAll(app.URL, versionPlaceholder, version)
	if app.Prefix == "" {
		app.Prefix = "/usr/local/" + app.Name
	}

	versions := in.Versions.merge(DefaultVersions())

	var mpi MPIProfile = NoMPI{}
	if v := strings.TrimSpace(in.MPIVersion); v != "" {
		if err := checkSemver("openmpi", v); err != nil {
			return Options{}, nil, err
		}
		if err := checkSemver("ucx", versions.UCX); err != nil {
			return Options{}, nil, err
		}
		if err := checkRelease("slurm-pmi2", versions.SlurmPMI2); err != nil {
			return Options{}, nil, err
		}
		if in.VendorDrivers {
			if err := checkRelease("mlnx-ofed", versions.MLNXOFED); err != nil {
				return Options{}, nil, err
			}
		}
		mpi = OpenMPI{Version: v, VendorDrivers: in.VendorDrivers}
	} else if in.VendorDrivers {
		if in.Strict {
			return Options{}, nil, ErrVendorDriversWithoutMPI
		}
		warnings = append(warnings, WarnVendorDriversIgnored)
	}

	if err := checkSemver("cmake", versions.CMake); err != nil {
		return Options{}, nil, err
	}

	image := strings.TrimSpace(in.BaseImage)
	if image == "" {
		image = DefaultBaseImage
	}
	if _, ok := recipe.PlatformFromImage(image); !ok {
		warnings = append(warnings, WarnUnknownDistro)
	}

	stage := in.Stage
	if stage == "" {
		stage = DefaultStage
	}

	return Options{
		Application: app,
		MPI:         mpi,
		Versions:    versions,
		BaseImage:   image,
		Stage:       stage,
	}, warnings, nil
}
