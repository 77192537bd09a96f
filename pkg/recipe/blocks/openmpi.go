// Copyright (c) 2020, Sylabs Inc. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the
// LICENSE.md file distributed with the sources of this project regarding your
// rights to use or distribute this software.

package blocks

import (
	"fmt"
	"path"
	"strings"

	"github.com/mrchemsoft/mrchem-recipe/pkg/recipe"
)

// DefaultOpenMPIPrefix is where OpenMPI is installed.
const DefaultOpenMPIPrefix = "/usr/local/openmpi"

// OpenMPIConfig holds the OpenMPI build parameters.
type OpenMPIConfig struct {
	// Version is the OpenMPI release, "4.0.5" for example.
	Version string
	// PMI is the install prefix of a PMI library, empty to build without.
	PMI string
	// UCX is the install prefix of UCX, empty to build without.
	UCX string
	// Toolchain configures the compilers OpenMPI is built with.
	Toolchain recipe.Toolchain
	// InfiniBand enables the verbs transport, it is normally left off when
	// UCX provides the transport.
	InfiniBand bool
}

// OpenMPI builds OpenMPI from a release tarball.
type OpenMPI struct {
	cfg    OpenMPIConfig
	series string
	prefix string
}

// NewOpenMPI returns an OpenMPI directive.
func NewOpenMPI(cfg OpenMPIConfig) (*OpenMPI, error) {
	v, err := parseVersion(recipe.KindOpenMPI, cfg.Version)
	if err != nil {
		return nil, err
	}
	if cfg.Toolchain.CC == "" || cfg.Toolchain.CXX == "" {
		return nil, paramError(recipe.KindOpenMPI, "toolchain", "C and C++ compilers required")
	}
	cfg.Version = strings.TrimPrefix(cfg.Version, "v")

	return &OpenMPI{
		cfg:    cfg,
		series: fmt.Sprintf("v%d.%d", v.Major, v.Minor),
		prefix: DefaultOpenMPIPrefix,
	}, nil
}

// Version returns the OpenMPI release.
func (o *OpenMPI) Version() string {
	return o.cfg.Version
}

// Prefix returns the OpenMPI install prefix.
func (o *OpenMPI) Prefix() string {
	return o.prefix
}

// Toolchain returns the MPI compiler wrappers, they replace the plain
// compilers for MPI enabled builds.
func (o *OpenMPI) Toolchain() recipe.Toolchain {
	return recipe.Toolchain{
		CC:  "mpicc",
		CXX: "mpicxx",
		F77: "mpif77",
		F90: "mpif90",
		FC:  "mpifort",
	}
}

func (o *OpenMPI) Kind() recipe.Kind {
	return recipe.KindOpenMPI
}

func (o *OpenMPI) Params() recipe.Params {
	return recipe.Params{
		{Key: "version", Value: o.cfg.Version},
		{Key: "prefix", Value: o.prefix},
		{Key: "pmi", Value: o.cfg.PMI},
		{Key: "ucx", Value: o.cfg.UCX},
		{Key: "toolchain", Value: o.cfg.Toolchain.Environment()},
		{Key: "infiniband", Value: o.cfg.InfiniBand},
		{Key: "cuda", Value: false},
	}
}

func (o *OpenMPI) configureOpts() []string {
	opts := []string{
		"--prefix=" + o.prefix,
		"--disable-getpwuid",
		"--enable-orterun-prefix-by-default",
	}
	if o.cfg.PMI != "" {
		opts = append(opts, "--with-pmi="+o.cfg.PMI)
	}
	if o.cfg.UCX != "" {
		opts = append(opts, "--with-ucx="+o.cfg.UCX)
	}
	opts = append(opts, "--without-cuda")
	if o.cfg.InfiniBand {
		opts = append(opts, "--with-verbs")
	} else {
		opts = append(opts, "--without-verbs")
	}
	return opts
}

func (o *OpenMPI) Instructions(p recipe.Platform) []recipe.Instruction {
	url := fmt.Sprintf("https://www.open-mpi.org/software/ompi/%s/downloads/openmpi-%s.tar.bz2", o.series, o.cfg.Version)
	src := path.Join(workDir, "openmpi-"+o.cfg.Version)

	cmds, tarball := fetchSource(url)
	cmds = append(cmds,
		fmt.Sprintf("cd %s && %s ./configure %s", src, o.cfg.Toolchain.Environment(), strings.Join(o.configureOpts(), " ")),
		"make -j$(nproc)",
		"make -j$(nproc) install",
		cleanup(src, tarball),
	)

	return []recipe.Instruction{
		recipe.Comment{Text: "OpenMPI version " + o.cfg.Version},
		installPackages(p,
			[]string{"bzip2", "file", "hwloc", "libnuma-dev", "make", "openssh-client", "perl", "tar", "wget"},
			[]string{"bzip2", "file", "hwloc", "make", "numactl-devel", "openssh-clients", "perl", "tar", "wget"},
		),
		recipe.Shell{Commands: cmds},
		recipe.Env{Variables: []recipe.Variable{
			prependPath("LD_LIBRARY_PATH", path.Join(o.prefix, "lib")),
			prependPath("PATH", path.Join(o.prefix, "bin")),
		}},
	}
}
