// Copyright (c) 2020, Sylabs Inc. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the
// LICENSE.md file distributed with the sources of this project regarding your
// rights to use or distribute this software.

package blocks

import (
	"fmt"
	"strings"

	"github.com/mrchemsoft/mrchem-recipe/pkg/recipe"
)

// Driver identifies the network driver stack, it is recorded by the
// directives built on top of it.
type Driver string

const (
	// InboxDriver is the OFED stack shipped by the distribution.
	InboxDriver Driver = "inbox"
	// MellanoxDriver is the vendor Mellanox OFED stack.
	MellanoxDriver Driver = "mlnx"
)

// OFED installs the distribution OpenFabrics user space packages.
type OFED struct{}

// NewOFED returns a generic OFED directive.
func NewOFED() *OFED {
	return &OFED{}
}

// Driver returns InboxDriver.
func (o *OFED) Driver() Driver {
	return InboxDriver
}

func (o *OFED) Kind() recipe.Kind {
	return recipe.KindOFED
}

func (o *OFED) Params() recipe.Params {
	return recipe.Params{
		{Key: "driver", Value: string(InboxDriver)},
	}
}

func (o *OFED) Instructions(p recipe.Platform) []recipe.Instruction {
	return []recipe.Instruction{
		recipe.Comment{Text: "OFED"},
		installPackages(p,
			[]string{
				"dapl2-utils", "ibutils", "ibverbs-providers", "ibverbs-utils",
				"infiniband-diags", "libdapl-dev", "libdapl2", "libibmad-dev",
				"libibmad5", "libibverbs-dev", "libibverbs1", "librdmacm-dev",
				"librdmacm1", "rdmacm-utils",
			},
			[]string{
				"dapl", "dapl-devel", "ibutils", "libibverbs", "libibverbs-devel",
				"libibverbs-utils", "libibmad", "libibmad-devel", "librdmacm",
				"librdmacm-devel", "infiniband-diags", "rdma-core",
			},
		),
	}
}

const mellanoxKeyURL = "https://www.mellanox.com/downloads/ofed/RPM-GPG-KEY-Mellanox"

// MLNXOFED installs the Mellanox OFED user space packages from the vendor
// package repository.
type MLNXOFED struct {
	version string
}

// NewMLNXOFED returns a Mellanox OFED directive for a release like
// "5.0-2.1.8.0".
func NewMLNXOFED(version string) (*MLNXOFED, error) {
	if err := required(recipe.KindMLNXOFED, "version", version); err != nil {
		return nil, err
	}
	if !strings.Contains(version, "-") {
		return nil, paramError(recipe.KindMLNXOFED, "version", "%q is not a MLNX_OFED release, expecting a form like 5.0-2.1.8.0", version)
	}
	return &MLNXOFED{version: version}, nil
}

// Version returns the MLNX_OFED release.
func (m *MLNXOFED) Version() string {
	return m.version
}

// Driver returns MellanoxDriver.
func (m *MLNXOFED) Driver() Driver {
	return MellanoxDriver
}

func (m *MLNXOFED) Kind() recipe.Kind {
	return recipe.KindMLNXOFED
}

func (m *MLNXOFED) Params() recipe.Params {
	return recipe.Params{
		{Key: "version", Value: m.version},
		{Key: "driver", Value: string(MellanoxDriver)},
	}
}

// repository returns the Mellanox repository path component for the
// platform, "ubuntu18.04" or "rhel7.8".
func (m *MLNXOFED) repository(p recipe.Platform) string {
	if p.UsesApt() {
		version := p.Version
		if version == "" {
			version = recipe.DefaultPlatform.Version
		}
		return "ubuntu" + version
	}
	if strings.HasPrefix(p.Version, "8") {
		return "rhel8.2"
	}
	return "rhel7.8"
}

func (m *MLNXOFED) Instructions(p recipe.Platform) []recipe.Instruction {
	base := fmt.Sprintf("https://linux.mellanox.com/public/repo/mlnx_ofed/%s/%s", m.version, m.repository(p))

	userSpace := installPackages(p,
		[]string{
			"ibverbs-providers", "ibverbs-utils", "libibmad-dev", "libibmad5",
			"libibumad-dev", "libibumad3", "libibverbs-dev", "libibverbs1",
			"librdmacm-dev", "librdmacm1",
		},
		[]string{
			"libibumad", "libibverbs", "libibverbs-utils", "librdmacm",
			"rdma-core", "rdma-core-devel",
		},
	)

	var repo []string
	if p.UsesApt() {
		repo = []string{
			fmt.Sprintf("wget -qO - %s | apt-key add -", mellanoxKeyURL),
			download(base+"/mellanox_mlnx_ofed.list", "/etc/apt/sources.list.d"),
		}
	} else {
		repo = []string{
			"rpm --import " + mellanoxKeyURL,
			"yum install -y yum-utils",
			"yum-config-manager --add-repo " + base + "/mellanox_mlnx_ofed.repo",
		}
	}

	return []recipe.Instruction{
		recipe.Comment{Text: "Mellanox OFED version " + m.version},
		installPackages(p,
			[]string{"ca-certificates", "gnupg", "wget"},
			[]string{"ca-certificates", "gnupg2", "wget"},
		),
		recipe.Shell{Commands: append(repo, userSpace.Commands...)},
	}
}
