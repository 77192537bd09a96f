// Copyright (c) 2020, Sylabs Inc. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the
// LICENSE.md file distributed with the sources of this project regarding your
// rights to use or distribute this software.

package blocks

import (
	"fmt"
	"path"

	"github.com/mrchemsoft/mrchem-recipe/pkg/recipe"
)

// DefaultSlurmPMI2Prefix is where the PMI2 library is installed.
const DefaultSlurmPMI2Prefix = "/usr/local/slurm-pmi2"

// SlurmPMI2 builds the Slurm PMI2 process management interface library so
// that srun can launch MPI processes inside the container.
type SlurmPMI2 struct {
	version string
	prefix  string
}

// NewSlurmPMI2 returns a PMI2 directive for a Slurm release like "19.05.5".
func NewSlurmPMI2(version string) (*SlurmPMI2, error) {
	if err := required(recipe.KindSlurmPMI2, "version", version); err != nil {
		return nil, err
	}
	return &SlurmPMI2{version: version, prefix: DefaultSlurmPMI2Prefix}, nil
}

// Prefix returns the PMI2 install prefix.
func (s *SlurmPMI2) Prefix() string {
	return s.prefix
}

func (s *SlurmPMI2) Kind() recipe.Kind {
	return recipe.KindSlurmPMI2
}

func (s *SlurmPMI2) Params() recipe.Params {
	return recipe.Params{
		{Key: "version", Value: s.version},
		{Key: "prefix", Value: s.prefix},
	}
}

func (s *SlurmPMI2) Instructions(p recipe.Platform) []recipe.Instruction {
	url := fmt.Sprintf("https://download.schedmd.com/slurm/slurm-%s.tar.bz2", s.version)
	src := path.Join(workDir, "slurm-"+s.version)

	cmds, tarball := fetchSource(url)
	cmds = append(cmds,
		fmt.Sprintf("cd %s && ./configure --prefix=%s", src, s.prefix),
		fmt.Sprintf("cd %s && make -C contribs/pmi2 install", src),
		cleanup(src, tarball),
	)

	return []recipe.Instruction{
		recipe.Comment{Text: "SLURM PMI2 version " + s.version},
		installPackages(p,
			[]string{"bzip2", "file", "make", "perl", "tar", "wget"},
			[]string{"bzip2", "file", "make", "perl", "tar", "wget"},
		),
		recipe.Shell{Commands: cmds},
	}
}
