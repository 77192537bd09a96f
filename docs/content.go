// Copyright (c) 2020, Sylabs Inc. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the
// LICENSE.md file distributed with the sources of this project regarding your
// rights to use or distribute this software.

package docs

// Global content for help and man pages
const (

	// ~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~
	// main mrchem-recipe command
	// ~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~
	RecipeUse   string = `mrchem-recipe --mrchem=<version> [options...]`
	RecipeShort string = `
Generate container recipes for MRChem images`
	RecipeLong string = `
  mrchem-recipe writes a Dockerfile or a Singularity definition file building
  an Ubuntu image with the GNU compilers, CMake, Python 3 and MRChem built from
  source. With --openmpi the image also carries OFED, UCX, the Slurm PMI2
  library and OpenMPI, and MRChem is built against MPI. --mofed replaces the
  inbox OFED packages with Mellanox OFED.

  The recipe is written to standard output unless --output is given. Defaults
  are read from $XDG_CONFIG_HOME/mrchem-recipe/config.yaml (or config.toml)
  when present, or from the file named by --config.`
	RecipeExample string = `
  $ mrchem-recipe --mrchem=1.0.0 > Dockerfile
  $ mrchem-recipe --mrchem=1.0.0 --openmpi=4.0.5 --mofed > Dockerfile
  $ mrchem-recipe --mrchem=1.0.0 --openmpi=4.0.5 --format singularity --singularity-version=3.2 > Singularity.def
  $ mrchem-recipe check --format singularity Singularity.def`

	// ~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~
	// check
	// ~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~
	CheckUse   string = `check [check options...] <recipe path>`
	CheckShort string = `Check that a generated recipe is well formed`
	CheckLong  string = `
  The check command parses a recipe the way the consuming tool does: with the
  BuildKit Dockerfile parser for the docker format and with the definition file
  parser for the singularity format. The yaml format is the directive plan
  written by --format yaml.`
	CheckExample string = `
  $ mrchem-recipe check Dockerfile
  $ mrchem-recipe check --format singularity Singularity.def`

	// ~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~
	// version
	// ~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~
	VersionShort string = `Show the version for mrchem-recipe`

	// RecipeHeader is written at the top of generated recipes.
	RecipeHeader string = `MRChem image

Contents:
  Ubuntu 18.04
  GNU compilers (upstream)
  CMake, Python 3
  MRChem
  with --openmpi: OFED or Mellanox OFED, UCX, PMI2 (SLURM), OpenMPI

Building:
  1. Docker to Singularity
     $ mrchem-recipe --mrchem=1.0.0 --openmpi=4.0.5 > Dockerfile
     $ sudo docker build -t mrchem -f Dockerfile .
     $ singularity build mrchem.sif docker-daemon://mrchem:latest

  2. Singularity
     $ mrchem-recipe --mrchem=1.0.0 --openmpi=4.0.5 --format singularity --singularity-version=3.2 > Singularity.def
     $ sudo singularity build mrchem.sif Singularity.def

Running with Singularity:
  1. Using a compatible host MPI runtime
     $ singularity run mrchem.sif mrchem --dryrun molecule.inp
     $ mpirun -map-by ppr:1:numa -bind-to numa singularity run mrchem.sif mrchem.x molecule.json >molecule.out

  2. Using SLURM srun
     $ singularity run mrchem.sif mrchem --dryrun molecule.inp
     $ srun singularity run mrchem.sif mrchem.x molecule.json >molecule.out`
)
