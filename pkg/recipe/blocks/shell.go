// Copyright (c) 2020, Sylabs Inc. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the
// LICENSE.md file distributed with the sources of this project regarding your
// rights to use or distribute this software.

package blocks

import (
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/blang/semver"
	"github.com/mrchemsoft/mrchem-recipe/pkg/recipe"
)

// workDir is where sources are downloaded and built.
const workDir = "/var/tmp"

// installPackages returns the shell step installing OS packages with the
// platform package manager. Packages are sorted so that a recipe does not
// depend on the order they were listed in.
func installPackages(p recipe.Platform, apt, yum []string) recipe.Shell {
	pkgs := apt
	if !p.UsesApt() {
		pkgs = yum
	}

	sorted := make([]string, len(pkgs))
	copy(sorted, pkgs)
	sort.Strings(sorted)

	list := strings.Join(sorted, " \\\n        ")

	if p.UsesApt() {
		return recipe.Shell{Commands: []string{
			"apt-get update -y",
			"DEBIAN_FRONTEND=noninteractive apt-get install -y --no-install-recommends \\\n        " + list,
			"rm -rf /var/lib/apt/lists/*",
		}}
	}

	return recipe.Shell{Commands: []string{
		"yum install -y \\\n        " + list,
		"rm -rf /var/cache/yum/*",
	}}
}

// download fetches url into dir, an existing file is kept.
func download(url, dir string) string {
	return fmt.Sprintf("mkdir -p %[1]s && wget -q -nc --no-check-certificate -P %[1]s %[2]s", dir, url)
}

// untar extracts tarball into dir, the compression is guessed from the
// file extension.
func untar(tarball, dir string) string {
	cmd := fmt.Sprintf("mkdir -p %[2]s && tar -x -f %[1]s -C %[2]s", tarball, dir)

	switch {
	case strings.HasSuffix(tarball, ".tar.gz"), strings.HasSuffix(tarball, ".tgz"):
		cmd += " -z"
	case strings.HasSuffix(tarball, ".tar.bz2"), strings.HasSuffix(tarball, ".tbz"):
		cmd += " -j"
	case strings.HasSuffix(tarball, ".tar.xz"):
		cmd += " -J"
	}
	return cmd
}

// cleanup removes build leftovers.
func cleanup(paths ...string) string {
	return "rm -rf " + strings.Join(paths, " ")
}

// fetchSource downloads and extracts a source tarball into workDir, it
// returns the commands and the local tarball path.
func fetchSource(url string) ([]string, string) {
	tarball := path.Join(workDir, path.Base(url))
	return []string{download(url, workDir), untar(tarball, workDir)}, tarball
}

// prependPath returns value prepended to the given search path variable.
func prependPath(name, value string) recipe.Variable {
	return recipe.Variable{Name: name, Value: fmt.Sprintf("%s:$%s", value, name)}
}

// parseVersion validates a release version like "4.0.5" or "v1.7".
func parseVersion(kind recipe.Kind, version string) (semver.Version, error) {
	if err := required(kind, "version", version); err != nil {
		return semver.Version{}, err
	}
	v, err := semver.ParseTolerant(version)
	if err != nil {
		return v, paramError(kind, "version", "%q is not a release version: %s", version, err)
	}
	return v, nil
}
