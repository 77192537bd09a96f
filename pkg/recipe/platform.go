// Copyright (c) 2020, Sylabs Inc. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the
// LICENSE.md file distributed with the sources of this project regarding your
// rights to use or distribute this software.

package recipe

import (
	"strings"
)

// Distro is a Linux distribution family, it decides the package manager
// and package names used by the building blocks.
type Distro string

// Supported distribution families.
const (
	Ubuntu Distro = "ubuntu"
	CentOS Distro = "centos"
)

// Platform describes the image a recipe builds on.
type Platform struct {
	Distro Distro
	// Version is the distribution release, "18.04" or "7" for example.
	Version string
}

// UsesApt reports whether the platform installs packages with apt-get.
func (p Platform) UsesApt() bool {
	return p.Distro != CentOS
}

// DefaultPlatform is used when a recipe has no base image or when the base
// image distribution cannot be detected.
var DefaultPlatform = Platform{Distro: Ubuntu, Version: "18.04"}

var yumDistros = map[string]bool{
	"centos":     true,
	"rhel":       true,
	"ubi8":       true,
	"rockylinux": true,
	"almalinux":  true,
}

// PlatformFromImage detects the distribution of an image reference such as
// "ubuntu:18.04", "docker.io/library/centos:7" or "nvidia/cuda:10.2-devel-ubuntu18.04".
// The boolean is false when the image did not match a known distribution,
// DefaultPlatform is returned in that case.
func PlatformFromImage(image string) (Platform, bool) {
	ref := strings.ToLower(image)
	if i := strings.LastIndex(ref, "@"); i >= 0 {
		ref = ref[:i]
	}

	name, tag := ref, ""
	if i := strings.LastIndex(ref, ":"); i > strings.LastIndex(ref, "/") {
		name, tag = ref[:i], ref[i+1:]
	}
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}

	switch {
	case name == "ubuntu":
		return Platform{Distro: Ubuntu, Version: tag}, true
	case yumDistros[name]:
		return Platform{Distro: CentOS, Version: tag}, true
	}

	// vendor images like nvidia/cuda carry the distribution in the tag
	for _, part := range strings.Split(tag, "-") {
		if strings.HasPrefix(part, "ubuntu") {
			return Platform{Distro: Ubuntu, Version: strings.TrimPrefix(part, "ubuntu")}, true
		}
		for d := range yumDistros {
			if strings.HasPrefix(part, d) {
				return Platform{Distro: CentOS, Version: strings.TrimPrefix(part, d)}, true
			}
		}
	}

	return DefaultPlatform, false
}
