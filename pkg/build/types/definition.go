// Copyright (c) 2020, Sylabs Inc. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the
// LICENSE.md file distributed with the sources of this project regarding your
// rights to use or distribute this software.

// Package types holds the in-memory form of a Singularity definition file.
package types

import "strings"

// Definition describes a parsed Singularity definition file.
type Definition struct {
	Header     map[string]string `json:"header"`
	ImageData  `json:"imageData"`
	BuildData  Data              `json:"buildData"`
	CustomData map[string]string `json:"customData"`
	Raw        []byte            `json:"raw"`
}

// ImageData contains the scripts and metadata that end up in the built image.
type ImageData struct {
	Labels       map[string]string `json:"labels"`
	ImageScripts `json:"imageScripts"`
}

// ImageScripts contains scripts that are used after build time.
type ImageScripts struct {
	Help        string `json:"help"`
	Environment string `json:"environment"`
	Runscript   string `json:"runScript"`
	Test        string `json:"test"`
	Startscript string `json:"startScript"`
}

// Data contains what a builder needs only at build time.
type Data struct {
	Files   []FileTransport `json:"files"`
	Scripts `json:"buildScripts"`
}

// FileTransport holds source and destination of a %files entry.
type FileTransport struct {
	Src string `json:"source"`
	Dst string `json:"destination"`
}

// Scripts defines scripts that are used at build time.
type Scripts struct {
	Pre   string `json:"pre"`
	Setup string `json:"setup"`
	Post  string `json:"post"`
	Test  string `json:"test"`
}

// Bootstrap returns the bootstrap agent named by the header, lower cased.
func (d Definition) Bootstrap() string {
	return strings.ToLower(d.Header["bootstrap"])
}

// BaseImage returns the From header.
func (d Definition) BaseImage() string {
	return d.Header["from"]
}

// Stage returns the Stage header, empty for single stage definitions.
func (d Definition) Stage() string {
	return d.Header["stage"]
}
