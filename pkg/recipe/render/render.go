// Copyright (c) 2020, Sylabs Inc. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the
// LICENSE.md file distributed with the sources of this project regarding your
// rights to use or distribute this software.

// Package render serializes a recipe into Dockerfile or Singularity
// definition text. The output format is always given explicitly, there is
// no process wide format setting.
package render

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/mrchemsoft/mrchem-recipe/pkg/recipe"
	"github.com/pkg/errors"
)

// Format is a recipe output format.
type Format string

const (
	// Docker renders a Dockerfile.
	Docker Format = "docker"
	// Singularity renders a Singularity definition file.
	Singularity Format = "singularity"
	// YAML renders the directive list itself, mostly for inspection.
	YAML Format = "yaml"
)

// DefaultSingularityVersion is the Singularity version definition files
// target when none is given.
const DefaultSingularityVersion = "3.5"

// ErrUnknownFormat is returned for an unsupported output format.
var ErrUnknownFormat = errors.New("unknown output format")

// Formats returns the supported output formats.
func Formats() []Format {
	return []Format{Docker, Singularity, YAML}
}

// ParseFormat returns the Format named s.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats() {
		if f == known {
			return f, nil
		}
	}
	return "", errors.Wrapf(ErrUnknownFormat, "%q, expecting one of %v", s, Formats())
}

// Options controls a render pass.
type Options struct {
	Format Format
	// SingularityVersion is the Singularity release the definition targets,
	// it decides which header keywords are emitted.
	SingularityVersion string
	// Header is written as a leading comment block.
	Header string
}

type renderer interface {
	render(buf *bytes.Buffer, r *recipe.Recipe, header string) error
}

// Render writes r to w in the requested format.
func Render(w io.Writer, r *recipe.Recipe, opts Options) error {
	if r == nil || r.Len() == 0 {
		return errors.New("nothing to render: empty recipe")
	}

	var rd renderer

	switch opts.Format {
	case Docker:
		rd = &dockerRenderer{}
	case Singularity:
		version := opts.SingularityVersion
		if version == "" {
			version = DefaultSingularityVersion
		}
		s, err := newSingularityRenderer(version)
		if err != nil {
			return err
		}
		rd = s
	case YAML:
		rd = &yamlRenderer{}
	default:
		return errors.Wrapf(ErrUnknownFormat, "%q", opts.Format)
	}

	var buf bytes.Buffer
	if err := rd.render(&buf, r, opts.Header); err != nil {
		return errors.Wrapf(err, "while rendering %s recipe", opts.Format)
	}

	n, err := w.Write(buf.Bytes())
	if err != nil {
		return errors.Wrap(err, "while writing recipe")
	}
	if n != buf.Len() {
		return fmt.Errorf("could not write entirety of recipe")
	}
	return nil
}

// commentLines returns text as shell style comment lines.
func commentLines(text string) []string {
	text = strings.Trim(text, "\n")
	if text == "" {
		return nil
	}

	var lines []string
	for _, l := range strings.Split(text, "\n") {
		l = strings.TrimRight(l, " \t")
		if l == "" {
			lines = append(lines, "#")
		} else {
			lines = append(lines, "# "+l)
		}
	}
	return lines
}
