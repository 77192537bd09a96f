// Copyright (c) 2020, Sylabs Inc. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the
// LICENSE.md file distributed with the sources of this project regarding your
// rights to use or distribute this software.

// Package parser reads Singularity definition files.
package parser

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"sort"
	"strings"

	"github.com/mrchemsoft/mrchem-recipe/pkg/build/types"
	"github.com/pkg/errors"
)

var (
	errInvalidSection  = errors.New("invalid section(s) specified")
	errEmptyDefinition = errors.New("empty definition file")
)

// InvalidSectionError records an error and the sections that caused it.
type InvalidSectionError struct {
	Sections []string
	Err      error
}

func (e *InvalidSectionError) Error() string {
	return e.Err.Error() + ": " + strings.Join(e.Sections, ", ")
}

// IsInvalidSectionError returns a boolean indicating whether the error
// is reporting if a section of the definition is not a standard section
func IsInvalidSectionError(err error) bool {
	_, ok := errors.Cause(err).(*InvalidSectionError)
	return ok
}

// section is a raw "%name" block, body excludes the section line.
type section struct {
	key  string
	body string
}

// split separates the header from the sections. A line whose first word
// starts with % opens a new section.
func split(data []byte) (header string, sections []section, err error) {
	var cur *section
	var hdr strings.Builder

	s := bufio.NewScanner(bytes.NewReader(data))
	s.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for s.Scan() {
		line := s.Text()
		fields := strings.Fields(line)

		if len(fields) > 0 && strings.HasPrefix(fields[0], "%") {
			key, err := sectionKey(fields)
			if err != nil {
				return "", nil, err
			}
			sections = append(sections, section{key: key})
			cur = &sections[len(sections)-1]
			continue
		}

		if cur == nil {
			hdr.WriteString(line)
			hdr.WriteString("\n")
		} else {
			cur.body += line + "\n"
		}
	}

	return hdr.String(), sections, s.Err()
}

// sectionKey returns the map key for a section line, app sections are keyed
// by section and app name.
func sectionKey(fields []string) (string, error) {
	name := strings.ToLower(strings.TrimLeft(fields[0], "%"))
	if !appSections[name] {
		return name, nil
	}
	if len(fields) < 2 {
		return "", fmt.Errorf("app section %s: missing app name", name)
	}
	return name + " " + fields[1], nil
}

func doHeader(h string, d *types.Definition) error {
	d.Header = make(map[string]string)

	for _, line := range strings.Split(h, "\n") {
		// skip empty or comment lines
		if line = strings.TrimSpace(line); line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// trim trailing comments
		line = strings.Split(line, "#")[0]

		toks := strings.SplitN(line, ":", 2)
		if len(toks) == 1 {
			return fmt.Errorf("header key %s had no val", toks[0])
		}

		key, val := strings.ToLower(strings.TrimSpace(toks[0])), strings.TrimSpace(toks[1])
		if !validHeaders[key] {
			return fmt.Errorf("invalid header keyword found: %s", key)
		}
		d.Header[key] = val
	}

	return nil
}

// pairs parses "key value" lines, skipping blanks and comments.
func pairs(body string, fn func(k, v string)) {
	for _, line := range strings.Split(strings.TrimSpace(body), "\n") {
		if line = strings.TrimSpace(line); line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		toks := strings.SplitN(line, " ", 2)
		k, v := strings.TrimSpace(toks[0]), ""
		if len(toks) == 2 {
			v = strings.TrimSpace(toks[1])
		}
		fn(k, v)
	}
}

func populateDefinition(sections map[string]string, d *types.Definition) error {
	var files []types.FileTransport
	pairs(sections["files"], func(k, v string) {
		files = append(files, types.FileTransport{Src: k, Dst: v})
	})

	labels := make(map[string]string)
	pairs(sections["labels"], func(k, v string) {
		labels[k] = v
	})

	d.ImageData = types.ImageData{
		ImageScripts: types.ImageScripts{
			Help:        sections["help"],
			Environment: sections["environment"],
			Runscript:   sections["runscript"],
			Test:        sections["test"],
			Startscript: sections["startscript"],
		},
		Labels: labels,
	}
	d.BuildData.Files = files
	d.BuildData.Scripts = types.Scripts{
		Pre:   sections["pre"],
		Setup: sections["setup"],
		Post:  sections["post"],
		Test:  sections["test"],
	}

	var invalid []string
	for k, v := range sections {
		if validSections[k] {
			continue
		}
		if d.CustomData == nil {
			d.CustomData = make(map[string]string)
		}
		d.CustomData[k] = v
		if !appSections[strings.Fields(k)[0]] {
			invalid = append(invalid, k)
		}
	}
	if len(invalid) > 0 {
		sort.Strings(invalid)
		return &InvalidSectionError{invalid, errInvalidSection}
	}

	if len(d.Header) == 0 && len(sections) == 0 {
		return errors.New("parsed definition did not have any valid information")
	}

	return nil
}

// ParseDefinitionFile receives a reader from a definition file
// and parse it into a Definition struct or return error if
// the definition file has a bad section.
func ParseDefinitionFile(r io.Reader) (d types.Definition, err error) {
	d.Raw, err = ioutil.ReadAll(r)
	if err != nil {
		return d, errors.Wrap(err, "while attempting to read in definition")
	}
	if len(bytes.TrimSpace(d.Raw)) == 0 {
		return d, errEmptyDefinition
	}

	header, secs, err := split(d.Raw)
	if err != nil {
		return d, errors.Wrap(err, "while scanning definition")
	}

	if err := doHeader(header, &d); err != nil {
		return d, errors.Wrap(err, "failed to parse definition header")
	}

	// repeated sections are concatenated in order
	sections := make(map[string]string)
	for _, s := range secs {
		sections[s.key] += s.body
	}

	return d, populateDefinition(sections, &d)
}

// IsValidDefinition returns whether or not the given file is a valid definition
func IsValidDefinition(source string) (bool, error) {
	f, err := os.Open(source)
	if err != nil {
		return false, err
	}
	defer f.Close()

	if s, err := f.Stat(); err != nil {
		return false, errors.Wrap(err, "unable to stat file")
	} else if s.IsDir() {
		return false, nil
	}

	if _, err := ParseDefinitionFile(f); err != nil {
		return false, err
	}
	return true, nil
}

var validSections = map[string]bool{
	"help":        true,
	"setup":       true,
	"files":       true,
	"labels":      true,
	"environment": true,
	"pre":         true,
	"post":        true,
	"runscript":   true,
	"test":        true,
	"startscript": true,
}

var appSections = map[string]bool{
	"appinstall": true,
	"applabels":  true,
	"appfiles":   true,
	"appenv":     true,
	"apptest":    true,
	"apphelp":    true,
	"apprun":     true,
}

var validHeaders = map[string]bool{
	"bootstrap":  true,
	"from":       true,
	"stage":      true,
	"includecmd": true,
	"mirrorurl":  true,
	"updateurl":  true,
	"osversion":  true,
	"include":    true,
	"library":    true,
	"registry":   true,
	"namespace":  true,
}
