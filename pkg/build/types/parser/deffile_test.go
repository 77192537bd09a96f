// Copyright (c) 2020, Sylabs Inc. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the
// LICENSE.md file distributed with the sources of this project regarding your
// rights to use or distribute this software.

package parser

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"
)

const dockerDef = `# generated
BootStrap: docker
From: ubuntu:18.04
Stage: devel

%post
    . /.singularity.d/env/10-docker*.sh

%labels
    org.opencontainers.image.title mrchem
    # ignored
    maintainer someone else

%post
    apt-get update -y

%environment
    export PATH=/usr/local/mrchem/bin:$PATH
%post
    export PATH=/usr/local/mrchem/bin:$PATH

%apprun foo
    exec foo
`

func TestParseDefinitionFile(t *testing.T) {
	d, err := ParseDefinitionFile(strings.NewReader(dockerDef))
	assert.NilError(t, err)

	assert.Equal(t, d.Bootstrap(), "docker")
	assert.Equal(t, d.BaseImage(), "ubuntu:18.04")
	assert.Equal(t, d.Stage(), "devel")

	assert.DeepEqual(t, d.Labels, map[string]string{
		"org.opencontainers.image.title": "mrchem",
		"maintainer":                     "someone else",
	})

	post := d.BuildData.Post
	assert.Assert(t, is.Contains(post, ". /.singularity.d/env/10-docker*.sh"))
	assert.Assert(t, is.Contains(post, "apt-get update -y"))
	assert.Assert(t, strings.Index(post, "10-docker") < strings.Index(post, "apt-get"))
	assert.Assert(t, is.Contains(post, "export PATH=/usr/local/mrchem/bin:$PATH"))

	assert.Equal(t, strings.TrimSpace(d.Environment), "export PATH=/usr/local/mrchem/bin:$PATH")
	assert.Equal(t, strings.TrimSpace(d.CustomData["apprun foo"]), "exec foo")
	assert.Equal(t, string(d.Raw), dockerDef)
}

func TestParseDefinitionFileNoHeader(t *testing.T) {
	d, err := ParseDefinitionFile(strings.NewReader("%post\n    echo hello\n"))
	assert.NilError(t, err)
	assert.Equal(t, len(d.Header), 0)
	assert.Equal(t, strings.TrimSpace(d.BuildData.Post), "echo hello")
}

func TestParseDefinitionFileFailure(t *testing.T) {
	tests := []struct {
		name string
		def  string
	}{
		{"Empty", ""},
		{"WhiteSpace", "   \n\n"},
		{"OnlyComments", "# nothing\n# here\n"},
		{"BadHeader", "BootStrap: docker\nFoo: bar\n"},
		{"HeaderNoValue", "BootStrap\n"},
		{"AppNoName", "BootStrap: docker\n%apprun\n"},
		{"JSON", `{"header": {"bootstrap": "docker"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseDefinitionFile(strings.NewReader(tt.def)); err == nil {
				t.Fatal("unexpected success parsing definition file")
			}
		})
	}
}

func TestInvalidSection(t *testing.T) {
	_, err := ParseDefinitionFile(strings.NewReader("BootStrap: docker\nFrom: centos:7\n%runsript\n    echo\n%bogus\n"))
	assert.Assert(t, IsInvalidSectionError(err))

	ise, ok := err.(*InvalidSectionError)
	assert.Assert(t, ok)
	assert.DeepEqual(t, ise.Sections, []string{"bogus", "runsript"})

	assert.Assert(t, !IsInvalidSectionError(nil))
}

func TestIsValidDefinition(t *testing.T) {
	dir, err := ioutil.TempDir("", "deffile-")
	assert.NilError(t, err)
	defer os.RemoveAll(dir)

	good := filepath.Join(dir, "good.def")
	assert.NilError(t, ioutil.WriteFile(good, []byte(dockerDef), 0o644))
	bad := filepath.Join(dir, "bad.def")
	assert.NilError(t, ioutil.WriteFile(bad, []byte("%bogus\n"), 0o644))

	valid, err := IsValidDefinition(good)
	assert.NilError(t, err)
	assert.Assert(t, valid)

	valid, err = IsValidDefinition(bad)
	assert.Assert(t, err != nil)
	assert.Assert(t, !valid)

	valid, err = IsValidDefinition(dir)
	assert.NilError(t, err)
	assert.Assert(t, !valid)

	_, err = IsValidDefinition(filepath.Join(dir, "missing"))
	assert.Assert(t, err != nil)
}
