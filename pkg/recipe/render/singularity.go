// Copyright (c) 2020, Sylabs Inc. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the
// LICENSE.md file distributed with the sources of this project regarding your
// rights to use or distribute this software.

package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/blang/semver"
	"github.com/mrchemsoft/mrchem-recipe/pkg/recipe"
	"github.com/pkg/errors"
)

// dockerEnvScript restores the environment of the docker base image inside
// %post, Singularity only applies it at run time.
const dockerEnvScript = ". /.singularity.d/env/10-docker*.sh"

const indent = "    "

// stageSupport is the first Singularity release understanding the Stage
// header keyword.
var stageSupport = semver.MustParse("3.2.0")

type singularityRenderer struct {
	version semver.Version
}

func newSingularityRenderer(version string) (*singularityRenderer, error) {
	v, err := semver.ParseTolerant(version)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid singularity version %q", version)
	}
	return &singularityRenderer{version: v}, nil
}

// multiStage reports whether the target understands multi-stage definitions.
func (s *singularityRenderer) multiStage() bool {
	return s.version.GTE(stageSupport)
}

func (s *singularityRenderer) render(buf *bytes.Buffer, r *recipe.Recipe, header string) error {
	for _, l := range commentLines(header) {
		fmt.Fprintln(buf, l)
	}

	froms := 0
	sourced := false

	for _, inst := range r.Instructions() {
		switch i := inst.(type) {
		case recipe.Comment:
			if buf.Len() > 0 {
				buf.WriteString("\n")
			}
			for _, l := range commentLines(i.Text) {
				fmt.Fprintln(buf, l)
			}
		case recipe.From:
			froms++
			if froms > 1 && !s.multiStage() {
				return fmt.Errorf("singularity %s does not support multi-stage definitions", s.version)
			}
			if froms > 1 {
				buf.WriteString("\n")
			}
			fmt.Fprintln(buf, "BootStrap: docker")
			fmt.Fprintf(buf, "From: %s\n", i.Image)
			if i.Stage != "" && s.multiStage() {
				fmt.Fprintf(buf, "Stage: %s\n", i.Stage)
			}
			sourced = false
		case recipe.Shell:
			if len(i.Commands) == 0 {
				continue
			}
			if froms == 0 {
				return errors.New("shell step before base image")
			}
			buf.WriteString("\n%post\n")
			if !sourced {
				fmt.Fprintln(buf, indent+dockerEnvScript)
				sourced = true
			}
			for _, c := range i.Commands {
				fmt.Fprintln(buf, indent+c)
			}
		case recipe.Env:
			if len(i.Variables) == 0 {
				continue
			}
			var exports []string
			for _, v := range i.Variables {
				exports = append(exports, fmt.Sprintf("%sexport %s=%s", indent, v.Name, shellQuote(v.Value)))
			}
			// the variables are needed both at run time and by later build steps
			fmt.Fprintf(buf, "\n%%environment\n%s\n", strings.Join(exports, "\n"))
			buf.WriteString("%post\n")
			if !sourced {
				fmt.Fprintln(buf, indent+dockerEnvScript)
				sourced = true
			}
			fmt.Fprintln(buf, strings.Join(exports, "\n"))
		case recipe.Label:
			if len(i.Labels) == 0 {
				continue
			}
			buf.WriteString("\n%labels\n")
			for _, l := range i.Labels {
				fmt.Fprintf(buf, "%s%s %s\n", indent, l.Key, l.Value)
			}
		default:
			return fmt.Errorf("unsupported instruction %T", inst)
		}
	}

	if froms == 0 {
		return errors.New("definition has no base image")
	}
	return nil
}

// shellQuote double quotes values containing white space, variable
// references stay expandable.
func shellQuote(s string) string {
	if s == "" || strings.ContainsAny(s, " \t") {
		return `"` + strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(s) + `"`
	}
	return s
}
