// Copyright (c) 2020, Sylabs Inc. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the
// LICENSE.md file distributed with the sources of this project regarding your
// rights to use or distribute this software.

package render

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/mrchemsoft/mrchem-recipe/pkg/recipe"
)

type dockerRenderer struct{}

func (d *dockerRenderer) render(buf *bytes.Buffer, r *recipe.Recipe, header string) error {
	for _, l := range commentLines(header) {
		fmt.Fprintln(buf, l)
	}

	// a blank line separates instructions, except right after a comment
	// which documents the instruction that follows it
	separate := buf.Len() > 0

	for _, inst := range r.Instructions() {
		if empty(inst) {
			continue
		}
		if separate {
			buf.WriteString("\n")
		}
		separate = true

		switch i := inst.(type) {
		case recipe.Comment:
			for _, l := range commentLines(i.Text) {
				fmt.Fprintln(buf, l)
			}
			separate = false
		case recipe.From:
			if i.Stage != "" {
				fmt.Fprintf(buf, "FROM %s AS %s\n", i.Image, i.Stage)
			} else {
				fmt.Fprintf(buf, "FROM %s\n", i.Image)
			}
		case recipe.Shell:
			fmt.Fprintf(buf, "RUN %s\n", strings.Join(i.Commands, " && \\\n    "))
		case recipe.Env:
			vars := make([]string, 0, len(i.Variables))
			for _, v := range i.Variables {
				vars = append(vars, v.Name+"="+dockerQuote(v.Value))
			}
			fmt.Fprintf(buf, "ENV %s\n", strings.Join(vars, " \\\n    "))
		case recipe.Label:
			labels := make([]string, 0, len(i.Labels))
			for _, l := range i.Labels {
				labels = append(labels, dockerQuote(l.Key)+"="+dockerQuote(l.Value))
			}
			fmt.Fprintf(buf, "LABEL %s\n", strings.Join(labels, " \\\n    "))
		default:
			return fmt.Errorf("unsupported instruction %T", inst)
		}
	}

	return nil
}

// empty reports whether inst renders to nothing.
func empty(inst recipe.Instruction) bool {
	switch i := inst.(type) {
	case recipe.Shell:
		return len(i.Commands) == 0
	case recipe.Env:
		return len(i.Variables) == 0
	case recipe.Label:
		return len(i.Labels) == 0
	}
	return false
}

// dockerQuote quotes values Docker would otherwise split on white space.
func dockerQuote(s string) string {
	if s == "" || strings.ContainsAny(s, " \t\"'\\") {
		return strconv.Quote(s)
	}
	return s
}
