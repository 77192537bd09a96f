// Copyright (c) 2020, Sylabs Inc. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the
// LICENSE.md file distributed with the sources of this project regarding your
// rights to use or distribute this software.

package render

import (
	"bytes"
	"fmt"

	"github.com/mrchemsoft/mrchem-recipe/pkg/recipe"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

// Plan is the YAML form of a recipe.
type Plan struct {
	Platform   PlanPlatform    `yaml:"platform"`
	Directives []PlanDirective `yaml:"directives"`
}

// PlanPlatform is the detected platform of a plan.
type PlanPlatform struct {
	Distro  string `yaml:"distro"`
	Version string `yaml:"version"`
}

// PlanDirective is one directive and its parameters, in order.
type PlanDirective struct {
	Kind   string        `yaml:"kind"`
	Params yaml.MapSlice `yaml:"params,omitempty"`
}

// NewPlan converts r into its YAML form.
func NewPlan(r *recipe.Recipe) Plan {
	p := r.Platform()
	plan := Plan{
		Platform: PlanPlatform{Distro: string(p.Distro), Version: p.Version},
	}

	for _, d := range r.Directives() {
		pd := PlanDirective{Kind: string(d.Kind())}
		for _, param := range d.Params() {
			pd.Params = append(pd.Params, yaml.MapItem{Key: param.Key, Value: param.Value})
		}
		plan.Directives = append(plan.Directives, pd)
	}
	return plan
}

type yamlRenderer struct{}

func (y *yamlRenderer) render(buf *bytes.Buffer, r *recipe.Recipe, header string) error {
	b, err := yaml.Marshal(NewPlan(r))
	if err != nil {
		return errors.Wrap(err, "while encoding plan")
	}

	for _, l := range commentLines(header) {
		fmt.Fprintln(buf, l)
	}
	buf.Write(b)
	return nil
}
