// Copyright (c) 2020, Sylabs Inc. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the
// LICENSE.md file distributed with the sources of this project regarding your
// rights to use or distribute this software.

package recipe

// Recipe is an ordered sequence of directives describing a full image build.
// Directives are only ever appended, their order is the build order.
type Recipe struct {
	directives []Directive
}

// New returns a recipe holding the given directives.
func New(d ...Directive) *Recipe {
	r := &Recipe{}
	r.Append(d...)
	return r
}

// Append adds directives at the end of the recipe, nil directives are
// skipped.
func (r *Recipe) Append(d ...Directive) {
	for _, directive := range d {
		if directive != nil {
			r.directives = append(r.directives, directive)
		}
	}
}

// Directives returns a copy of the recipe directives, in order.
func (r *Recipe) Directives() []Directive {
	d := make([]Directive, len(r.directives))
	copy(d, r.directives)
	return d
}

// Len returns the number of directives.
func (r *Recipe) Len() int {
	return len(r.directives)
}

// Kinds returns the kind of every directive, in order.
func (r *Recipe) Kinds() []Kind {
	kinds := make([]Kind, 0, len(r.directives))
	for _, d := range r.directives {
		kinds = append(kinds, d.Kind())
	}
	return kinds
}

// Filter returns the directives of the given kind, in order.
func (r *Recipe) Filter(kind Kind) []Directive {
	var d []Directive
	for _, directive := range r.directives {
		if directive.Kind() == kind {
			d = append(d, directive)
		}
	}
	return d
}

// imageDirective is implemented by directives selecting a base image.
type imageDirective interface {
	Image() string
}

// Platform returns the platform of the first base image directive.
func (r *Recipe) Platform() Platform {
	for _, d := range r.directives {
		if img, ok := d.(imageDirective); ok && d.Kind() == KindBaseImage {
			p, _ := PlatformFromImage(img.Image())
			return p
		}
	}
	return DefaultPlatform
}

// Instructions expands every directive for the recipe platform.
func (r *Recipe) Instructions() []Instruction {
	p := r.Platform()

	var out []Instruction
	for _, d := range r.directives {
		out = append(out, d.Instructions(p)...)
	}
	return out
}
