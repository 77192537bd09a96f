// Copyright (c) 2020, Sylabs Inc. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the
// LICENSE.md file distributed with the sources of this project regarding your
// rights to use or distribute this software.

package recipe

import (
	"reflect"
	"testing"
)

type fakeImage struct {
	image string
}

func (f fakeImage) Kind() Kind     { return KindBaseImage }
func (f fakeImage) Params() Params { return Params{{Key: "image", Value: f.image}} }
func (f fakeImage) Image() string  { return f.image }
func (f fakeImage) Instructions(Platform) []Instruction {
	return []Instruction{From{Image: f.image}}
}

type fakeStep struct {
	kind Kind
}

func (f fakeStep) Kind() Kind     { return f.kind }
func (f fakeStep) Params() Params { return nil }
func (f fakeStep) Instructions(p Platform) []Instruction {
	return []Instruction{Comment{Text: string(f.kind) + " on " + string(p.Distro)}}
}

func TestRecipeAppend(t *testing.T) {
	r := New(fakeImage{"centos:7"})
	r.Append(nil, fakeStep{KindGNU}, fakeStep{KindCMake})

	if r.Len() != 3 {
		t.Fatalf("got %d directives, want 3", r.Len())
	}

	want := []Kind{KindBaseImage, KindGNU, KindCMake}
	if got := r.Kinds(); !reflect.DeepEqual(got, want) {
		t.Errorf("got kinds %v, want %v", got, want)
	}

	// mutating the returned slice does not touch the recipe
	d := r.Directives()
	d[0] = fakeStep{KindLabel}
	if r.Directives()[0].Kind() != KindBaseImage {
		t.Errorf("recipe modified through Directives()")
	}

	if got := r.Filter(KindGNU); len(got) != 1 {
		t.Errorf("got %d gnu directives, want 1", len(got))
	}
	if got := r.Filter(KindOpenMPI); got != nil {
		t.Errorf("got %v openmpi directives, want none", got)
	}
}

func TestRecipeInstructions(t *testing.T) {
	r := New(fakeImage{"centos:7"}, fakeStep{KindGNU})

	if p := r.Platform(); p.Distro != CentOS {
		t.Errorf("got platform %+v, want centos", p)
	}

	want := []Instruction{
		From{Image: "centos:7"},
		Comment{Text: "gnu on centos"},
	}
	if got := r.Instructions(); !reflect.DeepEqual(got, want) {
		t.Errorf("got %+v, want %+v", got, want)
	}

	if p := New().Platform(); p != DefaultPlatform {
		t.Errorf("empty recipe platform %+v, want default", p)
	}
}

func TestParams(t *testing.T) {
	p := Params{
		{Key: "version", Value: "4.0.5"},
		{Key: "eula", Value: true},
		{Key: "opts", Value: []string{"a"}},
	}

	if p.String("version") != "4.0.5" {
		t.Errorf("unexpected version %q", p.String("version"))
	}
	if !p.Bool("eula") {
		t.Errorf("eula should be true")
	}
	if !reflect.DeepEqual(p.Strings("opts"), []string{"a"}) {
		t.Errorf("unexpected opts %v", p.Strings("opts"))
	}
	if _, ok := p.Get("missing"); ok {
		t.Errorf("missing key found")
	}
	if p.String("eula") != "" {
		t.Errorf("non string value returned as string")
	}
}
