// Copyright (c) 2020, Sylabs Inc. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the
// LICENSE.md file distributed with the sources of this project regarding your
// rights to use or distribute this software.

// Package mrchemrecipe implements the mrchem-recipe commands on top of the
// assembler, renderer and linter.
package mrchemrecipe

import (
	"bytes"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/mrchemsoft/mrchem-recipe/docs"
	"github.com/mrchemsoft/mrchem-recipe/internal/pkg/assemble"
	"github.com/mrchemsoft/mrchem-recipe/internal/pkg/config"
	"github.com/mrchemsoft/mrchem-recipe/internal/pkg/sylog"
	"github.com/mrchemsoft/mrchem-recipe/pkg/recipe/render"
	"github.com/pkg/errors"
)

// Request is what the user asked for on the command line.
type Request struct {
	MRChemVersion  string
	OpenMPIVersion string
	MOFED          bool
}

// Generate assembles the recipe for req and writes it to w.
func Generate(w io.Writer, cfg config.Config, req Request) error {
	format, err := render.ParseFormat(cfg.Format)
	if err != nil {
		return err
	}

	opts, warnings, err := assemble.NewOptions(cfg.Input(req.MRChemVersion, req.OpenMPIVersion, req.MOFED))
	if err != nil {
		return err
	}
	for _, warn := range warnings {
		sylog.Warningf("%s", warn)
	}

	r, err := assemble.Assemble(opts)
	if err != nil {
		return errors.Wrap(err, "while assembling recipe")
	}
	sylog.Verbosef("Assembled %d directives for %s %s", r.Len(), opts.Application.Name, opts.Application.Version)
	sylog.Debugf("Directives: %v", r.Kinds())

	return render.Render(w, r, render.Options{
		Format:             format,
		SingularityVersion: cfg.SingularityVersion,
		Header:             docs.RecipeHeader,
	})
}

// GenerateFile is Generate writing to path. Nothing is written at path
// unless the whole recipe was generated, an existing file is replaced
// atomically.
func GenerateFile(path string, cfg config.Config, req Request) (err error) {
	var buf bytes.Buffer
	if err := Generate(&buf, cfg, req); err != nil {
		return err
	}

	f, err := ioutil.TempFile(filepath.Dir(path), "."+filepath.Base(path)+"-")
	if err != nil {
		return errors.Wrap(err, "while creating output file")
	}
	defer func() {
		if err != nil {
			f.Close()
			os.Remove(f.Name())
		}
	}()

	if _, err = f.Write(buf.Bytes()); err != nil {
		return errors.Wrap(err, "while writing output file")
	}
	if err = f.Chmod(0o644); err != nil {
		return errors.Wrap(err, "while setting output file mode")
	}
	if err = f.Close(); err != nil {
		return errors.Wrap(err, "while closing output file")
	}
	if err = os.Rename(f.Name(), path); err != nil {
		return errors.Wrap(err, "while writing output file")
	}

	sylog.Infof("Recipe written to %s", path)
	return nil
}
