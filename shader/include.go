// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shader

import (
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"

	"cogentcore.org/gpuboot/base/errors"
	"cogentcore.org/gpuboot/base/fsx"
)

// IncludeFS processes #include "file" statements in
// the given code string, using the given file system
// and default path to locate the included files.
// Each include line is kept as a comment followed by
// the included lines; includes are not nested.
// Includes that are malformed or cannot be read are left in
// place, and reported in the returned error, which wraps
// [ErrInclude] and the read error.
func IncludeFS(fsys fs.FS, dir, code string) (string, error) {
	var errs []error
	fl := splitLines(code)
	nl := len(fl)
	for li := nl - 1; li >= 0; li-- {
		ln := fl[li]
		if !strings.HasPrefix(ln, `#include "`) {
			continue
		}
		fn := ln[10:]
		qi := strings.Index(fn, `"`)
		if qi < 0 {
			errs = append(errs, fmt.Errorf("%w: line %d: no final quote", ErrInclude, li+1))
			continue
		}
		fname := fn[:qi]
		fp := fname
		if ok, _ := fsx.FileExistsFS(fsys, fp); !ok {
			fp = path.Join(dir, fname)
		}
		b, err := fs.ReadFile(fsys, fp)
		if err != nil {
			errs = append(errs, fmt.Errorf("%w: line %d: %w", ErrInclude, li+1, err))
			continue
		}
		ol := splitLines(string(b))
		fl[li] = "// " + ln
		fl = slices.Insert(fl, li+1, ol...)
	}
	return strings.Join(fl, "\n"), errors.Join(errs...)
}

// LoadIncludeFS loads the given shader file from fsys and
// processes its includes relative to the file's directory.
// Any include error fails the load.
func LoadIncludeFS(fsys fs.FS, file string) (string, error) {
	code, err := LoadFS(fsys, file)
	if err != nil {
		return "", err
	}
	code, err = IncludeFS(fsys, path.Dir(file), code)
	if err != nil {
		return "", fmt.Errorf("%s: %w", file, err)
	}
	return code, nil
}

// splitLines splits the string on \n, dropping \r line endings.
func splitLines(s string) []string {
	lines := strings.Split(s, "\n")
	for i, ln := range lines {
		lines[i] = strings.TrimSuffix(ln, "\r")
	}
	return lines
}
