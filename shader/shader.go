// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package shader loads WGSL shader source text from files and file
// systems, processes #include statements, and watches shader files
// for changes.
package shader

import (
	"bytes"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"unicode/utf8"

	"cogentcore.org/gpuboot/base/errors"
	"github.com/h2non/filetype"
)

var (
	// ErrEmpty is returned for an empty shader file.
	ErrEmpty = errors.New("shader: empty file")

	// ErrNotText is returned for a file that is not UTF-8 text.
	ErrNotText = errors.New("shader: not a text file")

	// ErrInclude is returned for an #include that is malformed
	// or names a file that cannot be read.
	ErrInclude = errors.New("shader: bad #include")
)

// Load returns the text of the given shader file.
func Load(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("shader: %w", err)
	}
	return text(path, b)
}

// LoadFS returns the text of the given shader file in fsys.
func LoadFS(fsys fs.FS, path string) (string, error) {
	b, err := fs.ReadFile(fsys, path)
	if err != nil {
		return "", fmt.Errorf("shader: %w", err)
	}
	return text(path, b)
}

// ReadFile returns the text of the given shader file, or the empty
// string if it cannot be loaded; the error is logged.
func ReadFile(path string) string {
	s, err := Load(path)
	if err != nil {
		slog.Error("shader: could not load file", "path", path, "err", err)
		return ""
	}
	return s
}

func text(path string, b []byte) (string, error) {
	if len(b) == 0 {
		return "", fmt.Errorf("%w: %s", ErrEmpty, path)
	}
	if kind, _ := filetype.Match(b); kind != filetype.Unknown {
		return "", fmt.Errorf("%w: %s is %s", ErrNotText, path, kind.MIME.Value)
	}
	if !utf8.Valid(b) || bytes.IndexByte(b, 0) >= 0 {
		return "", fmt.Errorf("%w: %s", ErrNotText, path)
	}
	return string(b), nil
}
