// util/files.go
// Copyright(c) 2024-2026 taxiroute contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package util

import (
	"errors"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"
)

// IsCompressed reports whether the file at path is stored zstd
// compressed, which is determined solely by its extension.
func IsCompressed(path string) bool {
	return filepath.Ext(path) == ".zst"
}

type zstdReadCloser struct {
	*zstd.Decoder
	f *os.File
}

// Unfortunately, unlike io.ReadCloser, the zstd Decoder's Close() method
// doesn't return an error, so it's wrapped here.
func (z *zstdReadCloser) Close() error {
	z.Decoder.Close()
	return z.f.Close()
}

// OpenFile opens the file at path for reading; if it's zstd compressed,
// the returned reader handles decompression transparently.
func OpenFile(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	if !IsCompressed(path) {
		return f, nil
	}

	zr, err := zstd.NewReader(f, zstd.WithDecoderConcurrency(0))
	if err != nil {
		f.Close()
		return nil, err
	}
	return &zstdReadCloser{Decoder: zr, f: f}, nil
}

// ReadFile returns the (decompressed, if needed) contents of the file at
// path.
func ReadFile(path string) ([]byte, error) {
	r, err := OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return io.ReadAll(r)
}

type zstdWriteCloser struct {
	*zstd.Encoder
	f *os.File
}

func (z *zstdWriteCloser) Close() error {
	return errors.Join(z.Encoder.Close(), z.f.Close())
}

// CreateFile creates (or truncates) the file at path, creating its
// directory if necessary. Files with a .zst extension are zstd
// compressed as they're written; the returned writer must be closed to
// flush them.
func CreateFile(path string) (io.WriteCloser, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	if !IsCompressed(path) {
		return f, nil
	}

	zw, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
	if err != nil {
		f.Close()
		return nil, err
	}
	return &zstdWriteCloser{Encoder: zw, f: f}, nil
}
