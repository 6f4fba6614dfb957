// util/util_test.go
// Copyright(c) 2024-2026 taxiroute contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package util

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

func TestErrorLogger(t *testing.T) {
	var e ErrorLogger
	if e.HaveErrors() || e.Err() != nil {
		t.Fatalf("fresh ErrorLogger has errors")
	}

	errBad := errors.New("bad")
	func() {
		defer e.CheckDepth(e.CurrentDepth())

		e.Push("KJFK")
		e.Push("Runway 04L")
		e.ErrorString("width %d", -5)
		e.Pop()
		e.Error(errBad)
		e.Pop()
	}()

	if !e.HaveErrors() {
		t.Fatalf("expected errors")
	}
	expected := "KJFK / Runway 04L: width -5\nKJFK: bad"
	if e.String() != expected {
		t.Errorf("got %q, expected %q", e.String(), expected)
	}
	if err := e.Err(); !errors.Is(err, errBad) {
		t.Errorf("errors.Is failed on %v", err)
	}
}

func TestErrorLoggerCheckDepth(t *testing.T) {
	var e ErrorLogger
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("unbalanced Push did not panic")
		}
	}()
	func() {
		defer e.CheckDepth(e.CurrentDepth())
		e.Push("unbalanced")
	}()
}

func TestFiles(t *testing.T) {
	dir := t.TempDir()
	contents := strings.Repeat("taxiway alpha ", 100)

	for _, name := range []string{"plain.json", "sub/compressed.json.zst"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			w, err := CreateFile(path)
			if err != nil {
				t.Fatalf("CreateFile: %v", err)
			}
			if _, err := w.Write([]byte(contents)); err != nil {
				t.Fatalf("Write: %v", err)
			}
			if err := w.Close(); err != nil {
				t.Fatalf("Close: %v", err)
			}

			raw, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("ReadFile: %v", err)
			}
			if IsCompressed(path) == (string(raw) == contents) {
				t.Errorf("compression state of %s doesn't match its extension", name)
			}

			b, err := ReadFile(path)
			if err != nil {
				t.Fatalf("ReadFile: %v", err)
			}
			if string(b) != contents {
				t.Errorf("contents mismatch after round trip")
			}
		})
	}

	if _, err := OpenFile(filepath.Join(dir, "missing.zst")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected ErrNotExist, got %v", err)
	}
}

func TestCache(t *testing.T) {
	SetCacheRoot(t.TempDir())
	defer SetCacheRoot("")

	type record struct {
		Name  string
		Width float64
		Pos   [2]float64
	}
	in := []record{{Name: "A", Width: 75, Pos: [2]float64{-73.7, 40.6}}, {Name: "B", Width: 50}}

	if err := CacheStoreObject("test/records.msgpack", in); err != nil {
		t.Fatalf("CacheStoreObject: %v", err)
	}

	var out []record
	if _, err := CacheRetrieveObject("test/records.msgpack", &out); err != nil {
		t.Fatalf("CacheRetrieveObject: %v", err)
	}
	if !slices.Equal(in, out) {
		t.Errorf("got %+v, expected %+v", out, in)
	}

	if _, err := CacheRetrieveObject("test/missing.msgpack", &out); err == nil {
		t.Errorf("expected error for missing object")
	}

	if err := CacheCullObjects(0); err != nil {
		t.Fatalf("CacheCullObjects: %v", err)
	}
	if _, err := CacheRetrieveObject("test/records.msgpack", &out); err == nil {
		t.Errorf("object still present after culling")
	}
}

func TestUnmarshalJSONBytes(t *testing.T) {
	type ap struct {
		Ident string `json:"ident"`
	}
	var a ap
	if err := UnmarshalJSONBytes([]byte(`{"ident": "KJFK"}`), &a); err != nil || a.Ident != "KJFK" {
		t.Errorf("got %+v, %v", a, err)
	}

	err := UnmarshalJSONBytes([]byte("{\n  \"ident\": 12\n}"), &a)
	if err == nil || !strings.Contains(err.Error(), "line 2") {
		t.Errorf("expected error on line 2, got %v", err)
	}

	err = UnmarshalJSONBytes([]byte("{\n\n  \"ident\" \"x\"}"), &a)
	if err == nil || !strings.Contains(err.Error(), "line 3") {
		t.Errorf("expected syntax error on line 3, got %v", err)
	}
}

func TestCollapseRuns(t *testing.T) {
	for _, tc := range []struct {
		in, out []string
	}{
		{in: nil, out: nil},
		{in: []string{"A"}, out: []string{"A"}},
		{in: []string{"A", "A", "B", "A", "C", "C"}, out: []string{"A", "B", "A", "C"}},
	} {
		if r := CollapseRuns(tc.in); !slices.Equal(r, tc.out) {
			t.Errorf("CollapseRuns(%v) = %v, expected %v", tc.in, r, tc.out)
		}
	}
}

func TestSortedMapKeys(t *testing.T) {
	m := map[string]int{"22R": 1, "04L": 2, "13": 3}
	if k := SortedMapKeys(m); !slices.Equal(k, []string{"04L", "13", "22R"}) {
		t.Errorf("got %v", k)
	}
}
