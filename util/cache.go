// util/cache.go
// Copyright(c) 2024-2026 taxiroute contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package util

import (
	"compress/flate"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"
)

var (
	cacheRootMu sync.Mutex
	cacheRoot   string
)

// SetCacheRoot overrides the directory that cached objects are stored
// in; by default it is TaxiRoute/ in the user's cache directory. An empty
// string restores the default.
func SetCacheRoot(dir string) {
	cacheRootMu.Lock()
	defer cacheRootMu.Unlock()
	cacheRoot = dir
}

func fullCachePath(path string) (string, error) {
	cacheRootMu.Lock()
	root := cacheRoot
	cacheRootMu.Unlock()

	if root == "" {
		cd, err := os.UserCacheDir()
		if err != nil {
			return "", err
		}
		root = filepath.Join(cd, "TaxiRoute")
	}
	return filepath.Join(root, path), nil
}

// CacheStoreObject msgpack-encodes obj and stores it, flate compressed,
// at the given path relative to the cache directory.
func CacheStoreObject(path string, obj any) error {
	path, err := fullCachePath(path)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	fw, err := flate.NewWriter(f, flate.BestSpeed)
	if err != nil {
		return err
	}

	if err := msgpack.NewEncoder(fw).Encode(obj); err != nil {
		return err
	}
	return fw.Close()
}

// CacheRetrieveObject decodes an object previously stored with
// CacheStoreObject into obj and returns the time it was stored.
func CacheRetrieveObject(path string, obj any) (time.Time, error) {
	path, err := fullCachePath(path)
	if err != nil {
		return time.Time{}, err
	}

	f, err := os.Open(path)
	if err != nil {
		return time.Time{}, err
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return time.Time{}, err
	}

	fr := flate.NewReader(f)
	defer fr.Close()

	return fi.ModTime(), msgpack.NewDecoder(fr).Decode(obj)
}

// CacheCullObjects removes cached objects, oldest first, until the total
// size of the cache is no more than maxBytes.
func CacheCullObjects(maxBytes int64) error {
	cacheDir, err := fullCachePath("")
	if err != nil {
		return err
	}

	if _, err := os.Stat(cacheDir); os.IsNotExist(err) {
		return nil // Nothing to cull
	}

	type fileInfo struct {
		path    string
		size    int64
		modTime time.Time
	}
	var files []fileInfo
	var totalSize int64

	err = filepath.Walk(cacheDir, func(path string, info os.FileInfo, err error) error {
		if err == nil && !info.IsDir() {
			files = append(files, fileInfo{path: path, size: info.Size(), modTime: info.ModTime()})
			totalSize += info.Size()
		}
		return nil
	})
	if err != nil {
		return err
	}

	slices.SortFunc(files, func(a, b fileInfo) int {
		return a.modTime.Compare(b.modTime)
	})

	for len(files) > 0 && totalSize > maxBytes {
		if err := os.Remove(files[0].path); err == nil {
			totalSize -= files[0].size
		}
		files = files[1:]
	}

	return nil
}
