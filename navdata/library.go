// navdata/library.go
// Copyright(c) 2024-2026 taxiroute contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package navdata

import (
	"context"
	"fmt"
	"hash/fnv"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/brunoga/deep"

	"github.com/taxiroute/taxiroute/airport"
	"github.com/taxiroute/taxiroute/log"
	"github.com/taxiroute/taxiroute/util"
)

// Library provides airports from a navdatareader database. Airports are
// loaded from the database the first time they're requested and are
// cached both in memory and on disk, so that later runs don't need to
// query the database again until it changes. Callers get their own copy
// of each airport and may modify it freely.
type Library struct {
	path string
	lg   *log.Logger

	mu       sync.Mutex
	airports map[string]*airport.Airport
}

func NewLibrary(path string, lg *log.Logger) *Library {
	return &Library{
		path:     path,
		lg:       lg,
		airports: make(map[string]*airport.Airport),
	}
}

// cachePath returns the path of the on-disk cache entry for the airport;
// it depends on the database's path and modification time so that
// updating the database invalidates the cached airports.
func (l *Library) cachePath(ident string) (string, error) {
	abs, err := filepath.Abs(l.path)
	if err != nil {
		return "", err
	}
	fi, err := os.Stat(abs)
	if err != nil {
		return "", err
	}

	h := fnv.New64a()
	fmt.Fprintf(h, "%s|%d|%d", abs, fi.ModTime().UnixNano(), fi.Size())
	return filepath.Join("navdata", fmt.Sprintf("%016x", h.Sum64()), strings.ToUpper(ident)+".msgpack"), nil
}

// Get returns the airport with the given ident.
func (l *Library) Get(ctx context.Context, ident string) (*airport.Airport, error) {
	ident = strings.ToUpper(strings.TrimSpace(ident))

	l.mu.Lock()
	defer l.mu.Unlock()

	if ap, ok := l.airports[ident]; ok {
		return deep.MustCopy(ap), nil
	}

	cp, err := l.cachePath(ident)
	if err != nil {
		return nil, err
	}

	var ap airport.Airport
	if _, err := util.CacheRetrieveObject(cp, &ap); err == nil {
		l.lg.Debugf("%s: using cached airport %s", ident, cp)
		l.airports[ident] = &ap
		return deep.MustCopy(&ap), nil
	}

	loaded, err := LoadSQLite(ctx, l.path, ident, l.lg)
	if err != nil {
		return nil, err
	}
	if err := util.CacheStoreObject(cp, loaded); err != nil {
		l.lg.Warnf("%s: unable to cache airport: %v", ident, err)
	}

	l.airports[ident] = loaded
	return deep.MustCopy(loaded), nil
}
