// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Egor Volkov

package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/ewolkov/sketchsync/internal/config"
	"github.com/ewolkov/sketchsync/internal/logger"
)

type cachedEntry struct {
	accessCount int
	data        []byte
	dirty       bool
	modTime     time.Time
}

// cachedFS is a write-back cached [BlobStore]: reads are served from memory
// when fresh, writes land in memory immediately and are persisted to disk by
// a periodic flush loop. When the cache grows past its size budget, clean
// entries with the lowest access count are evicted; dirty entries survive
// until flushed.
type cachedFS struct {
	root          string
	maxSizeBytes  int64
	flushInterval time.Duration

	mu    sync.RWMutex
	cache map[string]*cachedEntry

	logger *logger.Logger
}

// NewCachedFS constructs a [BlobStore] rooted at storageCfg.BlobDir. The
// returned store also implements the workers.Worker flush loop; run it via
// [cachedFS.Run] for write-back persistence, or call [cachedFS.Flush]
// directly (e.g. on shutdown).
func NewCachedFS(storageCfg config.Storage, log *logger.Logger) (*cachedFS, error) {
	root, err := filepath.Abs(storageCfg.BlobDir)
	if err != nil {
		return nil, fmt.Errorf("resolve blob dir: %w", err)
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create blob dir: %w", err)
	}

	return &cachedFS{
		root:          root,
		maxSizeBytes:  storageCfg.CacheMaxBytes,
		flushInterval: storageCfg.FlushInterval,
		cache:         make(map[string]*cachedEntry),
		logger:        log,
	}, nil
}

// Run implements workers.Worker: it flushes dirty entries every flush
// interval until ctx is cancelled, then flushes once more on the way out.
func (c *cachedFS) Run(ctx context.Context) {
	t := time.NewTicker(c.flushInterval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			c.Flush()
			return
		case <-t.C:
			c.Flush()
		}
	}
}

// ReadBlob implements [BlobStore]. A cached entry is used unless the file on
// disk is newer (another process may own the file between flushes).
func (c *cachedFS) ReadBlob(name string) ([]byte, error) {
	path, err := c.resolve(name)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	entry, cached := c.cache[path]

	stat, statErr := os.Stat(path)
	if cached && (statErr != nil || !stat.ModTime().After(entry.modTime)) {
		entry.accessCount++
		return entry.data, nil
	}

	if statErr != nil {
		if os.IsNotExist(statErr) {
			return nil, fmt.Errorf("%w: %s", ErrBlobNotFound, name)
		}
		return nil, fmt.Errorf("stat blob: %w", statErr)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read blob: %w", err)
	}

	c.cache[path] = &cachedEntry{
		accessCount: 1,
		data:        data,
		modTime:     stat.ModTime(),
	}
	c.evictLocked()

	return data, nil
}

// WriteBlob implements [BlobStore].
func (c *cachedFS) WriteBlob(name string, data []byte) error {
	path, err := c.resolve(name)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	accessCount := 1
	if old, ok := c.cache[path]; ok {
		accessCount = old.accessCount + 1
	}
	c.cache[path] = &cachedEntry{
		accessCount: accessCount,
		data:        data,
		dirty:       true,
		modTime:     time.Now(),
	}
	c.evictLocked()

	return nil
}

// Flush writes every dirty entry to disk. Entries that fail to persist stay
// dirty and are retried on the next cycle.
func (c *cachedFS) Flush() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for path, entry := range c.cache {
		if !entry.dirty {
			continue
		}

		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			c.logger.Error().Str("path", path).Err(err).Msg("error creating blob directory")
			continue
		}
		if err := os.WriteFile(path, entry.data, 0o644); err != nil {
			c.logger.Error().Str("path", path).Err(err).Msg("error persisting blob")
			continue
		}

		entry.dirty = false
		entry.modTime = time.Now()
		c.logger.Debug().Str("path", path).Msg("persisted blob")
	}
}

// evictLocked drops least-accessed clean entries until the cache fits its
// budget. Dirty entries are never evicted.
func (c *cachedFS) evictLocked() {
	if c.maxSizeBytes <= 0 {
		return
	}

	var total int64
	for _, entry := range c.cache {
		total += int64(len(entry.data))
	}
	if total <= c.maxSizeBytes {
		return
	}

	type candidate struct {
		path  string
		entry *cachedEntry
	}
	candidates := make([]candidate, 0, len(c.cache))
	for path, entry := range c.cache {
		if !entry.dirty {
			candidates = append(candidates, candidate{path, entry})
		}
	}
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].entry.accessCount < candidates[j].entry.accessCount
	})

	for _, cand := range candidates {
		if total <= c.maxSizeBytes {
			return
		}
		total -= int64(len(cand.entry.data))
		delete(c.cache, cand.path)
	}
}

// resolve maps a blob name onto an absolute path under the storage root and
// rejects names escaping it.
func (c *cachedFS) resolve(name string) (string, error) {
	name = strings.TrimPrefix(name, "/")
	if name == "" {
		return "", fmt.Errorf("%w: empty name", ErrPathOutsideRoot)
	}

	path := filepath.Join(c.root, filepath.FromSlash(name))
	if !strings.HasPrefix(path, c.root+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", ErrPathOutsideRoot, name)
	}

	return path, nil
}
