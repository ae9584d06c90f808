// Package cache is the result cache (C10): a content-addressed, file-based
// cache keyed by canonical path, mtime, and mode, invalidated whenever
// either changes. Cache failures are never fatal to transformation.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
)

// Entry is one cache record, matching the §4.10/§6 JSON schema.
type Entry struct {
	Path               string `json:"path"`
	MtimeSecs          int64  `json:"mtime_secs"`
	Mode               string `json:"mode_tag"`
	Content            string `json:"content"`
	OriginalTokens     *int   `json:"original_tokens,omitempty"`
	TransformedTokens  *int   `json:"transformed_tokens,omitempty"`
}

// Cache wraps a single cache-root directory.
type Cache struct {
	dir string
}

// DefaultDir returns the host's user cache root joined with "skim",
// matching original_source's dirs::cache_dir().join("skim").
func DefaultDir() (string, error) {
	root, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, "skim"), nil
}

// Open returns a Cache rooted at dir, creating it (mode 0700 where
// supported) if it does not exist.
func Open(dir string) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, err
	}
	return &Cache{dir: dir}, nil
}

// Key computes hex(SHA-256(canonical_path | mtime_secs | mode_tag)).
func Key(canonicalPath string, mtimeSecs int64, mode string) string {
	h := sha256.New()
	h.Write([]byte(canonicalPath))
	h.Write([]byte("|"))
	h.Write([]byte(strconv.FormatInt(mtimeSecs, 10)))
	h.Write([]byte("|"))
	h.Write([]byte(mode))
	return hex.EncodeToString(h.Sum(nil))
}

// Read resolves path (symlinks; failures are non-fatal, treated as a
// miss), computes the key from its current mtime and mode, and returns the
// stored entry if present and still valid.
func (c *Cache) Read(path, mode string) (*Entry, bool) {
	canonical, err := filepath.EvalSymlinks(path)
	if err != nil {
		return nil, false
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, false
	}
	mtimeSecs := info.ModTime().Unix()
	key := Key(canonical, mtimeSecs, mode)
	entryPath := filepath.Join(c.dir, key+".json")

	data, err := os.ReadFile(entryPath)
	if err != nil {
		return nil, false
	}

	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		// Partially written or corrupt file: treat as a miss, per the
		// concurrency model's no-poisoning guarantee (spec §5).
		os.Remove(entryPath)
		return nil, false
	}

	if entry.MtimeSecs != mtimeSecs || entry.Mode != mode {
		os.Remove(entryPath)
		return nil, false
	}

	return &entry, true
}

// Write stores content (plus optional token counts) under the key derived
// from path's current mtime and mode, via a temp-file-then-rename so a
// concurrent reader never observes a partially written entry.
func (c *Cache) Write(path, mode, content string, originalTokens, transformedTokens *int) error {
	canonical := path
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		canonical = resolved
	}

	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	mtimeSecs := info.ModTime().Unix()
	key := Key(canonical, mtimeSecs, mode)

	entry := Entry{
		Path:              canonical,
		MtimeSecs:         mtimeSecs,
		Mode:              mode,
		Content:           content,
		OriginalTokens:    originalTokens,
		TransformedTokens: transformedTokens,
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	entryPath := filepath.Join(c.dir, key+".json")
	tempPath := entryPath + ".tmp"

	if err := os.WriteFile(tempPath, data, 0o600); err != nil {
		os.Remove(tempPath)
		return err
	}
	if err := os.Rename(tempPath, entryPath); err != nil {
		os.Remove(tempPath)
		return err
	}
	return nil
}

// Clear removes and recreates the cache directory.
func (c *Cache) Clear() error {
	if err := os.RemoveAll(c.dir); err != nil {
		return err
	}
	return os.MkdirAll(c.dir, 0o700)
}
