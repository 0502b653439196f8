package cache

import (
	"context"
	"encoding/binary"
	"os"
	"path/filepath"
	"time"
)

// headerSize is the expiry stamp in front of every entry: unix nanoseconds,
// big endian, zero for no expiry.
const headerSize = 8

// FileCache keeps one file per entry below a directory.
type FileCache struct {
	dir string
	now func() time.Time
}

// NewFileCache creates dir if needed and returns a cache rooted there.
func NewFileCache(dir string) (*FileCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileCache{dir: dir, now: time.Now}, nil
}

// Dir returns the cache root.
func (c *FileCache) Dir() string { return c.dir }

func (c *FileCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	path := c.path(key)
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	// Truncated entries are misses.
	if len(raw) < headerSize {
		_ = os.Remove(path)
		return nil, false, nil
	}
	if exp := int64(binary.BigEndian.Uint64(raw[:headerSize])); exp != 0 && c.now().UnixNano() > exp {
		_ = os.Remove(path)
		return nil, false, nil
	}
	return raw[headerSize:], true, nil
}

// Set writes the entry to a temporary file and renames it into place so
// readers never observe a partial image.
func (c *FileCache) Set(_ context.Context, key string, data []byte, ttl time.Duration) error {
	var exp int64
	if ttl > 0 {
		exp = c.now().Add(ttl).UnixNano()
	}
	buf := make([]byte, headerSize+len(data))
	binary.BigEndian.PutUint64(buf[:headerSize], uint64(exp))
	copy(buf[headerSize:], data)

	path := c.path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".entry-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(buf); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}

func (c *FileCache) Delete(_ context.Context, key string) error {
	err := os.Remove(c.path(key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

func (c *FileCache) Close() error { return nil }

// path fans entries out over 256 subdirectories by hash prefix.
func (c *FileCache) path(key string) string {
	h := Hash([]byte(key))
	return filepath.Join(c.dir, h[:2], h[2:]+".bin")
}

var _ Cache = (*FileCache)(nil)
