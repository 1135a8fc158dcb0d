package stanza

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// BuildCache wraps a SQLite database holding rendered Markdown keyed by
// content path, plus metadata for admin image uploads. The cache is purely
// an optimization: builds are correct with a cold or absent cache.
type BuildCache struct {
	db *sql.DB
}

// OpenBuildCache opens (or creates) the cache database at path, ensures the
// data directory exists, and runs schema migrations.
func OpenBuildCache(path string) (*BuildCache, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// WAL mode lets the watcher rebuild while the admin editor writes, and
	// busy_timeout makes writers wait instead of returning SQLITE_BUSY.
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
	`); err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	c := &BuildCache{db: db}
	if err := c.ensureSchema(); err != nil {
		return nil, err
	}
	return c, nil
}

// Close closes the underlying database connection.
func (c *BuildCache) Close() error {
	return c.db.Close()
}

func (c *BuildCache) ensureSchema() error {
	_, err := c.db.Exec(`
CREATE TABLE IF NOT EXISTS render_cache (
    path TEXT PRIMARY KEY,
    hash TEXT NOT NULL,
    html TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS images (
    filename TEXT PRIMARY KEY,
    original_name TEXT NOT NULL,
    width INTEGER NOT NULL,
    height INTEGER NOT NULL,
    size INTEGER NOT NULL,
    uploaded_at TEXT NOT NULL
);
`)
	return err
}

// RenderedHTML returns the cached render for path when the body hash still
// matches, otherwise calls render and stores the fresh result.
func (c *BuildCache) RenderedHTML(path string, body []byte, render func() (string, error)) (string, error) {
	sum := sha256.Sum256(body)
	hash := hex.EncodeToString(sum[:])

	var cachedHash, html string
	err := c.db.QueryRow(`SELECT hash, html FROM render_cache WHERE path = ?`, path).Scan(&cachedHash, &html)
	if err == nil && cachedHash == hash {
		return html, nil
	}
	if err != nil && err != sql.ErrNoRows {
		return "", err
	}

	html, err = render()
	if err != nil {
		return "", err
	}
	if _, err := c.db.Exec(`INSERT OR REPLACE INTO render_cache (path, hash, html) VALUES (?, ?, ?)`,
		path, hash, html); err != nil {
		return "", err
	}
	return html, nil
}

// Forget drops the cached render for a content path (used when the admin
// editor deletes or moves a file).
func (c *BuildCache) Forget(path string) error {
	_, err := c.db.Exec(`DELETE FROM render_cache WHERE path = ?`, path)
	return err
}

// SaveImage upserts image metadata.
func (c *BuildCache) SaveImage(img Image) error {
	_, err := c.db.Exec(`INSERT OR REPLACE INTO images (filename, original_name, width, height, size, uploaded_at) VALUES (?, ?, ?, ?, ?, ?)`,
		img.Filename, img.OriginalName, img.Width, img.Height, img.Size, img.UploadedAt)
	return err
}

// ListImages returns all uploaded images, newest first.
func (c *BuildCache) ListImages() ([]Image, error) {
	rows, err := c.db.Query(`SELECT filename, original_name, width, height, size, uploaded_at FROM images ORDER BY uploaded_at DESC, filename`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var images []Image
	for rows.Next() {
		var img Image
		if err := rows.Scan(&img.Filename, &img.OriginalName, &img.Width, &img.Height, &img.Size, &img.UploadedAt); err != nil {
			return nil, err
		}
		images = append(images, img)
	}
	return images, rows.Err()
}

// DeleteImage removes image metadata by filename.
func (c *BuildCache) DeleteImage(filename string) error {
	_, err := c.db.Exec(`DELETE FROM images WHERE filename = ?`, filename)
	return err
}
