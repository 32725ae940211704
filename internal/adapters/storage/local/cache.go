package local

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite" // driver sqlite puro Go (sin cgo, apto on-device)
)

// Cache es la persistencia clave/valor del mirror: un blob serializado por
// colección de entidad. Lectura/reemplazo de colección completa, sin acceso
// parcial por clave.
type Cache interface {
	// ReadAll retorna el blob del bucket; nil si nunca se inicializó.
	ReadAll(ctx context.Context, bucket string) ([]byte, error)

	// WriteAll reemplaza el blob completo del bucket.
	WriteAll(ctx context.Context, bucket string, payload []byte) error
}

// Buckets de colección, uno por tipo de entidad.
const (
	BucketEvents   = "events"
	BucketContacts = "contacts"
	BucketSubjects = "subjects"
)

// SQLiteCache guarda los blobs en una tabla cache(bucket, payload).
type SQLiteCache struct {
	mu sync.Mutex
	db *sql.DB
}

// OpenSQLite abre (o crea) la base local del dispositivo.
func OpenSQLite(path string) (*SQLiteCache, error) {
	if path == "" {
		path = "vet-agenda.db"
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil && !errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("create cache dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS cache (
		bucket  TEXT PRIMARY KEY,
		payload BLOB NOT NULL
	)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create cache table: %w", err)
	}

	return &SQLiteCache{db: db}, nil
}

func (c *SQLiteCache) ReadAll(ctx context.Context, bucket string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var payload []byte
	err := c.db.QueryRowContext(ctx, `SELECT payload FROM cache WHERE bucket = $1`, bucket).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read cache bucket %q: %w", bucket, err)
	}
	return payload, nil
}

func (c *SQLiteCache) WriteAll(ctx context.Context, bucket string, payload []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, err := c.db.ExecContext(ctx, `
		INSERT INTO cache (bucket, payload) VALUES ($1, $2)
		ON CONFLICT (bucket) DO UPDATE SET payload = excluded.payload
	`, bucket, payload)
	if err != nil {
		return fmt.Errorf("write cache bucket %q: %w", bucket, err)
	}
	return nil
}

func (c *SQLiteCache) Close() error { return c.db.Close() }

// MemCache es la variante en memoria (tests y modo efímero).
type MemCache struct {
	mu      sync.Mutex
	buckets map[string][]byte
}

func NewMemCache() *MemCache {
	return &MemCache{buckets: make(map[string][]byte)}
}

func (c *MemCache) ReadAll(_ context.Context, bucket string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.buckets[bucket], nil
}

func (c *MemCache) WriteAll(_ context.Context, bucket string, payload []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.buckets[bucket] = append([]byte(nil), payload...)
	return nil
}
