package blob

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
)

var listsBucket = []byte("lists")

// BoltStore implements Store on a bbolt database file.
type BoltStore struct {
	db *bolt.DB
}

// OpenBolt opens or creates the bbolt file at path.
func OpenBolt(path string) (*BoltStore, error) {
	if path == "" {
		return nil, ErrEmptyPath
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating storage directory: %w", err)
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening bolt database %s: %w", path, err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(listsBucket)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating lists bucket: %w", err)
	}

	return &BoltStore{db: db}, nil
}

// Get returns the value stored under key.
func (s *BoltStore) Get(ctx context.Context, key string) (string, bool, error) {
	if err := checkCall(ctx, "get", key); err != nil {
		return "", false, err
	}

	var (
		value string
		ok    bool
	)
	err := s.db.View(func(tx *bolt.Tx) error {
		// Bytes returned by bbolt are only valid inside the transaction.
		if v := tx.Bucket(listsBucket).Get([]byte(key)); v != nil {
			value = string(v)
			ok = true
		}
		return nil
	})
	if err != nil {
		return "", false, fmt.Errorf("get blob %s: %w", key, err)
	}

	return value, ok, nil
}

// Set stores value under key.
func (s *BoltStore) Set(ctx context.Context, key, value string) error {
	if err := checkCall(ctx, "set", key); err != nil {
		return err
	}

	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(listsBucket).Put([]byte(key), []byte(value))
	})
	if err != nil {
		return fmt.Errorf("set blob %s: %w", key, err)
	}

	return nil
}

// Close closes the database file.
func (s *BoltStore) Close() error {
	return s.db.Close()
}
