package store

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
)

// Bucket names
var (
	bucketMeta    = []byte("meta")
	bucketSession = []byte("session") // response cache, cleared when the session ends
	bucketState   = []byte("state")   // long-lived UI state (list context)
)

const (
	dbFileName        = "marquee.db"
	keySessionStarted = "session_started"

	// DefaultSessionTTL bounds how long a response cache session lives
	DefaultSessionTTL = 12 * time.Hour
)

// Options control how the database is opened.
type Options struct {
	// SessionTTL is the age after which the session bucket is purged on open.
	// Zero means DefaultSessionTTL.
	SessionTTL time.Duration

	// NewSession purges the session bucket regardless of its age.
	NewSession bool

	// Now is the clock used for session stamps. Nil means time.Now.
	Now func() time.Time

	Logger *slog.Logger
}

// DB owns the bbolt file and hands out bucket-scoped KV views.
type DB struct {
	db     *bolt.DB
	path   string
	logger *slog.Logger
}

// Open opens (or creates) <dir>/marquee.db and starts or resumes a session.
func Open(dir string, opts Options) (*DB, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if opts.SessionTTL <= 0 {
		opts.SessionTTL = DefaultSessionTTL
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	dbPath := filepath.Join(dir, dbFileName)
	db, err := bolt.Open(dbPath, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	// Create buckets
	err = db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{bucketMeta, bucketSession, bucketState} {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	s := &DB{db: db, path: dbPath, logger: logger}
	if err := s.beginSession(opts); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// beginSession keeps the session bucket when its stamp is younger than the TTL,
// otherwise it empties the bucket and writes a fresh stamp.
func (s *DB) beginSession(opts Options) error {
	now := opts.Now()
	return s.db.Update(func(tx *bolt.Tx) error {
		meta := tx.Bucket(bucketMeta)

		var started time.Time
		if v := meta.Get([]byte(keySessionStarted)); v != nil {
			if err := json.Unmarshal(v, &started); err != nil {
				started = time.Time{}
			}
		}

		if !opts.NewSession && !started.IsZero() && now.Sub(started) < opts.SessionTTL {
			s.logger.Debug("resuming cache session", "started", started)
			return nil
		}

		if err := tx.DeleteBucket(bucketSession); err != nil && err != bolt.ErrBucketNotFound {
			return err
		}
		if _, err := tx.CreateBucket(bucketSession); err != nil {
			return err
		}

		stamp, err := json.Marshal(now)
		if err != nil {
			return err
		}
		s.logger.Debug("started new cache session", "previous", started, "forced", opts.NewSession)
		return meta.Put([]byte(keySessionStarted), stamp)
	})
}

// Session returns the session-scoped response cache.
func (s *DB) Session() *BoltKV {
	return &BoltKV{db: s.db, bucket: bucketSession}
}

// State returns the long-lived state store.
func (s *DB) State() *BoltKV {
	return &BoltKV{db: s.db, bucket: bucketState}
}

// Path returns the database file path
func (s *DB) Path() string {
	return s.path
}

func (s *DB) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// BoltKV is a domain.KVStore over one bbolt bucket.
type BoltKV struct {
	db     *bolt.DB
	bucket []byte
}

func (b *BoltKV) Get(key string) ([]byte, bool, error) {
	var data []byte
	err := b.db.View(func(tx *bolt.Tx) error {
		bk := tx.Bucket(b.bucket)
		if bk == nil {
			return nil
		}
		if v := bk.Get([]byte(key)); v != nil {
			// bbolt memory is only valid inside the transaction
			data = make([]byte, len(v))
			copy(data, v)
		}
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return data, data != nil, nil
}

func (b *BoltKV) Set(key string, value []byte) error {
	return b.db.Update(func(tx *bolt.Tx) error {
		bk, err := tx.CreateBucketIfNotExists(b.bucket)
		if err != nil {
			return err
		}
		return bk.Put([]byte(key), value)
	})
}

// Len returns the number of keys in the bucket
func (b *BoltKV) Len() int {
	n := 0
	b.db.View(func(tx *bolt.Tx) error {
		bk := tx.Bucket(b.bucket)
		if bk == nil {
			return nil
		}
		return bk.ForEach(func(_, _ []byte) error {
			n++
			return nil
		})
	})
	return n
}

// Clear removes every key from the bucket
func (b *BoltKV) Clear() error {
	return b.db.Update(func(tx *bolt.Tx) error {
		bk := tx.Bucket(b.bucket)
		if bk == nil {
			return nil
		}
		var keys [][]byte
		bk.ForEach(func(k, _ []byte) error {
			keys = append(keys, append([]byte(nil), k...))
			return nil
		})
		for _, k := range keys {
			if err := bk.Delete(k); err != nil {
				return err
			}
		}
		return nil
	})
}

// RemoveDB deletes marquee's database file from dir. Other files in dir are left alone.
func RemoveDB(dir string) error {
	if err := os.Remove(filepath.Join(dir, dbFileName)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove cache database: %w", err)
	}
	return nil
}
