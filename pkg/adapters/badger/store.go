// Package badger persists samples in an embedded BadgerDB key-value store.
package badger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/aretw0/treeoracle/pkg/domain"
	backend "github.com/dgraph-io/badger/v4"
)

// DefaultPrefix namespaces every key written by the store.
const DefaultPrefix = "sample/"

// Store implements ports.SampleStore using BadgerDB.
type Store struct {
	db     *backend.DB
	prefix []byte
	ttl    time.Duration
}

type Option func(*Store)

// WithTTL sets the expiration for samples. Zero keeps them forever.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// WithPrefix sets the key prefix for samples.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = []byte(prefix)
	}
}

// badgerLogger adapts slog.Logger to BadgerDB's Logger interface.
type badgerLogger struct {
	logger *slog.Logger
}

func (l *badgerLogger) Errorf(format string, args ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Warningf(format string, args ...interface{}) {
	l.logger.Warn(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Infof(format string, args ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Debugf(format string, args ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}

// Open opens (or creates) a database in dir. A nil logger silences BadgerDB.
func Open(dir string, logger *slog.Logger, opts ...Option) (*Store, error) {
	if dir == "" {
		return nil, errors.New("path is required for persistent database")
	}
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("create database directory %s: %w", dir, err)
	}
	return open(backend.DefaultOptions(dir).WithSyncWrites(true), logger, opts...)
}

// OpenInMemory opens a database that lives only in memory.
func OpenInMemory(opts ...Option) (*Store, error) {
	return open(backend.DefaultOptions("").WithInMemory(true), nil, opts...)
}

func open(bopts backend.Options, logger *slog.Logger, opts ...Option) (*Store, error) {
	bopts = bopts.WithNumVersionsToKeep(1)
	if logger != nil {
		bopts = bopts.WithLogger(&badgerLogger{logger: logger})
	} else {
		bopts = bopts.WithLogger(nil)
	}

	db, err := backend.Open(bopts)
	if err != nil {
		return nil, fmt.Errorf("open badger database: %w", err)
	}
	return NewFromDB(db, opts...), nil
}

// NewFromDB creates a store on an already opened database.
func NewFromDB(db *backend.DB, opts ...Option) *Store {
	store := &Store{
		db:     db,
		prefix: []byte(DefaultPrefix),
	}
	for _, opt := range opts {
		opt(store)
	}
	return store
}

func (s *Store) key(id string) []byte {
	return append(append([]byte{}, s.prefix...), id...)
}

// Save persists the sample as JSON.
func (s *Store) Save(ctx context.Context, sample *domain.Sample) error {
	if sample.ID == "" {
		return fmt.Errorf("sample id cannot be empty")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(sample)
	if err != nil {
		return fmt.Errorf("failed to marshal sample: %w", err)
	}

	err = s.db.Update(func(txn *backend.Txn) error {
		entry := backend.NewEntry(s.key(sample.ID), data)
		if s.ttl > 0 {
			entry = entry.WithTTL(s.ttl)
		}
		return txn.SetEntry(entry)
	})
	if err != nil {
		return fmt.Errorf("failed to save to badger: %w", err)
	}
	return nil
}

// Load retrieves the sample.
func (s *Store) Load(ctx context.Context, id string) (*domain.Sample, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var data []byte
	err := s.db.View(func(txn *backend.Txn) error {
		item, err := txn.Get(s.key(id))
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		if errors.Is(err, backend.ErrKeyNotFound) {
			return nil, domain.ErrSampleNotFound
		}
		return nil, fmt.Errorf("failed to get from badger: %w", err)
	}

	var sample domain.Sample
	if err := json.Unmarshal(data, &sample); err != nil {
		return nil, fmt.Errorf("failed to unmarshal sample: %w", err)
	}
	return &sample, nil
}

// Delete removes the sample. Deleting a missing sample is not an error.
func (s *Store) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := s.db.Update(func(txn *backend.Txn) error {
		return txn.Delete(s.key(id))
	})
	if err != nil {
		return fmt.Errorf("failed to delete from badger: %w", err)
	}
	return nil
}

// List returns the IDs of live samples in key order. Expired entries are skipped.
func (s *Store) List(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ids := []string{}
	err := s.db.View(func(txn *backend.Txn) error {
		opts := backend.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = s.prefix

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			key := it.Item().KeyCopy(nil)
			ids = append(ids, string(key[len(s.prefix):]))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list samples: %w", err)
	}
	return ids, nil
}

// Close flushes and closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}
