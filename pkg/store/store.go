// Package store keeps the last board placement of each session on disk.
package store

import (
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
)

const keyPrefix = "board/"

// ErrNotFound is returned when a session has no saved board.
var ErrNotFound = errors.New("store: no saved board")

// Store wraps BadgerDB for persistent storage
type Store struct {
	db *badger.DB
}

// Open opens or creates the database in dir.
func Open(dir string) (*Store, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil // Disable logging

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open store %s: %w", dir, err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// SaveBoard records fen as the current placement for session.
func (s *Store) SaveBoard(session, fen string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(keyPrefix+session), []byte(fen))
	})
}

// LoadBoard returns the saved placement for session, or ErrNotFound.
func (s *Store) LoadBoard(session string) (string, error) {
	var fen []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keyPrefix + session))
		if err != nil {
			return err
		}
		fen, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return string(fen), nil
}

// DeleteBoard forgets the saved placement for session.
func (s *Store) DeleteBoard(session string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(keyPrefix + session))
	})
}
