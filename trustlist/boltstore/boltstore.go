// Package boltstore persists trust lists in a bbolt database
package boltstore

import (
	"time"

	"github.com/go-errors/errors"
	"github.com/minvws/nl-covid19-coronacheck-dgc/trustlist"
	"go.etcd.io/bbolt"
)

var keysBucket = []byte("keys")

type Store struct {
	db *bbolt.DB
}

// Open opens or creates the database at path
func Open(path string) (*Store, error) {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: 5 * time.Second})
	if err != nil {
		return nil, errors.WrapPrefix(err, "Could not open trust list database", 0)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(keysBucket)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, errors.WrapPrefix(err, "Could not create keys bucket", 0)
	}

	return &Store{db: db}, nil
}

// Save upserts every key of the trust list
func (s *Store) Save(tl *trustlist.TrustList) error {
	err := s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(keysBucket)
		for _, key := range tl.Keys() {
			if len(key.KID) == 0 {
				return errors.Errorf("Could not store key with an empty kid")
			}

			err := b.Put(key.KID, key.PublicKey)
			if err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return errors.WrapPrefix(err, "Could not save trust list", 0)
	}

	return nil
}

// Load reads all stored keys into a new trust list
func (s *Store) Load() (*trustlist.TrustList, error) {
	tl := trustlist.New()

	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(keysBucket).ForEach(func(kid, key []byte) error {
			// Add copies, the slices are only valid during the transaction
			tl.Add(kid, key)
			return nil
		})
	})
	if err != nil {
		return nil, errors.WrapPrefix(err, "Could not load trust list", 0)
	}

	return tl, nil
}

// Delete removes the key with the given kid, if present
func (s *Store) Delete(kid []byte) error {
	err := s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(keysBucket).Delete(kid)
	})
	if err != nil {
		return errors.WrapPrefix(err, "Could not delete key", 0)
	}

	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}
