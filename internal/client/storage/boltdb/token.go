package boltdb

import (
	"context"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/vintaclectic/RepoRadar/internal/client/storage"
)

var tokenKey = []byte("current")

// SaveCachedToken stores the GitHub token locally
func (s *Storage) SaveCachedToken(ctx context.Context, token string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketToken)
		if bucket == nil {
			return fmt.Errorf("token bucket not found")
		}

		if err := bucket.Put(tokenKey, []byte(token)); err != nil {
			return fmt.Errorf("failed to save github token: %w", err)
		}

		return nil
	})
}

// GetCachedToken retrieves the locally cached GitHub token
func (s *Storage) GetCachedToken(ctx context.Context) (string, error) {
	var token string

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketToken)
		if bucket == nil {
			return fmt.Errorf("token bucket not found")
		}

		data := bucket.Get(tokenKey)
		if data == nil {
			return storage.ErrTokenNotCached
		}

		token = string(data)
		return nil
	})

	if err != nil {
		return "", err
	}

	return token, nil
}

// DeleteCachedToken removes the cached token
func (s *Storage) DeleteCachedToken(ctx context.Context) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketToken)
		if bucket == nil {
			return fmt.Errorf("token bucket not found")
		}

		// Удаление отсутствующего токена не ошибка
		return bucket.Delete(tokenKey)
	})
}
