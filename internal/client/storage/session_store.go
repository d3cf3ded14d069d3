package storage

import (
	"context"
	"database/sql"

	"github.com/vilarbucks/vilarbucks/internal/client/repositories/metadata"
	"github.com/vilarbucks/vilarbucks/internal/dbx"
)

// Keys of the persisted session mirror. Only SessionStore writes them.
const (
	TokenKey = "vilarbucks_token"
	UserKey  = "vilarbucks_user"
)

// SessionStore persists the credential token together with the serialized
// user projection. Save and Clear always touch both keys atomically.
type SessionStore interface {
	// Load returns the stored token and user record. Missing values come
	// back as "" and nil.
	Load(ctx context.Context) (token string, user []byte, err error)
	Save(ctx context.Context, token string, user []byte) error
	Clear(ctx context.Context) error
}

// SQLiteSessionStore keeps the session in the metadata table. Each call
// runs in its own transaction and reaches the table through repo.
type SQLiteSessionStore struct {
	db   *sql.DB
	repo func(tx dbx.DBTX) metadata.Repository
}

func NewSQLiteSessionStore(db *sql.DB) *SQLiteSessionStore {
	return &SQLiteSessionStore{
		db: db,
		repo: func(tx dbx.DBTX) metadata.Repository {
			return metadata.NewSQLiteRepository(tx)
		},
	}
}

func (s *SQLiteSessionStore) Load(ctx context.Context) (string, []byte, error) {
	var (
		token []byte
		user  []byte
	)

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repo(tx)

		var err error
		if token, err = repo.Get(ctx, TokenKey); err != nil {
			return err
		}
		user, err = repo.Get(ctx, UserKey)
		return err
	})
	if err != nil {
		return "", nil, err
	}

	return string(token), user, nil
}

func (s *SQLiteSessionStore) Save(ctx context.Context, token string, user []byte) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repo(tx)
		if err := repo.Set(ctx, TokenKey, []byte(token)); err != nil {
			return err
		}
		return repo.Set(ctx, UserKey, user)
	})
}

func (s *SQLiteSessionStore) Clear(ctx context.Context) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return s.repo(tx).Delete(ctx, TokenKey, UserKey)
	})
}
