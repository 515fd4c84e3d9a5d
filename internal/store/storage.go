package store

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

var (
	ErrNotFound          = errors.New("resource not found")
	ErrDuplicateUsername = errors.New("an admin with that username already exists")
	QueryTimeoutDuration = time.Second * 5
)

type Storage struct {
	Admins interface {
		GetByUsername(context.Context, string) (*Admin, error)
		Create(context.Context, *Admin) error
		UpdateCredentials(ctx context.Context, currentUsername, newUsername string, newHash []byte) error
	}
}

func NewStorage(db *sql.DB) Storage {
	return Storage{
		Admins: &AdminsStore{db},
	}
}
