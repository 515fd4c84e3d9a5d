package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"
)

type Admin struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Password  password  `json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// password keeps the bcrypt hash out of JSON and away from plain
// string handling.
type password struct {
	hash []byte
}

func (p *password) Set(text string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(text), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	p.hash = hash
	return nil
}

func (p *password) Compare(text string) error {
	return bcrypt.CompareHashAndPassword(p.hash, []byte(text))
}

func (p *password) Hash() []byte {
	return p.hash
}

type AdminsStore struct {
	db *sql.DB
}

func (s *AdminsStore) GetByUsername(ctx context.Context, username string) (*Admin, error) {
	query := `
		SELECT id, username, password, created_at, updated_at
		FROM admins
		WHERE username = $1`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	admin := &Admin{}
	err := s.db.QueryRowContext(ctx, query, username).Scan(
		&admin.ID,
		&admin.Username,
		&admin.Password.hash,
		&admin.CreatedAt,
		&admin.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return admin, nil
}

func (s *AdminsStore) Create(ctx context.Context, admin *Admin) error {
	query := `
		INSERT INTO admins (username, password)
		VALUES ($1, $2)
		RETURNING id, created_at, updated_at`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	err := s.db.QueryRowContext(ctx, query, admin.Username, admin.Password.hash).Scan(
		&admin.ID,
		&admin.CreatedAt,
		&admin.UpdatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return ErrDuplicateUsername
		}
		return err
	}
	return nil
}

// UpdateCredentials rotates both username and password in one statement.
// The caller is expected to have verified the current password first.
func (s *AdminsStore) UpdateCredentials(ctx context.Context, currentUsername, newUsername string, newHash []byte) error {
	query := `
		UPDATE admins
		SET username = $2, password = $3, updated_at = now()
		WHERE username = $1`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	res, err := s.db.ExecContext(ctx, query, currentUsername, newUsername, newHash)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return ErrDuplicateUsername
		}
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}
