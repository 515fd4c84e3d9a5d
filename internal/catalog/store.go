package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound    = errors.New("product not found")
	ErrInvalidDate = errors.New("created must be a YYYY-MM-DD date")
)

const dateLayout = "2006-01-02"

// Store is the data access abstraction for the product catalog.
// Implemented by Repository (which uses pgxpool.Pool).
type Store interface {
	GetAll(ctx context.Context) ([]Product, error)
	GetByID(ctx context.Context, id string) (*Product, error)
	Create(ctx context.Context, p *Product) error
	Update(ctx context.Context, p *Product) error
	Delete(ctx context.Context, id string) error
}

type Repository struct {
	db    *pgxpool.Pool
	codec *IDCodec
}

func NewRepository(db *pgxpool.Pool, codec *IDCodec) *Repository {
	return &Repository{db: db, codec: codec}
}

func (r *Repository) GetAll(ctx context.Context) ([]Product, error) {
	const query = `
		SELECT id, name, category, subcategory, images, created,
		       description, specification, features
		FROM products
		ORDER BY id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var products []Product
	for rows.Next() {
		p, err := r.scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

func (r *Repository) GetByID(ctx context.Context, id string) (*Product, error) {
	key, err := r.codec.Decode(id)
	if err != nil {
		return nil, ErrNotFound
	}

	const query = `
		SELECT id, name, category, subcategory, images, created,
		       description, specification, features
		FROM products
		WHERE id = $1`

	row := r.db.QueryRow(ctx, query, key)
	p, err := r.scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *Repository) Create(ctx context.Context, p *Product) error {
	created, err := parseCreated(p.Created)
	if err != nil {
		return err
	}

	const query = `
		INSERT INTO products (name, category, subcategory, images, created,
		                      description, specification, features)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`

	var key int64
	err = r.db.QueryRow(ctx, query,
		p.Name, p.Category, p.Subcategory, p.Images, created,
		p.Description, p.Specification, p.Features,
	).Scan(&key)
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}

	p.ID, err = r.codec.Encode(key)
	if err != nil {
		return err
	}
	return nil
}

// Update is a full replace of every client-owned field, matching the
// PUT semantics of the API.
func (r *Repository) Update(ctx context.Context, p *Product) error {
	key, err := r.codec.Decode(p.ID)
	if err != nil {
		return ErrNotFound
	}
	created, err := parseCreated(p.Created)
	if err != nil {
		return err
	}

	const query = `
		UPDATE products
		SET name = $2, category = $3, subcategory = $4, images = $5,
		    created = $6, description = $7, specification = $8,
		    features = $9, updated_at = now()
		WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, key,
		p.Name, p.Category, p.Subcategory, p.Images, created,
		p.Description, p.Specification, p.Features)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	key, err := r.codec.Decode(id)
	if err != nil {
		return ErrNotFound
	}

	tag, err := r.db.Exec(ctx, `DELETE FROM products WHERE id = $1`, key)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository) scanProduct(row pgx.Row) (*Product, error) {
	var (
		key     int64
		created time.Time
		p       Product
	)
	err := row.Scan(&key, &p.Name, &p.Category, &p.Subcategory, &p.Images,
		&created, &p.Description, &p.Specification, &p.Features)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan product: %w", err)
	}

	p.Created = created.Format(dateLayout)
	p.ID, err = r.codec.Encode(key)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func parseCreated(s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}
