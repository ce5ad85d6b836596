package repo

import (
	"context"
	_ "embed"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"

	"storefront-order-system/shared/pkg/models"
)

//go:embed schema.sql
var schemaSQL string

// DB is satisfied by *pgxpool.Pool.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type ProductsPG struct{ DB DB }

func (r *ProductsPG) EnsureSchema(ctx context.Context) error {
	_, err := r.DB.Exec(ctx, schemaSQL)
	return err
}

// Seed inserts products that are not there yet; existing rows are left alone.
func (r *ProductsPG) Seed(ctx context.Context, products []models.Product) error {
	for _, p := range products {
		_, err := r.DB.Exec(ctx, `
			insert into products(id, title, category, unit, image, price, in_stock)
			values ($1, $2, $3, $4, $5, $6::numeric, $7)
			on conflict (id) do nothing
		`, p.ID, p.Title, p.Category, p.Unit, p.Image, p.Price.String(), p.InStock)
		if err != nil {
			return fmt.Errorf("seed product %d: %w", p.ID, err)
		}
	}
	return nil
}

func (r *ProductsPG) List(ctx context.Context) ([]models.Product, error) {
	rows, err := r.DB.Query(ctx, `
		select id, title, category, unit, image, price::text, in_stock
		from products
		order by id
	`)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	var out []models.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate products: %w", err)
	}
	return out, nil
}

func (r *ProductsPG) Get(ctx context.Context, id int64) (models.Product, error) {
	row := r.DB.QueryRow(ctx, `
		select id, title, category, unit, image, price::text, in_stock
		from products
		where id = $1
	`, id)

	p, err := scanProduct(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Product{}, ErrProductNotFound
	}
	return p, err
}

func scanProduct(row pgx.Row) (models.Product, error) {
	var (
		p     models.Product
		price string
	)
	if err := row.Scan(&p.ID, &p.Title, &p.Category, &p.Unit, &p.Image, &price, &p.InStock); err != nil {
		return models.Product{}, err
	}
	d, err := decimal.NewFromString(price)
	if err != nil {
		return models.Product{}, fmt.Errorf("product %d price %q: %w", p.ID, price, err)
	}
	p.Price = d
	return p, nil
}
