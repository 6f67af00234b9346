package catalog

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/fjod/go_cart/storefront/internal/domain"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

const selectProducts = `
	SELECT id, slug, name, price, compare_at_price, description, category,
	       images, sizes, colors, in_stock, featured, is_new, created_at
	FROM products
`

// SQLiteCatalog reads products from a SQLite database. Rows keep the order they were seeded in.
type SQLiteCatalog struct {
	db *sql.DB
}

func NewSQLiteCatalog(dbPath string) (*SQLiteCatalog, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &SQLiteCatalog{db: db}, nil
}

func (c *SQLiteCatalog) RunMigrations() error {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("could not open migrations: %w", err)
	}

	driver, err := sqlite.WithInstance(c.db, &sqlite.Config{})
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "sqlite", driver)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("could not run migrations: %w", err)
	}

	return nil
}

// Seed inserts products that are not in the table yet. Existing rows are left untouched.
func (c *SQLiteCatalog) Seed(ctx context.Context, products []domain.Product) error {
	if err := validate(products); err != nil {
		return err
	}

	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin seed: %w", err)
	}
	defer tx.Rollback()

	const insert = `
		INSERT OR IGNORE INTO products (
			id, slug, position, name, price, compare_at_price, description, category,
			images, sizes, colors, in_stock, featured, is_new, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	for i, p := range products {
		images, sizes, colors, err := encodeLists(p)
		if err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx, insert,
			p.ID, p.Slug, i, p.Name, p.Price, p.CompareAtPrice, p.Description, string(p.Category),
			images, sizes, colors, p.InStock, p.Featured, p.New, p.CreatedAt.UTC().Format(time.RFC3339),
		)
		if err != nil {
			return fmt.Errorf("failed to insert product %s: %w", p.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit seed: %w", err)
	}
	return nil
}

func (c *SQLiteCatalog) All(ctx context.Context) ([]domain.Product, error) {
	return c.query(ctx, selectProducts+` ORDER BY position`)
}

func (c *SQLiteCatalog) GetBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	products, err := c.query(ctx, selectProducts+` WHERE slug = ?`, slug)
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, nil
	}
	return &products[0], nil
}

func (c *SQLiteCatalog) GetByCategory(ctx context.Context, category domain.Category) ([]domain.Product, error) {
	if category == domain.CategoryAll {
		return c.All(ctx)
	}
	return c.query(ctx, selectProducts+` WHERE category = ? ORDER BY position`, string(category))
}

func (c *SQLiteCatalog) Close() error {
	return c.db.Close()
}

func (c *SQLiteCatalog) query(ctx context.Context, query string, args ...any) ([]domain.Product, error) {
	rows, err := c.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return products, nil
}

func scanProduct(rows *sql.Rows) (domain.Product, error) {
	var (
		p                     domain.Product
		category, createdAt   string
		images, sizes, colors string
	)
	err := rows.Scan(
		&p.ID,
		&p.Slug,
		&p.Name,
		&p.Price,
		&p.CompareAtPrice,
		&p.Description,
		&category,
		&images,
		&sizes,
		&colors,
		&p.InStock,
		&p.Featured,
		&p.New,
		&createdAt,
	)
	if err != nil {
		return domain.Product{}, fmt.Errorf("failed to scan product: %w", err)
	}

	p.Category = domain.Category(category)
	if p.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return domain.Product{}, fmt.Errorf("product %s: bad created_at: %w", p.ID, err)
	}
	if err := json.Unmarshal([]byte(images), &p.Images); err != nil {
		return domain.Product{}, fmt.Errorf("product %s: bad images: %w", p.ID, err)
	}
	if err := json.Unmarshal([]byte(sizes), &p.Sizes); err != nil {
		return domain.Product{}, fmt.Errorf("product %s: bad sizes: %w", p.ID, err)
	}
	if err := json.Unmarshal([]byte(colors), &p.Colors); err != nil {
		return domain.Product{}, fmt.Errorf("product %s: bad colors: %w", p.ID, err)
	}
	return p, nil
}

func encodeLists(p domain.Product) (images, sizes, colors string, err error) {
	imagesJSON, err := json.Marshal(p.Images)
	if err != nil {
		return "", "", "", fmt.Errorf("product %s: marshal images: %w", p.ID, err)
	}
	sizesJSON, err := json.Marshal(p.Sizes)
	if err != nil {
		return "", "", "", fmt.Errorf("product %s: marshal sizes: %w", p.ID, err)
	}
	colorsJSON, err := json.Marshal(p.Colors)
	if err != nil {
		return "", "", "", fmt.Errorf("product %s: marshal colors: %w", p.ID, err)
	}
	return string(imagesJSON), string(sizesJSON), string(colorsJSON), nil
}
