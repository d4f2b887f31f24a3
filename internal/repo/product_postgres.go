package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rogerio-castellano/loja-api/internal/models"
)

const defaultQueryTimeout = 3 * time.Second

// advanceSequenceQuery raises the products id sequence to $1 when $1 is past the last
// value it issued, and leaves it alone otherwise.
const advanceSequenceQuery = `
	SELECT setval('products_id_seq', $1)
	FROM products_id_seq
	WHERE last_value < $1 OR (NOT is_called AND last_value = $1)
`

type PostgresProductRepository struct {
	db      *sql.DB
	timeout time.Duration
}

func NewPostgresProductRepository(db *sql.DB, queryTimeout time.Duration) *PostgresProductRepository {
	if queryTimeout <= 0 {
		queryTimeout = defaultQueryTimeout
	}
	return &PostgresProductRepository{db: db, timeout: queryTimeout}
}

func (r *PostgresProductRepository) FindAll(ctx context.Context) ([]models.Product, error) {
	query := `SELECT id, name, price, quantity FROM products ORDER BY id`
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.Quantity); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate products: %w", err)
	}
	return products, nil
}

func (r *PostgresProductRepository) FindByID(ctx context.Context, id int64) (models.Product, error) {
	query := `SELECT id, name, price, quantity FROM products WHERE id = $1`
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var p models.Product
	err := r.db.QueryRowContext(ctx, query, id).Scan(&p.ID, &p.Name, &p.Price, &p.Quantity)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Product{}, ErrProductNotFound
	}
	if err != nil {
		return models.Product{}, fmt.Errorf("get product %d: %w", id, err)
	}
	return p, nil
}

func (r *PostgresProductRepository) Save(ctx context.Context, p models.Product) (models.Product, error) {
	if p.ID == 0 {
		return r.insert(ctx, p)
	}
	return r.upsert(ctx, p)
}

func (r *PostgresProductRepository) insert(ctx context.Context, p models.Product) (models.Product, error) {
	query := `INSERT INTO products (name, price, quantity) VALUES ($1, $2, $3) RETURNING id`
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	if err := r.db.QueryRowContext(ctx, query, p.Name, p.Price, p.Quantity).Scan(&p.ID); err != nil {
		return models.Product{}, fmt.Errorf("insert product: %w", err)
	}
	return p, nil
}

// upsert overwrites every column of the row keyed by p.ID, inserting it when absent.
// An explicit-id insert bypasses the sequence, so the sequence is moved past p.ID.
// It never moves backwards: ids handed out before are not reissued after deletes.
func (r *PostgresProductRepository) upsert(ctx context.Context, p models.Product) (models.Product, error) {
	query := `
		INSERT INTO products (id, name, price, quantity)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE
		SET name = EXCLUDED.name, price = EXCLUDED.price, quantity = EXCLUDED.quantity
		RETURNING (xmax = 0)
	`
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Product{}, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var inserted bool
	if err := tx.QueryRowContext(ctx, query, p.ID, p.Name, p.Price, p.Quantity).Scan(&inserted); err != nil {
		return models.Product{}, fmt.Errorf("upsert product %d: %w", p.ID, err)
	}

	if inserted {
		_, err := tx.ExecContext(ctx, advanceSequenceQuery, p.ID)
		if err != nil {
			return models.Product{}, fmt.Errorf("advance products id sequence: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return models.Product{}, fmt.Errorf("commit product %d: %w", p.ID, err)
	}
	return p, nil
}

func (r *PostgresProductRepository) DeleteByID(ctx context.Context, id int64) error {
	query := `DELETE FROM products WHERE id = $1`
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete product %d: %w", id, err)
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}
