package pg

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dropDatabas3/acmedash/internal/store/core"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

func (s *Store) CreateCustomer(ctx context.Context, c *core.Customer) error {
	const q = `
INSERT INTO customer (id, name, email, image_url)
VALUES ($1, $2, $3, $4)
RETURNING created_at;`
	err := s.pool.QueryRow(ctx, q, c.ID, c.Name, c.Email, c.ImageURL).Scan(&c.CreatedAt)
	if isUniqueViolation(err) {
		return core.ErrConflict
	}
	return err
}

func (s *Store) GetCustomer(ctx context.Context, id string) (*core.Customer, error) {
	const q = `
SELECT id, name, email, image_url, created_at
FROM customer
WHERE id = $1;`
	var c core.Customer
	err := s.pool.QueryRow(ctx, q, id).Scan(&c.ID, &c.Name, &c.Email, &c.ImageURL, &c.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, core.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *Store) UpdateCustomer(ctx context.Context, c *core.Customer) error {
	const q = `
UPDATE customer
SET name = $2, email = $3, image_url = $4
WHERE id = $1;`
	tag, err := s.pool.Exec(ctx, q, c.ID, c.Name, c.Email, c.ImageURL)
	if isUniqueViolation(err) {
		return core.ErrConflict
	}
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return core.ErrNotFound
	}
	return nil
}

func (s *Store) DeleteCustomer(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM customer WHERE id = $1`, id)
	if err != nil {
		// el FK de invoice restringe el borrado mientras tenga invoices
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: customer has invoices", core.ErrInvalid)
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return core.ErrNotFound
	}
	return nil
}

// ListCustomers: customers con agregados de invoices, filtrados por nombre o
// email (case-insensitive).
func (s *Store) ListCustomers(ctx context.Context, query string) ([]core.CustomerSummary, error) {
	const q = `
SELECT c.id, c.name, c.email, c.image_url, c.created_at,
       COUNT(i.id)                                                   AS total_invoices,
       COALESCE(SUM(i.amount_cents) FILTER (WHERE i.status = 'pending'), 0) AS total_pending,
       COALESCE(SUM(i.amount_cents) FILTER (WHERE i.status = 'paid'), 0)    AS total_paid
FROM customer c
LEFT JOIN invoice i ON i.customer_id = c.id
WHERE c.name ILIKE $1 OR c.email ILIKE $1
GROUP BY c.id, c.name, c.email, c.image_url, c.created_at
ORDER BY c.name;`
	rows, err := s.pool.Query(ctx, q, "%"+strings.TrimSpace(query)+"%")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []core.CustomerSummary
	for rows.Next() {
		var cs core.CustomerSummary
		if err := rows.Scan(&cs.ID, &cs.Name, &cs.Email, &cs.ImageURL, &cs.CreatedAt,
			&cs.TotalInvoices, &cs.TotalPendingCents, &cs.TotalPaidCents); err != nil {
			return nil, err
		}
		out = append(out, cs)
	}
	return out, rows.Err()
}

// isUniqueViolation detecta el código 23505 de Postgres.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
