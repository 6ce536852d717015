package pg

import (
	"context"
	"errors"
	"strings"

	"github.com/dropDatabas3/acmedash/internal/store/core"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

func (s *Store) CreateInvoice(ctx context.Context, inv *core.Invoice) error {
	const q = `
INSERT INTO invoice (id, customer_id, amount_cents, status, date)
VALUES ($1, $2, $3, $4, $5)
RETURNING created_at;`
	err := s.pool.QueryRow(ctx, q, inv.ID, inv.CustomerID, inv.AmountCents, inv.Status, inv.Date).Scan(&inv.CreatedAt)
	if isForeignKeyViolation(err) {
		// customer inexistente
		return core.ErrInvalid
	}
	if isUniqueViolation(err) {
		return core.ErrConflict
	}
	return err
}

func (s *Store) GetInvoice(ctx context.Context, id string) (*core.Invoice, error) {
	const q = `
SELECT id, customer_id, amount_cents, status, date, created_at
FROM invoice
WHERE id = $1;`
	var inv core.Invoice
	err := s.pool.QueryRow(ctx, q, id).Scan(&inv.ID, &inv.CustomerID, &inv.AmountCents, &inv.Status, &inv.Date, &inv.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, core.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

func (s *Store) UpdateInvoice(ctx context.Context, inv *core.Invoice) error {
	const q = `
UPDATE invoice
SET customer_id = $2, amount_cents = $3, status = $4, date = $5
WHERE id = $1;`
	tag, err := s.pool.Exec(ctx, q, inv.ID, inv.CustomerID, inv.AmountCents, inv.Status, inv.Date)
	if isForeignKeyViolation(err) {
		return core.ErrInvalid
	}
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return core.ErrNotFound
	}
	return nil
}

func (s *Store) DeleteInvoice(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM invoice WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return core.ErrNotFound
	}
	return nil
}

// ListInvoices: listado paginado con datos del customer, filtrado por nombre,
// email o estado.
func (s *Store) ListInvoices(ctx context.Context, query string, limit, offset int) ([]core.InvoiceWithCustomer, error) {
	const q = `
SELECT i.id, i.customer_id, i.amount_cents, i.status, i.date, i.created_at,
       c.name, c.email, c.image_url
FROM invoice i
JOIN customer c ON c.id = i.customer_id
WHERE c.name ILIKE $1 OR c.email ILIKE $1 OR i.status::text ILIKE $1
ORDER BY i.date DESC, i.created_at DESC
LIMIT $2 OFFSET $3;`
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	rows, err := s.pool.Query(ctx, q, "%"+strings.TrimSpace(query)+"%", limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanInvoiceRows(rows)
}

func (s *Store) CountInvoices(ctx context.Context, query string) (int64, error) {
	const q = `
SELECT COUNT(*)
FROM invoice i
JOIN customer c ON c.id = i.customer_id
WHERE c.name ILIKE $1 OR c.email ILIKE $1 OR i.status::text ILIKE $1;`
	var n int64
	err := s.pool.QueryRow(ctx, q, "%"+strings.TrimSpace(query)+"%").Scan(&n)
	return n, err
}

func (s *Store) LatestInvoices(ctx context.Context, n int) ([]core.InvoiceWithCustomer, error) {
	const q = `
SELECT i.id, i.customer_id, i.amount_cents, i.status, i.date, i.created_at,
       c.name, c.email, c.image_url
FROM invoice i
JOIN customer c ON c.id = i.customer_id
ORDER BY i.date DESC, i.created_at DESC
LIMIT $1;`
	if n <= 0 {
		n = 5
	}
	rows, err := s.pool.Query(ctx, q, n)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanInvoiceRows(rows)
}

func scanInvoiceRows(rows pgx.Rows) ([]core.InvoiceWithCustomer, error) {
	var out []core.InvoiceWithCustomer
	for rows.Next() {
		var iv core.InvoiceWithCustomer
		if err := rows.Scan(&iv.ID, &iv.CustomerID, &iv.AmountCents, &iv.Status, &iv.Date, &iv.CreatedAt,
			&iv.CustomerName, &iv.CustomerEmail, &iv.CustomerImageURL); err != nil {
			return nil, err
		}
		out = append(out, iv)
	}
	return out, rows.Err()
}

// isForeignKeyViolation detecta el código 23503 de Postgres.
func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}
