package pg

import (
	"context"

	"github.com/dropDatabas3/acmedash/internal/store/core"
)

// CardData: totales para las cards del dashboard en una sola query.
func (s *Store) CardData(ctx context.Context) (*core.CardData, error) {
	const q = `
SELECT (SELECT COUNT(*) FROM invoice),
       (SELECT COUNT(*) FROM customer),
       COALESCE((SELECT SUM(amount_cents) FROM invoice WHERE status = 'paid'), 0),
       COALESCE((SELECT SUM(amount_cents) FROM invoice WHERE status = 'pending'), 0);`
	var cd core.CardData
	err := s.pool.QueryRow(ctx, q).Scan(&cd.InvoiceCount, &cd.CustomerCount, &cd.TotalPaidCents, &cd.TotalPendingCents)
	if err != nil {
		return nil, err
	}
	return &cd, nil
}

func (s *Store) RevenueSeries(ctx context.Context) ([]core.Revenue, error) {
	const q = `
SELECT month, revenue
FROM revenue
ORDER BY sort_order;`
	rows, err := s.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []core.Revenue
	for rows.Next() {
		var r core.Revenue
		if err := rows.Scan(&r.Month, &r.Revenue); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *Store) UpsertRevenue(ctx context.Context, r *core.Revenue) error {
	const q = `
INSERT INTO revenue (month, revenue, sort_order)
VALUES ($1, $2, $3)
ON CONFLICT (month) DO UPDATE SET revenue = EXCLUDED.revenue;`
	_, err := s.pool.Exec(ctx, q, r.Month, r.Revenue, core.MonthOrder(r.Month))
	return err
}
