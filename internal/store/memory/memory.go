// Package memory implementa core.Repository en memoria.
// Para desarrollo local y tests de handlers: mismo contrato que pg,
// sin base de datos.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/dropDatabas3/acmedash/internal/store/core"
)

type Store struct {
	mu        sync.RWMutex
	customers map[string]*core.Customer
	invoices  map[string]*core.Invoice
	revenue   map[string]*core.Revenue
	users     map[string]*core.User // key: email
}

func New() *Store {
	return &Store{
		customers: make(map[string]*core.Customer),
		invoices:  make(map[string]*core.Invoice),
		revenue:   make(map[string]*core.Revenue),
		users:     make(map[string]*core.User),
	}
}

var _ core.Repository = (*Store)(nil)

func (s *Store) Ping(ctx context.Context) error { return nil }
func (s *Store) Close()                         {}

// ---------- CUSTOMERS ----------

func (s *Store) CreateCustomer(ctx context.Context, c *core.Customer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.customers[c.ID]; ok {
		return core.ErrConflict
	}
	for _, other := range s.customers {
		if strings.EqualFold(other.Email, c.Email) {
			return core.ErrConflict
		}
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now()
	}
	cp := *c
	s.customers[c.ID] = &cp
	return nil
}

func (s *Store) GetCustomer(ctx context.Context, id string) (*core.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.customers[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (s *Store) UpdateCustomer(ctx context.Context, c *core.Customer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.customers[c.ID]
	if !ok {
		return core.ErrNotFound
	}
	cur.Name, cur.Email, cur.ImageURL = c.Name, c.Email, c.ImageURL
	c.CreatedAt = cur.CreatedAt
	return nil
}

func (s *Store) DeleteCustomer(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.customers[id]; !ok {
		return core.ErrNotFound
	}
	for _, inv := range s.invoices {
		if inv.CustomerID == id {
			return fmt.Errorf("%w: customer has invoices", core.ErrInvalid)
		}
	}
	delete(s.customers, id)
	return nil
}

func (s *Store) ListCustomers(ctx context.Context, query string) ([]core.CustomerSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	q := strings.ToLower(strings.TrimSpace(query))

	var out []core.CustomerSummary
	for _, c := range s.customers {
		if q != "" && !strings.Contains(strings.ToLower(c.Name), q) && !strings.Contains(strings.ToLower(c.Email), q) {
			continue
		}
		cs := core.CustomerSummary{Customer: *c}
		for _, inv := range s.invoices {
			if inv.CustomerID != c.ID {
				continue
			}
			cs.TotalInvoices++
			switch inv.Status {
			case core.InvoicePaid:
				cs.TotalPaidCents += inv.AmountCents
			case core.InvoicePending:
				cs.TotalPendingCents += inv.AmountCents
			}
		}
		out = append(out, cs)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// ---------- INVOICES ----------

func (s *Store) CreateInvoice(ctx context.Context, inv *core.Invoice) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.invoices[inv.ID]; ok {
		return core.ErrConflict
	}
	if _, ok := s.customers[inv.CustomerID]; !ok {
		return core.ErrInvalid
	}
	if inv.CreatedAt.IsZero() {
		inv.CreatedAt = time.Now()
	}
	cp := *inv
	s.invoices[inv.ID] = &cp
	return nil
}

func (s *Store) GetInvoice(ctx context.Context, id string) (*core.Invoice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	inv, ok := s.invoices[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	cp := *inv
	return &cp, nil
}

func (s *Store) UpdateInvoice(ctx context.Context, inv *core.Invoice) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.invoices[inv.ID]
	if !ok {
		return core.ErrNotFound
	}
	if _, ok := s.customers[inv.CustomerID]; !ok {
		return core.ErrInvalid
	}
	cur.CustomerID, cur.AmountCents, cur.Status, cur.Date = inv.CustomerID, inv.AmountCents, inv.Status, inv.Date
	inv.CreatedAt = cur.CreatedAt
	return nil
}

func (s *Store) DeleteInvoice(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.invoices[id]; !ok {
		return core.ErrNotFound
	}
	delete(s.invoices, id)
	return nil
}

func (s *Store) matchInvoice(inv *core.Invoice, q string) bool {
	if q == "" {
		return true
	}
	c := s.customers[inv.CustomerID]
	if c != nil && (strings.Contains(strings.ToLower(c.Name), q) || strings.Contains(strings.ToLower(c.Email), q)) {
		return true
	}
	return strings.Contains(string(inv.Status), q)
}

func (s *Store) sortedInvoices(q string) []core.InvoiceWithCustomer {
	var out []core.InvoiceWithCustomer
	for _, inv := range s.invoices {
		if !s.matchInvoice(inv, q) {
			continue
		}
		iv := core.InvoiceWithCustomer{Invoice: *inv}
		if c := s.customers[inv.CustomerID]; c != nil {
			iv.CustomerName, iv.CustomerEmail, iv.CustomerImageURL = c.Name, c.Email, c.ImageURL
		}
		out = append(out, iv)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func (s *Store) ListInvoices(ctx context.Context, query string, limit, offset int) ([]core.InvoiceWithCustomer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	all := s.sortedInvoices(strings.ToLower(strings.TrimSpace(query)))
	if offset >= len(all) {
		return nil, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (s *Store) CountInvoices(ctx context.Context, query string) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.sortedInvoices(strings.ToLower(strings.TrimSpace(query))))), nil
}

func (s *Store) LatestInvoices(ctx context.Context, n int) ([]core.InvoiceWithCustomer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if n <= 0 {
		n = 5
	}
	all := s.sortedInvoices("")
	if n > len(all) {
		n = len(all)
	}
	return all[:n], nil
}

// ---------- DASHBOARD ----------

func (s *Store) CardData(ctx context.Context) (*core.CardData, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cd := &core.CardData{
		InvoiceCount:  int64(len(s.invoices)),
		CustomerCount: int64(len(s.customers)),
	}
	for _, inv := range s.invoices {
		switch inv.Status {
		case core.InvoicePaid:
			cd.TotalPaidCents += inv.AmountCents
		case core.InvoicePending:
			cd.TotalPendingCents += inv.AmountCents
		}
	}
	return cd, nil
}

func (s *Store) RevenueSeries(ctx context.Context) ([]core.Revenue, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []core.Revenue
	for _, r := range s.revenue {
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool {
		return core.MonthOrder(out[i].Month) < core.MonthOrder(out[j].Month)
	})
	return out, nil
}

func (s *Store) UpsertRevenue(ctx context.Context, r *core.Revenue) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *r
	s.revenue[r.Month] = &cp
	return nil
}

// ---------- USERS ----------

func (s *Store) CreateUser(ctx context.Context, u *core.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := strings.ToLower(u.Email)
	if _, ok := s.users[key]; ok {
		return core.ErrConflict
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
	}
	cp := *u
	s.users[key] = &cp
	return nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*core.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[strings.ToLower(email)]
	if !ok {
		return nil, core.ErrNotFound
	}
	cp := *u
	return &cp, nil
}
