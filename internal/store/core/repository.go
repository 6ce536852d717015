package core

import "context"

// Repository es el contrato de persistencia del dashboard.
// Implementaciones: pg (producción) y memory (dev/tests).
type Repository interface {
	Ping(ctx context.Context) error
	Close()

	// Customers
	CreateCustomer(ctx context.Context, c *Customer) error
	GetCustomer(ctx context.Context, id string) (*Customer, error)
	UpdateCustomer(ctx context.Context, c *Customer) error
	DeleteCustomer(ctx context.Context, id string) error
	ListCustomers(ctx context.Context, query string) ([]CustomerSummary, error)

	// Invoices
	CreateInvoice(ctx context.Context, inv *Invoice) error
	GetInvoice(ctx context.Context, id string) (*Invoice, error)
	UpdateInvoice(ctx context.Context, inv *Invoice) error
	DeleteInvoice(ctx context.Context, id string) error
	ListInvoices(ctx context.Context, query string, limit, offset int) ([]InvoiceWithCustomer, error)
	CountInvoices(ctx context.Context, query string) (int64, error)
	LatestInvoices(ctx context.Context, n int) ([]InvoiceWithCustomer, error)

	// Dashboard
	CardData(ctx context.Context) (*CardData, error)
	RevenueSeries(ctx context.Context) ([]Revenue, error)
	UpsertRevenue(ctx context.Context, r *Revenue) error

	// Users
	CreateUser(ctx context.Context, u *User) error
	GetUserByEmail(ctx context.Context, email string) (*User, error)
}
