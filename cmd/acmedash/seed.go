package main

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/dropDatabas3/acmedash/internal/authz"
	"github.com/dropDatabas3/acmedash/internal/cache"
	"github.com/dropDatabas3/acmedash/internal/config"
	"github.com/dropDatabas3/acmedash/internal/session"
	"github.com/dropDatabas3/acmedash/internal/store/core"
)

// newSeedCmd carga datos de demo: customers, invoices, revenue, usuarios con
// los tres roles y (con --sessions) tokens de sesión listos para probar la API.
func newSeedCmd(loadConfig func() (*config.Config, error)) *cobra.Command {
	var withSessions bool

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Carga datos de demostración",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			repo, err := openRepository(ctx, cfg)
			if err != nil {
				return err
			}
			defer repo.Close()

			if err := seedData(ctx, repo); err != nil {
				return err
			}
			fmt.Println("seed: datos de demo cargados")

			if withSessions {
				if err := seedSessions(ctx, cfg); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&withSessions, "sessions", false, "además crea tokens de sesión demo (viewer/editor/admin)")
	return cmd
}

func seedData(ctx context.Context, repo core.Repository) error {
	users := []core.User{
		{ID: uuid.NewString(), Name: "Vera Viewer", Email: "viewer@acme.test", Role: "viewer"},
		{ID: uuid.NewString(), Name: "Eddie Editor", Email: "editor@acme.test", Role: "editor"},
		{ID: uuid.NewString(), Name: "Ada Admin", Email: "admin@acme.test", Role: "admin"},
	}
	for i := range users {
		if err := repo.CreateUser(ctx, &users[i]); err != nil {
			return fmt.Errorf("seed: user %s: %w", users[i].Email, err)
		}
	}

	customers := []core.Customer{
		{ID: uuid.NewString(), Name: "Evil Rabbit", Email: "evil@rabbit.com", ImageURL: "/customers/evil-rabbit.png"},
		{ID: uuid.NewString(), Name: "Delba de Oliveira", Email: "delba@oliveira.com", ImageURL: "/customers/delba-de-oliveira.png"},
		{ID: uuid.NewString(), Name: "Lee Robinson", Email: "lee@robinson.com", ImageURL: "/customers/lee-robinson.png"},
		{ID: uuid.NewString(), Name: "Michael Novotny", Email: "michael@novotny.com", ImageURL: "/customers/michael-novotny.png"},
		{ID: uuid.NewString(), Name: "Amy Burns", Email: "amy@burns.com", ImageURL: "/customers/amy-burns.png"},
		{ID: uuid.NewString(), Name: "Balazs Orban", Email: "balazs@orban.com", ImageURL: "/customers/balazs-orban.png"},
	}
	for i := range customers {
		if err := repo.CreateCustomer(ctx, &customers[i]); err != nil {
			return fmt.Errorf("seed: customer %s: %w", customers[i].Email, err)
		}
	}

	day := func(s string) time.Time {
		d, _ := time.Parse("2006-01-02", s)
		return d
	}
	invoices := []core.Invoice{
		{CustomerID: customers[0].ID, AmountCents: 15795, Status: core.InvoicePending, Date: day("2025-12-06")},
		{CustomerID: customers[1].ID, AmountCents: 20348, Status: core.InvoicePending, Date: day("2025-11-14")},
		{CustomerID: customers[4].ID, AmountCents: 306200, Status: core.InvoicePaid, Date: day("2025-10-29")},
		{CustomerID: customers[3].ID, AmountCents: 44800, Status: core.InvoicePaid, Date: day("2025-09-10")},
		{CustomerID: customers[5].ID, AmountCents: 34577, Status: core.InvoicePending, Date: day("2025-08-05")},
		{CustomerID: customers[2].ID, AmountCents: 54246, Status: core.InvoicePending, Date: day("2025-07-16")},
		{CustomerID: customers[0].ID, AmountCents: 66666, Status: core.InvoicePending, Date: day("2025-06-27")},
		{CustomerID: customers[3].ID, AmountCents: 32545, Status: core.InvoicePaid, Date: day("2025-06-09")},
		{CustomerID: customers[4].ID, AmountCents: 1250, Status: core.InvoicePaid, Date: day("2025-06-17")},
		{CustomerID: customers[5].ID, AmountCents: 8546, Status: core.InvoicePaid, Date: day("2025-06-07")},
		{CustomerID: customers[1].ID, AmountCents: 500, Status: core.InvoicePaid, Date: day("2025-08-19")},
		{CustomerID: customers[5].ID, AmountCents: 8945, Status: core.InvoicePaid, Date: day("2025-06-03")},
		{CustomerID: customers[2].ID, AmountCents: 100000, Status: core.InvoicePaid, Date: day("2025-06-05")},
	}
	for i := range invoices {
		invoices[i].ID = uuid.NewString()
		if err := repo.CreateInvoice(ctx, &invoices[i]); err != nil {
			return fmt.Errorf("seed: invoice %d: %w", i, err)
		}
	}

	revenue := map[string]int64{
		"Jan": 2000, "Feb": 1800, "Mar": 2200, "Apr": 2500,
		"May": 2300, "Jun": 3200, "Jul": 3500, "Aug": 3700,
		"Sep": 2500, "Oct": 2800, "Nov": 3000, "Dec": 4800,
	}
	for month, amount := range revenue {
		if err := repo.UpsertRevenue(ctx, &core.Revenue{Month: month, Revenue: amount}); err != nil {
			return fmt.Errorf("seed: revenue %s: %w", month, err)
		}
	}
	return nil
}

// seedSessions escribe sesiones demo en el backend de sesiones, una por rol.
// Los tokens son fijos para poder copiarlos en curl.
func seedSessions(ctx context.Context, cfg *config.Config) error {
	cacheClient, err := cache.New(cache.Config{
		Kind:       cfg.Cache.Kind,
		Prefix:     cfg.Cache.Prefix,
		Addr:       cfg.Cache.Redis.Addr,
		Password:   cfg.Cache.Redis.Password,
		DB:         cfg.Cache.Redis.DB,
		DefaultTTL: cfg.CacheDefaultTTL(),
	})
	if err != nil {
		return err
	}
	defer func() { _ = cacheClient.Close() }()

	if cfg.Cache.Kind == "memory" {
		return fmt.Errorf("seed: --sessions requiere cache.kind=redis (el cache memory muere con este proceso)")
	}

	store := session.NewStore(cacheClient, cfg.SessionTTL())
	demo := []struct {
		token string
		sess  authz.Session
	}{
		{"demo-viewer", authz.Session{UserID: "demo-viewer", Email: "viewer@acme.test", Role: "viewer"}},
		{"demo-editor", authz.Session{UserID: "demo-editor", Email: "editor@acme.test", Role: "editor"}},
		{"demo-admin", authz.Session{UserID: "demo-admin", Email: "admin@acme.test", Role: "admin"}},
	}
	for _, d := range demo {
		if err := store.Put(ctx, d.token, d.sess); err != nil {
			return fmt.Errorf("seed: session %s: %w", d.token, err)
		}
		fmt.Printf("seed: cookie %s=%s (%s)\n", cfg.Auth.Session.CookieName, d.token, d.sess.Role)
	}
	return nil
}
