package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dropDatabas3/acmedash/internal/store/core"
)

func day(s string) time.Time {
	t, _ := time.Parse("2006-01-02", s)
	return t
}

func seed(t *testing.T) *Store {
	t.Helper()
	ctx := context.Background()
	st := New()

	customers := []*core.Customer{
		{ID: "c1", Name: "Evil Rabbit", Email: "evil@rabbit.com"},
		{ID: "c2", Name: "Delba de Oliveira", Email: "delba@oliveira.com"},
	}
	for _, c := range customers {
		if err := st.CreateCustomer(ctx, c); err != nil {
			t.Fatalf("seed customer: %v", err)
		}
	}
	invoices := []*core.Invoice{
		{ID: "i1", CustomerID: "c1", AmountCents: 15795, Status: core.InvoicePending, Date: day("2025-12-06")},
		{ID: "i2", CustomerID: "c1", AmountCents: 20348, Status: core.InvoicePaid, Date: day("2025-11-14")},
		{ID: "i3", CustomerID: "c2", AmountCents: 3040, Status: core.InvoicePaid, Date: day("2025-10-29")},
	}
	for _, inv := range invoices {
		if err := st.CreateInvoice(ctx, inv); err != nil {
			t.Fatalf("seed invoice: %v", err)
		}
	}
	return st
}

func TestInvoiceCRUD(t *testing.T) {
	ctx := context.Background()
	st := seed(t)

	inv, err := st.GetInvoice(ctx, "i1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if inv.AmountCents != 15795 || inv.Status != core.InvoicePending {
		t.Fatalf("invoice inesperada: %+v", inv)
	}

	inv.Status = core.InvoicePaid
	if err := st.UpdateInvoice(ctx, inv); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, _ := st.GetInvoice(ctx, "i1")
	if got.Status != core.InvoicePaid {
		t.Fatalf("update no persistió: %+v", got)
	}

	if err := st.DeleteInvoice(ctx, "i1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := st.GetInvoice(ctx, "i1"); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("get post-delete: %v", err)
	}
	if err := st.DeleteInvoice(ctx, "i1"); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("delete doble: %v", err)
	}
}

func TestCreateInvoice_UnknownCustomer(t *testing.T) {
	st := seed(t)
	err := st.CreateInvoice(context.Background(), &core.Invoice{
		ID: "ix", CustomerID: "ghost", AmountCents: 100, Status: core.InvoicePending, Date: day("2025-01-01"),
	})
	if !errors.Is(err, core.ErrInvalid) {
		t.Fatalf("customer inexistente: want ErrInvalid, got %v", err)
	}
}

func TestListInvoices_FilterAndOrder(t *testing.T) {
	ctx := context.Background()
	st := seed(t)

	all, err := st.ListInvoices(ctx, "", 10, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("len = %d, want 3", len(all))
	}
	// orden: fecha descendente
	if all[0].ID != "i1" || all[2].ID != "i3" {
		t.Fatalf("orden inesperado: %s..%s", all[0].ID, all[2].ID)
	}
	if all[0].CustomerName != "Evil Rabbit" {
		t.Fatalf("join de customer roto: %+v", all[0])
	}

	byName, _ := st.ListInvoices(ctx, "delba", 10, 0)
	if len(byName) != 1 || byName[0].ID != "i3" {
		t.Fatalf("filtro por nombre: %+v", byName)
	}

	byStatus, _ := st.ListInvoices(ctx, "pending", 10, 0)
	if len(byStatus) != 1 || byStatus[0].ID != "i1" {
		t.Fatalf("filtro por estado: %+v", byStatus)
	}

	n, _ := st.CountInvoices(ctx, "paid")
	if n != 2 {
		t.Fatalf("count paid = %d, want 2", n)
	}

	page, _ := st.ListInvoices(ctx, "", 2, 2)
	if len(page) != 1 || page[0].ID != "i3" {
		t.Fatalf("paginación: %+v", page)
	}
}

func TestCardData(t *testing.T) {
	st := seed(t)
	cd, err := st.CardData(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if cd.InvoiceCount != 3 || cd.CustomerCount != 2 {
		t.Fatalf("conteos: %+v", cd)
	}
	if cd.TotalPaidCents != 20348+3040 || cd.TotalPendingCents != 15795 {
		t.Fatalf("totales: %+v", cd)
	}
}

func TestListCustomers_Aggregates(t *testing.T) {
	st := seed(t)
	out, err := st.ListCustomers(context.Background(), "")
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 2 {
		t.Fatalf("len = %d", len(out))
	}
	// orden alfabético: Delba primero
	if out[0].Name != "Delba de Oliveira" || out[0].TotalInvoices != 1 || out[0].TotalPaidCents != 3040 {
		t.Fatalf("agregados delba: %+v", out[0])
	}
	if out[1].TotalInvoices != 2 || out[1].TotalPendingCents != 15795 {
		t.Fatalf("agregados rabbit: %+v", out[1])
	}
}

func TestRevenueSeries_Sorted(t *testing.T) {
	ctx := context.Background()
	st := New()
	for _, r := range []core.Revenue{{Month: "Mar", Revenue: 22}, {Month: "Jan", Revenue: 20}, {Month: "Feb", Revenue: 18}} {
		rr := r
		if err := st.UpsertRevenue(ctx, &rr); err != nil {
			t.Fatal(err)
		}
	}
	out, err := st.RevenueSeries(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 3 || out[0].Month != "Jan" || out[2].Month != "Mar" {
		t.Fatalf("serie desordenada: %+v", out)
	}
}

func TestUsers(t *testing.T) {
	ctx := context.Background()
	st := New()
	u := &core.User{ID: "u1", Name: "User", Email: "user@acme.dev", Role: "admin"}
	if err := st.CreateUser(ctx, u); err != nil {
		t.Fatal(err)
	}
	if err := st.CreateUser(ctx, &core.User{ID: "u2", Email: "USER@acme.dev"}); !errors.Is(err, core.ErrConflict) {
		t.Fatalf("email duplicado: %v", err)
	}
	got, err := st.GetUserByEmail(ctx, "user@acme.dev")
	if err != nil || got.Role != "admin" {
		t.Fatalf("get user: %+v %v", got, err)
	}
}

func TestDeleteCustomer_WithInvoices(t *testing.T) {
	ctx := context.Background()
	st := seed(t)

	// c1 tiene invoices: el borrado se rechaza, como el FK en pg.
	if err := st.DeleteCustomer(ctx, "c1"); !errors.Is(err, core.ErrInvalid) {
		t.Fatalf("borrar customer con invoices: %v", err)
	}

	if err := st.DeleteInvoice(ctx, "i1"); err != nil {
		t.Fatal(err)
	}
	if err := st.DeleteInvoice(ctx, "i2"); err != nil {
		t.Fatal(err)
	}
	if err := st.DeleteCustomer(ctx, "c1"); err != nil {
		t.Fatalf("borrar customer sin invoices: %v", err)
	}
	if _, err := st.GetCustomer(ctx, "c1"); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("customer debería no existir: %v", err)
	}
}
