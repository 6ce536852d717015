package core

import "time"

// InvoiceStatus es el estado de cobro de una invoice.
type InvoiceStatus string

const (
	InvoicePending InvoiceStatus = "pending"
	InvoicePaid    InvoiceStatus = "paid"
)

// ValidStatus reporta si s es un estado conocido.
func ValidStatus(s InvoiceStatus) bool {
	return s == InvoicePending || s == InvoicePaid
}

type Customer struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	ImageURL  string    `json:"image_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Invoice guarda montos en centavos para evitar floats.
type Invoice struct {
	ID          string        `json:"id"`
	CustomerID  string        `json:"customer_id"`
	AmountCents int64         `json:"amount_cents"`
	Status      InvoiceStatus `json:"status"`
	Date        time.Time     `json:"date"`
	CreatedAt   time.Time     `json:"created_at"`
}

// InvoiceWithCustomer es la fila desnormalizada para listados.
type InvoiceWithCustomer struct {
	Invoice
	CustomerName     string `json:"customer_name"`
	CustomerEmail    string `json:"customer_email"`
	CustomerImageURL string `json:"customer_image_url,omitempty"`
}

// Revenue es un punto de la serie mensual de ingresos.
type Revenue struct {
	Month   string `json:"month"` // "Jan".."Dec"
	Revenue int64  `json:"revenue"`
}

var monthOrder = map[string]int{
	"Jan": 1, "Feb": 2, "Mar": 3, "Apr": 4, "May": 5, "Jun": 6,
	"Jul": 7, "Aug": 8, "Sep": 9, "Oct": 10, "Nov": 11, "Dec": 12,
}

// MonthOrder devuelve la posición 1..12 del mes abreviado; 0 si es desconocido.
func MonthOrder(month string) int {
	return monthOrder[month]
}

// User es un usuario del dashboard. El rol vive como string canónico
// ("viewer"|"editor"|"admin"); internal/authz lo interpreta.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// CardData agrupa los totales de las cards del dashboard.
type CardData struct {
	InvoiceCount      int64 `json:"invoice_count"`
	CustomerCount     int64 `json:"customer_count"`
	TotalPaidCents    int64 `json:"total_paid_cents"`
	TotalPendingCents int64 `json:"total_pending_cents"`
}

// CustomerSummary es un customer con sus agregados de invoices.
type CustomerSummary struct {
	Customer
	TotalInvoices     int64 `json:"total_invoices"`
	TotalPendingCents int64 `json:"total_pending_cents"`
	TotalPaidCents    int64 `json:"total_paid_cents"`
}
