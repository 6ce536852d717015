package email

import (
	"strings"
	"testing"
	"time"

	"github.com/dropDatabas3/acmedash/internal/store/core"
)

func TestReminderBodies(t *testing.T) {
	date, _ := time.Parse("2006-01-02", "2025-12-06")
	inv := &core.Invoice{ID: "inv-1", AmountCents: 15795, Status: core.InvoicePending, Date: date}

	text, html := ReminderBodies("Evil Rabbit", inv)

	for _, want := range []string{"Evil Rabbit", "inv-1", "$157.95", "2025-12-06"} {
		if !strings.Contains(text, want) {
			t.Errorf("texto sin %q:\n%s", want, text)
		}
		if !strings.Contains(html, want) {
			t.Errorf("html sin %q:\n%s", want, html)
		}
	}

	if got := ReminderSubject(inv); !strings.Contains(got, "inv-1") {
		t.Errorf("subject sin id: %q", got)
	}
}

func TestReminderBodies_SmallAmounts(t *testing.T) {
	inv := &core.Invoice{ID: "inv-2", AmountCents: 500, Date: time.Now()}
	text, _ := ReminderBodies("Amy", inv)
	if !strings.Contains(text, "$5.00") {
		t.Errorf("formato de centavos: %s", text)
	}
}
