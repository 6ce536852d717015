package email

import (
	"fmt"

	"github.com/dropDatabas3/acmedash/internal/store/core"
)

// ReminderSubject arma el asunto del recordatorio de pago.
func ReminderSubject(inv *core.Invoice) string {
	return fmt.Sprintf("Payment reminder: invoice %s", inv.ID)
}

// ReminderBodies arma los cuerpos (texto y HTML) del recordatorio.
func ReminderBodies(customerName string, inv *core.Invoice) (text, html string) {
	amount := fmt.Sprintf("$%d.%02d", inv.AmountCents/100, inv.AmountCents%100)
	due := inv.Date.Format("2006-01-02")

	text = fmt.Sprintf(
		"Hi %s,\n\nThis is a friendly reminder that invoice %s for %s, dated %s, is still pending.\n\nThanks,\nAcme",
		customerName, inv.ID, amount, due,
	)
	html = fmt.Sprintf(
		"<p>Hi %s,</p><p>This is a friendly reminder that invoice <strong>%s</strong> for <strong>%s</strong>, dated %s, is still pending.</p><p>Thanks,<br>Acme</p>",
		customerName, inv.ID, amount, due,
	)
	return text, html
}
