package alerts

import (
	"fmt"
	"strings"
	"time"

	models "github.com/dlwlrmwa/Amari-POS-and-Inventory-Management-System/internal/models"
	"github.com/dlwlrmwa/Amari-POS-and-Inventory-Management-System/internal/pricing"
	repo "github.com/dlwlrmwa/Amari-POS-and-Inventory-Management-System/internal/repo"
)

// StartDailySalesSummary emails a close-of-business report at 23:59 store
// time, every day. Runs forever; start it in a goroutine.
func (m *Mailer) StartDailySalesSummary(sales repo.SaleRepository, loc *time.Location) {
	for {
		now := time.Now().In(loc)
		next := time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 0, 0, loc)
		if now.After(next) {
			next = next.Add(24 * time.Hour)
		}
		time.Sleep(time.Until(next))
		m.SendDailySalesSummary(sales, loc)
	}
}

// SendDailySalesSummary composes and sends the report for today's sales.
func (m *Mailer) SendDailySalesSummary(sales repo.SaleRepository, loc *time.Location) {
	today := time.Now().In(loc).Format("2006-01-02")
	todays, err := sales.GetByDateRange(today, today)
	if err != nil || len(todays) == 0 {
		return
	}

	var total float64
	byMethod := map[string]float64{}
	for _, s := range todays {
		total += s.TotalAmount
		byMethod[s.PaymentMethod] += s.TotalAmount
	}
	vat := pricing.VATBreakdown(total)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("<h2>Daily Sales Summary — %s</h2>", today))
	sb.WriteString(fmt.Sprintf("<p>Transactions: <strong>%d</strong></p>", len(todays)))
	sb.WriteString(fmt.Sprintf("<p>Gross sales: <strong>%.2f</strong> (net %.2f, VAT %.2f)</p>",
		total, vat.Subtotal, vat.VATAmount))

	sb.WriteString("<h3>By payment method</h3><ul>")
	for method, amount := range byMethod {
		sb.WriteString(fmt.Sprintf("<li>%s: %.2f</li>", method, amount))
	}
	sb.WriteString("</ul>")

	sb.WriteString("<h3>Transactions</h3><ul>")
	for _, s := range todays {
		sb.WriteString(fmt.Sprintf("<li><b>%s</b> at %s — %.2f (%s)</li>",
			s.ID, s.Time, s.TotalAmount, paymentLabel(s)))
	}
	sb.WriteString("</ul>")

	m.send(fmt.Sprintf("Daily Sales Report %s", today), "text/html; charset=\"UTF-8\"", sb.String())
}

func paymentLabel(s models.Sale) string {
	if s.PaymentSubMethod != "" {
		return s.PaymentMethod + "/" + s.PaymentSubMethod
	}
	return s.PaymentMethod
}
