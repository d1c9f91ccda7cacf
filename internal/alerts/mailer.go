// Package alerts sends operational emails: low-stock warnings as they
// happen and a daily sales summary at close of business.
package alerts

import (
	"fmt"
	"log"
	"net/smtp"
	"time"

	"github.com/dlwlrmwa/Amari-POS-and-Inventory-Management-System/internal/config"
)

// Mailer sends plain SMTP mail using the store's alert configuration. A
// zero-configured mailer silently drops everything, so callers never need
// to check whether alerting is enabled.
type Mailer struct {
	cfg config.Config
}

func NewMailer(cfg config.Config) *Mailer {
	return &Mailer{cfg: cfg}
}

func (m *Mailer) send(subject, contentType, body string) {
	if !m.cfg.AlertsEnabled() {
		return
	}

	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: %s\r\n\r\n%s",
		m.cfg.AlertFrom, m.cfg.AlertTo, subject, contentType, body)

	addr := fmt.Sprintf("%s:%s", m.cfg.SMTPServer, m.cfg.SMTPPort)
	auth := smtp.PlainAuth("", m.cfg.SMTPUser, m.cfg.SMTPPassword, m.cfg.SMTPServer)
	if m.cfg.SMTPAuthDisabled {
		auth = nil
	}

	go func() {
		if err := smtp.SendMail(addr, auth, m.cfg.AlertFrom, []string{m.cfg.AlertTo}, []byte(msg)); err != nil {
			log.Printf("failed to send alert email: %v", err)
		}
	}()
}

// LowStock warns that a product has fallen to or below its minimum stock.
func (m *Mailer) LowStock(productName string, stock, minStock int) {
	subject := fmt.Sprintf("LOW STOCK: %s", productName)
	body := fmt.Sprintf("Product: %s\nStock: %d\nMinimum: %d\nTime: %s",
		productName, stock, minStock, time.Now().Format(time.RFC3339))
	m.send(subject, "text/plain; charset=\"UTF-8\"", body)
}
