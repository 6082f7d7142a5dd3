// Package mailer sends order confirmations. Checkout treats delivery as
// best-effort: a returned error is logged by the caller and never rolls
// back the order.
package mailer

import (
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"

	"github.com/romich96/AlexCoffee/internal/models"
)

type SMTPMailer struct {
	Host     string
	Port     string
	Sender   string
	Password string
}

func NewSMTPMailer(host, port, sender, password string) *SMTPMailer {
	return &SMTPMailer{Host: host, Port: port, Sender: sender, Password: password}
}

func (m *SMTPMailer) SendOrder(order *models.Order) error {
	if order.Client == nil || order.Client.Email == "" {
		return fmt.Errorf("order %s has no client email", order.Number)
	}

	body := orderBody(order)
	msg := strings.Join([]string{
		"From: " + m.Sender,
		"To: " + order.Client.Email,
		"Subject: Order " + order.Number + " - AlexCoffee",
		"MIME-Version: 1.0",
		`Content-Type: text/plain; charset="utf-8"`,
		"",
		body,
	}, "\r\n")

	auth := smtp.PlainAuth("", m.Sender, m.Password, m.Host)
	return smtp.SendMail(m.Host+":"+m.Port, auth, m.Sender, []string{order.Client.Email}, []byte(msg))
}

func orderBody(order *models.Order) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Thank you for your order!\n\nOrder %s\n\n", order.Number)
	for _, pos := range order.Positions {
		fmt.Fprintf(&b, "%s x%d — %.2f\n", pos.ProductTitle, pos.Quantity, pos.Sum())
	}
	fmt.Fprintf(&b, "\nTotal: %.2f\n", order.Total())
	if order.Address != "" {
		fmt.Fprintf(&b, "Delivery address: %s\n", order.Address)
	}
	return b.String()
}

// LogMailer logs the confirmation instead of delivering it. Used when
// SMTP is not configured, typically in development.
type LogMailer struct{}

func (LogMailer) SendOrder(order *models.Order) error {
	slog.Info("==========================================")
	slog.Info("📧 EMAIL SENT TO: " + order.Client.Email)
	slog.Info("Subject: Order Confirmation - AlexCoffee")
	slog.Info("Order Number: " + order.Number)
	slog.Info(fmt.Sprintf("Order Total: %.2f", order.Total()))
	slog.Info("==========================================")
	return nil
}
