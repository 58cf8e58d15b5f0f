package infra

import (
	"fmt"
	"net/smtp"
	"strings"

	"tiendapos/internal/config"

	"github.com/jordan-wright/email"
)

// Mailer wraps SMTP configuration for outbound notification mails.
type Mailer struct {
	host     string
	port     int
	user     string
	password string
	addr     string
	domain   string
}

func NewMailer(cfg *config.Config) *Mailer {
	return &Mailer{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		user:     cfg.SMTPUser,
		password: cfg.SMTPPassword,
		addr:     fmt.Sprintf("%s:%d", cfg.SMTPHost, cfg.SMTPPort),
		domain:   cfg.Domain,
	}
}

// SendInvitation mails a pending team invitation to someone who has not
// registered yet.
func (m *Mailer) SendInvitation(to, businessName, role string) error {
	e := email.NewEmail()
	e.From = m.user
	e.To = []string{to}
	e.Subject = fmt.Sprintf("Invitación al equipo de %s", businessName)
	e.Text = []byte(fmt.Sprintf(
		"Has sido invitado a unirte al equipo de %s con el rol de %s.\n\n"+
			"Registrate en https://%s para aceptar la invitación.\n",
		businessName, role, m.domain,
	))

	auth := smtp.PlainAuth("", m.user, m.password, m.host)
	return e.Send(m.addr, auth)
}

// SendLowStockAlert mails the tenant owner a list of products that fell to
// the low-stock threshold.
func (m *Mailer) SendLowStockAlert(to string, lines []string) error {
	e := email.NewEmail()
	e.From = m.user
	e.To = []string{to}
	e.Subject = "Alerta de stock bajo"
	e.Text = []byte(fmt.Sprintf(
		"Los siguientes productos están por agotarse:\n\n%s\n\nReponé stock desde la sección de compras.\n",
		strings.Join(lines, "\n"),
	))

	auth := smtp.PlainAuth("", m.user, m.password, m.host)
	return e.Send(m.addr, auth)
}
