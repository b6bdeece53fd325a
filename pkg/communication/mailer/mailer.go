// Package mailer sends the support-ticket alert mail. Sending is
// best-effort: a mail failure never fails the ticket.
package mailer

import (
	"fmt"
	"log"
	"net/smtp"
)

type Mailer struct {
	host string
	port string
	user string
	pass string
}

func New(host, port, user, pass string) *Mailer {
	return &Mailer{host: host, port: port, user: user, pass: pass}
}

// Send delivers a plain-text mail. A mailer with no host configured is a
// no-op so development setups work without SMTP.
func (m *Mailer) Send(to, subject, body string) error {
	if m.host == "" {
		log.Printf("[mail] smtp not configured, skipping alert %q", subject)
		return nil
	}
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s\r\n",
		m.user, to, subject, body)
	auth := smtp.PlainAuth("", m.user, m.pass, m.host)
	if err := smtp.SendMail(m.host+":"+m.port, auth, m.user, []string{to}, []byte(msg)); err != nil {
		log.Printf("[mail] send failed: %v", err)
		return err
	}
	return nil
}
