// Package email sends out-of-band copies of notifications over SMTP.
// Delivery is fire-and-forget: callers log and swallow failures, nothing is
// retried, and delivery never affects the durable write which triggered it.
package email

import (
	"encoding/json"
	"errors"
	"net/smtp"
)

// Dispatcher holds SMTP connection parameters.
type Dispatcher struct {
	// Address of the SMTP server.
	SMTPAddr string `json:"smtp_server"`
	// Port of the SMTP server.
	SMTPPort string `json:"smtp_port"`
	// Address to use in the From: field.
	SendFrom string `json:"sender"`
	// Login to use with the SMTP server.
	Login string `json:"login"`
	// Password to use with the SMTP server.
	SenderPassword string `json:"sender_password"`

	auth smtp.Auth
}

// Init parses the config and readies the dispatcher. A nil config disables
// sending: Send becomes a no-op.
func (d *Dispatcher) Init(jsonconf json.RawMessage) error {
	if len(jsonconf) == 0 {
		return nil
	}

	if err := json.Unmarshal(jsonconf, d); err != nil {
		return errors.New("email: failed to parse config: " + err.Error())
	}

	if d.SMTPAddr == "" || d.SMTPPort == "" {
		return errors.New("email: missing smtp_server or smtp_port")
	}
	if d.SendFrom == "" {
		return errors.New("email: missing sender")
	}

	if d.SenderPassword != "" {
		login := d.Login
		if login == "" {
			login = d.SendFrom
		}
		d.auth = smtp.PlainAuth("", login, d.SenderPassword, d.SMTPAddr)
	}

	return nil
}

// Enabled reports whether the dispatcher was configured.
func (d *Dispatcher) Enabled() bool {
	return d != nil && d.SMTPAddr != ""
}

// Send delivers one email to the listed recipients.
func (d *Dispatcher) Send(to []string, subj, body string) error {
	if !d.Enabled() || len(to) == 0 {
		return nil
	}

	rcpt := to[0]
	for _, t := range to[1:] {
		rcpt += ", " + t
	}

	return smtp.SendMail(d.SMTPAddr+":"+d.SMTPPort, d.auth, d.SendFrom, to,
		[]byte("From: "+d.SendFrom+
			"\nTo: "+rcpt+
			"\nSubject: "+subj+
			"\nMIME-version: 1.0;\nContent-Type: text/plain; charset=\"UTF-8\";\n\n"+
			body))
}
