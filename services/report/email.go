// File: services/report/email.go
package report

import (
	"encoding/json"
	"fmt"
	"io"

	"caredesk/config"

	"github.com/hibiken/asynq"
	"gopkg.in/gomail.v2"
)

const TypeReportEmail = "report:email"

// EmailPayload is the queued report-delivery task. The document is rendered
// at enqueue time so no upstream credentials ever enter the queue.
type EmailPayload struct {
	Recipient string `json:"recipient"`
	Subject   string `json:"subject"`
	Filename  string `json:"filename"`
	CSV       []byte `json:"csv"`
}

// NewEmailTask wraps the payload in an asynq task.
func NewEmailTask(payload EmailPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal report email payload: %w", err)
	}
	return asynq.NewTask(TypeReportEmail, data), nil
}

// Mailer sends rendered reports. The SMTP implementation is used in the
// worker; tests substitute their own.
type Mailer interface {
	SendReport(payload EmailPayload) error
}

// SMTPMailer delivers reports through the configured SMTP relay.
type SMTPMailer struct{}

func (SMTPMailer) SendReport(payload EmailPayload) error {
	cfg := config.AppConfig
	if cfg.SMTPHost == "" {
		return fmt.Errorf("SMTP is not configured")
	}

	m := gomail.NewMessage()
	m.SetHeader("From", cfg.ReportFromAddress)
	m.SetHeader("To", payload.Recipient)
	m.SetHeader("Subject", payload.Subject)
	m.SetBody("text/plain", "Attached is the patient payment report you requested.")
	m.Attach(payload.Filename, gomail.SetCopyFunc(func(w io.Writer) error {
		_, err := w.Write(payload.CSV)
		return err
	}))

	d := gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send report email: %w", err)
	}
	return nil
}
