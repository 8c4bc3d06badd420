package mailer

import (
	"fmt"
	"time"

	"github.com/SeakMengs/ConfPortal/internal/util"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"
)

type SendGridMailer struct {
	fromEmail string
	client    *sendgrid.Client
	// sandboxed requests are validated by SendGrid but never delivered
	sandbox bool
	logger  *zap.SugaredLogger
}

func NewSendgrid(apiKey string, fromEmail string, isProduction bool, logger *zap.SugaredLogger) *SendGridMailer {
	if logger == nil {
		logger = util.NewLogger()
	}

	return &SendGridMailer{
		fromEmail: fromEmail,
		client:    sendgrid.NewSendClient(apiKey),
		sandbox:   !isProduction,
		logger:    logger,
	}
}

func (m SendGridMailer) message(templateFile MailTemplateFile, toName, toEmail string, data any) (*mail.SGMailV3, error) {
	subject, body, err := render(templateFile, data)
	if err != nil {
		return nil, err
	}

	from := mail.NewEmail(util.GetAppName(), m.fromEmail)
	message := mail.NewSingleEmail(from, subject, mail.NewEmail(toName, toEmail), "", body)
	message.SetMailSettings(&mail.MailSettings{
		SandboxMode: &mail.Setting{Enable: &m.sandbox},
	})
	return message, nil
}

// Send retries transport errors MAX_RETRY times with linear backoff. A
// response with a non 2xx status is returned as is for the caller to judge.
func (m SendGridMailer) Send(templateFile MailTemplateFile, toName, toEmail string, data any) (int, error) {
	message, err := m.message(templateFile, toName, toEmail, data)
	if err != nil {
		m.logger.Errorw("failed to render email template", "error", err, "templateFile", templateFile)
		return -1, err
	}

	var lastErr error
	for attempt := 1; attempt <= MAX_RETRY; attempt++ {
		response, err := m.client.Send(message)
		if err == nil {
			m.logger.Infow("email handed to sendgrid", "toEmail", toEmail, "templateFile", templateFile, "status", response.StatusCode)
			return response.StatusCode, nil
		}

		lastErr = err
		if attempt < MAX_RETRY {
			time.Sleep(time.Duration(attempt) * time.Second)
		}
	}

	m.logger.Errorw("failed to send email", "error", lastErr, "toEmail", toEmail, "attempts", MAX_RETRY)
	return -1, fmt.Errorf("failed to send email after %d attempts: %w", MAX_RETRY, lastErr)
}
