package mailer

import (
	"fmt"
	"net/http"

	"github.com/SeakMengs/ConfPortal/internal/util"
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

const (
	gmailSMTPHost = "smtp.gmail.com"
	gmailSMTPPort = 587
)

// GmailMailer sends through Gmail SMTP with an app password. Used outside
// production where SendGrid would only run in sandbox mode.
type GmailMailer struct {
	from   string
	dialer *gomail.Dialer
	logger *zap.SugaredLogger
}

func NewGmailMailer(username, password string, logger *zap.SugaredLogger) *GmailMailer {
	if logger == nil {
		logger = util.NewLogger()
	}

	return &GmailMailer{
		from:   username,
		dialer: gomail.NewDialer(gmailSMTPHost, gmailSMTPPort, username, password),
		logger: logger,
	}
}

func (gm *GmailMailer) message(templateFile MailTemplateFile, toName, toEmail string, data any) (*gomail.Message, error) {
	subject, body, err := render(templateFile, data)
	if err != nil {
		return nil, err
	}

	message := gomail.NewMessage()
	message.SetAddressHeader("From", gm.from, util.GetAppName())
	message.SetAddressHeader("To", toEmail, toName)
	message.SetHeader("Subject", subject)
	message.SetBody("text/html", body)

	return message, nil
}

// Send dials per message; the consumer sends at most a few mails a minute.
func (gm *GmailMailer) Send(templateFile MailTemplateFile, toName, toEmail string, data any) (int, error) {
	message, err := gm.message(templateFile, toName, toEmail, data)
	if err != nil {
		gm.logger.Errorw("failed to render email template", "error", err, "templateFile", templateFile)
		return http.StatusInternalServerError, err
	}

	if err := gm.dialer.DialAndSend(message); err != nil {
		gm.logger.Errorw("failed to send email", "error", err, "toEmail", toEmail, "templateFile", templateFile)
		return http.StatusInternalServerError, fmt.Errorf("failed to send email: %w", err)
	}

	gm.logger.Infow("email sent", "toEmail", toEmail, "templateFile", templateFile)
	return http.StatusOK, nil
}
