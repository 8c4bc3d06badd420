package mailer

import (
	"bytes"
	"embed"
	"html/template"

	"github.com/SeakMengs/ConfPortal/internal/config"
	"go.uber.org/zap"
)

type MailTemplateFile string

const (
	MAX_RETRY = 3

	DECISION_NOTIFICATION_TEMPLATE MailTemplateFile = "decision_notification.tmpl"
)

//go:embed "templates"
var FS embed.FS

type Client interface {
	Send(templateFile MailTemplateFile, toName, toEmail string, data any) (int, error)
}

// New picks SendGrid in production and Gmail SMTP everywhere else.
func New(cfg config.Config, logger *zap.SugaredLogger) Client {
	if cfg.IsProduction() {
		return NewSendgrid(cfg.Mail.SEND_GRID.API_KEY, cfg.Mail.FROM_EMAIL, true, logger)
	}
	return NewGmailMailer(cfg.Mail.GMAIL_USERNAME, cfg.Mail.GMAIL_APP_PASSWORD, logger)
}

// render executes the "subject" and "body" blocks of an embedded template.
func render(templateFile MailTemplateFile, data any) (string, string, error) {
	tmpl, err := template.ParseFS(FS, "templates/"+string(templateFile))
	if err != nil {
		return "", "", err
	}

	subject := new(bytes.Buffer)
	if err := tmpl.ExecuteTemplate(subject, "subject", data); err != nil {
		return "", "", err
	}

	body := new(bytes.Buffer)
	if err := tmpl.ExecuteTemplate(body, "body", data); err != nil {
		return "", "", err
	}

	return subject.String(), body.String(), nil
}

// DecisionNotificationData is executed against DECISION_NOTIFICATION_TEMPLATE.
type DecisionNotificationData struct {
	AppName    string `json:"appName"`
	PaperID    string `json:"paperId"`
	PaperTitle string `json:"paperTitle"`
	AuthorName string `json:"authorName"`
	Decision   string `json:"decision"`
	Comment    string `json:"comment"`
	PaperURL   string `json:"paperUrl"`
	LogoURL    string `json:"logoUrl"`
}
