package mailer

import (
	"bytes"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestRenderDecisionTemplate(t *testing.T) {
	vars := DecisionNotificationData{
		AppName:    "ConfPortal",
		AuthorName: "Ada Lovelace",
		PaperTitle: "Bounded reviewer assignment",
		Decision:   "Accept",
		Comment:    "Great <work>",
		PaperURL:   "http://localhost:3000/papers/p1",
	}

	subject, body, err := render(DECISION_NOTIFICATION_TEMPLATE, vars)
	if err != nil {
		t.Fatalf("failed to render template: %v", err)
	}

	if subject != `[ConfPortal] Decision on "Bounded reviewer assignment"` {
		t.Errorf("unexpected subject %q", subject)
	}

	for _, want := range []string{"Ada Lovelace", "<strong>Accept</strong>", "Great &lt;work&gt;", vars.PaperURL} {
		if !strings.Contains(body, want) {
			t.Errorf("body does not contain %q", want)
		}
	}

	vars.Comment = ""
	_, body, err = render(DECISION_NOTIFICATION_TEMPLATE, vars)
	if err != nil {
		t.Fatalf("failed to render template: %v", err)
	}
	if strings.Contains(body, "blockquote") {
		t.Errorf("empty comment should not be rendered")
	}
}

func TestRenderUnknownTemplate(t *testing.T) {
	if _, _, err := render("missing.tmpl", nil); err == nil {
		t.Errorf("expected error for missing template")
	}
}

func TestGmailMessageHeaders(t *testing.T) {
	gm := NewGmailMailer("noreply@confportal.test", "secret", zap.NewNop().Sugar())

	message, err := gm.message(DECISION_NOTIFICATION_TEMPLATE, "Ada Lovelace", "ada@confportal.test", DecisionNotificationData{
		AppName:    "ConfPortal",
		PaperTitle: "Bounded reviewer assignment",
		Decision:   "Reject",
	})
	if err != nil {
		t.Fatalf("failed to build message: %v", err)
	}

	if to := message.GetHeader("To"); len(to) != 1 || !strings.Contains(to[0], "ada@confportal.test") {
		t.Errorf("unexpected To header %v", to)
	}

	buf := new(bytes.Buffer)
	if _, err := message.WriteTo(buf); err != nil {
		t.Fatalf("failed to write message: %v", err)
	}
	if !strings.Contains(buf.String(), "Reject") {
		t.Errorf("message body does not contain the decision")
	}
}

func TestSendgridMessageIsSandboxedOutsideProduction(t *testing.T) {
	m := NewSendgrid("key", "noreply@confportal.test", false, zap.NewNop().Sugar())

	message, err := m.message(DECISION_NOTIFICATION_TEMPLATE, "Ada Lovelace", "ada@confportal.test", DecisionNotificationData{
		AppName:    "ConfPortal",
		PaperTitle: "Bounded reviewer assignment",
		Decision:   "Revise",
	})
	if err != nil {
		t.Fatalf("failed to build message: %v", err)
	}

	if message.Subject != `[ConfPortal] Decision on "Bounded reviewer assignment"` {
		t.Errorf("unexpected subject %q", message.Subject)
	}
	if len(message.Personalizations) != 1 || message.Personalizations[0].To[0].Address != "ada@confportal.test" {
		t.Errorf("unexpected recipients %+v", message.Personalizations)
	}
	sandbox := message.MailSettings.SandboxMode
	if sandbox == nil || sandbox.Enable == nil || !*sandbox.Enable {
		t.Errorf("expected sandbox mode outside production")
	}
}
