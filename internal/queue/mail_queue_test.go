package queue

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/SeakMengs/ConfPortal/internal/constant"
	"github.com/SeakMengs/ConfPortal/internal/mailer"
	"github.com/SeakMengs/ConfPortal/internal/workflow"
	"go.uber.org/zap"
)

type fakePublisher struct {
	queue QueueName
	body  []byte
	err   error
}

func (p *fakePublisher) Publish(ctx context.Context, queue QueueName, body []byte) error {
	p.queue = queue
	p.body = body
	return p.err
}

var _ workflow.Notifier = (*MailPublisher)(nil)

func TestMailPublisherNotifyDecision(t *testing.T) {
	pub := &fakePublisher{}
	mp := NewMailPublisher(pub, "http://localhost:3000", zap.NewNop().Sugar())

	err := mp.NotifyDecision(context.Background(), workflow.DecisionNotification{
		PaperID:     "p1",
		PaperTitle:  "Bounded reviewer assignment",
		AuthorName:  "Ada Lovelace",
		AuthorEmail: "ada@confportal.test",
		Decision:    constant.DecisionRevise,
		Comment:     "tighten section 3",
	})
	if err != nil {
		t.Fatalf("notify failed: %v", err)
	}

	if pub.queue != QueueMail {
		t.Errorf("published to %s, want %s", pub.queue, QueueMail)
	}

	var job MailJobPayload
	if err := json.Unmarshal(pub.body, &job); err != nil {
		t.Fatalf("published body is not a mail job: %v", err)
	}
	if job.ToEmail != "ada@confportal.test" || job.TemplateFile != mailer.DECISION_NOTIFICATION_TEMPLATE || job.Try != 0 {
		t.Errorf("unexpected job %+v", job)
	}

	var data mailer.DecisionNotificationData
	if err := json.Unmarshal(job.Data, &data); err != nil {
		t.Fatalf("job data is not decision data: %v", err)
	}
	if data.Decision != "Revise" || data.PaperURL != "http://localhost:3000/papers/p1" {
		t.Errorf("unexpected data %+v", data)
	}
}

func TestMailPublisherReturnsPublishError(t *testing.T) {
	mp := NewMailPublisher(&fakePublisher{err: errors.New("channel closed")}, "", zap.NewNop().Sugar())

	if err := mp.NotifyDecision(context.Background(), workflow.DecisionNotification{PaperID: "p1"}); err == nil {
		t.Errorf("expected publish error to be returned")
	}
}

func TestDecideMailJob(t *testing.T) {
	app := &MailConsumerContext{Logger: zap.NewNop().Sugar()}
	ctx := context.Background()

	body := func(try int) []byte {
		job, _ := NewMailJobPayload("Ada", "ada@confportal.test", mailer.DECISION_NOTIFICATION_TEMPLATE, mailer.DecisionNotificationData{})
		job.Try = try
		b, _ := json.Marshal(job)
		return b
	}

	ok := func(context.Context, MailJobPayload, *MailConsumerContext) (bool, error) { return false, nil }
	transient := func(context.Context, MailJobPayload, *MailConsumerContext) (bool, error) {
		return true, errors.New("smtp timeout")
	}
	permanent := func(context.Context, MailJobPayload, *MailConsumerContext) (bool, error) {
		return false, errors.New("decision gone")
	}

	tests := []struct {
		name    string
		body    []byte
		handler MailJobHandler
		want    mailJobOutcome
	}{
		{"success", body(0), ok, mailJobDone},
		{"transient error retries", body(0), transient, mailJobRetry},
		{"retries exhausted", body(MAX_QUEUE_RETRY), transient, mailJobDrop},
		{"permanent error", body(0), permanent, mailJobDrop},
		{"empty body", nil, ok, mailJobDrop},
		{"garbage body", []byte("{"), ok, mailJobDrop},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, got, _ := decideMailJob(ctx, tt.body, tt.handler, app)
			if got != tt.want {
				t.Errorf("outcome = %d, want %d", got, tt.want)
			}
		})
	}
}

type sentMail struct {
	template mailer.MailTemplateFile
	toEmail  string
	data     any
}

type fakeMailer struct {
	sent chan sentMail
}

func (m *fakeMailer) Send(templateFile mailer.MailTemplateFile, toName, toEmail string, data any) (int, error) {
	m.sent <- sentMail{template: templateFile, toEmail: toEmail, data: data}
	return 202, nil
}

func TestInlineMailNotifierSendsInBackground(t *testing.T) {
	m := &fakeMailer{sent: make(chan sentMail, 1)}
	notifier := NewInlineMailNotifier(m, "http://localhost:3000", zap.NewNop().Sugar())

	err := notifier.NotifyDecision(context.Background(), workflow.DecisionNotification{
		PaperID:     "p2",
		PaperTitle:  "Fair queues",
		AuthorName:  "Grace Hopper",
		AuthorEmail: "grace@confportal.test",
		Decision:    constant.DecisionAccept,
	})
	if err != nil {
		t.Fatalf("NotifyDecision: %v", err)
	}

	select {
	case mail := <-m.sent:
		if mail.template != mailer.DECISION_NOTIFICATION_TEMPLATE || mail.toEmail != "grace@confportal.test" {
			t.Fatalf("unexpected mail %+v", mail)
		}
		data, ok := mail.data.(mailer.DecisionNotificationData)
		if !ok {
			t.Fatalf("data is %T", mail.data)
		}
		if data.PaperURL != "http://localhost:3000/papers/p2" || data.Decision != "Accept" {
			t.Fatalf("unexpected data %+v", data)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("mail was not sent")
	}
}
