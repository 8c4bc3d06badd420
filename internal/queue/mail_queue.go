package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/SeakMengs/ConfPortal/internal/config"
	"github.com/SeakMengs/ConfPortal/internal/mailer"
	"github.com/SeakMengs/ConfPortal/internal/repository"
	"github.com/SeakMengs/ConfPortal/internal/util"
	"github.com/SeakMengs/ConfPortal/internal/workflow"
	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

type MailConsumerContext struct {
	Config     *config.Config
	Logger     *zap.SugaredLogger
	Repository *repository.Repository
	Mailer     mailer.Client
}

type MailJobPayload struct {
	ToEmail      string                  `json:"to_email"`
	ToName       string                  `json:"to_name"`
	TemplateFile mailer.MailTemplateFile `json:"template_file"`
	Data         json.RawMessage         `json:"data"`
	CreatedAt    string                  `json:"created_at"`
	Try          int                     `json:"try" default:"0"`
}

func NewMailJobPayload[T any](toName, toEmail string, templateFile mailer.MailTemplateFile, data T) (MailJobPayload, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return MailJobPayload{}, fmt.Errorf("failed to marshal data: %w", err)
	}

	return MailJobPayload{
		ToEmail:      toEmail,
		ToName:       toName,
		TemplateFile: templateFile,
		Data:         dataBytes,
		Try:          0,
		CreatedAt:    time.Now().Format(time.RFC3339),
	}, nil
}

func decisionMailData(frontURL string, n workflow.DecisionNotification) mailer.DecisionNotificationData {
	return mailer.DecisionNotificationData{
		AppName:    util.GetAppName(),
		PaperID:    n.PaperID,
		PaperTitle: n.PaperTitle,
		AuthorName: n.AuthorName,
		Decision:   string(n.Decision),
		Comment:    n.Comment,
		PaperURL:   util.GetPaperURL(frontURL, n.PaperID),
		LogoURL:    util.GetAppLogoURL(frontURL),
	}
}

func NewDecisionNotificationMailJob(frontURL string, n workflow.DecisionNotification) (MailJobPayload, error) {
	return NewMailJobPayload(n.AuthorName, n.AuthorEmail, mailer.DECISION_NOTIFICATION_TEMPLATE, decisionMailData(frontURL, n))
}

// NewInlineMailNotifier sends decision mails from the api process itself, for
// deployments without RabbitMQ. Sending happens in the background and
// failures are only logged.
func NewInlineMailNotifier(client mailer.Client, frontURL string, logger *zap.SugaredLogger) workflow.NotifierFunc {
	return func(ctx context.Context, n workflow.DecisionNotification) error {
		data := decisionMailData(frontURL, n)
		go func() {
			status, err := client.Send(mailer.DECISION_NOTIFICATION_TEMPLATE, n.AuthorName, n.AuthorEmail, data)
			if err != nil {
				logger.Errorw("Failed to send decision mail", "paperId", n.PaperID, "status", status, "error", err)
				return
			}
			logger.Infow("Decision mail sent", "paperId", n.PaperID, "status", status)
		}()
		return nil
	}
}

// MailPublisher enqueues decision mails for cmd/mail_consumer.
type MailPublisher struct {
	publisher Publisher
	frontURL  string
	logger    *zap.SugaredLogger
}

func NewMailPublisher(publisher Publisher, frontURL string, logger *zap.SugaredLogger) *MailPublisher {
	return &MailPublisher{publisher: publisher, frontURL: frontURL, logger: logger}
}

func (mp *MailPublisher) NotifyDecision(ctx context.Context, n workflow.DecisionNotification) error {
	job, err := NewDecisionNotificationMailJob(mp.frontURL, n)
	if err != nil {
		return err
	}

	body, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("failed to marshal mail job: %w", err)
	}

	if err := mp.publisher.Publish(ctx, QueueMail, body); err != nil {
		return fmt.Errorf("failed to publish mail job: %w", err)
	}

	mp.logger.Debugf("Enqueued decision mail for paperId: %s to: %s", n.PaperID, n.AuthorEmail)
	return nil
}

// MailJobHandler returns whether a failed job is worth retrying.
type MailJobHandler func(ctx context.Context, jobPayload MailJobPayload, app *MailConsumerContext) (bool, error)

func (r *RabbitMQ) ConsumeMailJob(ctx context.Context, handler MailJobHandler, maxWorker int, app *MailConsumerContext) error {
	msgs, err := r.Consume(QueueMail)
	if err != nil {
		return fmt.Errorf("failed to start consuming mail jobs: %w", err)
	}

	for i := 0; i < maxWorker; i++ {
		go func(workerNumber int) {
			runMailWorker(ctx, r, workerNumber, msgs, handler, app)
		}(i + 1)
	}

	return nil
}

func runMailWorker(ctx context.Context, rabbitMQ *RabbitMQ, workerNumber int, msgs <-chan amqp091.Delivery, handler MailJobHandler, app *MailConsumerContext) {
	for {
		select {
		case <-ctx.Done():
			app.Logger.Infof("[Mail Worker %d] Shutting down", workerNumber)
			return
		case msg, ok := <-msgs:
			if !ok {
				app.Logger.Infof("[Mail Worker %d] Message channel closed", workerNumber)
				return
			}
			processMailJob(ctx, rabbitMQ, workerNumber, msg, handler, app)
		}
	}
}

type mailJobOutcome int

const (
	mailJobDone mailJobOutcome = iota
	mailJobRetry
	mailJobDrop
)

// decideMailJob runs handler on a raw message body and decides what happens
// to the delivery.
func decideMailJob(ctx context.Context, body []byte, handler MailJobHandler, app *MailConsumerContext) (MailJobPayload, mailJobOutcome, error) {
	var jobPayload MailJobPayload
	if len(body) == 0 {
		return jobPayload, mailJobDrop, fmt.Errorf("empty message body")
	}

	if err := json.Unmarshal(body, &jobPayload); err != nil {
		return jobPayload, mailJobDrop, fmt.Errorf("invalid payload: %w", err)
	}

	shouldRequeue, err := handler(ctx, jobPayload, app)
	if err == nil {
		return jobPayload, mailJobDone, nil
	}

	if !shouldRequeue || jobPayload.Try >= MAX_QUEUE_RETRY {
		return jobPayload, mailJobDrop, err
	}

	return jobPayload, mailJobRetry, err
}

func processMailJob(ctx context.Context, rabbitMQ *RabbitMQ, workerNumber int, msg amqp091.Delivery, handler MailJobHandler, app *MailConsumerContext) {
	jobPayload, outcome, err := decideMailJob(ctx, msg.Body, handler, app)
	workerPrefix := fmt.Sprintf("[Mail Worker %d: Retry %d]", workerNumber, jobPayload.Try)

	switch outcome {
	case mailJobDone:
		app.Logger.Infof("%s Successfully processed mail job for recipient: %s, template: %s",
			workerPrefix, jobPayload.ToEmail, jobPayload.TemplateFile)
		rabbitMQ.Ack(msg)
	case mailJobRetry:
		app.Logger.Warnf("%s Handler error processing mail job for recipient: %s, template: %s: %v",
			workerPrefix, jobPayload.ToEmail, jobPayload.TemplateFile, err)
		// finish the requeue even when shutting down
		requeueMailJob(context.WithoutCancel(ctx), rabbitMQ, workerPrefix, msg, jobPayload, app.Logger)
	default:
		app.Logger.Errorf("%s Dropping mail job for recipient: %s, template: %s: %v",
			workerPrefix, jobPayload.ToEmail, jobPayload.TemplateFile, err)
		rabbitMQ.Nack(msg, false)
	}
}

func requeueMailJob(ctx context.Context, rabbitMQ *RabbitMQ, workerPrefix string, msg amqp091.Delivery, jobPayload MailJobPayload, logger *zap.SugaredLogger) {
	jobPayload.Try++
	payloadBytes, err := json.Marshal(jobPayload)
	if err != nil {
		logger.Errorf("%s Failed to marshal mail payload for requeue: %v", workerPrefix, err)
		rabbitMQ.Nack(msg, false)
		return
	}

	if err := rabbitMQ.Publish(ctx, QueueMail, payloadBytes); err != nil {
		logger.Errorf("%s Failed to requeue mail job for recipient: %s, template: %s: %v",
			workerPrefix, jobPayload.ToEmail, jobPayload.TemplateFile, err)
		rabbitMQ.Nack(msg, false)
		return
	}

	logger.Infof("%s Requeued mail job for recipient: %s, template: %s",
		workerPrefix, jobPayload.ToEmail, jobPayload.TemplateFile)
	rabbitMQ.Ack(msg)
}
