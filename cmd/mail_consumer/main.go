package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/SeakMengs/ConfPortal/internal/config"
	"github.com/SeakMengs/ConfPortal/internal/database"
	"github.com/SeakMengs/ConfPortal/internal/env"
	"github.com/SeakMengs/ConfPortal/internal/mailer"
	"github.com/SeakMengs/ConfPortal/internal/queue"
	"github.com/SeakMengs/ConfPortal/internal/repository"
	"github.com/SeakMengs/ConfPortal/internal/util"
	"gorm.io/gorm"
)

// this function run before main
func init() {
	env.LoadEnv(".env")
}

const (
	MAX_WORKER = 3
)

func main() {
	cfg := config.GetConfig()
	logger := util.NewLogger(cfg.ENV)

	db, err := database.ConnectReturnGormDB(cfg.DB)
	if err != nil {
		logger.Panic(err)
	}

	sqlDb, err := db.DB()
	if err != nil {
		logger.Panic(err)
	}
	defer sqlDb.Close()
	logger.Info("Database connected \n")

	repo := repository.NewRepository(db, logger)
	app := queue.MailConsumerContext{
		Config:     &cfg,
		Repository: repo,
		Logger:     logger,
		Mailer:     mailer.New(cfg, logger),
	}

	rabbitMQ, err := queue.NewRabbitMQ(cfg.RabbitMQ.GetConnectionString())
	if err != nil {
		logger.Panic("Error connecting to RabbitMQ: ", err)
	}
	defer func() {
		if err := rabbitMQ.Close(); err != nil {
			logger.Errorf("Failed to close RabbitMQ connection: %v", err)
		}
	}()

	logger.Infof("Connected to RabbitMQ at %s:%s", cfg.RabbitMQ.HOST, cfg.RabbitMQ.PORT)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rabbitMQ.ConsumeMailJob(ctx, mailJobHandler, MAX_WORKER, &app); err != nil {
		logger.Fatalf("Failed to consume mail job: %v", err)
	}

	logger.Infof("Started consuming mail job")

	<-ctx.Done()
	logger.Info("Mail consumer shutting down")
}

func mailJobHandler(ctx context.Context, jobPayload queue.MailJobPayload, app *queue.MailConsumerContext) (bool, error) {
	switch jobPayload.TemplateFile {
	case mailer.DECISION_NOTIFICATION_TEMPLATE:
		var data mailer.DecisionNotificationData
		if err := json.Unmarshal(jobPayload.Data, &data); err != nil {
			return false, fmt.Errorf("failed to unmarshal DecisionNotificationData: %w", err)
		}

		// the decision may have been changed since the job was queued
		decision, err := app.Repository.Decision.GetByPaperId(ctx, nil, data.PaperID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return false, fmt.Errorf("decision not found for paper: %s", data.PaperID)
			}

			return true, fmt.Errorf("failed to get decision: %w", err)
		}

		if string(decision.Value) != data.Decision {
			return false, fmt.Errorf("decision of paper %s is now %s, skip stale %s mail", data.PaperID, decision.Value, data.Decision)
		}

		status, err := app.Mailer.Send(jobPayload.TemplateFile, jobPayload.ToName, jobPayload.ToEmail, data)
		if err != nil {
			return true, fmt.Errorf("failed to send email: %w", err)
		}

		if status != http.StatusOK && status != http.StatusAccepted {
			return true, fmt.Errorf("email sending failed with status: %d", status)
		}

		return false, nil
	default:
		return false, fmt.Errorf("unsupported template: %s", jobPayload.TemplateFile)
	}
}
