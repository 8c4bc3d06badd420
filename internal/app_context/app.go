package appcontext

import (
	"github.com/SeakMengs/ConfPortal/internal/auth"
	"github.com/SeakMengs/ConfPortal/internal/config"
	filestorage "github.com/SeakMengs/ConfPortal/internal/file_storage"
	"github.com/SeakMengs/ConfPortal/internal/metrics"
	"github.com/SeakMengs/ConfPortal/internal/repository"
	"github.com/SeakMengs/ConfPortal/internal/workflow"
	"go.uber.org/zap"
)

// Application contains core dependencies for the app.
type Application struct {
	// Config holds application settings provided from .env file.
	Config *config.Config

	Logger *zap.SugaredLogger

	// Repository provides access to data storage operations.
	Repository *repository.Repository

	// Workflow owns every paper status change. Controllers never write status directly.
	Workflow *workflow.Service

	// JWTService manages JWT operations for authentication such as generate, verify, refresh token.
	JWTService auth.JWTInterface

	// Metrics may be nil when disabled.
	Metrics *metrics.Metrics

	// S3 stores paper files, a *minio.Client outside tests. Nil when storage
	// is not configured.
	S3 filestorage.ObjectStore
}
