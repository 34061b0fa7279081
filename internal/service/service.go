package service

import (
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/tedstrazimiri/droneclear/internal/config"
	"github.com/tedstrazimiri/droneclear/internal/repository"
	"github.com/tedstrazimiri/droneclear/internal/schema"
)

// Services service collection
type Services struct {
	Catalogue   *CatalogueService
	Schema      *SchemaService
	Guide       *GuideService
	Session     *SessionService
	Maintenance *MaintenanceService
}

// NewServices wires all services. Redis and MinIO are optional: a nil Redis
// client drops the serial allocator to its transactional fallback, a missing
// MinIO endpoint stores photos on local disk.
func NewServices(repos *repository.Repositories, rdb *redis.Client, cfg *config.Config, logger *zap.Logger) *Services {
	if logger == nil {
		logger = zap.NewNop()
	}

	var minioClient *minio.Client
	if cfg.MinIO.Endpoint != "" {
		var err error
		minioClient, err = minio.New(cfg.MinIO.Endpoint, &minio.Options{
			Creds:  credentials.NewStaticV4(cfg.MinIO.AccessKey, cfg.MinIO.SecretKey, ""),
			Secure: cfg.MinIO.UseSSL,
		})
		if err != nil {
			logger.Warn("MinIO unavailable, photos fall back to local disk", zap.Error(err))
			minioClient = nil
		}
	}

	schemaStore := schema.NewStore(cfg.Schema.Path)
	photoStore := NewPhotoStore(minioClient, cfg.MinIO.Bucket, cfg.Storage.PhotoDir)

	return &Services{
		Catalogue:   NewCatalogueService(repos.Category, repos.Component, repos.DroneModel, logger),
		Schema:      NewSchemaService(schemaStore),
		Guide:       NewGuideService(repos.Guide, repos.DroneModel),
		Session:     NewSessionService(repos.Session, repos.Guide, rdb, photoStore, logger),
		Maintenance: NewMaintenanceService(cfg.Storage.BugReportDir, logger),
	}
}
