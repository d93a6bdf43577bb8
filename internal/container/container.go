package container

import (
	"fmt"
	"net/http"

	"chart-color-inspector/internal/classifier"
	"chart-color-inspector/internal/config"
	"chart-color-inspector/internal/factory"
	"chart-color-inspector/internal/logger"
	"chart-color-inspector/internal/observer"
	"chart-color-inspector/internal/repository"
	"chart-color-inspector/internal/service"
	"chart-color-inspector/internal/transport"
)

// Container holds all application dependencies
type Container struct {
	config          *config.Config
	imageRepository repository.ImageRepository
	history         repository.HistoryRepository
	classifier      classifier.PixelClassifier
	service         service.ClassificationService
	handler         http.Handler
}

// NewContainer creates a new dependency injection container
func NewContainer(cfg *config.Config) (*Container, error) {
	// Build dependency graph
	storageFactory := factory.NewStorageFactory(cfg)
	imageSource, err := storageFactory.CreateStorage(factory.StorageType(cfg.StorageBackend))
	if err != nil {
		return nil, fmt.Errorf("failed to create storage backend: %w", err)
	}
	imageRepository := repository.NewImageRepository(imageSource)

	var history repository.HistoryRepository
	if cfg.HistoryDBDir != "" {
		history, err = repository.OpenHistory(cfg.HistoryDBDir)
		if err != nil {
			// The server stays up without history; the CLI surfaces the
			// same condition through its history command.
			logger.WithError(err).Warn("History database unavailable, continuing without it")
			history = nil
		}
	}

	subject := observer.NewSubject()
	subject.Subscribe(observer.NewLoggingObserver())

	pixelClassifier := classifier.NewPixelClassifier()
	classificationService := service.NewClassificationService(imageRepository, pixelClassifier, history, subject)
	handler := transport.NewHandler(classificationService, cfg)

	return &Container{
		config:          cfg,
		imageRepository: imageRepository,
		history:         history,
		classifier:      pixelClassifier,
		service:         classificationService,
		handler:         handler,
	}, nil
}

// Handler returns the HTTP handler
func (c *Container) Handler() http.Handler {
	return c.handler
}

// Config returns the configuration
func (c *Container) Config() *config.Config {
	return c.config
}

// Service returns the classification service
func (c *Container) Service() service.ClassificationService {
	return c.service
}

// Close releases container-held resources.
func (c *Container) Close() error {
	if c.history != nil {
		return c.history.Close()
	}
	return nil
}
