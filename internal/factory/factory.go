package factory

import (
	"fmt"

	"chart-color-inspector/internal/config"
	"chart-color-inspector/internal/storage"
)

// StorageType represents different types of image storage backends
type StorageType string

const (
	// HTTPStorage for HTTP-based screenshot fetching
	HTTPStorage StorageType = "http"
	// AzureStorage for screenshots archived in Azure blob containers
	AzureStorage StorageType = "azure"
	// LocalStorage for screenshots on the local filesystem
	LocalStorage StorageType = "local"
)

// StorageFactory creates image source implementations
type StorageFactory interface {
	CreateStorage(storageType StorageType) (storage.ImageSource, error)
}

// storageFactory implements StorageFactory
type storageFactory struct {
	cfg *config.Config
}

// NewStorageFactory creates a new storage factory
func NewStorageFactory(cfg *config.Config) StorageFactory {
	return &storageFactory{cfg: cfg}
}

// CreateStorage creates an image source for the given storage type
func (f *storageFactory) CreateStorage(storageType StorageType) (storage.ImageSource, error) {
	switch storageType {
	case HTTPStorage:
		return storage.NewHTTPImageFetcher(), nil
	case AzureStorage:
		return storage.NewAzureStorage(f.cfg.AzureAccountName, f.cfg.AzureAccountKey)
	case LocalStorage:
		return storage.NewFileImageLoader(), nil
	default:
		return nil, fmt.Errorf("unknown storage type: %s", storageType)
	}
}
