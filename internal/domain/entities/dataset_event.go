package entities

import (
	"time"

	"github.com/google/uuid"
)

// DatasetEventType represents the type of dataset event
type DatasetEventType string

const (
	DatasetEventTypeReloaded DatasetEventType = "dataset.reloaded"
)

// DatasetEvent announces that an instance replaced its catalog
type DatasetEvent struct {
	ID           string           `json:"id"`
	EventType    DatasetEventType `json:"event_type"`
	Origin       string           `json:"origin"`
	Source       string           `json:"source"`
	ServiceCount int              `json:"service_count"`
	Timestamp    time.Time        `json:"timestamp"`
}

// NewDatasetReloadedEvent creates an event for a catalog reloaded by origin
func NewDatasetReloadedEvent(origin string, catalog *Catalog) *DatasetEvent {
	return &DatasetEvent{
		ID:           uuid.New().String(),
		EventType:    DatasetEventTypeReloaded,
		Origin:       origin,
		Source:       catalog.Source(),
		ServiceCount: catalog.ServiceCount(),
		Timestamp:    time.Now(),
	}
}
