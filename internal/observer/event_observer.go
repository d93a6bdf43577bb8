package observer

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"chart-color-inspector/internal/logger"
)

// ClassificationEvent represents a classification lifecycle event
type ClassificationEvent struct {
	EventType      EventType     `json:"event_type"`
	Timestamp      time.Time     `json:"timestamp"`
	ImageRef       string        `json:"image_ref"`
	ColorName      string        `json:"color_name,omitempty"`
	TotalMatched   int           `json:"total_matched,omitempty"`
	ProcessingTime time.Duration `json:"processing_time,omitempty"`
	Success        bool          `json:"success"`
	ErrorMessage   string        `json:"error_message,omitempty"`
}

// EventType represents the type of classification event
type EventType string

const (
	// ClassificationStarted when a scan begins
	ClassificationStarted EventType = "classification_started"
	// ClassificationCompleted when a scan finishes successfully
	ClassificationCompleted EventType = "classification_completed"
	// ClassificationFailed when a scan fails
	ClassificationFailed EventType = "classification_failed"
)

// Observer defines the interface for event observers
type Observer interface {
	OnEvent(ctx context.Context, event ClassificationEvent)
	GetObserverName() string
}

// Subject defines the interface for event publishers
type Subject interface {
	Subscribe(observer Observer)
	Unsubscribe(observer Observer)
	NotifyObservers(ctx context.Context, event ClassificationEvent)
}

// eventSubject implements Subject
type eventSubject struct {
	mu        sync.RWMutex
	observers []Observer
}

// NewSubject creates a new event subject.
func NewSubject() Subject {
	return &eventSubject{}
}

func (s *eventSubject) Subscribe(observer Observer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, observer)
}

func (s *eventSubject) Unsubscribe(observer Observer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, o := range s.observers {
		if o == observer {
			s.observers = append(s.observers[:i], s.observers[i+1:]...)
			return
		}
	}
}

func (s *eventSubject) NotifyObservers(ctx context.Context, event ClassificationEvent) {
	s.mu.RLock()
	observers := make([]Observer, len(s.observers))
	copy(observers, s.observers)
	s.mu.RUnlock()

	for _, o := range observers {
		o.OnEvent(ctx, event)
	}
}

// LoggingObserver logs classification events through the structured logger.
type LoggingObserver struct{}

// NewLoggingObserver creates a logging observer.
func NewLoggingObserver() Observer {
	return &LoggingObserver{}
}

func (o *LoggingObserver) OnEvent(_ context.Context, event ClassificationEvent) {
	entry := logger.WithFields(logrus.Fields{
		"event":     string(event.EventType),
		"image_ref": event.ImageRef,
		"color":     event.ColorName,
	})

	switch event.EventType {
	case ClassificationStarted:
		entry.Debug("Classification started")
	case ClassificationCompleted:
		entry.WithFields(logrus.Fields{
			"total_matched":      event.TotalMatched,
			"processing_time_ms": event.ProcessingTime.Milliseconds(),
		}).Info("Classification completed")
	case ClassificationFailed:
		entry.WithField("error", event.ErrorMessage).Error("Classification failed")
	}
}

func (o *LoggingObserver) GetObserverName() string {
	return "logging_observer"
}
