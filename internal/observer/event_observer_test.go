package observer

import (
	"context"
	"testing"
	"time"
)

// countingObserver records received events.
type countingObserver struct {
	name   string
	events []ClassificationEvent
}

func (o *countingObserver) OnEvent(_ context.Context, event ClassificationEvent) {
	o.events = append(o.events, event)
}

func (o *countingObserver) GetObserverName() string { return o.name }

func testEvent(eventType EventType) ClassificationEvent {
	return ClassificationEvent{
		EventType: eventType,
		Timestamp: time.Now(),
		ImageRef:  "chart.png",
		ColorName: "purple",
	}
}

func TestSubject_NotifyObservers(t *testing.T) {
	subject := NewSubject()
	first := &countingObserver{name: "first"}
	second := &countingObserver{name: "second"}
	subject.Subscribe(first)
	subject.Subscribe(second)

	subject.NotifyObservers(context.Background(), testEvent(ClassificationStarted))

	if len(first.events) != 1 || len(second.events) != 1 {
		t.Errorf("expected both observers notified, got %d and %d", len(first.events), len(second.events))
	}
	if first.events[0].EventType != ClassificationStarted {
		t.Errorf("event type = %s, want %s", first.events[0].EventType, ClassificationStarted)
	}
	if first.events[0].ColorName != "purple" {
		t.Errorf("color = %s, want purple", first.events[0].ColorName)
	}
}

func TestSubject_Unsubscribe(t *testing.T) {
	subject := NewSubject()
	obs := &countingObserver{name: "only"}
	subject.Subscribe(obs)
	subject.Unsubscribe(obs)

	subject.NotifyObservers(context.Background(), testEvent(ClassificationCompleted))

	if len(obs.events) != 0 {
		t.Errorf("expected no events after unsubscribe, got %d", len(obs.events))
	}
}

func TestSubject_NotifyWithoutObservers(t *testing.T) {
	subject := NewSubject()
	// Must not panic.
	subject.NotifyObservers(context.Background(), testEvent(ClassificationFailed))
}

func TestLoggingObserver_HandlesAllEventTypes(t *testing.T) {
	obs := NewLoggingObserver()
	if obs.GetObserverName() != "logging_observer" {
		t.Errorf("name = %q, want logging_observer", obs.GetObserverName())
	}

	for _, eventType := range []EventType{ClassificationStarted, ClassificationCompleted, ClassificationFailed} {
		obs.OnEvent(context.Background(), testEvent(eventType))
	}
}
