package events

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
)

type testEvent struct {
	BaseEvent
	name string
}

func (e testEvent) EventName() string { return e.name }

func TestPublishSyncJoinsHandlerErrors(t *testing.T) {
	bus := NewInMemoryBus(nil)
	errFirst := errors.New("first failed")
	calls := 0

	bus.Subscribe("job.assigned", HandlerFunc(func(context.Context, Event) error {
		calls++
		return errFirst
	}))
	bus.Subscribe("job.assigned", HandlerFunc(func(context.Context, Event) error {
		calls++
		return nil
	}))
	bus.Subscribe("other", HandlerFunc(func(context.Context, Event) error {
		t.Fatal("handler for another event must not run")
		return nil
	}))

	err := bus.PublishSync(context.Background(), testEvent{BaseEvent: NewBaseEvent(), name: "job.assigned"})
	if !errors.Is(err, errFirst) {
		t.Fatalf("expected joined error to contain first failure, got %v", err)
	}
	if calls != 2 {
		t.Fatalf("expected both handlers to run, got %d", calls)
	}
}

func TestPublishRecoversPanicsAndRunsAllHandlers(t *testing.T) {
	bus := NewInMemoryBus(nil)
	var ran atomic.Int32

	bus.Subscribe("affidavit.generated", HandlerFunc(func(context.Context, Event) error {
		panic("boom")
	}))
	bus.Subscribe("affidavit.generated", HandlerFunc(func(context.Context, Event) error {
		ran.Add(1)
		return nil
	}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	bus.Publish(ctx, testEvent{BaseEvent: NewBaseEvent(), name: "affidavit.generated"})
	bus.Wait()

	if ran.Load() != 1 {
		t.Fatalf("expected healthy handler to run once, got %d", ran.Load())
	}
}

func TestNewBaseEventStampsID(t *testing.T) {
	a, b := NewBaseEvent(), NewBaseEvent()
	if a.EventID() == b.EventID() {
		t.Fatal("expected distinct event ids")
	}
	if eventID(testEvent{BaseEvent: a}) != a.ID.String() {
		t.Fatal("expected event id to be reported")
	}
	if a.OccurredAt().IsZero() {
		t.Fatal("expected timestamp")
	}
}
