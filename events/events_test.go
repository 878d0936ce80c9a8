package events

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// TestEventDelivery tests the complete event flow from TransactionalBus to the main Bus
func TestEventDelivery(t *testing.T) {
	mainBus := NewBus()
	transactionalBus := NewTransactionalBus(mainBus)

	eventReceived := make(chan LevelUpEvent, 1)
	var wg sync.WaitGroup
	wg.Add(1)

	mainBus.Subscribe(EventTypeLevelUp, func(ctx context.Context, event Event) {
		defer wg.Done()
		if levelUp, ok := event.(LevelUpEvent); ok {
			select {
			case eventReceived <- levelUp:
			case <-time.After(1 * time.Second):
				t.Error("Timeout sending event to channel")
			}
		} else {
			t.Errorf("Expected LevelUpEvent, got %T", event)
		}
	})

	testEvent := LevelUpEvent{
		GuildID:           789,
		UserID:            123456,
		OldLevel:          1,
		NewLevel:          2,
		FallbackChannelID: 555,
	}

	transactionalBus.Publish(testEvent)

	ctx := context.Background()
	err := transactionalBus.Flush(ctx)
	assert.NoError(t, err)

	wg.Wait()

	select {
	case received := <-eventReceived:
		assert.Equal(t, testEvent, received)
	default:
		t.Fatal("Event was not delivered")
	}
}

// TestDiscardDropsPendingEvents verifies rollback semantics
func TestDiscardDropsPendingEvents(t *testing.T) {
	mainBus := NewBus()
	transactionalBus := NewTransactionalBus(mainBus)

	delivered := make(chan struct{}, 1)
	mainBus.Subscribe(EventTypeLevelUp, func(ctx context.Context, event Event) {
		delivered <- struct{}{}
	})

	transactionalBus.Publish(LevelUpEvent{GuildID: 1, UserID: 2, NewLevel: 1})
	transactionalBus.Discard()

	err := transactionalBus.Flush(context.Background())
	assert.NoError(t, err)

	select {
	case <-delivered:
		t.Fatal("Discarded event should not be delivered")
	case <-time.After(100 * time.Millisecond):
	}
}
