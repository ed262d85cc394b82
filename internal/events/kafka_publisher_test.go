package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// The sarama producer itself is not mocked here; these tests cover message
// construction and the event envelope, which is what downstream consumers
// depend on.

func TestBuildMessage_UsesItemIDAsPartitionKey(t *testing.T) {
	publisher := &KafkaEventPublisher{
		logger: zap.NewNop(),
		topic:  "item-events",
	}

	event := NewEvent(ItemCreated, 7, map[string]interface{}{"name": "Widget"})
	message, err := publisher.buildMessage(event)
	require.NoError(t, err)

	assert.Equal(t, "item-events", message.Topic)

	key, err := message.Key.Encode()
	require.NoError(t, err)
	assert.Equal(t, "7", string(key))
}

func TestBuildMessage_EventEnvelope(t *testing.T) {
	publisher := &KafkaEventPublisher{
		logger: zap.NewNop(),
		topic:  "item-events",
	}

	event := NewEvent(ItemUpdated, 3, map[string]interface{}{"name": "Widget", "quantity": 5})
	message, err := publisher.buildMessage(event)
	require.NoError(t, err)

	value, err := message.Value.Encode()
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(value, &decoded))
	assert.Equal(t, "item_updated", decoded["event_type"])
	assert.Equal(t, float64(3), decoded["item_id"])
	payload, ok := decoded["payload"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Widget", payload["name"])
}

func TestBuildMessage_Headers(t *testing.T) {
	publisher := &KafkaEventPublisher{
		logger: zap.NewNop(),
		topic:  "item-events",
	}

	event := NewEvent(ItemDeleted, 1, nil)
	message, err := publisher.buildMessage(event)
	require.NoError(t, err)

	headers := make(map[string]string, len(message.Headers))
	for _, h := range message.Headers {
		headers[string(h.Key)] = string(h.Value)
	}

	assert.Equal(t, "item_deleted", headers["event-type"])
	assert.NotEmpty(t, headers["event-id"])
	_, err = time.Parse(time.RFC3339, headers["timestamp"])
	assert.NoError(t, err)
}

func TestNewEvent_NilPayloadBecomesEmptyObject(t *testing.T) {
	event := NewEvent(ItemDeleted, 9, nil)

	data, err := json.Marshal(event)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"payload":{}`)
}

func TestInMemoryPublisher_RecordsEvents(t *testing.T) {
	publisher := NewEventPublisher(zap.NewNop())

	require.NoError(t, publisher.Publish(context.Background(), NewEvent(ItemCreated, 1, nil)))
	require.NoError(t, publisher.Publish(context.Background(), NewEvent(ItemDeleted, 1, nil)))

	recorded := publisher.Events()
	require.Len(t, recorded, 2)
	assert.Equal(t, ItemCreated, recorded[0].EventType)
	assert.Equal(t, ItemDeleted, recorded[1].EventType)
}
