package events

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zatekoja/costestimator/internal/domain/entities"
)

func TestDecodeEvent(t *testing.T) {
	sent := &entities.DatasetEvent{
		ID:           "evt-1",
		EventType:    entities.DatasetEventTypeReloaded,
		Origin:       "instance-a",
		Source:       "data/prices.json",
		ServiceCount: 12,
		Timestamp:    time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}
	payload, err := json.Marshal(sent)
	require.NoError(t, err)

	event, err := decodeEvent(string(payload))
	require.NoError(t, err)
	assert.Equal(t, sent, event)
}

func TestDecodeEvent_Rejects(t *testing.T) {
	_, err := decodeEvent("not json")
	assert.Error(t, err)

	_, err = decodeEvent(`{"id":"evt-2","event_type":"facility.updated"}`)
	assert.Error(t, err)
}
