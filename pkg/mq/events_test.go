package mq

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewContentEvent(t *testing.T) {
	a := NewContentEvent(LikeToggled, "u1", "video", "v1")
	b := NewContentEvent(LikeToggled, "u1", "video", "v1")
	assert.NotEqual(t, a.EventID, b.EventID)
	assert.NotZero(t, a.Timestamp)

	a.Active = true
	raw, err := json.Marshal(a)
	require.NoError(t, err)
	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, "like.toggled", decoded["type"])
	assert.Equal(t, "v1", decoded["target_id"])
	assert.Equal(t, true, decoded["active"])
}
