package models

import (
	"encoding/json"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusOrdering(t *testing.T) {
	statuses := []Status{StatusRefused, StatusClosed, StatusOpen, StatusInProgress}
	sort.Slice(statuses, func(i, j int) bool { return statuses[i] < statuses[j] })

	assert.Equal(t, []Status{StatusOpen, StatusInProgress, StatusClosed, StatusRefused}, statuses,
		"the numeric values sort open complaints first")
}

func TestEnumsRenderAsNames(t *testing.T) {
	c := Complaint{
		ID:       "c1",
		Status:   StatusInProgress,
		Kind:     KindLateArrival,
		Priority: PriorityUrgent,
	}

	body, err := json.Marshal(c)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(body, &decoded))

	assert.Equal(t, "in_progress", decoded["status"])
	assert.Equal(t, "late_arrival", decoded["kind"])
	assert.Equal(t, "urgent", decoded["priority"])
}

func TestListFilterIsZero(t *testing.T) {
	assert.True(t, ListFilter{}.IsZero())
	assert.False(t, ListFilter{Status: "open"}.IsZero())
	assert.False(t, ListFilter{Sort: "newest"}.IsZero())
}
