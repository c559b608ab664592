package main

import (
	"testing"

	"taskwatch/internal/infrastructure/taskserver"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedDemo(t *testing.T) {
	r := taskserver.NewRegistry(false)
	require.NoError(t, seedDemo(r, 5))

	tasks := r.List()
	require.Len(t, tasks, 5)
	assert.Equal(t, taskserver.StateReceived, tasks[0].State)
	assert.Equal(t, taskserver.StateFailure, tasks[4].State)
	assert.True(t, r.Pending())
}
