package emergency_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sidravi1/vote2020/pkg/emergency"
)

func TestGuard_ManualStopRunsCallbacks(t *testing.T) {
	guard := emergency.New(emergency.Config{
		StopFile:             "/tmp/voteobserver-emergency-stop-test",
		PollInterval:         50 * time.Millisecond,
		EnableSignalHandlers: false,
	})
	os.Remove(guard.StopFilePath())

	var fired bool
	guard.OnStop(func() { fired = true })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	guard.Start(ctx)

	assert.False(t, guard.IsStopped())
	guard.Stop("test requested")

	assert.True(t, guard.IsStopped())
	assert.True(t, fired)

	select {
	case <-guard.StopChannel():
	default:
		t.Fatal("expected stop channel to be closed")
	}
}

func TestGuard_StopFileTriggersStop(t *testing.T) {
	guard := emergency.New(emergency.Config{
		StopFile:     "/tmp/voteobserver-emergency-stop-test-file",
		PollInterval: 20 * time.Millisecond,
	})
	os.Remove(guard.StopFilePath())
	defer os.Remove(guard.StopFilePath())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	guard.Start(ctx)

	require.NoError(t, guard.CreateStopFile())

	select {
	case <-guard.StopChannel():
	case <-time.After(2 * time.Second):
		t.Fatal("expected stop file to trigger stop within timeout")
	}
	assert.True(t, guard.IsStopped())
}
