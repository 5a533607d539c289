package lifecycle

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/lenient/pkg/core"
)

func TestSource_FiltersByType(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	events := make(chan core.FileEvent, 3)
	events <- core.FileEvent{Type: core.FileDeleted, Path: "/a.json"}
	events <- core.FileEvent{Type: core.FileChanged, Path: "/a.json"}
	close(events)

	src := NewSource(events, core.FileChanged)
	require.NoError(t, src.Start(ctx))

	var got []core.FileEvent
	for e := range src.Events() {
		fe, ok := e.(core.FileEvent)
		require.True(t, ok, "unexpected event type %T", e)
		got = append(got, fe)
	}

	require.Len(t, got, 1)
	assert.Equal(t, core.FileChanged, got[0].Type)
	assert.Equal(t, "CHANGE /a.json", got[0].String())
}

func TestSource_AllTypes(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	events := make(chan core.FileEvent, 2)
	events <- core.FileEvent{Type: core.FileDeleted, Path: "/a.json"}
	events <- core.FileEvent{Type: core.FileRenamed, Path: "/a.json"}
	close(events)

	src := NewSource(events)
	require.NoError(t, src.Start(ctx))

	count := 0
	for range src.Events() {
		count++
	}
	assert.Equal(t, 2, count)
}

func TestSource_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	src := NewSource(make(chan core.FileEvent))
	require.NoError(t, src.Start(ctx))

	cancel()
	select {
	case _, ok := <-src.Events():
		assert.False(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("source did not stop")
	}
}
