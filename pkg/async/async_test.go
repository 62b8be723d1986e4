package async_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aakritiieee7/hrmanagementsystem/pkg/async"
)

func TestRunReturnsValue(t *testing.T) {
	got, err := async.Run(context.Background(), func(context.Context) (string, error) {
		return "ok", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "ok", got)
}

func TestRunReturnsError(t *testing.T) {
	boom := errors.New("boom")
	got, err := async.Run(context.Background(), func(context.Context) ([]string, error) {
		return []string{"partial"}, boom
	})
	assert.ErrorIs(t, err, boom)
	// The value is passed through untouched; callers decide whether to use it.
	assert.Equal(t, []string{"partial"}, got)
}

func TestWaitHonoursCallerContext(t *testing.T) {
	release := make(chan struct{})
	task := async.Go(context.Background(), func(context.Context) (int, error) {
		<-release
		return 42, nil
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := task.Wait(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	close(release)
	<-task.Done()
	v, err := task.Wait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 42, v)
}

func TestPanicBecomesError(t *testing.T) {
	_, err := async.Run(context.Background(), func(context.Context) (int, error) {
		panic("bad input")
	})
	assert.ErrorIs(t, err, async.ErrPanic)
	assert.Contains(t, err.Error(), "bad input")
}
