package coordinator

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueue_RunsInEntryOrder(t *testing.T) {
	var q Queue
	var mu sync.Mutex
	var order []int
	var inFlight atomic.Int32
	var overlapped atomic.Bool

	release := make(chan struct{})
	var wg sync.WaitGroup

	// the first unit holds the queue until release is closed
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = q.Do(context.Background(), func() error {
			<-release
			mu.Lock()
			order = append(order, 0)
			mu.Unlock()
			return nil
		})
	}()
	waitQueued(t, &q, 1)

	for i := 1; i <= 5; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = q.Do(context.Background(), func() error {
				if inFlight.Add(1) > 1 {
					overlapped.Store(true)
				}
				time.Sleep(time.Millisecond)
				mu.Lock()
				order = append(order, i)
				mu.Unlock()
				inFlight.Add(-1)
				return nil
			})
		}(i)
		waitQueued(t, &q, i+1)
	}

	close(release)
	wg.Wait()

	assert.Equal(t, []int{0, 1, 2, 3, 4, 5}, order)
	assert.False(t, overlapped.Load())
}

func TestQueue_CancelledWaiterKeepsChain(t *testing.T) {
	var q Queue
	release := make(chan struct{})
	firstDone := make(chan struct{})

	go func() {
		_ = q.Do(context.Background(), func() error {
			<-release
			close(firstDone)
			return nil
		})
	}()
	waitQueued(t, &q, 1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	ran := false
	err := q.Do(ctx, func() error { ran = true; return nil })
	require.ErrorIs(t, err, context.Canceled)
	assert.False(t, ran)

	thirdStarted := make(chan struct{})
	go func() {
		_ = q.Do(context.Background(), func() error {
			select {
			case <-firstDone:
			default:
				t.Error("third unit ran before the first finished")
			}
			close(thirdStarted)
			return nil
		})
	}()

	close(release)
	select {
	case <-thirdStarted:
	case <-time.After(2 * time.Second):
		t.Fatal("third unit never ran")
	}
}

func TestQueue_PropagatesError(t *testing.T) {
	var q Queue
	err := q.Do(context.Background(), func() error { return assert.AnError })
	assert.ErrorIs(t, err, assert.AnError)

	// the queue is usable after a failure
	assert.NoError(t, q.Do(context.Background(), func() error { return nil }))
}

func waitQueued(t *testing.T, q *Queue, n int) {
	t.Helper()
	require.Eventually(t, func() bool { return q.Entered() >= n }, 2*time.Second, time.Millisecond)
}
