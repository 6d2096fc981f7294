package coordinator

import (
	"context"
	"sync"
)

// Queue runs submitted work one unit at a time, in the order Do was entered.
// The zero value is ready to use.
type Queue struct {
	mu      sync.Mutex
	tail    chan struct{}
	entered int
}

// Do waits for every unit submitted before it, then runs fn. If ctx ends while
// waiting, Do returns ctx.Err() without running fn and later units still wait
// for the earlier ones.
func (q *Queue) Do(ctx context.Context, fn func() error) error {
	q.mu.Lock()
	prev := q.tail
	done := make(chan struct{})
	q.tail = done
	q.entered++
	q.mu.Unlock()

	if prev != nil {
		select {
		case <-prev:
		case <-ctx.Done():
			go func() {
				<-prev
				close(done)
			}()
			return ctx.Err()
		}
	}

	defer close(done)
	return fn()
}

// Entered reports how many units have entered the queue so far.
func (q *Queue) Entered() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.entered
}
