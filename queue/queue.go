package queue

import (
	"context"
	"fmt"
	"sync"
)

/*
Queue holds the trees of a forest waiting to be compiled. Workers pull
a task, compile its tree and then complete the task, or drop it back
to the queue if they stop before finishing.

Every operation takes a context.Context and fails with its error once
the context is done.
*/
type Queue interface {
	// Push adds a task at the back of the queue as pending.
	Push(context.Context, *Task) error
	// Pull takes the task at the front of the queue and marks it as
	// running. It returns a nil task and a nil error if nothing is
	// pending.
	Pull(context.Context) (*Task, error)
	// Drop returns a running task to the back of the queue. Dropping
	// a completed or unknown task does nothing.
	Drop(context.Context, string) error
	// Complete forgets a running task.
	Complete(context.Context, string) error
	// Count returns the number of pending and running tasks.
	Count(context.Context) (int, int, error)
}

type memQueue struct {
	mu      sync.Mutex
	pending []*Task
	running map[string]*Task
}

// New returns an empty Queue kept in memory.
func New() Queue {
	return &memQueue{running: make(map[string]*Task)}
}

func (mq *memQueue) Push(ctx context.Context, t *Task) error {
	return mq.locked(ctx, func() {
		mq.pending = append(mq.pending, t)
	})
}

func (mq *memQueue) Pull(ctx context.Context) (*Task, error) {
	var t *Task
	err := mq.locked(ctx, func() {
		if len(mq.pending) == 0 {
			return
		}
		t = mq.pending[0]
		mq.pending[0] = nil
		mq.pending = mq.pending[1:]
		mq.running[t.ID()] = t
	})
	return t, err
}

func (mq *memQueue) Drop(ctx context.Context, id string) error {
	return mq.locked(ctx, func() {
		if t, ok := mq.running[id]; ok {
			delete(mq.running, id)
			mq.pending = append(mq.pending, t)
		}
	})
}

func (mq *memQueue) Complete(ctx context.Context, id string) error {
	return mq.locked(ctx, func() {
		delete(mq.running, id)
	})
}

func (mq *memQueue) Count(ctx context.Context) (int, int, error) {
	var pending, running int
	err := mq.locked(ctx, func() {
		pending, running = len(mq.pending), len(mq.running)
	})
	if err != nil {
		return 0, 0, err
	}
	return pending, running, nil
}

func (mq *memQueue) String() string {
	mq.mu.Lock()
	defer mq.mu.Unlock()
	return fmt.Sprintf("{Queue pending: %v running: %d}", mq.pending, len(mq.running))
}

func (mq *memQueue) locked(ctx context.Context, f func()) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	mq.mu.Lock()
	defer mq.mu.Unlock()
	f()
	return nil
}
