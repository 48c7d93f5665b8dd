package arbor

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/pbanos/arbor/forest"
	"github.com/pbanos/arbor/queue"
)

// compileTrees pushes a task per tree of the forest to a queue and runs
// opts.Workers workers on it until every tree is compiled or one of them
// fails. Results are returned in tree order.
func compileTrees(ctx context.Context, f *forest.Forest, opts Options) ([]*TreeProgram, error) {
	q := queue.New()
	for i := range f.Trees {
		if err := q.Push(ctx, &queue.Task{Tree: i}); err != nil {
			return nil, errors.Wrapf(err, "queueing tree %d", i)
		}
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	results := make([]*TreeProgram, len(f.Trees))
	errs := make(chan error, opts.Workers)
	for w := 0; w < opts.Workers; w++ {
		log := opts.Logger.WithField("worker", w)
		go func() {
			errs <- Work(ctx, f, q, results, log, opts.EmptyQueueSleep)
		}()
	}
	var err error
	for w := 0; w < opts.Workers; w++ {
		werr := <-errs
		if werr != nil && err == nil {
			err = werr
			cancel()
		}
	}
	if err != nil {
		return nil, err
	}
	return results, nil
}

/*
Work takes a context, a forest, a queue of tree tasks, the slice where
compiled trees are stored by index, a logger and an emptyQueueSleep
duration, and enters a loop in which it:
  - pulls a task from the queue,
  - compiles the tree of the task with CompileTree,
  - stores the result at the tree's index in results,
  - marks the task as completed on the queue.

If no task can be pulled and no task is pending or running on the queue,
the worker ends returning nil. If no task can be pulled but some task is
running, the worker sleeps for emptyQueueSleep and retries, as a task
dropped by another worker would be pending again.

Work returns a non-nil error if the context is cancelled, if a tree
cannot be compiled or if an operation on the queue fails. Several
workers may share the queue and results, as every task writes to a
different index.
*/
func Work(ctx context.Context, f *forest.Forest, q queue.Queue, results []*TreeProgram, log logrus.FieldLogger, emptyQueueSleep time.Duration) error {
	for {
		task, err := q.Pull(ctx)
		if err != nil {
			return err
		}
		if task == nil {
			p, r, err := q.Count(ctx)
			if err != nil {
				return err
			}
			if p+r == 0 {
				return nil
			}
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(emptyQueueSleep):
			}
			continue
		}
		if err = workTask(ctx, task, f, q, results, log); err != nil {
			return err
		}
		if err = ctx.Err(); err != nil {
			return err
		}
	}
}

func workTask(ctx context.Context, task *queue.Task, f *forest.Forest, q queue.Queue, results []*TreeProgram, log logrus.FieldLogger) error {
	defer func() {
		q.Drop(ctx, task.ID())
	}()
	tp, err := CompileTree(task.Tree, f.Trees[task.Tree], len(f.Features))
	if err != nil {
		return err
	}
	results[task.Tree] = tp
	log.WithFields(logrus.Fields{
		"tree":   task.Tree,
		"splits": tp.Order.Len(),
		"leaves": len(tp.Entries),
	}).Debug("tree compiled")
	return q.Complete(ctx, task.ID())
}
