package worker

import (
	"context"
	"sync"
)

// Task is a unit of work executed by the pool. The context is cancelled as
// soon as any task of the same pool fails.
type Task func(ctx context.Context) error

// Pool runs submitted tasks on a fixed number of goroutines.
type Pool interface {
	// Submit blocks until a worker accepts t. Tasks submitted after a
	// failure are dropped. Submit must not be called after Wait.
	Submit(Task)
	// Wait stops accepting tasks, waits for the running ones and returns
	// the first error.
	Wait() error
}

// NewPool creates a pool with n workers. n<=0 defaults to 1.
func NewPool(ctx context.Context, n int) Pool {
	if n <= 0 {
		n = 1
	}
	ctx, cancel := context.WithCancel(ctx)
	p := &pool{jobs: make(chan Task), ctx: ctx, cancel: cancel}
	p.wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer p.wg.Done()
			for job := range p.jobs {
				if job == nil || p.ctx.Err() != nil {
					continue
				}
				if err := job(p.ctx); err != nil {
					p.fail(err)
				}
			}
		}()
	}
	return p
}

type pool struct {
	jobs   chan Task
	wg     sync.WaitGroup
	ctx    context.Context
	cancel context.CancelFunc

	once sync.Once
	err  error
}

func (p *pool) fail(err error) {
	p.once.Do(func() {
		p.err = err
		p.cancel()
	})
}

func (p *pool) Submit(t Task) {
	select {
	case p.jobs <- t:
	case <-p.ctx.Done():
	}
}

func (p *pool) Wait() error {
	close(p.jobs)
	p.wg.Wait()
	err := p.ctx.Err()
	p.cancel()
	if p.err != nil {
		return p.err
	}
	return err
}
