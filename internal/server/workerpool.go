package server

import (
	"github.com/rs/zerolog/log"
	tomb "gopkg.in/tomb.v2"
)

const taskChanSize = 100

// WorkerFunction processes one task. Returning an error is fatal for
// that worker; the pool keeps the remaining workers running.
type WorkerFunction = func(t *tomb.Tomb, task any) error

// WorkerPool maintains a fixed number of goroutines draining a shared
// task channel, so a burst of incoming connections doesn't spawn an
// unbounded number of goroutines.
type WorkerPool struct {
	n     int
	tasks chan any
}

// NewWorkerPool builds a pool of size workers backed by a buffered
// task channel.
func NewWorkerPool(size uint) WorkerPool {
	return WorkerPool{
		n:     int(size),
		tasks: make(chan any, taskChanSize),
	}
}

// AddTask enqueues a task for the next free worker.
func (pool *WorkerPool) AddTask(task any) {
	pool.tasks <- task
}

// Setup starts the pool's fixed set of workers and blocks until the
// tomb is dying.
func (pool *WorkerPool) Setup(t *tomb.Tomb, work WorkerFunction) {
	for i := 0; i < pool.n; i++ {
		id := i
		t.Go(func() error { return pool.worker(t, id, work) })
	}
	<-t.Dying()
}

func (pool *WorkerPool) worker(t *tomb.Tomb, id int, work WorkerFunction) error {
	for {
		select {
		case <-t.Dying():
			return nil
		case task := <-pool.tasks:
			if err := work(t, task); err != nil {
				log.Error().Err(err).Int("worker_id", id).Msg("worker exiting")
				return nil
			}
		}
	}
}
