package work

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/mayday-app/mayday/server/logger"
)

const (
	MAX_CONCURRENCY = 1
	MAX_QUEUED_JOBS = 100
)

var (
	ErrDuplicateHandler = errors.New("handler with provided name already mapped")

	logg = logger.NewLogger()
)

type JobParams struct {
	Name    string
	Handler string
	Args    map[string]interface{}
}

type Handler func(map[string]interface{}) error

// WorkerPool runs queued jobs on a fixed set of goroutines. Jobs live in
// an in-memory channel - there is no durable queue here, the only jobs in
// this app are periodic db backups which are safe to lose on restart.
type WorkerPool struct {
	handlers    map[string]Handler
	jobChan     chan JobParams
	concurrency int
	started     bool
	wg          sync.WaitGroup
}

func NewWorkerPool(concurrency int) *WorkerPool {
	return &WorkerPool{
		handlers:    make(map[string]Handler),
		jobChan:     make(chan JobParams, MAX_QUEUED_JOBS),
		concurrency: concurrency,
	}
}

// registerHandler binds a name to a job handler. All registrations must
// happen before the pool is started.
func (wp *WorkerPool) registerHandler(name string, handler Handler) error {
	if _, ok := wp.handlers[name]; ok {
		return ErrDuplicateHandler
	}

	wp.handlers[name] = handler

	return nil
}

// enqueue adds a job to the queue to be picked up by the next free worker
func (wp *WorkerPool) enqueue(job JobParams) error {
	if strings.TrimSpace(job.Name) == "" || strings.TrimSpace(job.Handler) == "" {
		return fmt.Errorf("both a name & handler is required for a job")
	}

	if _, ok := wp.handlers[job.Handler]; !ok {
		return fmt.Errorf("no handler registered for '%v'", job.Handler)
	}

	select {
	case wp.jobChan <- job:
		return nil
	default:
		return fmt.Errorf("job queue is full, unable to enqueue '%v'", job.Name)
	}
}

// start starts all workers in pool i.e. the workers can start processing jobs
func (wp *WorkerPool) start() {
	if wp.started {
		return
	}
	wp.started = true

	for i := 0; i < wp.concurrency; i++ {
		wp.wg.Add(1)
		go wp.workerLoop(i)
	}
}

// stop drains the queue & waits for in-flight jobs to finish
func (wp *WorkerPool) stop() {
	if !wp.started {
		return
	}

	close(wp.jobChan)
	wp.wg.Wait()
	wp.started = false
}

func (wp *WorkerPool) workerLoop(id int) {
	defer wp.wg.Done()

	logg.Infof("Starting worker %v", id)
	for job := range wp.jobChan {
		err := wp.handlers[job.Handler](job.Args)
		if err != nil {
			logg.Errorf("Job '%v' failed: %v", job.Name, err)
			continue
		}

		logg.Infof("Job '%v' completed", job.Name)
	}
	logg.Infof("Stopping worker %v", id)
}
