package systems

import (
	"fmt"
	"sync"

	"github.com/davsar89/GDML-Studio/engine/core"
)

/**
 * @brief Describes a job to be run. OnStart runs on a worker; OnComplete and
 * OnFailure run later on whichever goroutine calls Update.
 */
type JobTask struct {
	/** @brief Data passed to OnStart. */
	InputParams interface{}
	/** @brief Invoked on a worker when the job starts. Required. */
	OnStart func(params interface{}) (interface{}, error)
	/** @brief Invoked with the result when OnStart succeeds. Optional. */
	OnComplete func(result interface{})
	/** @brief Invoked with the error when OnStart fails. Optional. */
	OnFailure func(err error)
}

type JobSystem struct {
	numWorkers int
	jobQueue   chan JobTask
	results    chan func()
	wg         sync.WaitGroup

	mu     sync.Mutex
	closed bool
}

var ErrNoWorkers = fmt.Errorf("attempting to create worker pool with less than 1 worker")
var ErrNegativeChannelSize = fmt.Errorf("attempting to create worker pool with a negative channel size")
var ErrJobSystemClosed = fmt.Errorf("job system is shut down")
var ErrJobQueueFull = fmt.Errorf("job queue is full")

func NewJobSystem(numWorkers int, channelSize int) (*JobSystem, error) {
	if numWorkers <= 0 {
		return nil, ErrNoWorkers
	}
	if channelSize < 0 {
		return nil, ErrNegativeChannelSize
	}

	js := &JobSystem{
		numWorkers: numWorkers,
		jobQueue:   make(chan JobTask, channelSize),
		results:    make(chan func(), channelSize+numWorkers),
	}

	js.start()

	return js, nil
}

func (js *JobSystem) start() {
	for i := 0; i < js.numWorkers; i++ {
		js.wg.Add(1)
		go func() {
			defer js.wg.Done()
			for job := range js.jobQueue {
				result, err := job.OnStart(job.InputParams)
				if err != nil {
					core.LogError("%s", err)
					if job.OnFailure != nil {
						onFailure := job.OnFailure
						js.results <- func() { onFailure(err) }
					}
					continue
				}
				if job.OnComplete != nil {
					onComplete := job.OnComplete
					js.results <- func() { onComplete(result) }
				}
			}
		}()
	}
}

/**
 * @brief Shuts the job system down. Queued jobs still run; their callbacks
 * are dropped.
 */
func (js *JobSystem) Shutdown() error {
	js.mu.Lock()
	if js.closed {
		js.mu.Unlock()
		return nil
	}
	js.closed = true
	close(js.jobQueue)
	js.mu.Unlock()

	// Workers may block on a full results channel.
	done := make(chan struct{})
	go func() {
		js.wg.Wait()
		close(done)
	}()
	for {
		select {
		case <-js.results:
		case <-done:
			return nil
		}
	}
}

/**
 * @brief Updates the job system. Should happen once an update cycle: runs the
 * callbacks of every job finished since the last call.
 *
 * @return The number of callbacks run.
 */
func (js *JobSystem) Update() int {
	n := 0
	for {
		select {
		case fn := <-js.results:
			fn()
			n++
		default:
			return n
		}
	}
}

/**
 * @brief Submits the provided job to be queued for execution. Never blocks:
 * a full queue yields ErrJobQueueFull.
 * @param jt The description of the job to be executed.
 */
func (js *JobSystem) Submit(jt JobTask) error {
	js.mu.Lock()
	defer js.mu.Unlock()
	if js.closed {
		return ErrJobSystemClosed
	}
	select {
	case js.jobQueue <- jt:
		return nil
	default:
		return ErrJobQueueFull
	}
}
