package analyze

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/chirp-app/chirp-ai/internal/events"
)

// Job kinds understood by the pool.
const (
	KindAudio = "audio"
	KindVideo = "video"
)

// Job is one queued media analysis. Results land next to the media file as
// a JSON sidecar.
type Job struct {
	MediaPath string
	Kind      string
}

// QueueStats reports the current state of the analysis queue.
type QueueStats struct {
	Pending   int   `json:"pending"`
	Completed int64 `json:"completed"`
	Failed    int64 `json:"failed"`
}

// PoolOptions configures the analysis worker pool.
type PoolOptions struct {
	Service   *Service
	Publisher *events.Publisher
	Workers   int
	QueueSize int
	Timeout   time.Duration
	Log       zerolog.Logger
}

// Pool runs queued analyses on a fixed set of workers.
type Pool struct {
	jobs    chan Job
	service *Service
	pub     *events.Publisher
	opts    PoolOptions
	log     zerolog.Logger
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup

	// Guards the jobs channel against sends after Stop has closed it.
	stopMu  sync.RWMutex
	stopped bool

	completed atomic.Int64
	failed    atomic.Int64
}

// NewPool creates an analysis worker pool.
func NewPool(opts PoolOptions) *Pool {
	if opts.Workers <= 0 {
		opts.Workers = 1
	}
	if opts.QueueSize <= 0 {
		opts.QueueSize = 64
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 5 * time.Minute
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Pool{
		jobs:    make(chan Job, opts.QueueSize),
		service: opts.Service,
		pub:     opts.Publisher,
		opts:    opts,
		log:     opts.Log.With().Str("component", "analyze-pool").Logger(),
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Start launches the worker goroutines.
func (p *Pool) Start() {
	for i := 0; i < p.opts.Workers; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}
	p.log.Info().Int("workers", p.opts.Workers).Int("queue_size", p.opts.QueueSize).Msg("analysis worker pool started")
}

// Stop signals workers to drain and waits for completion. Enqueue calls
// arriving after Stop are rejected rather than panicking on the closed
// channel.
func (p *Pool) Stop() {
	p.stopMu.Lock()
	p.stopped = true
	close(p.jobs)
	p.stopMu.Unlock()
	p.wg.Wait()
	p.cancel()
	p.log.Info().
		Int64("completed", p.completed.Load()).
		Int64("failed", p.failed.Load()).
		Msg("analysis worker pool stopped")
}

// Enqueue adds a job to the analysis queue. Returns false if the queue is
// full or the pool has been stopped.
func (p *Pool) Enqueue(j Job) bool {
	p.stopMu.RLock()
	defer p.stopMu.RUnlock()
	if p.stopped {
		return false
	}
	select {
	case p.jobs <- j:
		return true
	default:
		return false
	}
}

// Stats returns current queue statistics.
func (p *Pool) Stats() QueueStats {
	return QueueStats{
		Pending:   len(p.jobs),
		Completed: p.completed.Load(),
		Failed:    p.failed.Load(),
	}
}

func (p *Pool) worker(id int) {
	defer p.wg.Done()
	log := p.log.With().Int("worker", id).Logger()

	for job := range p.jobs {
		if err := p.processJob(log, job); err != nil {
			p.failed.Add(1)
			log.Warn().Err(err).
				Str("path", job.MediaPath).
				Str("kind", job.Kind).
				Msg("analysis failed")
		} else {
			p.completed.Add(1)
		}
	}
}

func (p *Pool) processJob(log zerolog.Logger, job Job) error {
	start := time.Now()
	ctx, cancel := context.WithTimeout(p.ctx, p.opts.Timeout)
	defer cancel()

	var result any
	var err error
	switch job.Kind {
	case KindAudio:
		result, err = p.service.AnalyzeAudio(ctx, job.MediaPath)
	case KindVideo:
		result, err = p.service.AnalyzeVideo(ctx, job.MediaPath)
	default:
		return fmt.Errorf("unknown job kind %q", job.Kind)
	}
	if err != nil {
		return err
	}

	sidecar := job.MediaPath + ".analysis.json"
	if err := writeSidecar(sidecar, result); err != nil {
		return err
	}

	if p.pub != nil {
		p.pub.Publish(job.Kind, job.MediaPath, result)
	}

	log.Debug().
		Str("path", job.MediaPath).
		Str("kind", job.Kind).
		Dur("elapsed", time.Since(start)).
		Msg("analysis complete")

	return nil
}

// writeSidecar writes the result atomically: temp file in the same
// directory, then rename.
func writeSidecar(path string, result any) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write sidecar: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename sidecar: %w", err)
	}
	return nil
}
