package interactionlog

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// Recorder decouples interaction logging from the response path.
// Record never blocks: entries go through a buffered channel drained
// by a single goroutine, and are dropped with a warning when the
// buffer is full. Persistence errors are logged and swallowed.
type Recorder struct {
	store   Store
	entries chan *Entry
	done    chan struct{}
}

const (
	recorderBuffer = 256
	appendTimeout  = 5 * time.Second
)

func NewRecorder(store Store) *Recorder {
	r := &Recorder{
		store:   store,
		entries: make(chan *Entry, recorderBuffer),
		done:    make(chan struct{}),
	}
	go r.drain()
	return r
}

// Record enqueues an entry for appending. Fire-and-forget.
func (r *Recorder) Record(e *Entry) {
	if e == nil {
		return
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	select {
	case r.entries <- e:
	default:
		log.Warn().Msg("Interaction log buffer full, dropping entry")
	}
}

// Close stops the recorder after flushing queued entries
func (r *Recorder) Close() {
	close(r.entries)
	<-r.done
}

func (r *Recorder) drain() {
	defer close(r.done)
	for e := range r.entries {
		ctx, cancel := context.WithTimeout(context.Background(), appendTimeout)
		if err := r.store.Append(ctx, e); err != nil {
			log.Warn().Err(err).Msg("Failed to append interaction log entry")
		}
		cancel()
	}
}
