package journal

import (
	"context"
	"sync"
	"time"

	"github.com/Mshel/sshnake/internal/game"
	"github.com/charmbracelet/log"
)

const recordTimeout = 2 * time.Second

type sessionOutcome struct {
	session string
	outcome game.RoundOutcome
}

// Recorder moves journal writes off the simulation goroutine. Listeners hand
// outcomes to a buffered channel drained by worker goroutines; when the
// buffer is full the outcome is dropped.
type Recorder struct {
	journal  *Journal
	outcomes chan sessionOutcome

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

func NewRecorder(journal *Journal, workers int, buffer int) *Recorder {
	r := &Recorder{
		journal:  journal,
		outcomes: make(chan sessionOutcome, buffer),
	}

	for w := 1; w <= max(1, workers); w++ {
		r.wg.Add(1)
		go r.recordWorker()
	}
	return r
}

func (r *Recorder) recordWorker() {
	defer r.wg.Done()
	for item := range r.outcomes {
		ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
		if err := r.journal.Record(ctx, item.session, item.outcome); err != nil {
			log.Error("Round journal persist err", "session", item.session, "error", err)
		}
		cancel()
	}
}

// Listener returns a game.RoundListener that records outcomes under session.
func (r *Recorder) Listener(session string) game.RoundListener {
	return game.RoundListenerFunc(func(outcome game.RoundOutcome) {
		r.submit(sessionOutcome{session: session, outcome: outcome})
	})
}

func (r *Recorder) submit(item sessionOutcome) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.closed {
		return
	}

	select {
	case r.outcomes <- item:
	default:
		log.Warn("Round journal backlog full, dropping outcome", "session", item.session, "round", item.outcome.Round)
	}
}

// Close stops accepting outcomes and waits for pending writes.
func (r *Recorder) Close() {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	r.closed = true
	close(r.outcomes)
	r.mu.Unlock()

	r.wg.Wait()
}
