package game

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// Loop drives a Round from a ticker when no UI event loop is available.
type Loop struct {
	round         *Round
	input         InputSource
	frameInterval time.Duration
	onFrame       func(Snapshot)
}

func NewLoop(round *Round, input InputSource, frameInterval time.Duration) *Loop {
	if input == nil {
		input = NoInput{}
	}
	return &Loop{
		round:         round,
		input:         input,
		frameInterval: frameInterval,
	}
}

// OnFrame registers a callback that receives a snapshot after every frame.
func (l *Loop) OnFrame(fn func(Snapshot)) {
	l.onFrame = fn
}

// Run blocks, running one frame per tick, until ctx is done. It returns ctx.Err().
func (l *Loop) Run(ctx context.Context) error {
	ticker := time.NewTicker(l.frameInterval)
	defer ticker.Stop()

	log.Info("Game loop started.", "frame_interval", l.frameInterval)
	last := time.Now()

	for {
		select {
		case <-ctx.Done():
			log.Info("Game loop stopped.")
			return ctx.Err()
		case now := <-ticker.C:
			delta := now.Sub(last)
			last = now

			l.round.Frame(delta, l.input)
			if l.onFrame != nil {
				l.onFrame(l.round.Snapshot())
			}
		}
	}
}
