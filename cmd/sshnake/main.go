package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"math/rand"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/Mshel/sshnake/internal/autopilot"
	"github.com/Mshel/sshnake/internal/game"
	"github.com/Mshel/sshnake/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
)

var (
	autopilotFlag = flag.Bool("autopilot", false, "Start the round under the Lua autopilot")
	scriptFlag    = flag.String("script", "", "Lua autopilot script (defaults to the built-in greedy strategy)")
	headlessFlag  = flag.Bool("headless", false, "Run the autopilot without a UI and log every round")
	durationFlag  = flag.Duration("duration", 30*time.Second, "How long a headless run lasts")
	seedFlag      = flag.Int64("seed", 0, "Food placement seed (0 uses the clock)")
	debugFlag     = flag.Bool("debug", false, "Write debug logs to "+filepath.Join("logs", logFileName))
)

var logDir = "logs"

const logFileName = "sshnake.log"

func main() {
	flag.Parse()

	if *headlessFlag {
		log.SetLevel(log.InfoLevel)
		if *debugFlag {
			log.SetLevel(log.DebugLevel)
		}
		if err := runHeadless(*durationFlag, *seedFlag, *scriptFlag); err != nil {
			log.Error("Headless run failed", "error", err)
			os.Exit(1)
		}
		return
	}

	logFile := setupLogging(*debugFlag)
	if logFile != nil {
		defer logFile.Close()
	}

	if err := runTUI(); err != nil {
		fmt.Printf("error %v", err)
		os.Exit(1)
	}
}

// setupLogging sends logs to a file when debug is set and drops them
// otherwise, since the TUI owns the terminal.
func setupLogging(debug bool) *os.File {
	if !debug {
		log.SetOutput(io.Discard)
		return nil
	}

	if err := os.MkdirAll(logDir, 0o755); err != nil {
		log.SetOutput(io.Discard)
		return nil
	}
	logFile, err := os.OpenFile(filepath.Join(logDir, logFileName), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		log.SetOutput(io.Discard)
		return nil
	}

	log.SetOutput(logFile)
	log.SetLevel(log.DebugLevel)
	log.SetReportTimestamp(true)
	return logFile
}

func runTUI() error {
	script, err := autopilot.LoadScript(*scriptFlag)
	if err != nil {
		return err
	}

	controller := ui.NewControllerModel(ui.Options{
		Config:    game.DefaultConfig(),
		Seed:      *seedFlag,
		Script:    script,
		Autopilot: *autopilotFlag,
		SkipIntro: *autopilotFlag,
		Session:   "local",
	})

	p := tea.NewProgram(controller, tea.WithAltScreen())
	final, err := p.Run()
	if c, ok := final.(ui.ControllerModel); ok {
		c.Close()
	}
	return err
}

func runHeadless(duration time.Duration, seed int64, scriptPath string) error {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	rounds := 0
	round := game.NewRound(game.DefaultConfig(), rand.New(rand.NewSource(seed)),
		game.WithListener(game.RoundListenerFunc(func(outcome game.RoundOutcome) {
			rounds++
			log.Info("Round finished", "round", outcome.Round, "cause", outcome.Cause,
				"ticks", outcome.Ticks, "length", outcome.FinalLength)
		})))

	pilot, err := autopilot.NewFromFile(round, scriptPath)
	if err != nil {
		return err
	}
	defer pilot.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, duration)
	defer cancel()

	log.Info("Starting headless run", "duration", duration, "seed", seed)
	err = game.NewLoop(round, pilot, game.FrameInterval).Run(ctx)
	if err != nil && !errors.Is(err, context.DeadlineExceeded) && !errors.Is(err, context.Canceled) {
		return err
	}

	snap := round.Snapshot()
	log.Info("Headless run finished", "rounds_finished", rounds, "current_round", snap.Round,
		"current_length", len(snap.Segments))
	return nil
}
