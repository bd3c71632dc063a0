package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"
	"time"

	"github.com/Mshel/sshnake/internal/game"
	"github.com/Mshel/sshnake/internal/journal"
	"github.com/Mshel/sshnake/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/bubbletea"
	"github.com/charmbracelet/wish/logging"
)

const (
	defaultHost           = "0.0.0.0"
	defaultPort           = "6996"
	defaultMaxConnections = 2

	recorderWorkers = 2
	recorderBuffer  = 64
	shutdownTimeout = 30 * time.Second
	recentOnStop    = 5
)

type serverConfig struct {
	host                string
	port                string
	privateKeyPath      string
	journalDSN          string
	maxConnectionsPerIP int
}

func envOr(name, fallback string) string {
	if value, ok := os.LookupEnv(name); ok && value != "" {
		return value
	}
	return fallback
}

func loadServerConfig() (serverConfig, error) {
	config := serverConfig{
		host:                envOr("SSHNAKE_HOST", defaultHost),
		port:                envOr("SSHNAKE_PORT", defaultPort),
		privateKeyPath:      os.Getenv("SSHNAKE_PRIVATE_KEY_PATH"),
		journalDSN:          envOr("SSHNAKE_JOURNAL_DSN", journal.DefaultDSN),
		maxConnectionsPerIP: defaultMaxConnections,
	}

	if raw := os.Getenv("SSHNAKE_MAX_CONNECTIONS"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 {
			return config, fmt.Errorf("invalid SSHNAKE_MAX_CONNECTIONS %q", raw)
		}
		config.maxConnectionsPerIP = limit
	}
	return config, nil
}

// connectionLimiter caps concurrent sessions per remote IP.
type connectionLimiter struct {
	limit  int
	mu     sync.Mutex
	counts map[string]int
}

func newConnectionLimiter(limit int) *connectionLimiter {
	return &connectionLimiter{limit: limit, counts: make(map[string]int)}
}

func (l *connectionLimiter) acquire(ip string) (int, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.counts[ip] >= l.limit {
		return l.counts[ip], false
	}
	l.counts[ip]++
	return l.counts[ip], true
}

func (l *connectionLimiter) release(ip string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.counts[ip]--
	if l.counts[ip] <= 0 {
		delete(l.counts, ip)
		return 0
	}
	return l.counts[ip]
}

func remoteIP(addr net.Addr) string {
	if tcpAddr, ok := addr.(*net.TCPAddr); ok {
		return tcpAddr.IP.String()
	}
	return addr.String()
}

func (l *connectionLimiter) middleware(next ssh.Handler) ssh.Handler {
	return func(s ssh.Session) {
		ip := remoteIP(s.RemoteAddr())

		count, ok := l.acquire(ip)
		if !ok {
			log.Warn("Connection denied: IP limit exceeded", "ip", ip, "attempted_count", count+1, "limit", l.limit)
			fmt.Fprintf(s, "Too many active connections from your IP (%d/%d). Please try again later.\r\n", count+1, l.limit)
			s.Close()
			return
		}

		log.Info("Connection accepted", "ip", ip, "current_count", count, "limit", l.limit)
		next(s)
		log.Info("Connection closed", "ip", ip, "count_after", l.release(ip))
	}
}

func sessionName(s ssh.Session) string {
	id := s.Context().SessionID()
	if len(id) > 8 {
		id = id[:8]
	}
	return s.User() + "/" + id
}

func gameHandler(recorder *journal.Recorder, counter ui.RoundCounter) bubbletea.Handler {
	return func(s ssh.Session) (tea.Model, []tea.ProgramOption) {
		pty, _, _ := s.Pty()
		session := sessionName(s)

		controller := ui.NewControllerModel(ui.Options{
			Config:       game.DefaultConfig(),
			Session:      session,
			Listener:     recorder.Listener(session),
			Counter:      counter,
			Logger:       log.With("session", session),
			ScreenWidth:  pty.Window.Width,
			ScreenHeight: pty.Window.Height,
		})

		return controller, []tea.ProgramOption{tea.WithAltScreen()}
	}
}

// logRecentRounds writes the latest journaled outcomes, newest first. It runs
// after the recorder has flushed.
func logRecentRounds(logger *log.Logger, roundJournal *journal.Journal, limit int) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	entries, err := roundJournal.Recent(ctx, limit)
	if err != nil {
		logger.Warn("Could not read round journal", "error", err)
		return
	}
	for _, entry := range entries {
		logger.Info("Journaled round", "session", entry.Session, "round", entry.Round,
			"cause", entry.Cause, "ticks", entry.Ticks, "length", entry.FinalLength)
	}
}

func main() {
	log.SetLevel(log.DebugLevel)

	config, err := loadServerConfig()
	if err != nil {
		log.Error("Bad server configuration", "error", err)
		os.Exit(1)
	}

	roundJournal, err := journal.Open(config.journalDSN)
	if err != nil {
		log.Error("Failed to open round journal", "error", err)
		os.Exit(1)
	}
	defer roundJournal.Close()
	defer logRecentRounds(log.Default(), roundJournal, recentOnStop)

	recorder := journal.NewRecorder(roundJournal, recorderWorkers, recorderBuffer)
	defer recorder.Close()

	limiter := newConnectionLimiter(config.maxConnectionsPerIP)

	sshServer, err := wish.NewServer(
		wish.WithAddress(net.JoinHostPort(config.host, config.port)),
		wish.WithHostKeyPath(config.privateKeyPath),
		wish.WithMiddleware(
			bubbletea.Middleware(gameHandler(recorder, roundJournal)),
			logging.Middleware(),
			activeterm.Middleware(),
			limiter.middleware,
		),
	)
	if err != nil {
		log.Error("Failed to create ssh server", "error", err)
		os.Exit(1)
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)
	log.Info("Starting SSH server", "host", config.host, "port", config.port)
	go func() {
		if err := sshServer.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			log.Error("Could not start server", "error", err)
			done <- nil
		}
	}()

	<-done

	log.Info("Stopping SSH server")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := sshServer.Shutdown(ctx); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
		log.Error("Could not stop server", "error", err)
	}
}
