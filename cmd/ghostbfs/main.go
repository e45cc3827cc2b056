// Command ghostbfs runs the ghost pathfinding demo.
//
// In term mode the board is drawn with tcell and a mouse click picks the
// destination. In serve mode the session is exposed over HTTP and a
// websocket stream. In text mode one walk is printed frame by frame.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	log "github.com/sirupsen/logrus"

	"github.com/katalvlaran/ghostbfs/boards"
	"github.com/katalvlaran/ghostbfs/render"
	"github.com/katalvlaran/ghostbfs/server"
	"github.com/katalvlaran/ghostbfs/session"
)

const (
	modeTerm  = "term"
	modeServe = "serve"
	modeText  = "text"
)

var errStalled = errors.New("destination unreachable from agent")

type config struct {
	board     string
	boardFile string
	list      bool
	start     int
	dest      int
	interval  time.Duration
	rule      session.StepRule
	mode      string
	addr      string
	logLevel  log.Level
	logFile   string
}

func parseFlags(args []string, getenv func(string) string) (config, error) {
	var (
		cfg      config
		rule     string
		logLevel string
	)
	port := getenv("PORT")
	if port == "" {
		port = "8080"
	}

	fs := flag.NewFlagSet("ghostbfs", flag.ContinueOnError)
	fs.StringVar(&cfg.board, "board", boards.DefaultName, "built-in board name")
	fs.StringVar(&cfg.boardFile, "board-file", "", "YAML or JSON board file (overrides -board)")
	fs.BoolVar(&cfg.list, "list", false, "list built-in boards and exit")
	fs.IntVar(&cfg.start, "start", -1, "agent start cell (-1 = board default)")
	fs.IntVar(&cfg.dest, "select", -1, "destination cell selected at startup")
	fs.DurationVar(&cfg.interval, "interval", session.DefaultInterval, "animation step interval")
	fs.StringVar(&rule, "rule", "last", "step rule: last|min")
	fs.StringVar(&cfg.mode, "mode", modeTerm, "mode: term|serve|text")
	fs.StringVar(&cfg.addr, "addr", ":"+port, "listen address for serve mode")
	fs.StringVar(&logLevel, "log-level", "info", "log level")
	fs.StringVar(&cfg.logFile, "log-file", "", "log file (term mode discards logs when empty)")
	if err := fs.Parse(args); err != nil {
		return cfg, err
	}

	switch rule {
	case "last":
		cfg.rule = session.StepLastQualifying
	case "min":
		cfg.rule = session.StepMinimum
	default:
		return cfg, fmt.Errorf("unknown step rule %q", rule)
	}
	switch cfg.mode {
	case modeTerm, modeServe, modeText:
	default:
		return cfg, fmt.Errorf("unknown mode %q", cfg.mode)
	}
	if cfg.mode == modeText && cfg.dest < 0 {
		return cfg, errors.New("text mode needs -select")
	}
	lvl, err := log.ParseLevel(logLevel)
	if err != nil {
		return cfg, err
	}
	cfg.logLevel = lvl
	return cfg, nil
}

// newLogger routes logs away from the screen in term mode.
func newLogger(cfg config) (*log.Logger, func() error, error) {
	logger := log.New()
	logger.SetLevel(cfg.logLevel)
	closer := func() error { return nil }
	switch {
	case cfg.logFile != "":
		f, err := os.OpenFile(cfg.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, err
		}
		logger.SetOutput(f)
		closer = f.Close
	case cfg.mode == modeTerm:
		logger.SetOutput(io.Discard)
	default:
		logger.SetOutput(os.Stderr)
	}
	return logger, closer, nil
}

func loadBoard(cfg config) (boards.Board, error) {
	var (
		b   boards.Board
		err error
	)
	if cfg.boardFile != "" {
		b, err = boards.LoadFile(cfg.boardFile)
	} else {
		b, err = boards.Get(cfg.board)
	}
	if err != nil {
		return b, err
	}
	if cfg.start >= 0 {
		b.Start = cfg.start
	}
	return b, nil
}

func newSession(cfg config, b boards.Board, logger log.FieldLogger) (*session.Session, error) {
	g, err := b.Grid()
	if err != nil {
		return nil, err
	}
	return session.New(g, b.Start,
		session.WithInterval(cfg.interval),
		session.WithStepRule(cfg.rule),
		session.WithLogger(logger),
	)
}

func main() {
	cfg, err := parseFlags(os.Args[1:], os.Getenv)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if cfg.list {
		for _, name := range boards.Names() {
			fmt.Println(name)
		}
		return
	}
	if err := run(cfg); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cfg config) error {
	logger, closeLog, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	b, err := loadBoard(cfg)
	if err != nil {
		return err
	}
	sess, err := newSession(cfg, b, logger)
	if err != nil {
		return err
	}
	defer sess.Close()
	logger.WithFields(log.Fields{"board": b.Name, "start": b.Start, "mode": cfg.mode}).Info("session ready")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch cfg.mode {
	case modeText:
		return runText(ctx, sess, cfg.dest, os.Stdout, render.Options{ShowDistances: true})
	case modeServe:
		if cfg.dest >= 0 {
			if err := sess.Select(cfg.dest); err != nil {
				return err
			}
		}
		return runServe(ctx, sess, cfg.addr, logger)
	default:
		if cfg.dest >= 0 {
			if err := sess.Select(cfg.dest); err != nil {
				return err
			}
		}
		return runTerm(ctx, sess, logger)
	}
}

func runTerm(ctx context.Context, sess *session.Session, logger log.FieldLogger) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()
	return render.NewTerminal(screen, render.DefaultOptions(), logger).Run(ctx, sess)
}

func runServe(ctx context.Context, sess *session.Session, addr string, logger log.FieldLogger) error {
	srv, err := server.New(sess, server.WithLogger(logger))
	if err != nil {
		return err
	}
	defer srv.Close()

	hs := &http.Server{Addr: addr, Handler: srv}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		hs.Shutdown(shutdownCtx)
	}()

	logger.WithField("addr", addr).Info("listening")
	if err := hs.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// frameQueue buffers every published snapshot in order for a slow writer.
type frameQueue struct {
	mu     sync.Mutex
	frames []session.Snapshot
	ready  chan struct{}
}

func newFrameQueue() *frameQueue {
	return &frameQueue{ready: make(chan struct{}, 1)}
}

// push never blocks.
func (q *frameQueue) push(snap session.Snapshot) {
	q.mu.Lock()
	q.frames = append(q.frames, snap)
	q.mu.Unlock()
	select {
	case q.ready <- struct{}{}:
	default:
	}
}

func (q *frameQueue) drain() []session.Snapshot {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := q.frames
	q.frames = nil
	return out
}

// runText selects dest and prints every frame until the agent arrives.
func runText(ctx context.Context, sess *session.Session, dest int, w io.Writer, opts render.Options) error {
	queue := newFrameQueue()
	unsubscribe := sess.Subscribe(queue.push)
	defer unsubscribe()

	if err := sess.Select(dest); err != nil {
		return err
	}
	if !sess.Arrived() && !sess.CanAdvance() {
		fmt.Fprint(w, render.Text(sess.Snapshot(), opts))
		return fmt.Errorf("%w: %d", errStalled, dest)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-queue.ready:
		}
		for _, snap := range queue.drain() {
			printFrame(w, snap, opts)
			if snap.Arrived {
				return nil
			}
		}
	}
}

func printFrame(w io.Writer, snap session.Snapshot, opts render.Options) {
	fmt.Fprint(w, render.Text(snap, opts))
	fmt.Fprintln(w, render.Status(snap))
	fmt.Fprintln(w)
}
