package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/appengine-ltd/wildlands/internal/bridge"
	"github.com/appengine-ltd/wildlands/internal/console"
	"github.com/appengine-ltd/wildlands/internal/engine"
	"github.com/appengine-ltd/wildlands/internal/game"
	"github.com/appengine-ltd/wildlands/internal/platform/logger"
	"github.com/appengine-ltd/wildlands/internal/store"
)

// version, commit, date are injected at build time with -ldflags "-X main.version=...".
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

type options struct {
	showVersion bool
	headless    bool
	seed        int64
	lang        string
	dbPath      string
	savesDir    string
	slot        string
	listen      string
	autosave    time.Duration
}

// session is everything a front end needs once the world is running.
type session struct {
	opts    options
	log     *logger.Logger
	sim     *game.Simulation
	console *console.Console
}

func main() {
	var opts options
	flag.BoolVar(&opts.showVersion, "version", false, "print version and exit")
	flag.BoolVar(&opts.headless, "headless", false, "play in the terminal instead of opening a window")
	flag.Int64Var(&opts.seed, "seed", 0, "world seed (0 picks one from the clock)")
	flag.StringVar(&opts.lang, "lang", "en", "notification language (en, tr)")
	flag.StringVar(&opts.dbPath, "db", "wildlands.db", "SQLite save database; empty disables saving")
	flag.StringVar(&opts.savesDir, "saves", "", "directory of JSON save files, used instead of -db")
	flag.StringVar(&opts.slot, "slot", store.DefaultSlot, "save slot to resume and autosave into")
	flag.StringVar(&opts.listen, "listen", "", "serve the renderer bridge on this address, e.g. 127.0.0.1:8787")
	flag.DurationVar(&opts.autosave, "autosave", time.Minute, "autosave interval; 0 disables")
	flag.Parse()

	if opts.showVersion {
		fmt.Printf("Wildlands %s (%s) %s\n", version, commit, date)
		return
	}

	if err := run(opts); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(opts options) error {
	log := logger.NewLogger()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sim, err := game.NewSimulation(game.Config{Seed: opts.seed, Language: opts.lang})
	if err != nil {
		return err
	}

	saves, err := openStore(opts, log)
	if err != nil {
		return err
	}
	if saves != nil {
		defer saves.Close()
		resume(ctx, sim, saves, opts.slot, log)
	}

	cons := console.New(sim, saves, log)

	driver := engine.NewDriver(sim, log)
	driver.Saves = saves
	driver.Slot = opts.slot
	driver.AutosaveInterval = opts.autosave
	engineDone := make(chan struct{})
	go func() {
		defer close(engineDone)
		driver.Start(ctx)
	}()
	defer func() {
		driver.Stop()
		<-engineDone
	}()

	if opts.listen != "" {
		hub := bridge.NewHub(sim, cons, log)
		go hub.Run(ctx)
		srv := &http.Server{
			Addr:              opts.listen,
			Handler:           bridge.NewHandler(hub, bridge.HandlerConfig{Logger: log}).Mux(),
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			log.Infof("bridge listening on %s", opts.listen)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Errorf("bridge server: %v", err)
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				log.Warnf("bridge shutdown: %v", err)
			}
		}()
	}

	return frontend(ctx, session{opts: opts, log: log, sim: sim, console: cons})
}

func openStore(opts options, log *logger.Logger) (store.Store, error) {
	switch {
	case opts.savesDir != "":
		return store.NewFileStore(opts.savesDir, log)
	case opts.dbPath != "":
		return store.OpenSQLite(opts.dbPath, log)
	default:
		return nil, nil
	}
}

// resume restores the slot when it exists. A missing slot is a new game.
func resume(ctx context.Context, sim *game.Simulation, saves store.Store, slot string, log *logger.Logger) {
	data, err := saves.Load(ctx, slot)
	if errors.Is(err, store.ErrNotFound) {
		return
	}
	if err != nil {
		log.Warnf("could not read slot %s: %v", slot, err)
		return
	}
	if err := sim.RestoreJSON(data); err != nil {
		log.Warnf("could not restore slot %s: %v", slot, err)
		return
	}
	log.Infof("resumed slot %s", slot)
}

// repl feeds lines from in to the console until EOF, "quit" or ctx ends.
func repl(ctx context.Context, cons *console.Console, in io.Reader, out io.Writer) error {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	fmt.Fprintln(out, "Type 'help' for commands, 'quit' to leave.")
	for {
		fmt.Fprint(out, "> ")
		select {
		case <-ctx.Done():
			fmt.Fprintln(out)
			return nil
		case line, ok := <-lines:
			if !ok {
				return nil
			}
			line = strings.TrimSpace(line)
			switch strings.ToLower(line) {
			case "":
				continue
			case "quit", "exit":
				return nil
			}
			res := cons.Execute(ctx, line)
			if !res.Handled {
				fmt.Fprintln(out, "I don't understand that. Try 'help'.")
				continue
			}
			fmt.Fprintln(out, res.Message)
		}
	}
}
