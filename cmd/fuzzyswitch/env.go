package main

import (
	"bytes"
	"io"
	"log"
	"os"
	"path/filepath"

	"fuzzyswitch/internal/config"
	"fuzzyswitch/internal/eventbus"
)

// env is what every interactive command runs with.
type env struct {
	cfg     *config.Config
	bus     eventbus.EventBus
	logFile io.Closer
}

// withEnv loads the config, redirects logging to the log file and starts the
// event bus for the duration of fn. Anything logged before the log file is
// open is held back and written to it, so nothing reaches the terminal.
func withEnv(cfgPath string, fn func(*env) error) error {
	var early bytes.Buffer
	log.SetOutput(&early)

	bus := eventbus.New()
	svc := config.NewConfigServiceWithBus(cfgPath, bus)
	cfg, err := svc.Load()
	if err != nil {
		bus.Close()
		log.SetOutput(os.Stderr)
		return err
	}

	e := &env{cfg: cfg, bus: bus}
	if err := e.openLog(); err != nil {
		// The UI owns the terminal, so logs are discarded instead
		log.SetOutput(io.Discard)
	} else {
		log.Writer().Write(early.Bytes())
	}
	// Drain the bus before the log file goes away
	defer func() {
		bus.Close()
		e.closeLog()
	}()

	log.Printf("Loaded config from %s", svc.Path())
	subscribeLogger(bus)

	return fn(e)
}

func (e *env) openLog() error {
	path := e.cfg.LogPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	log.SetOutput(f)
	e.logFile = f
	return nil
}

func (e *env) closeLog() {
	if e.logFile == nil {
		return
	}
	log.SetOutput(os.Stderr)
	e.logFile.Close()
}

// subscribeLogger writes domain events to the log.
func subscribeLogger(bus eventbus.EventBus) {
	bus.Subscribe(eventbus.EventItemSelected, func(e eventbus.DomainEvent) {
		if ev, ok := e.(eventbus.ItemSelectedEvent); ok {
			log.Printf("Selected %q (query %q)", ev.Item, ev.Query)
		}
	})
	bus.Subscribe(eventbus.EventResolveFailed, func(e eventbus.DomainEvent) {
		if ev, ok := e.(eventbus.ResolveFailedEvent); ok {
			log.Printf("Resolve failed for %q: %v", ev.Query, ev.Err)
		}
	})
	bus.Subscribe(eventbus.EventSwitcherOpened, func(e eventbus.DomainEvent) {
		if ev, ok := e.(eventbus.SwitcherOpenedEvent); ok {
			log.Printf("Opened %q with %d seed items", ev.Label, ev.Seed)
		}
	})
}
