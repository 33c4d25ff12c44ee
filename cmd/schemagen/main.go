// Command schemagen generates the data access layer of every table
// definition listed in its configuration file.
//
// Usage:
//
//	schemagen -config schemagen.yaml
//	schemagen -config schemagen.yaml -framework
//	schemagen -config schemagen.yaml -watch
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/syssam/schemagen/compiler/gen"
	"github.com/syssam/schemagen/compiler/load"
)

// debounce is the quiet period after a change before regenerating.
const debounce = 200 * time.Millisecond

func main() {
	var (
		configPath = flag.String("config", "schemagen.yaml", "path to the configuration file")
		app        = flag.Bool("app", false, "generate only the application schemas")
		framework  = flag.Bool("framework", false, "generate only the framework schemas")
		watch      = flag.Bool("watch", false, "regenerate when a definition or a template changes")
	)
	flag.Parse()
	log.SetFlags(0)

	if *app && *framework {
		log.Fatal("schemagen: -app and -framework are mutually exclusive")
	}

	cfg, err := LoadFromFile(*configPath)
	if err != nil {
		log.Fatalf("schemagen: %v", err)
	}
	LoadFromEnv(cfg)
	cfg.Resolve(filepath.Dir(*configPath))
	if err := cfg.Validate(); err != nil {
		log.Fatalf("schemagen: invalid config: %v", err)
	}

	mode := modeAll
	switch {
	case *app:
		mode = modeApp
	case *framework:
		mode = modeFramework
	}

	if err := run(cfg, mode); err != nil {
		if !*watch {
			log.Fatalf("schemagen: %v", err)
		}
		log.Printf("schemagen: %v", err)
	}
	if !*watch {
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := watchAndRun(ctx, cfg, mode); err != nil {
		log.Fatalf("schemagen: %v", err)
	}
}

type runMode int

const (
	modeAll runMode = iota
	modeApp
	modeFramework
)

// run generates the selected partitions with a fresh registry, so every
// run sees the definitions as they are on disk.
func run(cfg *Config, mode runMode) error {
	g, err := gen.New(load.NewRegistry(cfg.SourceList()...), cfg.Options()...)
	if err != nil {
		return err
	}
	switch mode {
	case modeApp:
		_, err = g.Generate(false)
	case modeFramework:
		_, err = g.Generate(true)
	default:
		_, err = g.GenerateAll()
	}
	return err
}

// watchAndRun regenerates after every change of the watched directories
// until ctx is done.
func watchAndRun(ctx context.Context, cfg *Config, mode runMode) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	paths, err := cfg.WatchPaths()
	if err != nil {
		return err
	}
	for _, p := range paths {
		if err := watcher.Add(p); err != nil {
			return fmt.Errorf("watch %s: %w", p, err)
		}
	}
	log.Printf("schemagen: watching %d directories", len(watcher.WatchList()))

	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if relevant(ev) {
				timer.Reset(debounce)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("schemagen: watch: %v", err)
		case <-timer.C:
			if err := run(cfg, mode); err != nil {
				log.Printf("schemagen: %v", err)
			}
		}
	}
}

// relevant reports if ev touches a definition or a template file.
func relevant(ev fsnotify.Event) bool {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) &&
		!ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
		return false
	}
	switch strings.ToLower(filepath.Ext(ev.Name)) {
	case ".yaml", ".yml", ".json", ".tmpl":
		return true
	}
	return false
}
