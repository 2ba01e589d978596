package main

import (
	"codeberg.org/miketth/tagcycle/pkg/config"
	jsonstore "codeberg.org/miketth/tagcycle/pkg/cursorstore/json"
	"codeberg.org/miketth/tagcycle/pkg/cursorstore/memory"
	"codeberg.org/miketth/tagcycle/pkg/cursorstore/sqlite"
	"codeberg.org/miketth/tagcycle/pkg/cycler"
	"codeberg.org/miketth/tagcycle/pkg/ipc"
	"codeberg.org/miketth/tagcycle/pkg/tagcycle"
	"context"
	"errors"
	"fmt"
	"github.com/coreos/go-systemd/v22/daemon"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Fatalf("error: %+v", err)
	}
}

type options struct {
	configPath string
	debug      bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "tagcycle",
		Short:         "Per-tag cycling layouts for the compositor",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(opts)
		},
	}

	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "path to config.toml")
	root.PersistentFlags().BoolVar(&opts.debug, "debug", false, "enable debug logging")

	root.AddCommand(newPreviewCmd(opts))

	return root
}

func run(opts *options) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := newLogger(opts.debug || cfg.Debug)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer log.Sync()

	generators, err := cfg.BuildGenerators()
	if err != nil {
		return fmt.Errorf("build generators: %w", err)
	}

	layouts, err := cycler.New[tagcycle.TagID](generators)
	if err != nil {
		return fmt.Errorf("create cycler: %w", err)
	}

	ctx := context.Background()
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	socketDir, err := ipc.SocketDir()
	if err != nil {
		return fmt.Errorf("get socket dir: %w", err)
	}

	return serve(ctx, cfg, layouts, socketDir, log)
}

// serve runs the daemon against the compositor sockets in socketDir until ctx
// is done or a worker fails. Every worker is stopped and waited for before it
// returns, so pending cursors are flushed on either path.
func serve(
	ctx context.Context,
	cfg *config.Config,
	layouts *cycler.Cycler[tagcycle.TagID],
	socketDir string,
	log *zap.SugaredLogger,
) error {
	client, err := ipc.Connect(socketDir)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer client.Close()

	var workers []func(context.Context) error

	store, closeStore, saver, err := openStore(cfg, log)
	if err != nil {
		return fmt.Errorf("open cursor store: %w", err)
	}
	defer closeStore()
	if saver != nil {
		workers = append(workers, saver)
	}

	mgr := tagcycle.NewManager(layouts, client, ipc.NewRequester(socketDir), store, log)

	workers = append(workers,
		func(ctx context.Context) error {
			if err := mgr.ProcessLines(ctx); err != nil {
				return fmt.Errorf("process lines: %w", err)
			}
			return nil
		},
		func(ctx context.Context) error {
			if err := systemdNotifyLoop(ctx); err != nil {
				return fmt.Errorf("systemd notify: %w", err)
			}
			return nil
		},
	)

	log.Infow("started tagcycle", "layouts", layouts.Len(), "store", cfg.Store.Backend)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	errChan := make(chan error, len(workers))
	var wg sync.WaitGroup
	wg.Add(len(workers))
	for _, worker := range workers {
		go func(worker func(context.Context) error) {
			defer wg.Done()
			if err := worker(ctx); err != nil {
				errChan <- err
			}
		}(worker)
	}

	err = <-errChan
	cancel()
	// unblocks the event reader
	_ = client.Close()
	wg.Wait()

	if errors.Is(err, context.Canceled) {
		log.Info("shutting down")
		return nil
	}
	return err
}

// openStore opens the configured cursor store. The returned worker, if not
// nil, must run for the store to flush its state.
func openStore(cfg *config.Config, log *zap.SugaredLogger) (tagcycle.CursorStore, func(), func(context.Context) error, error) {
	noop := func() {}

	if cfg.Store.Backend == config.BackendMemory {
		return memory.NewCursorStore(), noop, nil, nil
	}

	path, err := cfg.StorePath()
	if err != nil {
		return nil, noop, nil, err
	}

	switch cfg.Store.Backend {
	case config.BackendJSON:
		store, err := jsonstore.NewCursorStore(path, cfg.Store.SaveInterval.Duration)
		if err != nil {
			return nil, noop, nil, fmt.Errorf("json store: %w", err)
		}
		saver := func(ctx context.Context) error {
			if err := store.SaveLooper(ctx); err != nil {
				return fmt.Errorf("save cursors: %w", err)
			}
			return nil
		}
		return store, noop, saver, nil

	case config.BackendSQLite:
		store, err := sqlite.NewCursorStore(path, log)
		if err != nil {
			return nil, noop, nil, fmt.Errorf("sqlite store: %w", err)
		}
		return store, func() { _ = store.Close() }, nil, nil
	}

	return nil, noop, nil, fmt.Errorf("%w: %q", config.ErrUnknownBackend, cfg.Store.Backend)
}

func systemdNotifyLoop(ctx context.Context) error {
	// tell systemd that we're ready
	supported, err := daemon.SdNotify(false, daemon.SdNotifyReady)
	if err != nil {
		return fmt.Errorf("notify systemd: %w", err)
	}
	if !supported {
		<-ctx.Done()
		return ctx.Err()
	}

	_, _ = daemon.SdNotify(false, "STATUS=Cycling layouts, one tag at a time")

	// notify watchdog
	t, err := daemon.SdWatchdogEnabled(false)
	if err != nil {
		return fmt.Errorf("check watchdog: %w", err)
	}
	// if watchdog is not enabled, we don't need to notify it
	if t == 0 {
		<-ctx.Done()
		return ctx.Err()
	}

	ticker := time.NewTicker(t / 2)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			_, _ = daemon.SdNotify(false, daemon.SdNotifyStopping)
			return ctx.Err()

		case <-ticker.C:
			_, err := daemon.SdNotify(false, daemon.SdNotifyWatchdog)
			if err != nil {
				return fmt.Errorf("notify watchdog: %w", err)
			}
		}
	}
}

func newLogger(debug bool) (*zap.SugaredLogger, error) {
	loggerConfig := zap.NewDevelopmentConfig()

	loggerConfig.OutputPaths = []string{"stdout"}
	loggerConfig.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if debug {
		loggerConfig.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	} else {
		loggerConfig.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	}

	logger, err := loggerConfig.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}

	return logger.Sugar(), nil
}
