// Command bow-sandbox drives the bow rig from the keyboard in a terminal side view
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"runtime/debug"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/lixenwraith/archery/audio"
	"github.com/lixenwraith/archery/config"
	"github.com/lixenwraith/archery/engine"
	"github.com/lixenwraith/archery/logging"
	"github.com/lixenwraith/archery/parameter"
	"github.com/lixenwraith/archery/telemetry"
)

var (
	configFlag    = flag.String("config", "", "YAML configuration file")
	logFlag       = flag.String("log", parameter.LogFile, "log file when the configuration names no output")
	telemetryFlag = flag.Bool("telemetry", false, "serve snapshots on "+parameter.TelemetryAddr+" unless the configuration sets an address")
)

// errQuit ends the frame loop on user request
var errQuit = errors.New("quit")

func main() {
	flag.Parse()

	doc, err := config.Load(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	opts := doc.LogOptions()
	if len(opts.Output) == 0 {
		opts.Output = []string{*logFlag}
	}
	logger, err := logging.New(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(doc, logger); err != nil {
		logger.Error("sandbox failed", zap.Error(err))
		fmt.Fprintf(os.Stderr, "bow-sandbox: %v\n", err)
		os.Exit(1)
	}
}

func run(doc config.Document, logger *zap.Logger) error {
	player := audio.NewPlayer(doc.AudioConfig(), logger.Named("audio"))
	if err := player.Start(); err != nil {
		logger.Warn("audio unavailable, continuing silent", zap.Error(err))
	}
	defer player.Stop()

	var hub *telemetry.Hub
	tcfg := telemetry.DefaultConfig()
	tcfg.Addr = doc.Telemetry.Addr
	tcfg.PublishInterval = doc.Telemetry.Interval
	if tcfg.Addr == "" && *telemetryFlag {
		tcfg.Addr = parameter.TelemetryAddr
	}
	if tcfg.Addr != "" {
		hub = telemetry.NewHub(tcfg, logger.Named("telemetry"))
	}

	sc, err := newScene(doc, engine.NewPausableClock(nil), player, hub, logger)
	if err != nil {
		return fmt.Errorf("scene: %w", err)
	}
	if hub != nil {
		hub.WithStatus(sc.metrics)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("terminal init: %w", err)
	}
	defer screen.Fini()

	// Restore the terminal before reporting a crash
	defer func() {
		if r := recover(); r != nil {
			screen.Fini()
			fmt.Fprintf(os.Stderr, "\r\nbow-sandbox crashed: %v\r\n%s\r\n", r, debug.Stack())
			os.Exit(1)
		}
	}()

	u := &ui{
		screen: screen,
		scene:  sc,
		mute:   player.ToggleMute,
		muted:  func() bool { return player.IsMuted() || player.IsSilent() },
	}

	eg, ctx := errgroup.WithContext(context.Background())

	events := make(chan tcell.Event, 64)
	quit := make(chan struct{})
	go screen.ChannelEvents(events, quit)
	defer close(quit)

	if hub != nil {
		eg.Go(func() error { return hub.Run(ctx) })
	}
	eg.Go(func() error { return frameLoop(ctx, u, events) })

	logger.Info("sandbox started", zap.Bool("telemetry", hub != nil), zap.Bool("audio", !player.IsSilent()))
	if err := eg.Wait(); err != nil && !errors.Is(err, errQuit) {
		return err
	}
	logger.Info("sandbox stopped", zap.Int("launches", sc.launches))
	return nil
}

// frameLoop owns the scene: key events and frames run on this goroutine only
func frameLoop(ctx context.Context, u *ui, events <-chan tcell.Event) error {
	clock := u.scene.loop.Clock()
	ticker := time.NewTicker(u.scene.doc.Loop.FrameInterval)
	defer ticker.Stop()

	last := clock.Now()
	u.draw()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-events:
			if !ok {
				return errQuit
			}
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if !u.handleKey(ev) {
					return errQuit
				}
			case *tcell.EventResize:
				u.screen.Sync()
			}

		case <-ticker.C:
			now := clock.Now()
			u.scene.loop.Frame(now.Sub(last))
			last = now
			u.draw()
		}
	}
}
