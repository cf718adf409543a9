package hotfolder

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Session binds one FolderConfig to its detector, its settled-event channel and
// the goroutine that filters and forwards events.
type Session struct {
	config    FolderConfig
	filter    ExtensionFilter
	detector  Detector
	settled   chan FileEvent
	quit      chan struct{}
	done      chan struct{}
	forwarder Forwarder
	recorder  Recorder
	logger    *slog.Logger
	startedAt time.Time
	stopOnce  sync.Once
}

func startSession(ctx context.Context, cfg FolderConfig, stability time.Duration, buffer int, factory DetectorFactory, forwarder Forwarder, recorder Recorder, logger *slog.Logger) (*Session, error) {
	settled := make(chan FileEvent, buffer)
	detector, err := factory(stability, settled)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrWatchCreation, cfg.Path, err)
	}
	if err := detector.Start(ctx, cfg.Path); err != nil {
		detector.Stop()
		return nil, fmt.Errorf("%w: %s: %w", ErrWatchCreation, cfg.Path, err)
	}

	session := &Session{
		config:    cfg,
		filter:    NewExtensionFilter(cfg.Extensions),
		detector:  detector,
		settled:   settled,
		quit:      make(chan struct{}),
		done:      make(chan struct{}),
		forwarder: forwarder,
		recorder:  recorder,
		logger:    logger.With("folder_id", cfg.ID),
		startedAt: time.Now(),
	}
	go session.run()
	session.logger.Info("Hot folder session started", "path", cfg.Path, "stability", stability.String(), "extensions", cfg.Extensions)
	return session, nil
}

// Stop releases the OS watch and waits for the session goroutine to exit.
// Events already handed to the forwarder may still be in flight.
func (s *Session) Stop() {
	s.stopOnce.Do(func() {
		close(s.quit)
		s.detector.Stop()
		<-s.done
		s.logger.Info("Hot folder session stopped", "uptime", time.Since(s.startedAt).Round(time.Millisecond).String())
	})
}

func (s *Session) run() {
	defer close(s.done)
	for {
		select {
		case <-s.quit:
			return
		case file := <-s.settled:
			s.handle(file)
		}
	}
}

func (s *Session) handle(file FileEvent) {
	select {
	case <-s.quit:
		s.logger.Debug("Dropping settled event", "path", file.Path, "error", ErrStaleEvent)
		return
	default:
	}

	if !s.filter.Accept(file.Path) {
		s.recorder.EventFiltered(s.config.ID)
		s.logger.Debug("Extension not allowed", "path", file.Path)
		return
	}

	s.recorder.EventSettled(s.config.ID)
	s.logger.Info("File settled", "path", file.Path)
	s.forwarder.Forward(NewWatcherEvent(s.config.ID, file.Path, file.Timestamp))
}
