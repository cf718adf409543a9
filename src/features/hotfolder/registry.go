package hotfolder

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"
)

// DuplicatePolicy decides what StartWatching does when the id already has a session.
type DuplicatePolicy string

const (
	// DuplicateReplace stops the existing session before installing the new one.
	DuplicateReplace DuplicatePolicy = "replace"
	// DuplicateReject fails with ErrDuplicateID.
	DuplicateReject DuplicatePolicy = "reject"
)

const (
	defaultStability   = 2 * time.Second
	defaultEventBuffer = 64
)

// RegistryOptions controls Registry behavior.
type RegistryOptions struct {
	DuplicatePolicy  DuplicatePolicy
	DefaultStability time.Duration
	EventBuffer      int
	Recorder         Recorder
	Logger           *slog.Logger
}

// Status is a config plus whether it currently has a live session.
type Status struct {
	FolderConfig
	Active bool `json:"active"`
}

// Registry is the concurrency-safe directory of active sessions keyed by folder id.
// A single mutex guards both maps so no caller observes a half-applied start or stop.
type Registry struct {
	mu        sync.Mutex
	sessions  map[string]*Session
	configs   map[string]FolderConfig
	closed    bool
	ctx       context.Context
	detectors DetectorFactory
	forwarder Forwarder
	policy    DuplicatePolicy
	stability time.Duration
	buffer    int
	recorder  Recorder
	logger    *slog.Logger
}

// NewRegistry creates a Registry. ctx bounds the lifetime of every detector it starts.
func NewRegistry(ctx context.Context, detectors DetectorFactory, forwarder Forwarder, options RegistryOptions) *Registry {
	policy := options.DuplicatePolicy
	if policy != DuplicateReject {
		policy = DuplicateReplace
	}
	stability := options.DefaultStability
	if stability <= 0 {
		stability = defaultStability
	}
	buffer := options.EventBuffer
	if buffer <= 0 {
		buffer = defaultEventBuffer
	}
	recorder := options.Recorder
	if recorder == nil {
		recorder = nopRecorder{}
	}
	logger := options.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		sessions:  make(map[string]*Session),
		configs:   make(map[string]FolderConfig),
		ctx:       ctx,
		detectors: detectors,
		forwarder: forwarder,
		policy:    policy,
		stability: stability,
		buffer:    buffer,
		recorder:  recorder,
		logger:    logger.With("component", "hotfolder"),
	}
}

// StartWatching installs a session for cfg. Under the replace policy an existing
// session with the same id is stopped first; if the new watch then fails to install
// the id is left without a session.
func (r *Registry) StartWatching(cfg FolderConfig) error {
	cfg = cfg.Normalized()
	if err := cfg.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return ErrRegistryClosed
	}

	if existing, ok := r.sessions[cfg.ID]; ok {
		if r.policy == DuplicateReject {
			return fmt.Errorf("%w: %s", ErrDuplicateID, cfg.ID)
		}
		r.logger.Info("Replacing hot folder session", "folder_id", cfg.ID, "old_path", existing.config.Path, "new_path", cfg.Path)
		r.removeLocked(cfg.ID)
	}

	session, err := startSession(r.ctx, cfg, cfg.Stability(r.stability), r.buffer, r.detectors, r.forwarder, r.recorder, r.logger)
	if err != nil {
		r.logger.Error("Failed to start hot folder", "folder_id", cfg.ID, "path", cfg.Path, "error", err)
		return err
	}
	r.sessions[cfg.ID] = session
	r.configs[cfg.ID] = cfg
	r.recorder.SessionsActive(len(r.sessions))
	return nil
}

// StopWatching stops the session for id. Stopping an unknown id succeeds.
func (r *Registry) StopWatching(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[id]; !ok {
		delete(r.configs, id)
		return nil
	}
	r.removeLocked(id)
	return nil
}

// GetConfigs returns a snapshot of all stored configs ordered by id.
func (r *Registry) GetConfigs() []FolderConfig {
	r.mu.Lock()
	defer r.mu.Unlock()

	configs := make([]FolderConfig, 0, len(r.configs))
	for _, cfg := range r.configs {
		configs = append(configs, cfg.clone())
	}
	sort.Slice(configs, func(i, j int) bool { return configs[i].ID < configs[j].ID })
	return configs
}

// IsWatching reports whether id has an active session.
func (r *Registry) IsWatching(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.sessions[id]
	return ok
}

// Statuses returns every stored config together with its active flag.
func (r *Registry) Statuses() []Status {
	r.mu.Lock()
	defer r.mu.Unlock()

	statuses := make([]Status, 0, len(r.configs))
	for id, cfg := range r.configs {
		_, active := r.sessions[id]
		statuses = append(statuses, Status{FolderConfig: cfg.clone(), Active: active})
	}
	sort.Slice(statuses, func(i, j int) bool { return statuses[i].ID < statuses[j].ID })
	return statuses
}

// Close stops every session and rejects further StartWatching calls.
func (r *Registry) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return
	}
	r.closed = true
	for id := range r.sessions {
		r.removeLocked(id)
	}
	r.logger.Info("All hot folder sessions stopped")
}

func (r *Registry) removeLocked(id string) {
	if session, ok := r.sessions[id]; ok {
		session.Stop()
		delete(r.sessions, id)
	}
	delete(r.configs, id)
	r.recorder.SessionsActive(len(r.sessions))
}
