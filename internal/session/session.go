// Package session owns the committed terrain parameters and the current mesh.
//
// A single writer (Commit/CommitAsync) replaces the mesh by swapping an atomic
// pointer; readers such as the render loop call Mesh and always see a complete,
// immutable snapshot.
package session

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/alitto/pond/v2"
	"go.uber.org/zap"

	"github.com/Faultbox/heightforge/internal/logger"
	"github.com/Faultbox/heightforge/internal/terrain"
)

// Session errors.
var (
	ErrClosed     = errors.New("session closed")
	ErrSuperseded = errors.New("build superseded by a newer commit")
)

// State is the regeneration state.
type State int32

const (
	Idle State = iota
	Building
	Ready
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Building:
		return "building"
	case Ready:
		return "ready"
	default:
		return "unknown"
	}
}

// Session serializes terrain builds on a single worker.
type Session struct {
	mesh atomic.Pointer[terrain.Mesh]
	pool pond.Pool
	log  *zap.Logger

	mu      sync.Mutex
	state   State
	params  terrain.Params
	gen     uint64
	cancel  context.CancelFunc
	lastErr error
	closed  bool
	pending sync.WaitGroup
}

// New creates an idle session. initial is reported by Params until the first
// successful commit.
func New(initial terrain.Params) *Session {
	return &Session{
		pool:   pond.NewPool(1),
		log:    logger.Named("session"),
		params: initial,
	}
}

// Mesh returns the current mesh snapshot, or nil before the first build.
func (s *Session) Mesh() *terrain.Mesh {
	return s.mesh.Load()
}

// State returns the regeneration state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Params returns the parameters of the installed mesh.
func (s *Session) Params() terrain.Params {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.params
}

// Err returns the error of the most recent finished build, if it failed.
func (s *Session) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// Commit rebuilds the terrain and waits for the result. On failure the
// previous mesh stays installed.
func (s *Session) Commit(ctx context.Context, p terrain.Params) error {
	if err := p.Validate(); err != nil {
		return err
	}
	task, err := s.schedule(ctx, p)
	if err != nil {
		return err
	}
	return task.Wait()
}

// CommitAsync schedules a rebuild and returns immediately. A newer commit
// cancels any build still queued or running; only the newest result is installed.
func (s *Session) CommitAsync(p terrain.Params) error {
	if err := p.Validate(); err != nil {
		return err
	}
	_, err := s.schedule(context.Background(), p)
	return err
}

// Wait blocks until every scheduled build has finished.
func (s *Session) Wait() {
	s.pending.Wait()
}

// Close cancels the in-flight build and stops the worker.
func (s *Session) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	if s.cancel != nil {
		s.cancel()
	}
	s.mu.Unlock()

	s.pool.StopAndWait()
}

// schedule supersedes the previous build, enters Building and queues the new
// build. Submitting under the lock keeps Close from stopping the pool in between.
func (s *Session) schedule(parent context.Context, p terrain.Params) (pond.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrClosed
	}
	if s.cancel != nil {
		s.cancel()
	}
	ctx, cancel := context.WithCancel(parent)
	s.cancel = cancel
	s.gen++
	gen := s.gen
	s.state = Building
	s.pending.Add(1)

	return s.pool.SubmitErr(func() error {
		defer s.pending.Done()
		defer cancel()
		return s.build(ctx, gen, p)
	}), nil
}

func (s *Session) build(ctx context.Context, gen uint64, p terrain.Params) error {
	start := time.Now()
	var (
		mesh *terrain.Mesh
		err  = ctx.Err()
	)
	if err == nil {
		mesh, err = terrain.Generate(ctx, p)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.gen {
		s.log.Debug("Discarding superseded build", zap.Uint64("generation", gen))
		return ErrSuperseded
	}
	s.cancel = nil

	if err != nil {
		s.lastErr = err
		if s.mesh.Load() != nil {
			s.state = Ready
		} else {
			s.state = Idle
		}
		s.log.Warn("Terrain build failed, keeping previous mesh", zap.Error(err))
		return err
	}

	s.mesh.Store(mesh)
	s.params = p
	s.lastErr = nil
	s.state = Ready
	s.log.Info("Terrain rebuilt",
		zap.Int("width", p.Width),
		zap.Int("height", p.Height),
		zap.Int("triangles", mesh.TriangleCount()),
		zap.Duration("took", time.Since(start)))
	return nil
}
