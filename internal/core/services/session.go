package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"

	"github.com/custodia-labs/binderdash/internal/core/domain"
	"github.com/custodia-labs/binderdash/internal/core/ports/driven"
	"github.com/custodia-labs/binderdash/internal/core/ports/driving"
	"github.com/custodia-labs/binderdash/internal/logger"
)

// Ensure SessionService implements the interface.
var _ driving.SessionService = (*SessionService)(nil)

// SessionService tracks the structure and score files of one session.
type SessionService struct {
	id      string
	metrics driving.MetricsService
	watcher driven.FileWatcher

	mu            sync.RWMutex
	structurePath string
	structure     *domain.StructureInput
	scoresPath    string
	scores        *domain.ScoreTable
}

// NewSessionService creates a session with a fresh ID.
// watcher may be nil, in which case Watch returns immediately.
func NewSessionService(metrics driving.MetricsService, watcher driven.FileWatcher) *SessionService {
	return &SessionService{
		id:      uuid.New().String(),
		metrics: metrics,
		watcher: watcher,
	}
}

// ID returns the session identifier.
func (s *SessionService) ID() string {
	return s.id
}

// OpenStructure reads a structure file. Parsing is left to the caller.
func (s *SessionService) OpenStructure(ctx context.Context, path string) (domain.StructureInput, error) {
	if err := ctx.Err(); err != nil {
		return domain.StructureInput{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return domain.StructureInput{}, fmt.Errorf("open structure: %w", err)
	}
	in := domain.StructureInput{FileName: filepath.Base(path), Data: data}

	s.mu.Lock()
	s.structurePath = path
	s.structure = &in
	s.mu.Unlock()

	logger.Debug("session %s: structure %s (%d bytes)", s.id, path, len(data))
	return in, nil
}

// OpenScores reads and parses a score file. The table must carry every
// top metric column; otherwise the current table is kept.
func (s *SessionService) OpenScores(ctx context.Context, path string) (*domain.ScoreTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open scores: %w", err)
	}
	defer f.Close()

	table, err := s.metrics.Load(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("open scores %s: %w", filepath.Base(path), err)
	}
	// A table that cannot show the designs view is rejected before it
	// replaces the current one.
	if _, err := s.metrics.Metrics(table, domain.MetricSetTop); err != nil {
		return nil, fmt.Errorf("open scores %s: %w", filepath.Base(path), err)
	}

	s.mu.Lock()
	s.scoresPath = path
	s.scores = table
	s.mu.Unlock()

	logger.Debug("session %s: scores %s (%d designs)", s.id, path, table.Len())
	return table, nil
}

// Structure returns the current structure input.
func (s *SessionService) Structure() (domain.StructureInput, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.structure == nil {
		return domain.StructureInput{}, false
	}
	return *s.structure, true
}

// Scores returns the current score table.
func (s *SessionService) Scores() (*domain.ScoreTable, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.scores, s.scores != nil
}

// Watch reloads opened files on change. Files opened after Watch starts
// are not watched.
func (s *SessionService) Watch(ctx context.Context, onReload func(domain.SessionEvent)) error {
	if s.watcher == nil {
		return nil
	}

	s.mu.RLock()
	var paths []string
	for _, p := range []string{s.structurePath, s.scoresPath} {
		if p != "" {
			paths = append(paths, p)
		}
	}
	s.mu.RUnlock()

	if len(paths) == 0 {
		return nil
	}

	logger.Debug("session %s: watching %v", s.id, paths)
	return s.watcher.Watch(ctx, paths, func(path string) {
		if ev, ok := s.reload(ctx, path); ok && onReload != nil {
			onReload(ev)
		}
	})
}

// reload re-reads path if it is one of the session inputs. On failure the
// previous content is kept.
func (s *SessionService) reload(ctx context.Context, path string) (domain.SessionEvent, bool) {
	s.mu.RLock()
	structurePath, scoresPath := s.structurePath, s.scoresPath
	s.mu.RUnlock()

	switch path {
	case structurePath:
		_, err := s.OpenStructure(ctx, path)
		return domain.SessionEvent{Kind: domain.InputStructure, Path: path, Err: err}, true
	case scoresPath:
		_, err := s.OpenScores(ctx, path)
		return domain.SessionEvent{Kind: domain.InputScores, Path: path, Err: err}, true
	default:
		return domain.SessionEvent{}, false
	}
}
