package template

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/reposcout/reposcout/pkg/errors"
	"github.com/reposcout/reposcout/pkg/gitcmd"
)

// Store owns a directory of cached template working copies, one per registry
// key. Presence of a key's directory is the sole cache-hit signal, so a
// failed fresh fetch always removes the partial directory before the error
// propagates.
//
// The store is a read-only mirror: a forced refresh hard-resets the working
// copy to the remote tip, discarding any local modification.
type Store struct {
	registry *Registry
	dir      string
	git      gitcmd.Runner
	logger   *log.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewStore creates a store rooted at dir. The directory is created if
// needed. The registry must already be loaded; a nil registry is a
// configuration error.
func NewStore(registry *Registry, dir string, git gitcmd.Runner, logger *log.Logger) (*Store, error) {
	if registry == nil {
		return nil, errors.New(errors.ErrCodeConfigInvalid, "template store requires a registry")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(errors.ErrCodeConfigInvalid, err, "create template cache dir %s", dir)
	}
	if git == nil {
		git = gitcmd.NewCLI()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Store{
		registry: registry,
		dir:      dir,
		git:      git,
		logger:   logger,
		locks:    map[string]*sync.Mutex{},
	}, nil
}

// Dir returns the root of the working-copy cache.
func (s *Store) Dir() string { return s.dir }

// Registry returns the catalog backing this store.
func (s *Store) Registry() *Registry { return s.registry }

// Resolve returns the local path for the template identified by key,
// fetching or refreshing the working copy as needed.
//
// Behavior:
//   - working copy absent: full shallow fetch
//   - present, forceRefresh false: immediate cache hit, no git commands
//   - present, forceRefresh true: shallow fetch + hard reset to the remote tip
//
// If the entry declares a sub-path, the returned path is that sub-path and
// its existence after fetch is verified. Concurrent resolves for the same
// key are serialized; different keys proceed independently.
func (s *Store) Resolve(ctx context.Context, key string, forceRefresh bool) (string, error) {
	lock := s.keyLock(key)
	lock.Lock()
	defer lock.Unlock()

	entry, ok := s.registry.Get(key)
	if !ok {
		return "", errors.New(errors.ErrCodeTemplateNotFound, "template %q not defined in registry", key)
	}
	if entry.Kind != KindGit {
		return "", errors.New(errors.ErrCodeUnsupportedKind, "template %q has unsupported type %q", key, entry.Kind)
	}

	dir := filepath.Join(s.dir, key)
	if _, err := os.Stat(dir); err == nil {
		if forceRefresh {
			s.logger.Info("force updating template", "key", key)
			if err := s.update(ctx, dir, entry); err != nil {
				return "", err
			}
		} else {
			s.logger.Debug("template cache hit", "key", key)
		}
	} else {
		s.logger.Info("downloading template", "key", key, "repo", entry.Repository)
		if err := s.fetch(ctx, dir, entry); err != nil {
			return "", err
		}
	}

	if entry.SubPath != "" {
		target := filepath.Join(dir, entry.SubPath)
		if _, err := os.Stat(target); err != nil {
			return "", errors.New(errors.ErrCodeSubPathNotFound,
				"sub-path %q not found in repo for template %q", entry.SubPath, key)
		}
		return target, nil
	}
	return dir, nil
}

// fetch materializes a fresh working copy. Sparse restriction, when
// configured, is declared before the transfer begins: restrictions written
// after a shallow pull are not honored. Any failure removes the partial
// directory so a later resolve observes "not cached".
func (s *Store) fetch(ctx context.Context, dir string, entry Entry) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "create working copy dir %s", dir)
	}

	err := func() error {
		if _, err := s.git.Run(ctx, dir, "init"); err != nil {
			return err
		}
		if _, err := s.git.Run(ctx, dir, "remote", "add", "origin", entry.Repository); err != nil {
			return err
		}
		if entry.SubPath != "" {
			if err := s.enableSparse(ctx, dir, entry.SubPath+"\n"); err != nil {
				return err
			}
		}
		_, err := s.git.Run(ctx, dir, "pull", "--depth", "1", "origin", entry.Ref())
		return err
	}()
	if err != nil {
		// A half-populated directory would read as a cache hit next time.
		if rmErr := os.RemoveAll(dir); rmErr != nil {
			s.logger.Warn("failed to clean up partial working copy", "dir", dir, "error", rmErr)
		}
		return err
	}
	return nil
}

// update refreshes an existing working copy. A failed fetch leaves the prior
// copy untouched; a failed reset after a successful fetch is reported as-is
// (best effort, not transactional).
func (s *Store) update(ctx context.Context, dir string, entry Entry) error {
	if _, err := s.git.Run(ctx, dir, "fetch", "--depth", "1", "origin", entry.Ref()); err != nil {
		return err
	}
	_, err := s.git.Run(ctx, dir, "reset", "--hard", "origin/"+entry.Ref())
	return err
}

// enableSparse switches the workspace to sparse checkout and writes the
// restriction paths, one per line.
func (s *Store) enableSparse(ctx context.Context, dir, paths string) error {
	if _, err := s.git.Run(ctx, dir, "config", "core.sparseCheckout", "true"); err != nil {
		return err
	}
	sparse := filepath.Join(dir, ".git", "info", "sparse-checkout")
	if err := os.MkdirAll(filepath.Dir(sparse), 0o755); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "create sparse-checkout dir")
	}
	if err := os.WriteFile(sparse, []byte(paths), 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write sparse-checkout file")
	}
	return nil
}

// keyLock returns the mutex guarding one template key, creating it on first
// use. Two ranking runs resolving the same key must not race the same
// directory through init/pull/reset.
func (s *Store) keyLock(key string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[key]
	if !ok {
		l = &sync.Mutex{}
		s.locks[key] = l
	}
	return l
}
