package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/binderdash/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/binderdash/internal/core/domain"
	"github.com/custodia-labs/binderdash/internal/core/ports/driven"
)

// DBFileName is the cache database inside the data directory.
const DBFileName = "cache.db"

// Store holds the cache database connection.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore opens (or creates) the cache database in dataDir.
// If dataDir is empty, defaults to ~/.binderdash/cache.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".binderdash", "cache")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, DBFileName)
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, path: dbPath}
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// InterfaceCache returns an InterfaceCache backed by this store.
func (s *Store) InterfaceCache() driven.InterfaceCache {
	return &interfaceCache{store: s}
}

// migrate applies pending *.up.sql files in version order and records
// each in schema_migrations.
func (s *Store) migrate(fsys fs.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".up.sql") {
			upFiles = append(upFiles, entry.Name())
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}
	return nil
}

// ==================== Interface Cache ====================

// interfaceCache implements driven.InterfaceCache.
type interfaceCache struct {
	store *Store
}

var _ driven.InterfaceCache = (*interfaceCache)(nil)

// GetInterface looks up a result by content hash and threshold.
func (c *interfaceCache) GetInterface(
	ctx context.Context,
	key domain.InterfaceKey,
) (domain.InterfaceResidueSet, bool, error) {
	var targetJSON, binderJSON string
	err := c.store.db.QueryRowContext(ctx, `
		SELECT target_residues, binder_residues
		FROM interface_cache
		WHERE content_hash = ? AND threshold = ?
	`, string(key.Content), key.Threshold).Scan(&targetJSON, &binderJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.InterfaceResidueSet{}, false, nil
	}
	if err != nil {
		return domain.InterfaceResidueSet{}, false, fmt.Errorf("querying interface cache: %w", err)
	}

	target, err := decodeResidues(targetJSON)
	if err != nil {
		return domain.InterfaceResidueSet{}, false, err
	}
	binder, err := decodeResidues(binderJSON)
	if err != nil {
		return domain.InterfaceResidueSet{}, false, err
	}
	return domain.InterfaceResidueSet{Target: target, Binder: binder}, true, nil
}

// PutInterface stores or replaces a result.
func (c *interfaceCache) PutInterface(
	ctx context.Context,
	key domain.InterfaceKey,
	set domain.InterfaceResidueSet,
) error {
	targetJSON, err := json.Marshal(set.Target.Sorted())
	if err != nil {
		return fmt.Errorf("marshalling target residues: %w", err)
	}
	binderJSON, err := json.Marshal(set.Binder.Sorted())
	if err != nil {
		return fmt.Errorf("marshalling binder residues: %w", err)
	}

	_, err = c.store.db.ExecContext(ctx, `
		INSERT INTO interface_cache (content_hash, threshold, target_residues, binder_residues)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(content_hash, threshold) DO UPDATE SET
			target_residues = excluded.target_residues,
			binder_residues = excluded.binder_residues
	`, string(key.Content), key.Threshold, string(targetJSON), string(binderJSON))
	if err != nil {
		return fmt.Errorf("saving interface cache: %w", err)
	}
	return nil
}

func decodeResidues(s string) (domain.ResidueSet, error) {
	var nums []int
	if err := json.Unmarshal([]byte(s), &nums); err != nil {
		return nil, fmt.Errorf("unmarshalling residues: %w", err)
	}
	return domain.NewResidueSet(nums...), nil
}
