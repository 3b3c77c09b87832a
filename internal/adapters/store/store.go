// Package store persists raw game payloads and the extracted corpus on
// the local filesystem.
//
// Raw layout: one pretty-printed <encoded-id>.json per game in the raw
// directory. Corpus layout: one JSON object keyed "<game_id>_<team>" with
// a TeamGame value per entry.
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/okian/rinkfeed/internal/domain/model"
)

// File layout constants.
const (
	rawExtension = ".json"
	fileMode     = 0o644
	dirMode      = 0o755

	jsonIndent = "  "
)

// Option applies a configuration option to the Store.
type Option func(*Store)

// WithRawDir sets the directory raw game files live in.
func WithRawDir(dir string) Option {
	return func(s *Store) {
		if dir != "" {
			s.rawDir = dir
		}
	}
}

// WithCorpusPath sets the corpus file location.
func WithCorpusPath(path string) Option {
	return func(s *Store) {
		if path != "" {
			s.corpusPath = path
		}
	}
}

// Store reads and writes the scraper's on-disk state.
type Store struct {
	rawDir     string
	corpusPath string
}

// New creates a Store rooted in the current directory by default.
func New(opts ...Option) *Store {
	s := &Store{
		rawDir:     ".",
		corpusPath: "nhl_api_bulk_data_processing_results.json",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SaveRaw writes one raw payload, pretty-printed, as <id>.json. Any
// failure is a persistence fault: the walk must not continue past a
// dropped write.
func (s *Store) SaveRaw(ctx context.Context, id int64, payload []byte) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if err := os.MkdirAll(s.rawDir, dirMode); err != nil {
		return fmt.Errorf("%w: create raw dir: %v", ErrPersistence, err)
	}

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, payload, "", jsonIndent); err != nil {
		// Unindentable payloads still get persisted verbatim; the raw file
		// is the source of truth, formatting is cosmetic.
		pretty.Reset()
		pretty.Write(payload)
	}

	path := s.RawPath(id)
	if err := os.WriteFile(path, pretty.Bytes(), fileMode); err != nil {
		return fmt.Errorf("%w: write %s: %v", ErrPersistence, path, err)
	}
	return nil
}

// HasRaw reports whether a raw file for the id already exists.
func (s *Store) HasRaw(_ context.Context, id int64) bool {
	info, err := os.Stat(s.RawPath(id))
	return err == nil && !info.IsDir()
}

// RawPath returns the file path for an encoded game id.
func (s *Store) RawPath(id int64) string {
	return filepath.Join(s.rawDir, strconv.FormatInt(id, 10)+rawExtension)
}

// ListRaw returns every raw game file in the raw directory, sorted by
// name so games come back in id order.
func (s *Store) ListRaw(_ context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.rawDir)
	if err != nil {
		return nil, fmt.Errorf("read raw dir %s: %w", s.rawDir, err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != rawExtension {
			continue
		}
		paths = append(paths, filepath.Join(s.rawDir, e.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}

// ReadRaw loads one raw payload.
func (s *Store) ReadRaw(_ context.Context, path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read raw file %s: %w", path, err)
	}
	return data, nil
}

// WriteCorpus writes the extracted corpus as a single pretty-printed
// JSON object using the legacy "<game_id>_<team>" keys.
func (s *Store) WriteCorpus(ctx context.Context, corpus map[string]model.TeamGame) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	data, err := json.MarshalIndent(corpus, "", jsonIndent)
	if err != nil {
		return fmt.Errorf("%w: encode corpus: %v", ErrPersistence, err)
	}
	if err := os.WriteFile(s.corpusPath, data, fileMode); err != nil {
		return fmt.Errorf("%w: write %s: %v", ErrPersistence, s.corpusPath, err)
	}
	return nil
}

// ReadCorpus loads the corpus file back into memory.
func (s *Store) ReadCorpus(_ context.Context) (map[string]model.TeamGame, error) {
	data, err := os.ReadFile(s.corpusPath)
	if err != nil {
		return nil, fmt.Errorf("read corpus %s: %w", s.corpusPath, err)
	}
	var corpus map[string]model.TeamGame
	if err := json.Unmarshal(data, &corpus); err != nil {
		return nil, fmt.Errorf("decode corpus %s: %w", s.corpusPath, err)
	}
	return corpus, nil
}
