// TalentGraph - Workforce Analytics and Career Mobility Engine
// Copyright 2026 AtlasHR Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/atlashr/talentgraph

// Package artifact persists trained model artifacts as immutable
// versioned directories. Each version holds the serialized graph, the
// embedding table, and a manifest with checksums. Writes go to a temp
// directory first and are published with a single rename, so readers
// never observe a partial version.
package artifact

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/atlashr/talentgraph/internal/embedding"
	"github.com/atlashr/talentgraph/internal/graph"
	"github.com/atlashr/talentgraph/internal/logging"
)

var (
	// ErrNotFound is returned when no version, or the requested version,
	// exists in the store. Serving code treats this as fatal at startup:
	// there is no empty-model fallback.
	ErrNotFound = errors.New("artifact: not found")

	// ErrCorrupt is returned when a stored artifact fails checksum or
	// structural validation. A corrupt artifact is never partially loaded.
	ErrCorrupt = errors.New("artifact: corrupt")
)

const (
	manifestFile   = "manifest.json"
	graphFile      = "graph.json"
	embeddingsFile = "embeddings.json"
	versionPrefix  = "v"
)

// Manifest describes one persisted version.
type Manifest struct {
	SnapshotID string            `json:"snapshot_id"`
	Version    int               `json:"version"`
	TrainedAt  time.Time         `json:"trained_at"`
	Dimensions int               `json:"dimensions"`
	Employees  int               `json:"employees"`
	Skills     int               `json:"skills"`
	Edges      int               `json:"edges"`
	Checksums  map[string]string `json:"checksums"`
}

// graphDocument is the on-disk graph representation.
type graphDocument struct {
	Nodes []graph.Node `json:"nodes"`
	Edges []graph.Edge `json:"edges"`
}

// Store reads and writes versioned artifacts under a root directory.
// Layout: <root>/v<N>/{manifest.json, graph.json, embeddings.json}.
type Store struct {
	root   string
	logger zerolog.Logger
}

// NewStore creates a store rooted at dir, creating it if needed.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create artifact root %s: %w", dir, err)
	}
	return &Store{
		root:   dir,
		logger: logging.WithComponent("artifact-store"),
	}, nil
}

// Save persists a new version and returns its manifest. The version
// number is one greater than the latest existing version. The write is
// atomic: a temp directory is populated and renamed into place.
func (s *Store) Save(g *graph.Graph, table *embedding.Table) (*Manifest, error) {
	latest, err := s.LatestVersion()
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	version := latest + 1

	tmp, err := os.MkdirTemp(s.root, ".tmp-v*")
	if err != nil {
		return nil, fmt.Errorf("create temp dir: %w", err)
	}
	defer func() { _ = os.RemoveAll(tmp) }() //nolint:errcheck // best-effort cleanup on the error paths

	checksums := make(map[string]string, 2)

	graphData, err := json.Marshal(graphDocument{Nodes: g.Nodes(), Edges: g.Edges()})
	if err != nil {
		return nil, fmt.Errorf("marshal graph: %w", err)
	}
	if err := writeFile(filepath.Join(tmp, graphFile), graphData); err != nil {
		return nil, err
	}
	checksums[graphFile] = checksum(graphData)

	embData, err := json.Marshal(table)
	if err != nil {
		return nil, fmt.Errorf("marshal embeddings: %w", err)
	}
	if err := writeFile(filepath.Join(tmp, embeddingsFile), embData); err != nil {
		return nil, err
	}
	checksums[embeddingsFile] = checksum(embData)

	manifest := &Manifest{
		SnapshotID: uuid.NewString(),
		Version:    version,
		TrainedAt:  time.Now().UTC(),
		Dimensions: table.Dimensions,
		Employees:  g.EmployeeCount(),
		Skills:     g.SkillCount(),
		Edges:      g.EdgeCount(),
		Checksums:  checksums,
	}
	manifestData, err := json.Marshal(manifest)
	if err != nil {
		return nil, fmt.Errorf("marshal manifest: %w", err)
	}
	if err := writeFile(filepath.Join(tmp, manifestFile), manifestData); err != nil {
		return nil, err
	}

	final := s.versionDir(version)
	if err := os.Rename(tmp, final); err != nil {
		return nil, fmt.Errorf("publish version %d: %w", version, err)
	}

	s.logger.Info().
		Int("version", version).
		Str("snapshot_id", manifest.SnapshotID).
		Int("employees", manifest.Employees).
		Int("skills", manifest.Skills).
		Int("edges", manifest.Edges).
		Msg("artifact version saved")

	return manifest, nil
}

// Load reads a specific version, verifying checksums before decoding.
func (s *Store) Load(version int) (*graph.Graph, *embedding.Table, *Manifest, error) {
	dir := s.versionDir(version)
	if _, err := os.Stat(dir); err != nil {
		if os.IsNotExist(err) {
			return nil, nil, nil, fmt.Errorf("version %d: %w", version, ErrNotFound)
		}
		return nil, nil, nil, fmt.Errorf("stat version %d: %w", version, err)
	}

	manifestData, err := os.ReadFile(filepath.Join(dir, manifestFile))
	if err != nil {
		return nil, nil, nil, fmt.Errorf("version %d missing manifest: %w", version, ErrCorrupt)
	}
	var manifest Manifest
	if err := json.Unmarshal(manifestData, &manifest); err != nil {
		return nil, nil, nil, fmt.Errorf("version %d manifest unreadable: %w", version, ErrCorrupt)
	}

	graphData, err := s.readVerified(dir, graphFile, manifest.Checksums)
	if err != nil {
		return nil, nil, nil, err
	}
	var doc graphDocument
	if err := json.Unmarshal(graphData, &doc); err != nil {
		return nil, nil, nil, fmt.Errorf("version %d graph unreadable: %w", version, ErrCorrupt)
	}

	embData, err := s.readVerified(dir, embeddingsFile, manifest.Checksums)
	if err != nil {
		return nil, nil, nil, err
	}
	var table embedding.Table
	if err := json.Unmarshal(embData, &table); err != nil {
		return nil, nil, nil, fmt.Errorf("version %d embeddings unreadable: %w", version, ErrCorrupt)
	}

	g := graph.FromParts(doc.Nodes, doc.Edges)

	s.logger.Info().
		Int("version", version).
		Str("snapshot_id", manifest.SnapshotID).
		Msg("artifact version loaded")

	return g, &table, &manifest, nil
}

// LoadLatest loads the highest version present.
func (s *Store) LoadLatest() (*graph.Graph, *embedding.Table, *Manifest, error) {
	latest, err := s.LatestVersion()
	if err != nil {
		return nil, nil, nil, err
	}
	return s.Load(latest)
}

// LatestVersion returns the highest version number in the store, or
// ErrNotFound when the store is empty.
func (s *Store) LatestVersion() (int, error) {
	versions, err := s.Versions()
	if err != nil {
		return 0, err
	}
	if len(versions) == 0 {
		return 0, ErrNotFound
	}
	return versions[len(versions)-1], nil
}

// Versions returns all version numbers in ascending order. Temp
// directories and stray files are ignored.
func (s *Store) Versions() ([]int, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, fmt.Errorf("read artifact root: %w", err)
	}

	var versions []int
	for _, e := range entries {
		if !e.IsDir() || !strings.HasPrefix(e.Name(), versionPrefix) {
			continue
		}
		v, err := strconv.Atoi(strings.TrimPrefix(e.Name(), versionPrefix))
		if err != nil || v < 1 {
			continue
		}
		versions = append(versions, v)
	}
	sort.Ints(versions)
	return versions, nil
}

// Prune removes all but the newest keep versions. keep < 1 is a no-op.
func (s *Store) Prune(keep int) error {
	if keep < 1 {
		return nil
	}
	versions, err := s.Versions()
	if err != nil {
		return err
	}
	if len(versions) <= keep {
		return nil
	}

	for _, v := range versions[:len(versions)-keep] {
		if err := os.RemoveAll(s.versionDir(v)); err != nil {
			return fmt.Errorf("prune version %d: %w", v, err)
		}
		s.logger.Info().Int("version", v).Msg("pruned old artifact version")
	}
	return nil
}

func (s *Store) versionDir(version int) string {
	return filepath.Join(s.root, fmt.Sprintf("%s%d", versionPrefix, version))
}

// readVerified reads a file and checks it against the manifest checksum.
func (s *Store) readVerified(dir, name string, checksums map[string]string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		return nil, fmt.Errorf("%s missing: %w", name, ErrCorrupt)
	}
	expected, ok := checksums[name]
	if !ok {
		return nil, fmt.Errorf("%s has no manifest checksum: %w", name, ErrCorrupt)
	}
	if actual := checksum(data); actual != expected {
		return nil, fmt.Errorf("%s checksum mismatch: %w", name, ErrCorrupt)
	}
	return data, nil
}

func checksum(data []byte) string {
	sum := sha256.Sum256(data)
	return fmt.Sprintf("%x", sum)
}

func writeFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return nil
}
