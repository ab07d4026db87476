// TalentGraph - Workforce Analytics and Career Mobility Engine
// Copyright 2026 AtlasHR Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/atlashr/talentgraph

// Package directory stores employee registry attributes in Badger.
// The serving graph carries the same attributes for embedded nodes, but
// the directory is the authoritative registry: it also resolves target
// roles for career-path filtering and survives across retraining runs.
package directory

import (
	"errors"
	"fmt"
	"strings"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/atlashr/talentgraph/internal/ingest"
	"github.com/atlashr/talentgraph/internal/logging"
)

// ErrNotFound is returned when an employee is absent from the directory.
var ErrNotFound = errors.New("directory: employee not found")

const keyPrefix = "emp:"

// Directory is a Badger-backed employee registry.
type Directory struct {
	db     *badger.DB
	logger zerolog.Logger
}

// Options configures the directory backend.
type Options struct {
	// Path is the Badger data directory. Ignored when InMemory is set.
	Path string
	// InMemory runs Badger without disk persistence, used in tests and
	// single-shot trainer runs.
	InMemory bool
}

// Open creates or opens a directory.
func Open(opts Options) (*Directory, error) {
	logger := logging.WithComponent("directory")

	badgerOpts := badger.DefaultOptions(opts.Path).
		WithInMemory(opts.InMemory).
		WithLogger(nil)
	if opts.InMemory {
		badgerOpts = badgerOpts.WithDir("").WithValueDir("")
	}

	db, err := badger.Open(badgerOpts)
	if err != nil {
		return nil, fmt.Errorf("open badger at %q: %w", opts.Path, err)
	}

	return &Directory{db: db, logger: logger}, nil
}

// Close releases the underlying Badger instance.
func (d *Directory) Close() error {
	return d.db.Close()
}

// Put stores or replaces one employee record.
func (d *Directory) Put(e ingest.Employee) error {
	if err := ingest.ValidateEmployee(e); err != nil {
		return err
	}
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal employee %s: %w", e.ID, err)
	}
	return d.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(keyPrefix+e.ID), data)
	})
}

// PutAll stores a batch of employee records in one write batch.
func (d *Directory) PutAll(employees []ingest.Employee) error {
	wb := d.db.NewWriteBatch()
	defer wb.Cancel()

	for _, e := range employees {
		if err := ingest.ValidateEmployee(e); err != nil {
			return err
		}
		data, err := json.Marshal(e)
		if err != nil {
			return fmt.Errorf("marshal employee %s: %w", e.ID, err)
		}
		if err := wb.Set([]byte(keyPrefix+e.ID), data); err != nil {
			return fmt.Errorf("batch set employee %s: %w", e.ID, err)
		}
	}
	if err := wb.Flush(); err != nil {
		return fmt.Errorf("flush employee batch: %w", err)
	}

	d.logger.Info().Int("employees", len(employees)).Msg("directory synced")
	return nil
}

// Get returns one employee record.
func (d *Directory) Get(employeeID string) (ingest.Employee, error) {
	var e ingest.Employee
	err := d.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keyPrefix + employeeID))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return fmt.Errorf("employee %q: %w", employeeID, ErrNotFound)
			}
			return fmt.Errorf("get employee %s: %w", employeeID, err)
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &e)
		})
	})
	return e, err
}

// Role returns the job role recorded for an employee, or empty string
// with ErrNotFound when the employee is unknown.
func (d *Directory) Role(employeeID string) (string, error) {
	e, err := d.Get(employeeID)
	if err != nil {
		return "", err
	}
	return e.JobRole, nil
}

// MatchesRole reports whether the employee's recorded role contains the
// target role, case-insensitively. Substring matching lets "engineer"
// select both "Backend Engineer" and "Data Engineer".
func (d *Directory) MatchesRole(employeeID, targetRole string) (bool, error) {
	role, err := d.Role(employeeID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return strings.Contains(strings.ToLower(role), strings.ToLower(targetRole)), nil
}

// Count returns the number of employee records.
func (d *Directory) Count() (int, error) {
	count := 0
	err := d.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()
		prefix := []byte(keyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			count++
		}
		return nil
	})
	return count, err
}
