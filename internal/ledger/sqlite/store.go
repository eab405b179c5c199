// Package sqlite persists the registry state to a single SQLite table as
// JSON blobs, one bucket per registry plus one for the contract owner. The
// coordinator calls Commit after every successful mutation, so the file on
// disk always reflects the last committed state.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite" // pure go sqlite driver

	"organledger/internal/access"
	logisticsmodels "organledger/internal/logistics/models"
	logisticsstore "organledger/internal/logistics/store"
	matchmodels "organledger/internal/match/models"
	matchstore "organledger/internal/match/store"
	recipientmodels "organledger/internal/recipient/models"
	recipientstore "organledger/internal/recipient/store"
	"organledger/pkg/domain"
)

const (
	bucketMatches    = "matches"
	bucketRecipients = "recipients"
	bucketHospitals  = "hospitals"
	bucketCouriers   = "couriers"
	bucketTransports = "transports"
	bucketOwner      = "owner"
)

// Store snapshots the full in-memory state after each committed mutation.
type Store struct {
	db        *sql.DB
	mu        sync.Mutex
	path      string
	matches   *matchstore.InMemory
	recipient *recipientstore.InMemory
	logistics *logisticsstore.InMemory
	guard     *access.Guard
}

// NewStore opens (or creates) the database at path and prepares the state
// table. Call Load before serving traffic and BindGuard before the first
// Commit.
func NewStore(path string, matches *matchstore.InMemory, recipients *recipientstore.InMemory, logistics *logisticsstore.InMemory) (*Store, error) {
	if path == "" {
		path = "organledger.db"
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil && !errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("create dirs: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS state (
		bucket TEXT PRIMARY KEY,
		payload BLOB NOT NULL
	)`); err != nil {
		return nil, fmt.Errorf("create state table: %w", err)
	}
	return &Store{db: db, path: path, matches: matches, recipient: recipients, logistics: logistics}, nil
}

// BindGuard attaches the access guard whose owner is included in snapshots.
func (s *Store) BindGuard(g *access.Guard) {
	s.guard = g
}

// Load restores the registries from the last snapshot and returns the
// persisted contract owner. A zero principal means no snapshot existed and
// the configured owner should be used.
func (s *Store) Load(ctx context.Context) (domain.Principal, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT bucket, payload FROM state`)
	if err != nil {
		return "", fmt.Errorf("select state: %w", err)
	}
	defer func() { _ = rows.Close() }()

	payloads := map[string][]byte{}
	for rows.Next() {
		var bucket string
		var payload []byte
		if err := rows.Scan(&bucket, &payload); err != nil {
			return "", fmt.Errorf("scan state: %w", err)
		}
		payloads[bucket] = payload
	}
	if err := rows.Err(); err != nil {
		return "", fmt.Errorf("read state: %w", err)
	}
	if len(payloads) == 0 {
		return "", nil
	}

	var matches []matchmodels.Match
	var recipients []recipientmodels.Recipient
	var hospitals []recipientmodels.Hospital
	var couriers []logisticsmodels.Courier
	var transports []logisticsmodels.Transport
	var owner domain.Principal

	for bucket, payload := range payloads {
		var err error
		switch bucket {
		case bucketMatches:
			err = json.Unmarshal(payload, &matches)
		case bucketRecipients:
			err = json.Unmarshal(payload, &recipients)
		case bucketHospitals:
			err = json.Unmarshal(payload, &hospitals)
		case bucketCouriers:
			err = json.Unmarshal(payload, &couriers)
		case bucketTransports:
			err = json.Unmarshal(payload, &transports)
		case bucketOwner:
			err = json.Unmarshal(payload, &owner)
		}
		if err != nil {
			return "", fmt.Errorf("decode %s: %w", bucket, err)
		}
	}

	if err := s.matches.Restore(ctx, matches); err != nil {
		return "", fmt.Errorf("restore matches: %w", err)
	}
	if err := s.recipient.Restore(ctx, recipients, hospitals); err != nil {
		return "", fmt.Errorf("restore recipients: %w", err)
	}
	if err := s.logistics.Restore(ctx, couriers, transports); err != nil {
		return "", fmt.Errorf("restore logistics: %w", err)
	}
	return owner, nil
}

// Commit snapshots every registry and the current owner in one transaction.
func (s *Store) Commit(ctx context.Context) (retErr error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	matches, err := s.matches.Snapshot(ctx)
	if err != nil {
		return fmt.Errorf("snapshot matches: %w", err)
	}
	recipients, hospitals, err := s.recipient.Snapshot(ctx)
	if err != nil {
		return fmt.Errorf("snapshot recipients: %w", err)
	}
	couriers, transports, err := s.logistics.Snapshot(ctx)
	if err != nil {
		return fmt.Errorf("snapshot logistics: %w", err)
	}

	buckets := []struct {
		name  string
		value any
	}{
		{bucketMatches, matches},
		{bucketRecipients, recipients},
		{bucketHospitals, hospitals},
		{bucketCouriers, couriers},
		{bucketTransports, transports},
	}
	if s.guard != nil {
		buckets = append(buckets, struct {
			name  string
			value any
		}{bucketOwner, s.guard.Owner()})
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() {
		if retErr != nil {
			_ = tx.Rollback()
		}
	}()
	for _, b := range buckets {
		data, err := json.Marshal(b.value)
		if err != nil {
			retErr = fmt.Errorf("encode %s: %w", b.name, err)
			return retErr
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO state(bucket,payload) VALUES(?,?) ON CONFLICT(bucket) DO UPDATE SET payload=excluded.payload`, b.name, data); err != nil {
			retErr = fmt.Errorf("upsert %s: %w", b.name, err)
			return retErr
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error { return s.db.Close() }

// Path returns the configured database path.
func (s *Store) Path() string { return s.path }
