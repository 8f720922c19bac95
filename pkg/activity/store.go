// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package activity

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/canonical/tenant-session-service/internal/types"
)

var ErrRecordNotFound = errors.New("activity record not found")

var _ StoreInterface = (*MemoryStore)(nil)

// Key identifies a tenant session of a user
type Key struct {
	UserID   string
	TenantID string
}

func (k Key) valid() bool {
	return k.UserID != "" && k.TenantID != ""
}

func keyOf(r types.ActivityRecord) Key {
	return Key{UserID: r.UserID, TenantID: r.TenantID}
}

func malformed(r types.ActivityRecord) bool {
	return !keyOf(r).valid() || r.LastActivity.IsZero()
}

// MemoryStore is a process local activity store, records do not survive a restart
type MemoryStore struct {
	mu      sync.Mutex
	records map[Key]types.ActivityRecord
}

func (s *MemoryStore) Get(ctx context.Context, key Key) (*types.ActivityRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.records[key]
	if !ok {
		return nil, ErrRecordNotFound
	}

	return &r, nil
}

func (s *MemoryStore) Upsert(ctx context.Context, r types.ActivityRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records[keyOf(r)] = r

	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, key Key) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.records[key]
	delete(s.records, key)

	return ok, nil
}

func (s *MemoryStore) DeleteUser(ctx context.Context, userID string) ([]types.ActivityRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := make([]types.ActivityRecord, 0)
	for k, r := range s.records {
		if k.UserID == userID {
			removed = append(removed, r)
			delete(s.records, k)
		}
	}

	return removed, nil
}

func (s *MemoryStore) DeleteOlderThan(ctx context.Context, cutoff time.Time) ([]types.ActivityRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := make([]types.ActivityRecord, 0)
	for k, r := range s.records {
		if malformed(r) || k != keyOf(r) || !r.LastActivity.After(cutoff) {
			removed = append(removed, r)
			delete(s.records, k)
		}
	}

	return removed, nil
}

func (s *MemoryStore) Count(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.records), nil
}

func NewMemoryStore() *MemoryStore {
	s := new(MemoryStore)
	s.records = make(map[Key]types.ActivityRecord)

	return s
}
