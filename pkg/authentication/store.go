// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"context"
	"fmt"
	"maps"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
)

var _ SessionStoreInterface = (*MemoryStore)(nil)

type memorySession struct {
	values  map[interface{}]interface{}
	expires time.Time
}

// MemoryStore keeps session values in process memory, the cookie only carries
// a signed opaque session id
type MemoryStore struct {
	Codecs  []securecookie.Codec
	Options *sessions.Options

	mu       sync.RWMutex
	sessions map[string]memorySession

	now func() time.Time
}

// Get returns the session cached in the request registry, loading it on first use
func (s *MemoryStore) Get(r *http.Request, name string) (*sessions.Session, error) {
	return sessions.GetRegistry(r).Get(s, name)
}

// New returns the session named by the request cookie, or a new session when
// the cookie is missing, invalid or points to an unknown or expired session
func (s *MemoryStore) New(r *http.Request, name string) (*sessions.Session, error) {
	session := sessions.NewSession(s, name)
	opts := *s.Options
	session.Options = &opts
	session.IsNew = true

	c, err := r.Cookie(name)
	if err != nil {
		return session, nil
	}

	var id string
	if err := securecookie.DecodeMulti(name, c.Value, &id, s.Codecs...); err != nil {
		return session, fmt.Errorf("invalid session cookie: %w", err)
	}

	if values, ok := s.load(id); ok {
		session.ID = id
		session.Values = values
		session.IsNew = false
	}

	return session, nil
}

// Save persists the session and writes its cookie, a negative MaxAge deletes
// the session and expires the cookie
func (s *MemoryStore) Save(r *http.Request, w http.ResponseWriter, session *sessions.Session) error {
	if session.Options.MaxAge < 0 {
		if session.ID != "" {
			s.delete(session.ID)
		}

		http.SetCookie(w, sessions.NewCookie(session.Name(), "", session.Options))
		return nil
	}

	if session.ID == "" {
		session.ID = uuid.NewString()
	}

	s.store(session.ID, session.Values, time.Duration(session.Options.MaxAge)*time.Second)

	encoded, err := securecookie.EncodeMulti(session.Name(), session.ID, s.Codecs...)
	if err != nil {
		return fmt.Errorf("failed to encode session cookie: %w", err)
	}

	http.SetCookie(w, sessions.NewCookie(session.Name(), encoded, session.Options))

	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.delete(id)
	return nil
}

// Reap drops expired sessions and returns how many were removed
func (s *MemoryStore) Reap(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	n := 0
	for id, ms := range s.sessions {
		if !now.Before(ms.expires) {
			delete(s.sessions, id)
			n++
		}
	}

	return n, nil
}

// Len returns the number of stored sessions, expired ones included
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.sessions)
}

// MaxAge sets the maximum age for the store and the underlying cookie
// implementation
func (s *MemoryStore) MaxAge(age int) {
	s.Options.MaxAge = age

	for _, codec := range s.Codecs {
		if sc, ok := codec.(*securecookie.SecureCookie); ok {
			sc.MaxAge(age)
		}
	}
}

func (s *MemoryStore) load(id string) (map[interface{}]interface{}, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ms, ok := s.sessions[id]
	if !ok || !s.now().Before(ms.expires) {
		return nil, false
	}

	return maps.Clone(ms.values), true
}

func (s *MemoryStore) store(id string, values map[interface{}]interface{}, ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[id] = memorySession{
		values:  maps.Clone(values),
		expires: s.now().Add(ttl),
	}
}

func (s *MemoryStore) delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, id)
}

// NewMemoryStore returns a store signing session ids with the given key
// pairs, see securecookie.CodecsFromPairs
func NewMemoryStore(options sessions.Options, keyPairs ...[]byte) *MemoryStore {
	s := new(MemoryStore)

	s.Codecs = securecookie.CodecsFromPairs(keyPairs...)
	s.Options = &options
	s.sessions = make(map[string]memorySession)
	s.now = time.Now

	s.MaxAge(s.Options.MaxAge)

	return s
}
