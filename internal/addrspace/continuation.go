package addrspace

import (
	"crypto/rand"
	"sync"

	"addrspaced/internal/addrspace/status"
	"addrspaced/internal/logger"
)

// continuationIdentifierLen is the length, in bytes, of a continuation
// point's opaque identifier (spec.md §3: 16 random bytes).
const continuationIdentifierLen = 16

// ContinuationPoint is a resumable cursor into a single node's browse
// result: the browse description that produced it, the position within
// that node's reference kinds where the next page should start, and the
// maxReferences cap that applies to every subsequent page.
type ContinuationPoint struct {
	Identifier      string // raw bytes, used as a map key
	BrowseDescription BrowseDescription
	KindIndex       int
	TargetIndex     int
	MaxReferences   uint32
}

// sessionEntry holds one session's outstanding continuation points,
// guarded by its own lock so that sessions never contend with each other.
type sessionEntry struct {
	mu    sync.Mutex
	byID  map[string]*ContinuationPoint
}

// SessionManager owns the per-session continuation-point registries. It
// is the concrete, in-process analogue of spec.md §5's per-session cap
// and §3's continuation point bookkeeping.
type SessionManager struct {
	lgr logger.Logger
	cap int

	mu       sync.RWMutex
	sessions map[string]*sessionEntry
}

func NewSessionManager(cap int, lgr logger.Logger) *SessionManager {
	if lgr == nil {
		lgr = &logger.NopLogger{}
	}
	return &SessionManager{
		lgr:      lgr.Named("sessions"),
		cap:      cap,
		sessions: make(map[string]*sessionEntry),
	}
}

func (m *SessionManager) entry(sessionID string) *sessionEntry {
	m.mu.RLock()
	e, ok := m.sessions[sessionID]
	m.mu.RUnlock()
	if ok {
		return e
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if e, ok = m.sessions[sessionID]; ok {
		return e
	}
	e = &sessionEntry{byID: make(map[string]*ContinuationPoint)}
	m.sessions[sessionID] = e
	return e
}

// Allocate registers cp under a freshly generated identifier, enforcing
// the per-session cap. Returns BadNoContinuationPoints if the session is
// already at capacity.
func (m *SessionManager) Allocate(sessionID string, cp *ContinuationPoint) (string, *status.Error) {
	e := m.entry(sessionID)
	e.mu.Lock()
	defer e.mu.Unlock()

	if m.cap > 0 && len(e.byID) >= m.cap {
		m.lgr.Warn("continuation point cap reached", logger.F("session", sessionID), logger.F("cap", m.cap))
		return "", status.New(status.BadNoContinuationPoints)
	}

	id, err := newContinuationIdentifier()
	if err != nil {
		m.lgr.Error("failed to allocate continuation identifier", logger.F("error", err))
		return "", status.New(status.BadOutOfMemory)
	}
	cp.Identifier = id
	e.byID[id] = cp
	m.lgr.Debug("continuation point allocated", logger.F("session", sessionID), logger.F("available", m.availableLocked(e)))
	return id, nil
}

// Reinsert re-registers cp under its own existing Identifier, for a
// BrowseNext resume that still has references left to return. Unlike
// Allocate it never mints a new identifier: spec.md requires the same
// continuation point id to stay valid across pages until exhaustion.
func (m *SessionManager) Reinsert(sessionID string, cp *ContinuationPoint) *status.Error {
	e := m.entry(sessionID)
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, exists := e.byID[cp.Identifier]; !exists && m.cap > 0 && len(e.byID) >= m.cap {
		m.lgr.Warn("continuation point cap reached", logger.F("session", sessionID), logger.F("cap", m.cap))
		return status.New(status.BadNoContinuationPoints)
	}
	e.byID[cp.Identifier] = cp
	m.lgr.Debug("continuation point reinserted", logger.F("session", sessionID), logger.F("id", cp.Identifier))
	return nil
}

// Find retrieves and removes the continuation point identified by id so
// that BrowseNext can resume it; the caller re-registers it via Reinsert
// if another page remains.
func (m *SessionManager) Find(sessionID, id string) (*ContinuationPoint, *status.Error) {
	e := m.entry(sessionID)
	e.mu.Lock()
	defer e.mu.Unlock()
	cp, ok := e.byID[id]
	if !ok {
		return nil, status.New(status.BadContinuationPointInvalid)
	}
	delete(e.byID, id)
	return cp, nil
}

// Retire removes every continuation point held by a session, used on
// session teardown (spec.md §5) and by the administrative
// ReleaseSession RPC.
func (m *SessionManager) Retire(sessionID string) {
	e := m.entry(sessionID)
	e.mu.Lock()
	n := len(e.byID)
	e.byID = make(map[string]*ContinuationPoint)
	e.mu.Unlock()
	m.lgr.Debug("session continuation points retired", logger.F("session", sessionID), logger.F("count", n))
}

// Count returns the number of live continuation points held by a session.
func (m *SessionManager) Count(sessionID string) int {
	e := m.entry(sessionID)
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.byID)
}

func (m *SessionManager) availableLocked(e *sessionEntry) int {
	if m.cap == 0 {
		return -1
	}
	return m.cap - len(e.byID)
}

func newContinuationIdentifier() (string, error) {
	b := make([]byte, continuationIdentifierLen)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return string(b), nil
}

// AdminSession is the process-wide session identifier used by the
// single-operation convenience helpers (Service.BrowseOne etc.) that
// don't require a caller-supplied session, per spec.md §9 / SPEC_FULL's
// administrative entry points.
const AdminSession = "admin"
