package service

import "sync"

const storeShards = 16

// Store maps user IDs to their active session. Sharded so users on
// different shards never contend; operations for one user always hit the
// same shard and serialize on its lock.
type Store struct {
	shards [storeShards]storeShard
}

type storeShard struct {
	mu       sync.Mutex
	sessions map[int64]*Session
}

func NewStore() *Store {
	s := &Store{}
	for i := range s.shards {
		s.shards[i].sessions = make(map[int64]*Session)
	}
	return s
}

func (s *Store) shard(userID int64) *storeShard {
	return &s.shards[uint64(userID)%storeShards]
}

// Put replaces any existing session for the user. A new document always
// discards in-flight answers for the previous set.
func (s *Store) Put(userID int64, session *Session) {
	sh := s.shard(userID)
	sh.mu.Lock()
	defer sh.mu.Unlock()
	sh.sessions[userID] = session
}

// Get returns a copy of the user's session. Mutation goes through Advance.
func (s *Store) Get(userID int64) (Session, bool) {
	sh := s.shard(userID)
	sh.mu.Lock()
	defer sh.mu.Unlock()
	session, ok := sh.sessions[userID]
	if !ok {
		return Session{}, false
	}
	return *session, true
}

// Advance moves the user's session to the next question and returns the
// updated state.
func (s *Store) Advance(userID int64) (Session, bool) {
	sh := s.shard(userID)
	sh.mu.Lock()
	defer sh.mu.Unlock()
	session, ok := sh.sessions[userID]
	if !ok {
		return Session{}, false
	}
	session.CurrentIndex++
	return *session, true
}

// RemoveAll drains every session and returns the question sets keyed by
// user ID. Used by the admin merge into the durable bank.
func (s *Store) RemoveAll() map[int64][]QuestionRecord {
	drained := make(map[int64][]QuestionRecord)
	for i := range s.shards {
		sh := &s.shards[i]
		sh.mu.Lock()
		for userID, session := range sh.sessions {
			drained[userID] = session.Questions
		}
		sh.sessions = make(map[int64]*Session)
		sh.mu.Unlock()
	}
	return drained
}
