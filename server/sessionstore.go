/******************************************************************************
 *
 *  Description :
 *
 *  Management of live sessions.
 *
 *****************************************************************************/

package main

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/mentorhub/relay/server/auth"
	"github.com/mentorhub/relay/server/logs"
	"github.com/mentorhub/relay/server/store"
	"github.com/mentorhub/relay/server/store/types"
)

// SessionStore holds all live sessions indexed by session ID.
type SessionStore struct {
	lock sync.Mutex

	sessCache map[string]*Session
}

// NewSession creates a new session for an authenticated connection and saves
// it to the session store.
func (ss *SessionStore) NewSession(conn *websocket.Conn, uid types.Uid, authLvl auth.Level) (*Session, int) {
	var s Session

	s.ws = conn
	s.uid = uid
	s.authLvl = authLvl
	s.sid = store.Store.GetUidString()
	s.lastAction = time.Now()

	s.send = make(chan interface{}, sendQueueLimit)
	s.stop = make(chan interface{}, 1)

	ss.lock.Lock()
	ss.sessCache[s.sid] = &s
	count := len(ss.sessCache)
	ss.lock.Unlock()

	statsInc("TotalSessions", 1)
	statsSet("LiveSessions", int64(count))

	return &s, count
}

// Get fetches a session from the store by session ID.
func (ss *SessionStore) Get(sid string) *Session {
	ss.lock.Lock()
	defer ss.lock.Unlock()

	return ss.sessCache[sid]
}

// Delete removes the session from the store. Returns the number of sessions
// remaining.
func (ss *SessionStore) Delete(s *Session) int {
	ss.lock.Lock()
	defer ss.lock.Unlock()

	delete(ss.sessCache, s.sid)
	return len(ss.sessCache)
}

// Count returns the number of live sessions.
func (ss *SessionStore) Count() int {
	ss.lock.Lock()
	defer ss.lock.Unlock()

	return len(ss.sessCache)
}

// Shutdown terminates all live sessions.
func (ss *SessionStore) Shutdown() {
	ss.lock.Lock()
	defer ss.lock.Unlock()

	shutdown, _ := json.Marshal(NoErrShutdown(types.TimeNow()))
	for _, s := range ss.sessCache {
		if s.stop != nil {
			s.stop <- shutdown
		}
	}

	logs.Info.Printf("SessionStore shut down, sessions terminated: %d", len(ss.sessCache))
}

// NewSessionStore initializes a session store.
func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessCache: make(map[string]*Session),
	}
}
