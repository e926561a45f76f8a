/******************************************************************************
 *
 *  Description :
 *
 *  Room router: the in-process many-to-many mapping of live sessions to
 *  rooms, with best-effort fan-out of server events. The mapping exists in
 *  process memory only and is rebuilt from nothing on restart: clients must
 *  re-handshake and rejoin. Delivery is fire-and-forget; the durable stores
 *  remain the system of record and clients reconcile by pull on reconnect.
 *
 *****************************************************************************/

package main

import (
	"encoding/json"
	"sync"

	"github.com/mentorhub/relay/server/logs"
	"github.com/mentorhub/relay/server/store/types"
)

// Router is the exclusive owner of the connection-to-room mapping. No other
// component may track presence independently.
type Router struct {
	lock sync.RWMutex

	// Sessions joined to each room.
	rooms map[string]map[*Session]struct{}
	// Rooms each session has joined; the reverse index for cheap detach.
	sessions map[*Session]map[string]struct{}
}

func newRouter() *Router {
	return &Router{
		rooms:    make(map[string]map[*Session]struct{}),
		sessions: make(map[*Session]map[string]struct{}),
	}
}

// Join subscribes the session to a room. Idempotent.
func (r *Router) Join(room string, s *Session) {
	r.lock.Lock()
	defer r.lock.Unlock()

	members := r.rooms[room]
	if members == nil {
		members = make(map[*Session]struct{})
		r.rooms[room] = members
	}
	members[s] = struct{}{}

	joined := r.sessions[s]
	if joined == nil {
		joined = make(map[string]struct{})
		r.sessions[s] = joined
	}
	joined[room] = struct{}{}

	statsSet("RoomsLive", int64(len(r.rooms)))
}

// Leave unsubscribes the session from a room. Returns false if the session
// was not joined.
func (r *Router) Leave(room string, s *Session) bool {
	r.lock.Lock()
	defer r.lock.Unlock()

	joined := r.sessions[s]
	if _, ok := joined[room]; !ok {
		return false
	}
	delete(joined, room)
	r.dropMember(room, s)

	statsSet("RoomsLive", int64(len(r.rooms)))
	return true
}

// IsJoined checks whether the session is currently joined to the room.
func (r *Router) IsJoined(room string, s *Session) bool {
	r.lock.RLock()
	defer r.lock.RUnlock()

	_, ok := r.sessions[s][room]
	return ok
}

// DetachSession removes the session from every room. Called on disconnect.
func (r *Router) DetachSession(s *Session) {
	r.lock.Lock()
	defer r.lock.Unlock()

	for room := range r.sessions[s] {
		r.dropMember(room, s)
	}
	delete(r.sessions, s)

	statsSet("RoomsLive", int64(len(r.rooms)))
}

// dropMember removes the session from one room's member set, deleting the
// room when it becomes empty. Callers must hold the write lock.
func (r *Router) dropMember(room string, s *Session) {
	members := r.rooms[room]
	delete(members, s)
	if len(members) == 0 {
		delete(r.rooms, room)
	}
}

// UnicastMany delivers an event to every live session in each listed user's
// private room. A user with no live session is silently skipped: no error,
// no queuing. The write which produced the event has already committed and
// its outcome must never depend on this delivery.
func (r *Router) UnicastMany(uids []types.Uid, msg *ServerComMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		logs.Err.Println("router: failed to serialize", msg.describe(), err)
		return
	}

	r.lock.RLock()
	var targets []*Session
	for _, uid := range uids {
		for s := range r.rooms[uid.UserId()] {
			targets = append(targets, s)
		}
	}
	r.lock.RUnlock()

	r.deliver(targets, data)
}

// BroadcastRoomExcept delivers an event to every session in a room except
// the sessions belonging to the excluded user. Used so a sender never
// receives an echo of its own send.
func (r *Router) BroadcastRoomExcept(room string, msg *ServerComMessage, except types.Uid) {
	data, err := json.Marshal(msg)
	if err != nil {
		logs.Err.Println("router: failed to serialize", msg.describe(), err)
		return
	}

	r.lock.RLock()
	var targets []*Session
	for s := range r.rooms[room] {
		if s.uid != except {
			targets = append(targets, s)
		}
	}
	r.lock.RUnlock()

	r.deliver(targets, data)
}

// BroadcastAllExcept delivers an event to every live session other than the
// excluded user's own. Used for presence changes.
func (r *Router) BroadcastAllExcept(msg *ServerComMessage, except types.Uid) {
	data, err := json.Marshal(msg)
	if err != nil {
		logs.Err.Println("router: failed to serialize", msg.describe(), err)
		return
	}

	r.lock.RLock()
	var targets []*Session
	for s := range r.sessions {
		if s.uid != except {
			targets = append(targets, s)
		}
	}
	r.lock.RUnlock()

	r.deliver(targets, data)
}

// deliver queues pre-serialized data to a snapshot of sessions, outside of
// the router lock. A full send queue drops the message.
func (r *Router) deliver(targets []*Session, data []byte) {
	for _, s := range targets {
		if !s.queueOutBytes(data) {
			statsInc("DeliveryDropsTotal", 1)
		}
	}
}
