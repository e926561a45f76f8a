/******************************************************************************
 *
 *  Description :
 *
 *  Handling of user sessions/connections. One user may have multiple
 *  sessions, e.g. multiple devices connected at the same time.
 *
 *****************************************************************************/

package main

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/mentorhub/relay/server/auth"
	"github.com/mentorhub/relay/server/cache"
	"github.com/mentorhub/relay/server/logs"
	"github.com/mentorhub/relay/server/store"
	"github.com/mentorhub/relay/server/store/types"
)

// sendQueueLimit is the buffer size of the session's send channel. When the
// buffer is full, messages are dropped: delivery is best-effort.
const sendQueueLimit = 128

// Session represents a single live websocket connection. The credential was
// verified exactly once, when the connection was established; the session
// trusts the resolved identity for its entire lifetime (trust-after-handshake).
type Session struct {
	// Websocket connection.
	ws *websocket.Conn

	// IP address of the client.
	remoteAddr string

	// User agent, a string provided by the client at handshake.
	userAgent string

	// ID of the authenticated user. Never zero for a live session.
	uid types.Uid

	// Authentication level.
	authLvl auth.Level

	// Time when the session received any packet from the client.
	lastAction time.Time

	// Outbound messages, buffered. Content is always serialized
	// ([]byte of JSON).
	send chan interface{}

	// Channel for shutting down the session, buffer 1.
	// Content in the same format as for 'send'.
	stop chan interface{}

	// Session ID.
	sid string
}

// queueOut attempts to send a ServerComMessage to the session. The message
// is dropped if the send buffer is full for longer than 50 usec.
func (s *Session) queueOut(msg *ServerComMessage) bool {
	if s == nil {
		return true
	}

	data, err := json.Marshal(msg)
	if err != nil {
		logs.Err.Println("s.queueOut: failed to serialize", msg.describe(), s.sid)
		return false
	}
	return s.queueOutBytes(data)
}

// queueOutBytes attempts to send an already serialized message.
func (s *Session) queueOutBytes(data []byte) bool {
	if s == nil {
		return true
	}

	select {
	case s.send <- data:
	case <-time.After(time.Microsecond * 50):
		logs.Warn.Println("s.queueOutBytes: timeout", s.sid)
		return false
	}
	return true
}

// cleanUp removes the session from the session store and from all rooms.
func (s *Session) cleanUp() {
	globals.router.DetachSession(s)
	count := globals.sessionStore.Delete(s)
	statsSet("LiveSessions", int64(count))
	logs.Info.Println("session closed", s.sid, "live:", count)
}

// dispatchRaw parses the message received from the client and dispatches it.
func (s *Session) dispatchRaw(raw []byte) {
	var msg ClientComMessage

	toLog := raw
	truncated := ""
	if len(raw) > 512 {
		toLog = raw[:512]
		truncated = "<...>"
	}
	logs.Info.Printf("in: '%s%s' sid='%s' uid='%s'", toLog, truncated, s.sid, s.uid)

	if err := json.Unmarshal(raw, &msg); err != nil {
		logs.Warn.Println("s.dispatch: malformed message", s.sid, err)
		s.queueOut(ErrMalformed("", "", types.TimeNow()))
		return
	}

	s.dispatch(&msg)
}

// dispatch routes the parsed message to its handler. It runs on the
// session's read goroutine, consequently messages of one connection are
// processed strictly in the order they were sent.
func (s *Session) dispatch(msg *ClientComMessage) {
	s.lastAction = types.TimeNow()
	msg.timestamp = s.lastAction
	msg.from = s.uid

	var handler func(*ClientComMessage)

	switch {
	case msg.Join != nil:
		handler = s.join
		msg.id = msg.Join.Id
		msg.room = msg.Join.Room

	case msg.Leave != nil:
		handler = s.leave
		msg.id = msg.Leave.Id
		msg.room = msg.Leave.Room

	case msg.Note != nil:
		handler = s.note
		msg.room = msg.Note.Room

	case msg.Pres != nil:
		handler = s.presence

	default:
		// Unknown message.
		s.queueOut(ErrMalformed("", "", msg.timestamp))
		logs.Warn.Println("s.dispatch: unknown message", s.sid)
		return
	}

	statsInc("IncomingMessagesWebsockTotal", 1)
	handler(msg)
}

// join handles a {join} request: subscribe the session to a room. Rejected
// when the user has no relationship to the room; repeated joins are
// acknowledged without error.
func (s *Session) join(msg *ClientComMessage) {
	if msg.room == "" {
		s.queueOut(ErrMalformed(msg.id, "", msg.timestamp))
		return
	}

	if globals.router.IsJoined(msg.room, s) {
		s.queueOut(InfoAlreadySubscribed(msg.id, msg.room, msg.timestamp))
		return
	}

	ok, err := s.authorizeRoom(msg.room)
	if err != nil {
		s.queueOut(decodeStoreError(err, msg.id, msg.room, msg.timestamp))
		return
	}
	if !ok {
		// No relationship to the room: rejected, nothing mutated,
		// nothing broadcast.
		s.queueOut(ErrPermissionDenied(msg.id, msg.room, msg.timestamp))
		return
	}

	globals.router.Join(msg.room, s)
	s.queueOut(NoErr(msg.id, msg.room, msg.timestamp))
}

// leave handles a {leave} request.
func (s *Session) leave(msg *ClientComMessage) {
	if msg.room == "" {
		s.queueOut(ErrMalformed(msg.id, "", msg.timestamp))
		return
	}

	if !globals.router.Leave(msg.room, s) {
		s.queueOut(InfoNotJoined(msg.id, msg.room, msg.timestamp))
		return
	}
	s.queueOut(NoErr(msg.id, msg.room, msg.timestamp))
}

// note relays a typing indicator to the other sessions in the room. Nothing
// is persisted and no acknowledgement is sent.
func (s *Session) note(msg *ClientComMessage) {
	what := msg.Note.What
	if msg.room == "" || (what != "typing" && what != "stop") {
		return
	}
	// Silently dropped unless the session has actually joined the room.
	if !globals.router.IsJoined(msg.room, s) {
		return
	}

	globals.router.BroadcastRoomExcept(msg.room, &ServerComMessage{Info: &MsgServerInfo{
		Room: msg.room,
		From: s.uid.UserId(),
		What: what,
	}}, s.uid)
}

// presence handles a {pres} announcement, broadcasting the new state to all
// other connected users.
func (s *Session) presence(msg *ClientComMessage) {
	what := msg.Pres.What
	if what != "on" && what != "off" {
		s.queueOut(ErrMalformed(msg.id, "", msg.timestamp))
		return
	}

	globals.router.BroadcastAllExcept(&ServerComMessage{Pres: &MsgServerPres{
		User: s.uid.UserId(),
		What: what,
	}}, s.uid)
}

// authorizeRoom decides whether the session's user may join the given room:
// the user's own private room, a conversation the user participates in, or
// a room of a group the user is a member of. Group membership is resolved
// through the access cache; the result may be stale for up to the cache TTL.
func (s *Session) authorizeRoom(room string) (bool, error) {
	switch {
	case strings.HasPrefix(room, "usr"):
		return types.ParseUserId(room) == s.uid, nil

	case strings.HasPrefix(room, "p2p"):
		uid1, uid2, err := types.ParsePair(room)
		if err != nil {
			return false, types.ErrMalformed
		}
		return uid1 == s.uid || uid2 == s.uid, nil

	case strings.HasPrefix(room, "grp"):
		gid := types.ParseGroupId(room)
		if gid.IsZero() {
			return false, types.ErrMalformed
		}
		member, err := globals.accessCache.GetOrCompute(cache.MembershipKey(gid, s.uid),
			func() (interface{}, error) {
				return store.Groups.IsMember(gid, s.uid)
			})
		if err != nil {
			return false, err
		}
		return member.(bool), nil
	}

	return false, types.ErrMalformed
}
