package main

import (
	"testing"

	"github.com/mentorhub/relay/server/store/types"
)

func TestRouterJoinLeave(t *testing.T) {
	r := newRouter()
	uid := types.Uid(1)
	s := newTestSession(uid)
	room := uid.UserId()

	if r.IsJoined(room, s) {
		t.Error("Fresh router must have no subscriptions.")
	}
	r.Join(room, s)
	if !r.IsJoined(room, s) {
		t.Error("Session expected to be joined after Join.")
	}
	// Join is idempotent.
	r.Join(room, s)

	if !r.Leave(room, s) {
		t.Error("Leave of a joined room expected to report true.")
	}
	if r.Leave(room, s) {
		t.Error("Second leave expected to report false.")
	}
	if r.IsJoined(room, s) {
		t.Error("Session expected to be gone after Leave.")
	}
}

func TestRouterDetachSession(t *testing.T) {
	r := newRouter()
	uid := types.Uid(1)
	s := newTestSession(uid)
	rooms := []string{uid.UserId(), "grpAAAAAAAAABk", "grpAAAAAAAAABE"}
	for _, room := range rooms {
		r.Join(room, s)
	}

	r.DetachSession(s)
	for _, room := range rooms {
		if r.IsJoined(room, s) {
			t.Errorf("Session still joined to %s after DetachSession.", room)
		}
	}
}

func TestRouterUnicastMany(t *testing.T) {
	r := newRouter()
	uid1 := types.Uid(1)
	uid2 := types.Uid(2)
	uid3 := types.Uid(3)

	// Two devices of user 1, one of user 2, one of user 3.
	s1a := newTestSession(uid1)
	s1b := newTestSession(uid1)
	s2 := newTestSession(uid2)
	s3 := newTestSession(uid3)
	r.Join(uid1.UserId(), s1a)
	r.Join(uid1.UserId(), s1b)
	r.Join(uid2.UserId(), s2)
	r.Join(uid3.UserId(), s3)

	// Offline receivers are skipped without an error.
	offline := types.Uid(99)

	r.UnicastMany([]types.Uid{uid1, uid2, offline}, &ServerComMessage{
		Notif: &MsgServerNotif{Id: "n1", What: types.NotifPost},
	})

	for _, s := range []*Session{s1a, s1b, s2} {
		select {
		case raw := <-s.send:
			msg := decodeServerMessage(t, raw)
			if msg.Notif == nil || msg.Notif.Id != "n1" {
				t.Errorf("Session %s: unexpected message %+v", s.sid, msg)
			}
		default:
			t.Errorf("Session %s expected to receive the event.", s.sid)
		}
	}
	select {
	case <-s3.send:
		t.Error("Session of an unlisted user must not receive the event.")
	default:
	}
}

func TestRouterBroadcastRoomExcept(t *testing.T) {
	r := newRouter()
	uid1 := types.Uid(1)
	uid2 := types.Uid(2)
	room := uid1.PairName(uid2)

	s1 := newTestSession(uid1)
	s2 := newTestSession(uid2)
	r.Join(room, s1)
	r.Join(room, s2)

	r.BroadcastRoomExcept(room, &ServerComMessage{
		Data: &MsgServerData{Conversation: room, SeqId: 1, Content: "hello"},
	}, uid1)

	select {
	case raw := <-s2.send:
		msg := decodeServerMessage(t, raw)
		if msg.Data == nil || msg.Data.SeqId != 1 {
			t.Errorf("Unexpected message: %+v", msg)
		}
	default:
		t.Error("The other participant expected to receive the message.")
	}
	select {
	case <-s1.send:
		t.Error("The sender's sessions must be excluded.")
	default:
	}
}

func TestRouterDropOnFullQueue(t *testing.T) {
	r := newRouter()
	uid := types.Uid(1)
	s := newTestSession(uid)
	// No reader and a tiny buffer: the queue fills up.
	s.send = make(chan interface{}, 1)
	r.Join(uid.UserId(), s)

	msg := &ServerComMessage{Notif: &MsgServerNotif{Id: "n1"}}
	r.UnicastMany([]types.Uid{uid}, msg)
	// Second delivery finds the queue full and must drop, not block.
	r.UnicastMany([]types.Uid{uid}, msg)

	if len(s.send) != 1 {
		t.Errorf("Queue expected to hold exactly 1 message, got %d.", len(s.send))
	}
}
