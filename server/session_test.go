package main

import (
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/golang/mock/gomock"

	"github.com/mentorhub/relay/server/cache"
	"github.com/mentorhub/relay/server/store"
	"github.com/mentorhub/relay/server/store/mock_store"
	"github.com/mentorhub/relay/server/store/types"
)

func setupTestGlobals() {
	globals.router = newRouter()
	globals.sessionStore = NewSessionStore()
	globals.accessCache = cache.New(time.Minute)
}

func TestDispatchUnknownMessage(t *testing.T) {
	setupTestGlobals()
	s := newTestSession(types.Uid(1))
	wg := sync.WaitGroup{}
	r := responses{}
	wg.Add(1)
	go s.testWriteLoop(&r, &wg)

	s.dispatch(&ClientComMessage{})
	close(s.send)
	wg.Wait()
	verifyResponseCodes(&r, []int{http.StatusBadRequest}, t)
}

func TestDispatchRawMalformed(t *testing.T) {
	setupTestGlobals()
	s := newTestSession(types.Uid(1))
	wg := sync.WaitGroup{}
	r := responses{}
	wg.Add(1)
	go s.testWriteLoop(&r, &wg)

	s.dispatchRaw([]byte("this is not json"))
	close(s.send)
	wg.Wait()
	verifyResponseCodes(&r, []int{http.StatusBadRequest}, t)
}

func TestJoinOwnPrivateRoom(t *testing.T) {
	setupTestGlobals()
	uid := types.Uid(1)
	s := newTestSession(uid)
	wg := sync.WaitGroup{}
	r := responses{}
	wg.Add(1)
	go s.testWriteLoop(&r, &wg)

	s.dispatch(&ClientComMessage{Join: &MsgClientJoin{Id: "123", Room: uid.UserId()}})
	close(s.send)
	wg.Wait()
	verifyResponseCodes(&r, []int{http.StatusOK}, t)

	if !globals.router.IsJoined(uid.UserId(), s) {
		t.Error("Session expected to be subscribed to its private room.")
	}
}

func TestJoinForeignPrivateRoomRejected(t *testing.T) {
	setupTestGlobals()
	s := newTestSession(types.Uid(1))
	wg := sync.WaitGroup{}
	r := responses{}
	wg.Add(1)
	go s.testWriteLoop(&r, &wg)

	other := types.Uid(2)
	s.dispatch(&ClientComMessage{Join: &MsgClientJoin{Id: "123", Room: other.UserId()}})
	close(s.send)
	wg.Wait()
	verifyResponseCodes(&r, []int{http.StatusForbidden}, t)

	if globals.router.IsJoined(other.UserId(), s) {
		t.Error("Rejected join must not subscribe the session.")
	}
}

func TestJoinIdempotent(t *testing.T) {
	setupTestGlobals()
	uid := types.Uid(1)
	s := newTestSession(uid)
	wg := sync.WaitGroup{}
	r := responses{}
	wg.Add(1)
	go s.testWriteLoop(&r, &wg)

	room := uid.UserId()
	s.dispatch(&ClientComMessage{Join: &MsgClientJoin{Id: "1", Room: room}})
	s.dispatch(&ClientComMessage{Join: &MsgClientJoin{Id: "2", Room: room}})
	close(s.send)
	wg.Wait()
	// The second join is acknowledged with an info code, not an error.
	verifyResponseCodes(&r, []int{http.StatusOK, http.StatusNotModified}, t)
}

func TestJoinConversationRoom(t *testing.T) {
	setupTestGlobals()
	uid1 := types.Uid(1)
	uid2 := types.Uid(2)
	s := newTestSession(uid1)
	wg := sync.WaitGroup{}
	r := responses{}
	wg.Add(1)
	go s.testWriteLoop(&r, &wg)

	room := uid1.PairName(uid2)
	s.dispatch(&ClientComMessage{Join: &MsgClientJoin{Id: "123", Room: room}})
	close(s.send)
	wg.Wait()
	verifyResponseCodes(&r, []int{http.StatusOK}, t)
}

func TestJoinConversationRoomNotParticipant(t *testing.T) {
	setupTestGlobals()
	s := newTestSession(types.Uid(3))
	wg := sync.WaitGroup{}
	r := responses{}
	wg.Add(1)
	go s.testWriteLoop(&r, &wg)

	room := types.Uid(1).PairName(types.Uid(2))
	s.dispatch(&ClientComMessage{Join: &MsgClientJoin{Id: "123", Room: room}})
	close(s.send)
	wg.Wait()
	verifyResponseCodes(&r, []int{http.StatusForbidden}, t)
}

func TestJoinGroupRoom(t *testing.T) {
	setupTestGlobals()
	ctrl := gomock.NewController(t)
	gg := mock_store.NewMockGroupsObjMapperInterface(ctrl)
	store.Groups = gg
	defer func() {
		store.Groups = store.GroupsObjMapper{}
		ctrl.Finish()
	}()

	uid := types.Uid(1)
	gid := types.Uid(300)
	gg.EXPECT().IsMember(gid, uid).Return(true, nil)

	s := newTestSession(uid)
	wg := sync.WaitGroup{}
	r := responses{}
	wg.Add(1)
	go s.testWriteLoop(&r, &wg)

	room := gid.GroupId()
	s.dispatch(&ClientComMessage{Join: &MsgClientJoin{Id: "123", Room: room}})
	// The membership check result is cached: a second join of the same room
	// after leaving must not hit the store again.
	s.dispatch(&ClientComMessage{Leave: &MsgClientLeave{Id: "124", Room: room}})
	s.dispatch(&ClientComMessage{Join: &MsgClientJoin{Id: "125", Room: room}})
	close(s.send)
	wg.Wait()
	verifyResponseCodes(&r, []int{http.StatusOK, http.StatusOK, http.StatusOK}, t)
}

func TestJoinGroupRoomNotMember(t *testing.T) {
	setupTestGlobals()
	ctrl := gomock.NewController(t)
	gg := mock_store.NewMockGroupsObjMapperInterface(ctrl)
	store.Groups = gg
	defer func() {
		store.Groups = store.GroupsObjMapper{}
		ctrl.Finish()
	}()

	uid := types.Uid(1)
	gid := types.Uid(300)
	gg.EXPECT().IsMember(gid, uid).Return(false, nil)

	s := newTestSession(uid)
	wg := sync.WaitGroup{}
	r := responses{}
	wg.Add(1)
	go s.testWriteLoop(&r, &wg)

	s.dispatch(&ClientComMessage{Join: &MsgClientJoin{Id: "123", Room: gid.GroupId()}})
	close(s.send)
	wg.Wait()
	verifyResponseCodes(&r, []int{http.StatusForbidden}, t)
}

func TestLeaveNotJoined(t *testing.T) {
	setupTestGlobals()
	uid := types.Uid(1)
	s := newTestSession(uid)
	wg := sync.WaitGroup{}
	r := responses{}
	wg.Add(1)
	go s.testWriteLoop(&r, &wg)

	s.dispatch(&ClientComMessage{Leave: &MsgClientLeave{Id: "123", Room: uid.UserId()}})
	close(s.send)
	wg.Wait()
	verifyResponseCodes(&r, []int{http.StatusNotModified}, t)
}

func TestNoteRelayedToRoom(t *testing.T) {
	setupTestGlobals()
	uid1 := types.Uid(1)
	uid2 := types.Uid(2)
	room := uid1.PairName(uid2)

	sender := newTestSession(uid1)
	receiver := newTestSession(uid2)
	globals.router.Join(room, sender)
	globals.router.Join(room, receiver)

	sender.dispatch(&ClientComMessage{Note: &MsgClientNote{Room: room, What: "typing"}})

	select {
	case raw := <-receiver.send:
		msg := decodeServerMessage(t, raw)
		if msg.Info == nil {
			t.Fatal("Receiver expected an info message.")
		}
		if msg.Info.What != "typing" || msg.Info.From != uid1.UserId() {
			t.Errorf("Unexpected info message: %+v", msg.Info)
		}
	default:
		t.Fatal("Receiver expected to get the typing indicator.")
	}

	// The indicator must not loop back to the sender and is not acknowledged.
	select {
	case <-sender.send:
		t.Fatal("Sender must not receive anything.")
	default:
	}
}

func TestNoteDroppedWhenNotJoined(t *testing.T) {
	setupTestGlobals()
	uid1 := types.Uid(1)
	uid2 := types.Uid(2)
	room := uid1.PairName(uid2)

	sender := newTestSession(uid1)
	receiver := newTestSession(uid2)
	// Only the receiver is subscribed.
	globals.router.Join(room, receiver)

	sender.dispatch(&ClientComMessage{Note: &MsgClientNote{Room: room, What: "typing"}})

	select {
	case <-receiver.send:
		t.Fatal("Indicator from a non-joined session must be dropped.")
	default:
	}
}

func TestPresenceBroadcast(t *testing.T) {
	setupTestGlobals()
	uid1 := types.Uid(1)
	uid2 := types.Uid(2)

	announcer := newTestSession(uid1)
	observer := newTestSession(uid2)
	globals.router.Join(uid1.UserId(), announcer)
	globals.router.Join(uid2.UserId(), observer)

	announcer.dispatch(&ClientComMessage{Pres: &MsgClientPres{What: "on"}})

	select {
	case raw := <-observer.send:
		msg := decodeServerMessage(t, raw)
		if msg.Pres == nil {
			t.Fatal("Observer expected a pres message.")
		}
		if msg.Pres.User != uid1.UserId() || msg.Pres.What != "on" {
			t.Errorf("Unexpected pres message: %+v", msg.Pres)
		}
	default:
		t.Fatal("Observer expected to see the presence announcement.")
	}

	select {
	case <-announcer.send:
		t.Fatal("Announcer must not see its own presence.")
	default:
	}
}
