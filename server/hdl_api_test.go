package main

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/golang/mock/gomock"

	"github.com/mentorhub/relay/server/auth"
	"github.com/mentorhub/relay/server/email"
	"github.com/mentorhub/relay/server/store"
	"github.com/mentorhub/relay/server/store/mock_store"
	"github.com/mentorhub/relay/server/store/types"
)

var testAuthOnce sync.Once

// setupTestAPI readies globals and returns a mux with all API routes.
func setupTestAPI(t *testing.T) *http.ServeMux {
	t.Helper()
	setupTestGlobals()
	globals.emailer = &email.Dispatcher{}
	globals.notifRetention = 90 * 24 * time.Hour

	globals.authScheme = "token"
	globals.authVerifier = auth.Get("token")
	if globals.authVerifier == nil {
		t.Fatal("token verifier not registered")
	}
	testAuthOnce.Do(func() {
		key := base64.StdEncoding.EncodeToString(make([]byte, 32))
		conf := json.RawMessage(`{"key": "` + key + `", "serial_num": 1, "expire_in": 3600}`)
		if err := globals.authVerifier.Init(conf, "token"); err != nil {
			t.Fatalf("Failed to initialize token verifier: %v", err)
		}
	})

	mux := http.NewServeMux()
	setupAPIRoutes(mux)
	return mux
}

func mintTestToken(t *testing.T, uid types.Uid, lvl auth.Level) string {
	t.Helper()
	secret, err := globals.authVerifier.GenSecret(&auth.Rec{Uid: uid, AuthLevel: lvl}, 0)
	if err != nil {
		t.Fatalf("Failed to mint token: %v", err)
	}
	return base64.URLEncoding.EncodeToString(secret)
}

func doRequest(t *testing.T, mux *http.ServeMux, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp := httptest.NewRecorder()
	mux.ServeHTTP(resp, req)
	return resp
}

func TestAPIMissingCredential(t *testing.T) {
	mux := setupTestAPI(t)
	resp := doRequest(t, mux, http.MethodGet, "/v0/notifications", "", "")
	if resp.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for a missing credential, got %d", resp.Code)
	}
}

func TestAPIBadCredential(t *testing.T) {
	mux := setupTestAPI(t)
	garbage := base64.URLEncoding.EncodeToString(make([]byte, 48))
	resp := doRequest(t, mux, http.MethodGet, "/v0/notifications", garbage, "")
	if resp.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401 for a bad credential, got %d", resp.Code)
	}
}

func TestAPINotifList(t *testing.T) {
	mux := setupTestAPI(t)
	ctrl := gomock.NewController(t)
	nn := mock_store.NewMockNotificationsObjMapperInterface(ctrl)
	store.Notifications = nn
	defer func() {
		store.Notifications = store.NotificationsObjMapper{}
		ctrl.Finish()
	}()

	uid := types.Uid(1)
	other := types.Uid(2)
	notif := types.Notification{
		What:        types.NotifPost,
		From:        other.String(),
		ContentRef:  "post-77",
		ContentKind: "post",
		Text:        "New post in your group",
		Receivers: []types.Receiver{
			{User: uid.String()},
			{User: other.String(), Read: true},
		},
	}
	notif.Id = types.Uid(1000).String()
	nn.EXPECT().GetForUser(uid, true, 0, 0).Return([]types.Notification{notif}, true, nil)

	token := mintTestToken(t, uid, auth.LevelAuth)
	resp := doRequest(t, mux, http.MethodGet, "/v0/notifications?unread=true", token, "")
	if resp.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var body struct {
		Notifications []map[string]interface{} `json:"notifications"`
		HasMore       bool                     `json:"hasMore"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if !body.HasMore {
		t.Error("hasMore expected to be true.")
	}
	if len(body.Notifications) != 1 {
		t.Fatalf("Expected 1 notification, got %d", len(body.Notifications))
	}
	view := body.Notifications[0]
	if view["what"] != types.NotifPost || view["read"] != false {
		t.Errorf("Unexpected view: %+v", view)
	}
	// The response is the caller's projection: no receivers array.
	if _, leak := view["receivers"]; leak {
		t.Error("Receivers of other users must not be disclosed.")
	}
}

func TestAPINotifMarkReadNotFound(t *testing.T) {
	mux := setupTestAPI(t)
	ctrl := gomock.NewController(t)
	nn := mock_store.NewMockNotificationsObjMapperInterface(ctrl)
	store.Notifications = nn
	defer func() {
		store.Notifications = store.NotificationsObjMapper{}
		ctrl.Finish()
	}()

	uid := types.Uid(1)
	id := types.Uid(555)
	nn.EXPECT().MarkRead(id, uid).Return(types.ErrNotFound)

	token := mintTestToken(t, uid, auth.LevelAuth)
	resp := doRequest(t, mux, http.MethodPut, "/v0/notifications/"+id.String()+"/read", token, "")
	if resp.Code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", resp.Code)
	}
}

func TestAPINotifMarkReadRepeated(t *testing.T) {
	mux := setupTestAPI(t)
	ctrl := gomock.NewController(t)
	nn := mock_store.NewMockNotificationsObjMapperInterface(ctrl)
	store.Notifications = nn
	defer func() {
		store.Notifications = store.NotificationsObjMapper{}
		ctrl.Finish()
	}()

	uid := types.Uid(1)
	id := types.Uid(555)
	// Marking an already-read notification is a no-op for a receiver.
	nn.EXPECT().MarkRead(id, uid).Return(nil).Times(2)

	token := mintTestToken(t, uid, auth.LevelAuth)
	for i := 0; i < 2; i++ {
		resp := doRequest(t, mux, http.MethodPut, "/v0/notifications/"+id.String()+"/read", token, "")
		if resp.Code != http.StatusOK {
			t.Fatalf("Attempt %d: expected 200, got %d", i, resp.Code)
		}
	}
}

func TestAPINotifCreate(t *testing.T) {
	mux := setupTestAPI(t)
	ctrl := gomock.NewController(t)
	nn := mock_store.NewMockNotificationsObjMapperInterface(ctrl)
	store.Notifications = nn
	defer func() {
		store.Notifications = store.NotificationsObjMapper{}
		ctrl.Finish()
	}()

	svc := types.Uid(900)
	receiver := types.Uid(1)
	created := &types.Notification{
		What:        types.NotifMeeting,
		ContentRef:  "meeting-12",
		ContentKind: "meeting",
		Receivers:   []types.Receiver{{User: receiver.String()}},
	}
	created.Id = types.Uid(2000).String()
	created.InitTimes()
	nn.EXPECT().Create(gomock.Any(), []types.Uid{receiver}).Return(created, nil)

	token := mintTestToken(t, svc, auth.LevelRoot)
	body := `{"what": "meeting", "contentRef": "meeting-12", "contentKind": "meeting",
		"text": "Mentoring session at 10:00", "receivers": ["` + receiver.UserId() + `"]}`
	resp := doRequest(t, mux, http.MethodPost, "/v0/notifications", token, body)
	if resp.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", resp.Code, resp.Body.String())
	}

	var ack map[string]interface{}
	json.Unmarshal(resp.Body.Bytes(), &ack)
	if ack["id"] != created.Id {
		t.Errorf("Acknowledgement id: expected %s, got %v", created.Id, ack["id"])
	}
}

func TestAPINotifCreateRequiresRoot(t *testing.T) {
	mux := setupTestAPI(t)
	token := mintTestToken(t, types.Uid(1), auth.LevelAuth)
	resp := doRequest(t, mux, http.MethodPost, "/v0/notifications", token, `{"what": "post"}`)
	if resp.Code != http.StatusForbidden {
		t.Errorf("Expected 403 for a non-root caller, got %d", resp.Code)
	}
}

func TestAPIConvAccessDeniedWithoutSharedGroup(t *testing.T) {
	mux := setupTestAPI(t)
	ctrl := gomock.NewController(t)
	gg := mock_store.NewMockGroupsObjMapperInterface(ctrl)
	cc := mock_store.NewMockConversationsObjMapperInterface(ctrl)
	store.Groups = gg
	store.Conversations = cc
	defer func() {
		store.Groups = store.GroupsObjMapper{}
		store.Conversations = store.ConversationsObjMapper{}
		ctrl.Finish()
	}()

	uid := types.Uid(1)
	peer := types.Uid(2)
	cc.EXPECT().Get(uid.PairName(peer)).Return(nil, types.ErrNotFound)
	gg.EXPECT().Shared(uid, peer).Return(false, nil)

	token := mintTestToken(t, uid, auth.LevelAuth)
	resp := doRequest(t, mux, http.MethodPost, "/v0/conversations", token,
		`{"peer": "`+peer.UserId()+`"}`)
	if resp.Code != http.StatusForbidden {
		t.Errorf("Expected 403, got %d", resp.Code)
	}
}

func TestAPIConvAccess(t *testing.T) {
	mux := setupTestAPI(t)
	ctrl := gomock.NewController(t)
	gg := mock_store.NewMockGroupsObjMapperInterface(ctrl)
	cc := mock_store.NewMockConversationsObjMapperInterface(ctrl)
	store.Groups = gg
	store.Conversations = cc
	defer func() {
		store.Groups = store.GroupsObjMapper{}
		store.Conversations = store.ConversationsObjMapper{}
		ctrl.Finish()
	}()

	uid := types.Uid(1)
	peer := types.Uid(2)
	name := uid.PairName(peer)
	conv := &types.Conversation{Participants: [2]string{uid.String(), peer.String()}}
	conv.Id = name

	// First contact: creation requires the relationship check. Once the
	// conversation exists, later calls return it without one.
	gomock.InOrder(
		cc.EXPECT().Get(name).Return(nil, types.ErrNotFound),
		gg.EXPECT().Shared(uid, peer).Return(true, nil),
		cc.EXPECT().AccessOrCreate(uid, peer).Return(conv, nil),
		cc.EXPECT().Get(name).Return(conv, nil),
	)

	token := mintTestToken(t, uid, auth.LevelAuth)
	for i := 0; i < 2; i++ {
		resp := doRequest(t, mux, http.MethodPost, "/v0/conversations", token,
			`{"peer": "`+peer.UserId()+`"}`)
		if resp.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", resp.Code, resp.Body.String())
		}
		var got types.Conversation
		if err := json.Unmarshal(resp.Body.Bytes(), &got); err != nil {
			t.Fatalf("Failed to parse response: %v", err)
		}
		if got.Id != name {
			t.Errorf("Conversation id: expected %s, got %s", name, got.Id)
		}
	}
}

func TestAPIConvAccessSurvivesLapsedRelationship(t *testing.T) {
	mux := setupTestAPI(t)
	ctrl := gomock.NewController(t)
	cc := mock_store.NewMockConversationsObjMapperInterface(ctrl)
	store.Conversations = cc
	defer func() {
		store.Conversations = store.ConversationsObjMapper{}
		ctrl.Finish()
	}()

	uid := types.Uid(1)
	peer := types.Uid(2)
	name := uid.PairName(peer)
	conv := &types.Conversation{Participants: [2]string{uid.String(), peer.String()}}
	conv.Id = name

	// No group mapper is mocked: a relationship lookup here would fail the
	// test. An existing conversation must stay accessible without one.
	cc.EXPECT().Get(name).Return(conv, nil)

	token := mintTestToken(t, uid, auth.LevelAuth)
	resp := doRequest(t, mux, http.MethodPost, "/v0/conversations", token,
		`{"peer": "`+peer.UserId()+`"}`)
	if resp.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestAPIConvSelfRejected(t *testing.T) {
	mux := setupTestAPI(t)
	uid := types.Uid(1)
	token := mintTestToken(t, uid, auth.LevelAuth)
	resp := doRequest(t, mux, http.MethodPost, "/v0/conversations", token,
		`{"peer": "`+uid.UserId()+`"}`)
	if resp.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for a conversation with self, got %d", resp.Code)
	}
}

func TestAPIMessageSend(t *testing.T) {
	mux := setupTestAPI(t)
	ctrl := gomock.NewController(t)
	mm := mock_store.NewMockMessagesObjMapperInterface(ctrl)
	store.Messages = mm
	defer func() {
		store.Messages = store.MessagesObjMapper{}
		ctrl.Finish()
	}()

	uid := types.Uid(1)
	peer := types.Uid(2)
	name := uid.PairName(peer)

	saved := &types.Message{
		Conversation: name,
		SeqId:        7,
		From:         uid.String(),
		Content:      "hello there",
		ReadBy:       []string{uid.String()},
	}
	saved.Id = types.Uid(3000).String()
	saved.InitTimes()
	mm.EXPECT().Send(name, uid, "hello there").Return(saved, nil)

	// The peer has a live session subscribed to the conversation room.
	peerSess := newTestSession(peer)
	globals.router.Join(name, peerSess)

	token := mintTestToken(t, uid, auth.LevelAuth)
	resp := doRequest(t, mux, http.MethodPost, "/v0/conversations/"+name+"/messages", token,
		`{"content": "hello there"}`)
	if resp.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", resp.Code, resp.Body.String())
	}

	var ack map[string]interface{}
	json.Unmarshal(resp.Body.Bytes(), &ack)
	if int(ack["seq"].(float64)) != 7 {
		t.Errorf("Acknowledgement seq: expected 7, got %v", ack["seq"])
	}

	// The push to the peer is asynchronous.
	deadline := time.After(time.Second)
	select {
	case raw := <-peerSess.send:
		msg := decodeServerMessage(t, raw)
		if msg.Data == nil || msg.Data.SeqId != 7 || msg.Data.From != uid.UserId() {
			t.Errorf("Unexpected pushed message: %+v", msg)
		}
	case <-deadline:
		t.Error("Peer session expected to receive the message push.")
	}
}

func TestAPIMessageSendNotParticipant(t *testing.T) {
	mux := setupTestAPI(t)
	ctrl := gomock.NewController(t)
	mm := mock_store.NewMockMessagesObjMapperInterface(ctrl)
	store.Messages = mm
	defer func() {
		store.Messages = store.MessagesObjMapper{}
		ctrl.Finish()
	}()

	uid := types.Uid(3)
	name := types.Uid(1).PairName(types.Uid(2))
	mm.EXPECT().Send(name, uid, "sneaky").Return(nil, types.ErrNotFound)

	token := mintTestToken(t, uid, auth.LevelAuth)
	resp := doRequest(t, mux, http.MethodPost, "/v0/conversations/"+name+"/messages", token,
		`{"content": "sneaky"}`)
	if resp.Code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", resp.Code)
	}
}

func TestAPIGroupMembershipInvalidatesCache(t *testing.T) {
	mux := setupTestAPI(t)
	ctrl := gomock.NewController(t)
	gg := mock_store.NewMockGroupsObjMapperInterface(ctrl)
	store.Groups = gg
	defer func() {
		store.Groups = store.GroupsObjMapper{}
		ctrl.Finish()
	}()

	admin := types.Uid(900)
	uid := types.Uid(1)
	peer := types.Uid(2)
	gid := types.Uid(50)
	name := uid.PairName(peer)

	cc := mock_store.NewMockConversationsObjMapperInterface(ctrl)
	store.Conversations = cc
	defer func() { store.Conversations = store.ConversationsObjMapper{} }()

	// Seed the cache with a negative relationship check.
	cc.EXPECT().Get(name).Return(nil, types.ErrNotFound)
	gg.EXPECT().Shared(uid, peer).Return(false, nil)
	userToken := mintTestToken(t, uid, auth.LevelAuth)
	resp := doRequest(t, mux, http.MethodPost, "/v0/conversations", userToken,
		`{"peer": "`+peer.UserId()+`"}`)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("Expected 403, got %d", resp.Code)
	}

	// Membership change must drop the cached check.
	gg.EXPECT().AddMember(gid, uid).Return(nil)
	adminToken := mintTestToken(t, admin, auth.LevelRoot)
	resp = doRequest(t, mux, http.MethodPost,
		"/v0/groups/"+gid.GroupId()+"/members/"+uid.UserId(), adminToken, "")
	if resp.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	// The next access recomputes and now succeeds.
	conv := &types.Conversation{Participants: [2]string{uid.String(), peer.String()}}
	conv.Id = name
	cc.EXPECT().Get(name).Return(nil, types.ErrNotFound)
	gg.EXPECT().Shared(uid, peer).Return(true, nil)
	cc.EXPECT().AccessOrCreate(uid, peer).Return(conv, nil)

	resp = doRequest(t, mux, http.MethodPost, "/v0/conversations", userToken,
		`{"peer": "`+peer.UserId()+`"}`)
	if resp.Code != http.StatusOK {
		t.Errorf("Expected 200 after the membership change, got %d", resp.Code)
	}
}

func TestAPIMaintenanceSweep(t *testing.T) {
	mux := setupTestAPI(t)
	ctrl := gomock.NewController(t)
	nn := mock_store.NewMockNotificationsObjMapperInterface(ctrl)
	store.Notifications = nn
	defer func() {
		store.Notifications = store.NotificationsObjMapper{}
		ctrl.Finish()
	}()

	nn.EXPECT().Sweep(gomock.Any()).Return(3, nil)
	nn.EXPECT().DueReminders(gomock.Any()).Return(nil, nil)

	token := mintTestToken(t, types.Uid(900), auth.LevelRoot)
	resp := doRequest(t, mux, http.MethodPost, "/v0/maintenance/sweep", token, "")
	if resp.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var body map[string]interface{}
	json.Unmarshal(resp.Body.Bytes(), &body)
	if int(body["swept"].(float64)) != 3 {
		t.Errorf("Expected 3 swept, got %v", body["swept"])
	}
}
