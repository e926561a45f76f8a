/******************************************************************************
 *
 *  Description :
 *
 *  JSON API used by collaborator services and by clients for pull-based
 *  reconciliation: notification fan-out, conversation access, message
 *  history, group membership administration, maintenance triggers.
 *
 *  Every request carries the same bearer credential as the websocket
 *  endpoint and is verified independently.
 *
 *****************************************************************************/

package main

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/mentorhub/relay/server/auth"
	"github.com/mentorhub/relay/server/cache"
	"github.com/mentorhub/relay/server/logs"
	"github.com/mentorhub/relay/server/store"
	"github.com/mentorhub/relay/server/store/types"
)

// Maximum size of an API request body.
const maxAPIRequestSize = 1 << 20

type apiHandler func(wrt http.ResponseWriter, req *http.Request, rec *auth.Rec)

// apiAuthRequired verifies the bearer credential and the caller's
// authentication level before invoking the handler.
func apiAuthRequired(minLevel auth.Level, handler apiHandler) http.HandlerFunc {
	return func(wrt http.ResponseWriter, req *http.Request) {
		now := types.TimeNow()
		rec, err := authenticateRequest(req)
		if err != nil {
			code := http.StatusUnauthorized
			if err == auth.ErrMalformed {
				code = http.StatusBadRequest
			}
			writeAPIResponse(wrt, code, ErrAuthRequired("", "", now))
			return
		}
		if rec.AuthLevel < minLevel {
			writeAPIResponse(wrt, http.StatusForbidden, ErrPermissionDenied("", "", now))
			return
		}
		statsInc("IncomingMessagesAPITotal", 1)
		handler(wrt, req, rec)
	}
}

func writeAPIResponse(wrt http.ResponseWriter, status int, body interface{}) {
	wrt.Header().Set("Content-Type", "application/json; charset=utf-8")
	wrt.WriteHeader(status)
	if err := json.NewEncoder(wrt).Encode(body); err != nil {
		logs.Warn.Println("api: failed to write response:", err)
	}
}

// writeAPIError converts a storage error into an HTTP status with a ctrl
// payload.
func writeAPIError(wrt http.ResponseWriter, err error) {
	now := types.TimeNow()
	status := decodeStoreErrorHTTP(err)
	if status >= http.StatusInternalServerError {
		logs.Err.Println("api:", err)
	}
	writeAPIResponse(wrt, status, decodeStoreError(err, "", "", now))
}

func decodeAPIRequest(req *http.Request, dst interface{}) error {
	body := http.MaxBytesReader(nil, req.Body, maxAPIRequestSize)
	defer body.Close()
	if err := json.NewDecoder(body).Decode(dst); err != nil {
		return types.ErrMalformed
	}
	return nil
}

// apiPageLimit reads ?page=&limit= with out-of-range values left for the
// store to clamp.
func apiPageLimit(req *http.Request) (int, int) {
	q := req.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))
	return page, limit
}

// apiNotifView is the per-receiver projection of a notification: the read
// state of other receivers is not disclosed.
type apiNotifView struct {
	Id          string     `json:"id"`
	What        string     `json:"what"`
	From        string     `json:"from,omitempty"`
	ContentRef  string     `json:"contentRef,omitempty"`
	ContentKind string     `json:"contentKind,omitempty"`
	Text        string     `json:"text,omitempty"`
	CreatedAt   time.Time  `json:"ts"`
	Read        bool       `json:"read"`
	ReadAt      *time.Time `json:"readAt,omitempty"`
}

func notifView(notif *types.Notification, uid types.Uid) *apiNotifView {
	view := &apiNotifView{
		Id:          notif.Id,
		What:        notif.What,
		From:        userIdString(notif.From),
		ContentRef:  notif.ContentRef,
		ContentKind: notif.ContentKind,
		Text:        notif.Text,
		CreatedAt:   notif.CreatedAt,
	}
	if entry := notif.ReceiverEntry(uid); entry != nil {
		view.Read = entry.Read
		view.ReadAt = entry.ReadAt
	}
	return view
}

// userIdString converts a stored uid into its "usr..." wire form.
func userIdString(user string) string {
	uid := types.ParseUid(user)
	if uid.IsZero() {
		return ""
	}
	return uid.UserId()
}

// POST /v0/notifications. Collaborator services call this on behalf of
// users; after the durable write the record is pushed to online receivers
// and optionally copied to email, both best-effort in the background.
func apiNotifCreate(wrt http.ResponseWriter, req *http.Request, rec *auth.Rec) {
	var msg struct {
		What        string     `json:"what"`
		From        string     `json:"from"`
		ContentRef  string     `json:"contentRef"`
		ContentKind string     `json:"contentKind"`
		Text        string     `json:"text"`
		Receivers   []string   `json:"receivers"`
		RemindAt    *time.Time `json:"remindAt"`
		EmailTo     []string   `json:"emailTo"`
	}
	if err := decodeAPIRequest(req, &msg); err != nil {
		writeAPIError(wrt, err)
		return
	}

	from := types.ParseUserId(msg.From)
	receivers := make([]types.Uid, 0, len(msg.Receivers))
	for _, r := range msg.Receivers {
		uid := types.ParseUserId(r)
		if uid.IsZero() {
			writeAPIError(wrt, types.ErrMalformed)
			return
		}
		receivers = append(receivers, uid)
	}

	notif := &types.Notification{
		What:        msg.What,
		From:        from.String(),
		ContentRef:  msg.ContentRef,
		ContentKind: msg.ContentKind,
		Text:        msg.Text,
		RemindAt:    msg.RemindAt,
		EmailCopy:   msg.EmailTo,
	}
	notif, err := store.Notifications.Create(notif, receivers)
	if err != nil {
		writeAPIError(wrt, err)
		return
	}

	statsInc("NotificationsCreatedTotal", 1)

	// The caller's acknowledgement does not wait for delivery.
	go deliverNotification(notif)

	writeAPIResponse(wrt, http.StatusCreated, map[string]interface{}{
		"id": notif.Id,
		"ts": notif.CreatedAt,
	})
}

// deliverNotification pushes a copy of a stored notification to the online
// connections of all its receivers and hands an email copy to the
// dispatcher. Failures are logged and never reported to the creator.
func deliverNotification(notif *types.Notification) {
	receivers := make([]types.Uid, 0, len(notif.Receivers))
	for _, r := range notif.Receivers {
		if uid := types.ParseUid(r.User); !uid.IsZero() {
			receivers = append(receivers, uid)
		}
	}
	statsAddHistSample("NotificationFanoutSize", float64(len(receivers)))

	globals.router.UnicastMany(receivers, &ServerComMessage{Notif: &MsgServerNotif{
		Id:          notif.Id,
		What:        notif.What,
		From:        userIdString(notif.From),
		ContentRef:  notif.ContentRef,
		ContentKind: notif.ContentKind,
		Text:        notif.Text,
		Timestamp:   notif.CreatedAt,
	}})

	if len(notif.EmailCopy) > 0 && globals.emailer.Enabled() {
		if err := globals.emailer.Send(notif.EmailCopy, "New activity on your account", notif.Text); err != nil {
			logs.Warn.Println("api: email copy failed:", err)
		}
	}
}

// GET /v0/notifications?unread=true&page=&limit=
func apiNotifList(wrt http.ResponseWriter, req *http.Request, rec *auth.Rec) {
	unreadOnly := req.URL.Query().Get("unread") == "true"
	page, limit := apiPageLimit(req)

	notifs, hasMore, err := store.Notifications.GetForUser(rec.Uid, unreadOnly, page, limit)
	if err != nil {
		writeAPIError(wrt, err)
		return
	}

	views := make([]*apiNotifView, 0, len(notifs))
	for i := range notifs {
		views = append(views, notifView(&notifs[i], rec.Uid))
	}
	writeAPIResponse(wrt, http.StatusOK, map[string]interface{}{
		"notifications": views,
		"hasMore":       hasMore,
	})
}

// GET /v0/notifications/unread-count
func apiNotifUnreadCount(wrt http.ResponseWriter, req *http.Request, rec *auth.Rec) {
	count, err := store.Notifications.UnreadCount(rec.Uid)
	if err != nil {
		writeAPIError(wrt, err)
		return
	}
	writeAPIResponse(wrt, http.StatusOK, map[string]interface{}{"count": count})
}

// PUT /v0/notifications/{id}/read
func apiNotifMarkRead(wrt http.ResponseWriter, req *http.Request, rec *auth.Rec) {
	id := types.ParseUid(req.PathValue("id"))
	if id.IsZero() {
		writeAPIError(wrt, types.ErrMalformed)
		return
	}
	if err := store.Notifications.MarkRead(id, rec.Uid); err != nil {
		writeAPIError(wrt, err)
		return
	}
	writeAPIResponse(wrt, http.StatusOK, NoErr("", "", types.TimeNow()))
}

// PUT /v0/notifications/read-all
func apiNotifMarkAllRead(wrt http.ResponseWriter, req *http.Request, rec *auth.Rec) {
	updated, err := store.Notifications.MarkAllRead(rec.Uid)
	if err != nil {
		writeAPIError(wrt, err)
		return
	}
	writeAPIResponse(wrt, http.StatusOK, map[string]interface{}{"updated": updated})
}

// DELETE /v0/notifications/{id}. Removes the caller's copy only; the record
// itself is deleted once the last receiver is gone.
func apiNotifDelete(wrt http.ResponseWriter, req *http.Request, rec *auth.Rec) {
	id := types.ParseUid(req.PathValue("id"))
	if id.IsZero() {
		writeAPIError(wrt, types.ErrMalformed)
		return
	}
	if err := store.Notifications.DeleteForUser(id, rec.Uid); err != nil {
		writeAPIError(wrt, err)
		return
	}
	writeAPIResponse(wrt, http.StatusOK, NoErr("", "", types.TimeNow()))
}

// POST /v0/conversations {peer}. Idempotent access-or-create: both parties
// always end up with the same conversation id. Creating a new conversation
// requires a shared group with the peer, checked through the access cache;
// accessing an existing one does not.
func apiConvAccess(wrt http.ResponseWriter, req *http.Request, rec *auth.Rec) {
	var msg struct {
		Peer string `json:"peer"`
	}
	if err := decodeAPIRequest(req, &msg); err != nil {
		writeAPIError(wrt, err)
		return
	}
	peer := types.ParseUserId(msg.Peer)
	if peer.IsZero() || peer == rec.Uid {
		writeAPIError(wrt, types.ErrMalformed)
		return
	}

	// An existing conversation stays accessible even after the relationship
	// that allowed its creation has lapsed. The caller is one of the two
	// participants by construction of the pair name.
	conv, err := store.Conversations.Get(rec.Uid.PairName(peer))
	if err == nil {
		writeAPIResponse(wrt, http.StatusOK, conv)
		return
	}
	if err != types.ErrNotFound {
		writeAPIError(wrt, err)
		return
	}

	shared, err := globals.accessCache.GetOrCompute(cache.SharedGroupKey(rec.Uid, peer),
		func() (interface{}, error) {
			return store.Groups.Shared(rec.Uid, peer)
		})
	if err != nil {
		writeAPIError(wrt, err)
		return
	}
	if !shared.(bool) {
		writeAPIError(wrt, types.ErrPermissionDenied)
		return
	}

	conv, err = store.Conversations.AccessOrCreate(rec.Uid, peer)
	if err != nil {
		writeAPIError(wrt, err)
		return
	}
	writeAPIResponse(wrt, http.StatusOK, conv)
}

// GET /v0/conversations
func apiConvList(wrt http.ResponseWriter, req *http.Request, rec *auth.Rec) {
	page, limit := apiPageLimit(req)
	convs, err := store.Conversations.GetForUser(rec.Uid, page, limit)
	if err != nil {
		writeAPIError(wrt, err)
		return
	}
	writeAPIResponse(wrt, http.StatusOK, map[string]interface{}{"conversations": convs})
}

// POST /v0/conversations/{id}/messages {content}. The durable write is
// acknowledged to the sender; the push to the other party is background and
// best-effort.
func apiMessageSend(wrt http.ResponseWriter, req *http.Request, rec *auth.Rec) {
	name := req.PathValue("id")
	var msg struct {
		Content string `json:"content"`
	}
	if err := decodeAPIRequest(req, &msg); err != nil {
		writeAPIError(wrt, err)
		return
	}

	saved, err := store.Messages.Send(name, rec.Uid, msg.Content)
	if err != nil {
		writeAPIError(wrt, err)
		return
	}

	statsInc("MessagesSentTotal", 1)

	go globals.router.BroadcastRoomExcept(name, &ServerComMessage{Data: &MsgServerData{
		Conversation: saved.Conversation,
		SeqId:        saved.SeqId,
		From:         rec.Uid.UserId(),
		Content:      saved.Content,
		Timestamp:    saved.CreatedAt,
	}}, rec.Uid)

	writeAPIResponse(wrt, http.StatusCreated, map[string]interface{}{
		"id":  saved.Id,
		"seq": saved.SeqId,
		"ts":  saved.CreatedAt,
	})
}

// GET /v0/conversations/{id}/messages?page=&limit=
func apiMessageList(wrt http.ResponseWriter, req *http.Request, rec *auth.Rec) {
	name := req.PathValue("id")
	page, limit := apiPageLimit(req)

	messages, hasMore, err := store.Messages.GetAll(name, rec.Uid, page, limit)
	if err != nil {
		writeAPIError(wrt, err)
		return
	}
	writeAPIResponse(wrt, http.StatusOK, map[string]interface{}{
		"messages": messages,
		"hasMore":  hasMore,
	})
}

// PUT /v0/conversations/{id}/read
func apiConvMarkRead(wrt http.ResponseWriter, req *http.Request, rec *auth.Rec) {
	if err := store.Conversations.MarkRead(req.PathValue("id"), rec.Uid); err != nil {
		writeAPIError(wrt, err)
		return
	}
	writeAPIResponse(wrt, http.StatusOK, NoErr("", "", types.TimeNow()))
}

// POST /v0/groups {name, members}
func apiGroupCreate(wrt http.ResponseWriter, req *http.Request, rec *auth.Rec) {
	var msg struct {
		Name    string   `json:"name"`
		Members []string `json:"members"`
	}
	if err := decodeAPIRequest(req, &msg); err != nil {
		writeAPIError(wrt, err)
		return
	}
	members := make([]types.Uid, 0, len(msg.Members))
	for _, m := range msg.Members {
		uid := types.ParseUserId(m)
		if uid.IsZero() {
			writeAPIError(wrt, types.ErrMalformed)
			return
		}
		members = append(members, uid)
	}

	group, err := store.Groups.Create(msg.Name, members)
	if err != nil {
		writeAPIError(wrt, err)
		return
	}

	// A fresh group may change which pairs of users are related.
	for _, m := range members {
		globals.accessCache.Invalidate(m)
	}

	writeAPIResponse(wrt, http.StatusCreated, group)
}

// GET /v0/groups/{id}
func apiGroupGet(wrt http.ResponseWriter, req *http.Request, rec *auth.Rec) {
	id := types.ParseGroupId(req.PathValue("id"))
	if id.IsZero() {
		writeAPIError(wrt, types.ErrMalformed)
		return
	}
	group, err := store.Groups.Get(id)
	if err != nil {
		writeAPIError(wrt, err)
		return
	}
	writeAPIResponse(wrt, http.StatusOK, group)
}

// POST /v0/groups/{id}/members/{user}
func apiGroupAddMember(wrt http.ResponseWriter, req *http.Request, rec *auth.Rec) {
	id := types.ParseGroupId(req.PathValue("id"))
	uid := types.ParseUserId(req.PathValue("user"))
	if id.IsZero() || uid.IsZero() {
		writeAPIError(wrt, types.ErrMalformed)
		return
	}
	if err := store.Groups.AddMember(id, uid); err != nil {
		writeAPIError(wrt, err)
		return
	}
	// Cached relationship checks involving this user are no longer valid.
	globals.accessCache.Invalidate(uid)
	writeAPIResponse(wrt, http.StatusOK, NoErr("", "", types.TimeNow()))
}

// DELETE /v0/groups/{id}/members/{user}
func apiGroupRemoveMember(wrt http.ResponseWriter, req *http.Request, rec *auth.Rec) {
	id := types.ParseGroupId(req.PathValue("id"))
	uid := types.ParseUserId(req.PathValue("user"))
	if id.IsZero() || uid.IsZero() {
		writeAPIError(wrt, types.ErrMalformed)
		return
	}
	if err := store.Groups.RemoveMember(id, uid); err != nil {
		writeAPIError(wrt, err)
		return
	}
	globals.accessCache.Invalidate(uid)
	writeAPIResponse(wrt, http.StatusOK, NoErr("", "", types.TimeNow()))
}

// POST /v0/maintenance/sweep. Entry point for an external scheduler; the
// same passes run on the internal ticker.
func apiMaintenanceSweep(wrt http.ResponseWriter, req *http.Request, rec *auth.Rec) {
	swept, reminders := runMaintenancePasses()
	writeAPIResponse(wrt, http.StatusOK, map[string]interface{}{
		"swept":     swept,
		"reminders": reminders,
	})
}

// setupAPIRoutes attaches all JSON API handlers to the mux. Collaborator
// endpoints (fan-out, group administration, maintenance) require root-level
// credentials; the rest is available to any authenticated user.
func setupAPIRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /v0/notifications", apiAuthRequired(auth.LevelRoot, apiNotifCreate))
	mux.HandleFunc("GET /v0/notifications", apiAuthRequired(auth.LevelAuth, apiNotifList))
	mux.HandleFunc("GET /v0/notifications/unread-count", apiAuthRequired(auth.LevelAuth, apiNotifUnreadCount))
	mux.HandleFunc("PUT /v0/notifications/read-all", apiAuthRequired(auth.LevelAuth, apiNotifMarkAllRead))
	mux.HandleFunc("PUT /v0/notifications/{id}/read", apiAuthRequired(auth.LevelAuth, apiNotifMarkRead))
	mux.HandleFunc("DELETE /v0/notifications/{id}", apiAuthRequired(auth.LevelAuth, apiNotifDelete))

	mux.HandleFunc("POST /v0/conversations", apiAuthRequired(auth.LevelAuth, apiConvAccess))
	mux.HandleFunc("GET /v0/conversations", apiAuthRequired(auth.LevelAuth, apiConvList))
	mux.HandleFunc("POST /v0/conversations/{id}/messages", apiAuthRequired(auth.LevelAuth, apiMessageSend))
	mux.HandleFunc("GET /v0/conversations/{id}/messages", apiAuthRequired(auth.LevelAuth, apiMessageList))
	mux.HandleFunc("PUT /v0/conversations/{id}/read", apiAuthRequired(auth.LevelAuth, apiConvMarkRead))

	mux.HandleFunc("POST /v0/groups", apiAuthRequired(auth.LevelRoot, apiGroupCreate))
	mux.HandleFunc("GET /v0/groups/{id}", apiAuthRequired(auth.LevelAuth, apiGroupGet))
	mux.HandleFunc("POST /v0/groups/{id}/members/{user}", apiAuthRequired(auth.LevelRoot, apiGroupAddMember))
	mux.HandleFunc("DELETE /v0/groups/{id}/members/{user}", apiAuthRequired(auth.LevelRoot, apiGroupRemoveMember))

	mux.HandleFunc("POST /v0/maintenance/sweep", apiAuthRequired(auth.LevelRoot, apiMaintenanceSweep))
}
