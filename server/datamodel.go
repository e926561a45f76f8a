/******************************************************************************
 *
 *  Description :
 *
 *  Definition of the client-to-server and server-to-client message types and
 *  generators of {ctrl} acknowledgements.
 *
 *****************************************************************************/

package main

import (
	"net/http"
	"strconv"
	"time"

	"github.com/mentorhub/relay/server/store/types"
)

// MsgClientJoin is a subscription request {join} to a room. Idempotent.
type MsgClientJoin struct {
	Id   string `json:"id,omitempty"`
	Room string `json:"room"`
}

// MsgClientLeave is an unsubscription request {leave}.
type MsgClientLeave struct {
	Id   string `json:"id,omitempty"`
	Room string `json:"room"`
}

// MsgClientNote is an ephemeral typing indicator {note}. Not acknowledged,
// not persisted.
type MsgClientNote struct {
	Room string `json:"room"`
	// What the indicator means: "typing" or "stop".
	What string `json:"what"`
}

// MsgClientPres is a presence announcement {pres}: "on" or "off".
type MsgClientPres struct {
	What string `json:"what"`
}

// ClientComMessage is a wrapper for client messages.
type ClientComMessage struct {
	Join  *MsgClientJoin  `json:"join,omitempty"`
	Leave *MsgClientLeave `json:"leave,omitempty"`
	Note  *MsgClientNote  `json:"note,omitempty"`
	Pres  *MsgClientPres  `json:"pres,omitempty"`

	// Internal fields, routed between the handlers.

	// Message id denormalized from the embedded message.
	id string
	// Room name denormalized from the embedded message.
	room string
	// Sender, resolved at handshake time.
	from types.Uid
	// Timestamp of receipt.
	timestamp time.Time
}

// MsgServerCtrl is a server control message {ctrl}.
type MsgServerCtrl struct {
	Id     string      `json:"id,omitempty"`
	Room   string      `json:"room,omitempty"`
	Params interface{} `json:"params,omitempty"`

	Code      int       `json:"code"`
	Text      string    `json:"text,omitempty"`
	Timestamp time.Time `json:"ts"`
}

func (src *MsgServerCtrl) describe() string {
	return src.Room + " id=" + src.Id + " code=" + strconv.Itoa(src.Code) + " txt=" + src.Text
}

// MsgServerNotif is a server {notif} message carrying one notification event.
type MsgServerNotif struct {
	Id          string    `json:"id"`
	What        string    `json:"what"`
	From        string    `json:"from,omitempty"`
	ContentRef  string    `json:"contentRef,omitempty"`
	ContentKind string    `json:"contentKind,omitempty"`
	Text        string    `json:"text,omitempty"`
	Timestamp   time.Time `json:"ts"`
}

// MsgServerData is a server {data} message carrying one conversation message.
type MsgServerData struct {
	Conversation string    `json:"conversation"`
	SeqId        int       `json:"seq"`
	From         string    `json:"from"`
	Content      string    `json:"content"`
	Timestamp    time.Time `json:"ts"`
}

// MsgServerInfo is a server {info} message: an ephemeral typing indicator
// relayed to a room.
type MsgServerInfo struct {
	Room string `json:"room"`
	From string `json:"from"`
	What string `json:"what"`
}

// MsgServerPres is a presence change announcement {pres}.
type MsgServerPres struct {
	User string `json:"user"`
	What string `json:"what"`
}

// ServerComMessage is a wrapper for server-side messages.
type ServerComMessage struct {
	Ctrl  *MsgServerCtrl  `json:"ctrl,omitempty"`
	Notif *MsgServerNotif `json:"notif,omitempty"`
	Data  *MsgServerData  `json:"data,omitempty"`
	Info  *MsgServerInfo  `json:"info,omitempty"`
	Pres  *MsgServerPres  `json:"pres,omitempty"`
}

func (src *ServerComMessage) describe() string {
	if src == nil {
		return "-"
	}

	switch {
	case src.Ctrl != nil:
		return "{ctrl " + src.Ctrl.describe() + "}"
	case src.Notif != nil:
		return "{notif " + src.Notif.Id + "}"
	case src.Data != nil:
		return "{data " + src.Data.Conversation + " seq=" + strconv.Itoa(src.Data.SeqId) + "}"
	case src.Info != nil:
		return "{info " + src.Info.Room + " " + src.Info.What + "}"
	case src.Pres != nil:
		return "{pres " + src.Pres.User + " " + src.Pres.What + "}"
	default:
		return "{nil}"
	}
}

// Generators of server-side {ctrl} acknowledgements.

// NoErr indicates successful completion (200).
func NoErr(id, room string, ts time.Time) *ServerComMessage {
	return NoErrParams(id, room, ts, nil)
}

// NoErrParams indicates successful completion with parameters (200).
func NoErrParams(id, room string, ts time.Time, params interface{}) *ServerComMessage {
	return &ServerComMessage{Ctrl: &MsgServerCtrl{
		Id:        id,
		Room:      room,
		Params:    params,
		Code:      http.StatusOK,
		Text:      "ok",
		Timestamp: ts}}
}

// NoErrCreated indicates creation of an object (201).
func NoErrCreated(id, room string, ts time.Time) *ServerComMessage {
	return &ServerComMessage{Ctrl: &MsgServerCtrl{
		Id:        id,
		Room:      room,
		Code:      http.StatusCreated,
		Text:      "created",
		Timestamp: ts}}
}

// InfoAlreadySubscribed response means the session is already joined to the
// room (304).
func InfoAlreadySubscribed(id, room string, ts time.Time) *ServerComMessage {
	return &ServerComMessage{Ctrl: &MsgServerCtrl{
		Id:        id,
		Room:      room,
		Code:      http.StatusNotModified,
		Text:      "already subscribed",
		Timestamp: ts}}
}

// InfoNotJoined response means the session is not joined to the room (304).
func InfoNotJoined(id, room string, ts time.Time) *ServerComMessage {
	return &ServerComMessage{Ctrl: &MsgServerCtrl{
		Id:        id,
		Room:      room,
		Code:      http.StatusNotModified,
		Text:      "not joined",
		Timestamp: ts}}
}

// NoErrShutdown means the server is shutting down (205).
func NoErrShutdown(ts time.Time) *ServerComMessage {
	return &ServerComMessage{Ctrl: &MsgServerCtrl{
		Code:      http.StatusResetContent,
		Text:      "server shutdown",
		Timestamp: ts}}
}

// 4xx Errors.

// ErrMalformed request malformed (400).
func ErrMalformed(id, room string, ts time.Time) *ServerComMessage {
	return &ServerComMessage{Ctrl: &MsgServerCtrl{
		Id:        id,
		Room:      room,
		Code:      http.StatusBadRequest,
		Text:      "malformed",
		Timestamp: ts}}
}

// ErrAuthRequired authentication required (401).
func ErrAuthRequired(id, room string, ts time.Time) *ServerComMessage {
	return &ServerComMessage{Ctrl: &MsgServerCtrl{
		Id:        id,
		Room:      room,
		Code:      http.StatusUnauthorized,
		Text:      "authentication required",
		Timestamp: ts}}
}

// ErrPermissionDenied the caller has no relationship permitting the action (403).
func ErrPermissionDenied(id, room string, ts time.Time) *ServerComMessage {
	return &ServerComMessage{Ctrl: &MsgServerCtrl{
		Id:        id,
		Room:      room,
		Code:      http.StatusForbidden,
		Text:      "permission denied",
		Timestamp: ts}}
}

// ErrNotFound the target does not exist or the caller is not among its
// receivers/participants (404).
func ErrNotFound(id, room string, ts time.Time) *ServerComMessage {
	return &ServerComMessage{Ctrl: &MsgServerCtrl{
		Id:        id,
		Room:      room,
		Code:      http.StatusNotFound,
		Text:      "not found",
		Timestamp: ts}}
}

// ErrOperationNotAllowed the request cannot be processed (405).
func ErrOperationNotAllowed(id, room string, ts time.Time) *ServerComMessage {
	return &ServerComMessage{Ctrl: &MsgServerCtrl{
		Id:        id,
		Room:      room,
		Code:      http.StatusMethodNotAllowed,
		Text:      "operation not allowed",
		Timestamp: ts}}
}

// ErrUnknown database or other server error (500).
func ErrUnknown(id, room string, ts time.Time) *ServerComMessage {
	return &ServerComMessage{Ctrl: &MsgServerCtrl{
		Id:        id,
		Room:      room,
		Code:      http.StatusInternalServerError,
		Text:      "internal error",
		Timestamp: ts}}
}

// decodeStoreError converts an error from the storage layer into a {ctrl}
// reply to the client.
func decodeStoreError(err error, id, room string, ts time.Time) *ServerComMessage {
	if err == nil {
		return NoErr(id, room, ts)
	}

	sErr, ok := err.(types.StoreError)
	if !ok {
		return ErrUnknown(id, room, ts)
	}

	switch sErr {
	case types.ErrNotFound:
		return ErrNotFound(id, room, ts)
	case types.ErrPermissionDenied:
		return ErrPermissionDenied(id, room, ts)
	case types.ErrMalformed, types.ErrPolicy:
		return ErrMalformed(id, room, ts)
	case types.ErrUnsupported:
		return ErrOperationNotAllowed(id, room, ts)
	default:
		return ErrUnknown(id, room, ts)
	}
}

// decodeStoreErrorHTTP converts an error from the storage layer into an HTTP
// status code for the JSON API.
func decodeStoreErrorHTTP(err error) int {
	if err == nil {
		return http.StatusOK
	}

	sErr, ok := err.(types.StoreError)
	if !ok {
		return http.StatusInternalServerError
	}

	switch sErr {
	case types.ErrNotFound:
		return http.StatusNotFound
	case types.ErrPermissionDenied:
		return http.StatusForbidden
	case types.ErrMalformed, types.ErrPolicy:
		return http.StatusBadRequest
	case types.ErrDuplicate:
		return http.StatusConflict
	case types.ErrUnsupported:
		return http.StatusMethodNotAllowed
	default:
		return http.StatusInternalServerError
	}
}
