// Package adapter contains the interfaces to be implemented by the database adapter.
package adapter

import (
	"encoding/json"
	"time"

	t "github.com/mentorhub/relay/server/store/types"
)

// Adapter is the interface which must be implemented by a persistent storage
// backend. The backend must provide atomic targeted-field updates and
// unique-constraint enforcement; no cross-document transactions are assumed.
type Adapter interface {
	// General

	// Open and configure the adapter.
	Open(config json.RawMessage) error
	// Close the adapter.
	Close() error
	// IsOpen checks if the adapter is ready for use.
	IsOpen() bool
	// GetName returns the name of the adapter.
	GetName() string
	// SetMaxResults configures the maximum number of results returned by queries.
	SetMaxResults(val int) error
	// CreateDb creates the database and all indexes optionally dropping an
	// existing database first.
	CreateDb(reset bool) error
	// Stats returns the DB connection stats object.
	Stats() interface{}

	// Notifications

	// NotifCreate persists a new notification shared by all its receivers.
	NotifCreate(notif *t.Notification) error
	// NotifGet fetches a single notification by id.
	NotifGet(id t.Uid) (*t.Notification, error)
	// NotifGetForUser fetches a page of notifications where the given user is
	// a receiver, newest first.
	NotifGetForUser(uid t.Uid, unreadOnly bool, opts *t.QueryOpt) ([]t.Notification, error)
	// NotifUnreadCount returns the number of notifications unread by the user.
	NotifUnreadCount(uid t.Uid) (int, error)
	// NotifMarkRead flips the read flag of exactly one receiver entry without
	// disturbing its siblings. Idempotent: marking an already-read entry is a
	// no-op. Returns types.ErrNotFound if the user is not among the receivers.
	NotifMarkRead(id t.Uid, uid t.Uid, when time.Time) error
	// NotifMarkAllRead marks every notification unread by the user as read.
	// Returns the number of records changed.
	NotifMarkAllRead(uid t.Uid, when time.Time) (int, error)
	// NotifDeleteForUser removes the user's receiver entry. If the entry was
	// the last one the whole record is purged. Returns types.ErrNotFound if
	// the user is not among the receivers.
	NotifDeleteForUser(id t.Uid, uid t.Uid) error
	// NotifSweep deletes fully-read notifications created before the given
	// time. Returns the number of records deleted.
	NotifSweep(before time.Time) (int, error)
	// NotifDueReminders fetches notifications with a reminder due before the
	// given time and clears their reminder marker.
	NotifDueReminders(before time.Time) ([]t.Notification, error)

	// Conversations and messages

	// ConvCreate persists a new conversation. Returns types.ErrDuplicate if a
	// conversation for the pair already exists (the primary key is derived
	// from the participant pair).
	ConvCreate(conv *t.Conversation) error
	// ConvGet fetches a conversation by its pair name.
	ConvGet(name string) (*t.Conversation, error)
	// ConvsForUser fetches conversations the user participates in, most
	// recently touched first.
	ConvsForUser(uid t.Uid, opts *t.QueryOpt) ([]t.Conversation, error)
	// ConvNextSeq atomically increments and returns the conversation's
	// message sequence, updating its touched timestamp.
	ConvNextSeq(name string, when time.Time) (int, error)
	// MessageSave persists a new message.
	MessageSave(msg *t.Message) error
	// MessagesGet fetches a page of messages in reverse-chronological
	// storage order.
	MessagesGet(name string, opts *t.QueryOpt) ([]t.Message, error)
	// MessagesMarkRead adds the user to readBy of every message in the
	// conversation where absent.
	MessagesMarkRead(name string, uid t.Uid) error

	// Groups

	// GroupCreate persists a new group.
	GroupCreate(group *t.Group) error
	// GroupGet fetches a group by id.
	GroupGet(id t.Uid) (*t.Group, error)
	// GroupAddMember adds a user to the group, no-op if already a member.
	GroupAddMember(id t.Uid, uid t.Uid) error
	// GroupRemoveMember removes a user from the group.
	GroupRemoveMember(id t.Uid, uid t.Uid) error
	// GroupIsMember checks if the user belongs to the group.
	GroupIsMember(id t.Uid, uid t.Uid) (bool, error)
	// GroupsShared checks if the two users are members of at least one
	// common group.
	GroupsShared(uid1, uid2 t.Uid) (bool, error)
}
