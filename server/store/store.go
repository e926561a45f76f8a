// Package store provides methods for registering and accessing database
// adapters and for high-level mapping of stored objects to adapter calls.
package store

import (
	"encoding/json"
	"errors"
	"time"

	adapter "github.com/mentorhub/relay/server/db"
	"github.com/mentorhub/relay/server/store/types"
)

var adp adapter.Adapter
var availableAdapters = make(map[string]adapter.Adapter)

// Unique ID generator.
var uGen types.UidGenerator

// Server-enforced limits on message and notification pages. A caller may ask
// for less but never for more.
const (
	defaultPageSize = 24
	maxPageSize     = 128
)

type configType struct {
	// 16-byte key for XTEA. Used to initialize types.UidGenerator.
	UidKey []byte `json:"uid_key"`
	// Maximum number of results to return from the adapter.
	MaxResults int `json:"max_results"`
	// DB adapter name to use. Should be one of those specified in `Adapters`.
	UseAdapter string `json:"use_adapter"`
	// Configurations for individual adapters.
	Adapters map[string]json.RawMessage `json:"adapters"`
}

func openAdapter(workerId int, jsonconf json.RawMessage) error {
	var config configType
	if err := json.Unmarshal(jsonconf, &config); err != nil {
		return errors.New("store: failed to parse config: " + err.Error() + "(" + string(jsonconf) + ")")
	}

	if adp == nil {
		if len(config.UseAdapter) > 0 {
			// Adapter name specified explicitly.
			if ad, ok := availableAdapters[config.UseAdapter]; ok {
				adp = ad
			} else {
				return errors.New("store: " + config.UseAdapter + " adapter is not available in this binary")
			}
		} else if len(availableAdapters) == 1 {
			// Default to the only entry in availableAdapters.
			for _, v := range availableAdapters {
				adp = v
			}
		} else {
			return errors.New("store: db adapter is not specified. Please set `store_config.use_adapter` in the config")
		}
	}

	if adp.IsOpen() {
		return errors.New("store: connection is already opened")
	}

	// Initialize snowflake.
	if workerId < 0 || workerId > 1023 {
		return errors.New("store: invalid worker ID")
	}

	if err := uGen.Init(uint(workerId), config.UidKey); err != nil {
		return errors.New("store: failed to init snowflake: " + err.Error())
	}

	if err := adp.SetMaxResults(config.MaxResults); err != nil {
		return err
	}

	var adapterConfig json.RawMessage
	if config.Adapters != nil {
		adapterConfig = config.Adapters[adp.GetName()]
	}

	return adp.Open(adapterConfig)
}

// PersistentStorageInterface defines methods used for interaction with
// persistent storage.
type PersistentStorageInterface interface {
	Open(workerId int, jsonconf json.RawMessage) error
	Close() error
	IsOpen() bool
	GetAdapterName() string
	InitDb(jsonconf json.RawMessage, reset bool) error
	GetUid() types.Uid
	GetUidString() string
	DbStats() func() interface{}
}

// Store is the main object for interacting with persistent storage.
var Store PersistentStorageInterface = storeObj{}

type storeObj struct{}

// Open initializes the persistence system. Adapter holds a connection pool
// for a database instance.
//
//	workerId - snowflake worker id of this process
//	jsonconf - configuration string
func (storeObj) Open(workerId int, jsonconf json.RawMessage) error {
	return openAdapter(workerId, jsonconf)
}

// Close terminates connection to persistent storage.
func (storeObj) Close() error {
	if adp != nil && adp.IsOpen() {
		return adp.Close()
	}

	return nil
}

// IsOpen checks if persistent storage connection has been initialized.
func (storeObj) IsOpen() bool {
	if adp != nil {
		return adp.IsOpen()
	}

	return false
}

// GetAdapterName returns the name of the current adapter.
func (storeObj) GetAdapterName() string {
	if adp != nil {
		return adp.GetName()
	}

	return ""
}

// InitDb creates a new database instance. If 'reset' is true it will first
// attempt to drop an existing database. If jsonconf is nil it will assume
// that the adapter is already open.
func (s storeObj) InitDb(jsonconf json.RawMessage, reset bool) error {
	if !s.IsOpen() {
		if err := openAdapter(1, jsonconf); err != nil {
			return err
		}
	}
	return adp.CreateDb(reset)
}

// RegisterAdapter makes a persistence adapter available.
// If Register is called twice or if the adapter is nil, it panics.
func RegisterAdapter(a adapter.Adapter) {
	if a == nil {
		panic("store: Register adapter is nil")
	}

	adapterName := a.GetName()
	if _, ok := availableAdapters[adapterName]; ok {
		panic("store: adapter '" + adapterName + "' is already registered")
	}
	availableAdapters[adapterName] = a
}

// GetUid generates a unique ID suitable for use as a primary key.
func (storeObj) GetUid() types.Uid {
	return uGen.Get()
}

// GetUidString generates a unique ID as a string.
func (storeObj) GetUidString() string {
	return uGen.GetStr()
}

// DbStats returns a callback returning the db connection stats object.
func (s storeObj) DbStats() func() interface{} {
	if !s.IsOpen() {
		return nil
	}
	return adp.Stats
}

// clampPage normalizes caller-requested pagination. The server-side cap
// applies regardless of the requested limit.
func clampPage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = defaultPageSize
	} else if limit > maxPageSize {
		limit = maxPageSize
	}
	return page, limit
}

// NotificationsObjMapperInterface is the interface for persistence mapping
// of notifications.
type NotificationsObjMapperInterface interface {
	Create(notif *types.Notification, receivers []types.Uid) (*types.Notification, error)
	Get(id types.Uid) (*types.Notification, error)
	GetForUser(uid types.Uid, unreadOnly bool, page, limit int) ([]types.Notification, bool, error)
	UnreadCount(uid types.Uid) (int, error)
	MarkRead(id, uid types.Uid) error
	MarkAllRead(uid types.Uid) (int, error)
	DeleteForUser(id, uid types.Uid) error
	Sweep(before time.Time) (int, error)
	DueReminders(before time.Time) ([]types.Notification, error)
}

// NotificationsObjMapper is the concrete mapper of the Notification object.
type NotificationsObjMapper struct{}

// Notifications is the ambient instance of NotificationsObjMapper.
var Notifications NotificationsObjMapperInterface = NotificationsObjMapper{}

// Create validates and persists one notification record shared by all its
// receivers. Validation happens before any persistence attempt.
func (NotificationsObjMapper) Create(notif *types.Notification, receivers []types.Uid) (*types.Notification, error) {
	if !types.ValidNotifWhat(notif.What) {
		return nil, types.ErrMalformed
	}
	if !types.ValidContentKind(notif.ContentKind) {
		return nil, types.ErrPolicy
	}
	if len(receivers) == 0 {
		// A notification with no receivers must never exist.
		return nil, types.ErrPolicy
	}

	notif.Receivers = nil
	notif.SetUid(Store.GetUid())
	notif.InitTimes()

	seen := make(map[types.Uid]bool, len(receivers))
	for _, r := range receivers {
		if r.IsZero() || seen[r] {
			continue
		}
		seen[r] = true
		notif.Receivers = append(notif.Receivers, types.Receiver{User: r.String()})
	}
	if len(notif.Receivers) == 0 {
		return nil, types.ErrPolicy
	}

	if err := adp.NotifCreate(notif); err != nil {
		return nil, err
	}
	return notif, nil
}

// Get fetches a single notification by id.
func (NotificationsObjMapper) Get(id types.Uid) (*types.Notification, error) {
	return adp.NotifGet(id)
}

// GetForUser fetches one page of the user's notifications, newest first.
// The second return value reports whether more pages exist.
func (NotificationsObjMapper) GetForUser(uid types.Uid, unreadOnly bool, page, limit int) ([]types.Notification, bool, error) {
	page, limit = clampPage(page, limit)

	// One extra record tells us if there is another page.
	notifs, err := adp.NotifGetForUser(uid, unreadOnly, &types.QueryOpt{
		Skip:  (page - 1) * limit,
		Limit: limit + 1,
	})
	if err != nil {
		return nil, false, err
	}

	hasMore := len(notifs) > limit
	if hasMore {
		notifs = notifs[:limit]
	}
	return notifs, hasMore, nil
}

// UnreadCount returns the number of notifications unread by the user.
func (NotificationsObjMapper) UnreadCount(uid types.Uid) (int, error) {
	return adp.NotifUnreadCount(uid)
}

// MarkRead flips the read flag of the user's receiver entry only.
func (NotificationsObjMapper) MarkRead(id, uid types.Uid) error {
	return adp.NotifMarkRead(id, uid, types.TimeNow())
}

// MarkAllRead marks all of the user's unread receiver entries as read.
func (NotificationsObjMapper) MarkAllRead(uid types.Uid) (int, error) {
	return adp.NotifMarkAllRead(uid, types.TimeNow())
}

// DeleteForUser removes the user's receiver entry; the record is purged when
// the entry was the last one.
func (NotificationsObjMapper) DeleteForUser(id, uid types.Uid) error {
	return adp.NotifDeleteForUser(id, uid)
}

// Sweep deletes fully-read notifications created before the given time.
func (NotificationsObjMapper) Sweep(before time.Time) (int, error) {
	return adp.NotifSweep(before)
}

// DueReminders fetches and clears notifications with a due reminder.
func (NotificationsObjMapper) DueReminders(before time.Time) ([]types.Notification, error) {
	return adp.NotifDueReminders(before)
}

// ConversationsObjMapperInterface is the interface for persistence mapping
// of conversations.
type ConversationsObjMapperInterface interface {
	AccessOrCreate(uid1, uid2 types.Uid) (*types.Conversation, error)
	Get(name string) (*types.Conversation, error)
	GetForUser(uid types.Uid, page, limit int) ([]types.Conversation, error)
	MarkRead(name string, uid types.Uid) error
}

// ConversationsObjMapper is the concrete mapper of the Conversation object.
type ConversationsObjMapper struct{}

// Conversations is the ambient instance of ConversationsObjMapper.
var Conversations ConversationsObjMapperInterface = ConversationsObjMapper{}

// AccessOrCreate is an idempotent lookup-or-create of the conversation for
// an unordered pair of users. The conversation's primary key is derived from
// the pair, consequently when both sides attempt first contact at the same
// time exactly one insert succeeds and the loser returns the winner's record.
func (ConversationsObjMapper) AccessOrCreate(uid1, uid2 types.Uid) (*types.Conversation, error) {
	name := uid1.PairName(uid2)
	if name == "" {
		return nil, types.ErrMalformed
	}

	conv, err := adp.ConvGet(name)
	if err == nil {
		return conv, nil
	}
	if err != types.ErrNotFound {
		return nil, err
	}

	if uid2 < uid1 {
		uid1, uid2 = uid2, uid1
	}
	conv = &types.Conversation{
		Participants: [2]string{uid1.String(), uid2.String()},
	}
	conv.Id = name
	conv.InitTimes()
	conv.TouchedAt = conv.CreatedAt

	err = adp.ConvCreate(conv)
	if err == types.ErrDuplicate {
		// Lost the race to the other side's first contact.
		return adp.ConvGet(name)
	}
	if err != nil {
		return nil, err
	}
	return conv, nil
}

// Get fetches a conversation by its pair name.
func (ConversationsObjMapper) Get(name string) (*types.Conversation, error) {
	return adp.ConvGet(name)
}

// GetForUser fetches the user's conversations, most recently touched first.
func (ConversationsObjMapper) GetForUser(uid types.Uid, page, limit int) ([]types.Conversation, error) {
	page, limit = clampPage(page, limit)
	return adp.ConvsForUser(uid, &types.QueryOpt{Skip: (page - 1) * limit, Limit: limit})
}

// MarkRead idempotently adds the user to readBy of every message in the
// conversation. Reports types.ErrNotFound if the user is not a participant.
func (ConversationsObjMapper) MarkRead(name string, uid types.Uid) error {
	conv, err := adp.ConvGet(name)
	if err != nil {
		return err
	}
	if !conv.IsParticipant(uid) {
		return types.ErrNotFound
	}
	return adp.MessagesMarkRead(name, uid)
}

// MessagesObjMapperInterface is the interface for persistence mapping of messages.
type MessagesObjMapperInterface interface {
	Send(name string, from types.Uid, content string) (*types.Message, error)
	GetAll(name string, uid types.Uid, page, limit int) ([]types.Message, bool, error)
}

// MessagesObjMapper is the concrete mapper of the Message object.
type MessagesObjMapper struct{}

// Messages is the ambient instance of MessagesObjMapper.
var Messages MessagesObjMapperInterface = MessagesObjMapper{}

// Send appends a message to a conversation. The sender is recorded as having
// read their own message. Reports types.ErrNotFound if the sender is not a
// participant of the conversation.
func (MessagesObjMapper) Send(name string, from types.Uid, content string) (*types.Message, error) {
	if content == "" {
		return nil, types.ErrMalformed
	}

	conv, err := adp.ConvGet(name)
	if err != nil {
		return nil, err
	}
	if !conv.IsParticipant(from) {
		return nil, types.ErrNotFound
	}

	now := types.TimeNow()
	seq, err := adp.ConvNextSeq(name, now)
	if err != nil {
		return nil, err
	}

	msg := &types.Message{
		Conversation: name,
		SeqId:        seq,
		From:         from.String(),
		Content:      content,
		ReadBy:       []string{from.String()},
	}
	msg.SetUid(Store.GetUid())
	msg.CreatedAt = now
	msg.UpdatedAt = now

	if err = adp.MessageSave(msg); err != nil {
		return nil, err
	}
	return msg, nil
}

// GetAll fetches one page of conversation messages. Storage order is newest
// first; the page is reversed before returning so callers always see
// chronological order. Reports whether more (older) messages exist.
func (MessagesObjMapper) GetAll(name string, uid types.Uid, page, limit int) ([]types.Message, bool, error) {
	conv, err := adp.ConvGet(name)
	if err != nil {
		return nil, false, err
	}
	if !conv.IsParticipant(uid) {
		return nil, false, types.ErrNotFound
	}

	page, limit = clampPage(page, limit)
	msgs, err := adp.MessagesGet(name, &types.QueryOpt{
		Skip:  (page - 1) * limit,
		Limit: limit + 1,
	})
	if err != nil {
		return nil, false, err
	}

	hasMore := len(msgs) > limit
	if hasMore {
		msgs = msgs[:limit]
	}

	// Reverse into chronological order.
	for i, j := 0, len(msgs)-1; i < j; i, j = i+1, j-1 {
		msgs[i], msgs[j] = msgs[j], msgs[i]
	}
	return msgs, hasMore, nil
}

// GroupsObjMapperInterface is the interface for persistence mapping of groups.
type GroupsObjMapperInterface interface {
	Create(name string, members []types.Uid) (*types.Group, error)
	Get(id types.Uid) (*types.Group, error)
	AddMember(id, uid types.Uid) error
	RemoveMember(id, uid types.Uid) error
	IsMember(id, uid types.Uid) (bool, error)
	Shared(uid1, uid2 types.Uid) (bool, error)
}

// GroupsObjMapper is the concrete mapper of the Group object.
type GroupsObjMapper struct{}

// Groups is the ambient instance of GroupsObjMapper.
var Groups GroupsObjMapperInterface = GroupsObjMapper{}

// Create persists a new group.
func (GroupsObjMapper) Create(name string, members []types.Uid) (*types.Group, error) {
	if name == "" {
		return nil, types.ErrMalformed
	}

	group := &types.Group{Name: name}
	group.SetUid(Store.GetUid())
	group.InitTimes()
	for _, m := range members {
		if !m.IsZero() {
			group.Members = append(group.Members, m.String())
		}
	}

	if err := adp.GroupCreate(group); err != nil {
		return nil, err
	}
	return group, nil
}

// Get fetches a group by id.
func (GroupsObjMapper) Get(id types.Uid) (*types.Group, error) {
	return adp.GroupGet(id)
}

// AddMember adds a user to the group.
func (GroupsObjMapper) AddMember(id, uid types.Uid) error {
	return adp.GroupAddMember(id, uid)
}

// RemoveMember removes a user from the group.
func (GroupsObjMapper) RemoveMember(id, uid types.Uid) error {
	return adp.GroupRemoveMember(id, uid)
}

// IsMember checks if the user belongs to the group.
func (GroupsObjMapper) IsMember(id, uid types.Uid) (bool, error) {
	return adp.GroupIsMember(id, uid)
}

// Shared checks if the two users are members of at least one common group.
func (GroupsObjMapper) Shared(uid1, uid2 types.Uid) (bool, error) {
	return adp.GroupsShared(uid1, uid2)
}
