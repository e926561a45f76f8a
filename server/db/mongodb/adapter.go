// Package mongodb is a database adapter for MongoDB.
package mongodb

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/mentorhub/relay/server/store"
	t "github.com/mentorhub/relay/server/store/types"
	b "go.mongodb.org/mongo-driver/bson"
	mdb "go.mongodb.org/mongo-driver/mongo"
	mdbopts "go.mongodb.org/mongo-driver/mongo/options"
)

// adapter holds MongoDB connection data.
type adapter struct {
	conn       *mdb.Client
	db         *mdb.Database
	dbName     string
	maxResults int
	ctx        context.Context
}

const (
	defaultHost     = "localhost:27017"
	defaultDatabase = "relay"

	adapterName = "mongodb"

	defaultMaxResults = 1024
)

// See https://godoc.org/go.mongodb.org/mongo-driver/mongo/options#ClientOptions for explanations.
type configType struct {
	Addresses      interface{} `json:"addresses,omitempty"`
	ConnectTimeout int         `json:"timeout,omitempty"`

	// Options separate from ClientOptions (custom options):
	Database   string `json:"database,omitempty"`
	ReplicaSet string `json:"replica_set,omitempty"`

	AuthSource string `json:"auth_source,omitempty"`
	Username   string `json:"username,omitempty"`
	Password   string `json:"password,omitempty"`
}

// Open initializes mongodb session.
func (a *adapter) Open(jsonconfig json.RawMessage) error {
	if a.conn != nil {
		return errors.New("adapter mongodb is already connected")
	}

	var err error
	var config configType
	if err = json.Unmarshal(jsonconfig, &config); err != nil {
		return errors.New("adapter mongodb failed to parse config: " + err.Error())
	}

	var opts mdbopts.ClientOptions

	if config.Addresses == nil {
		opts.SetHosts([]string{defaultHost})
	} else if host, ok := config.Addresses.(string); ok {
		opts.SetHosts([]string{host})
	} else if ihosts, ok := config.Addresses.([]interface{}); ok {
		hosts := make([]string, 0, len(ihosts))
		for _, ih := range ihosts {
			h, ok := ih.(string)
			if !ok || h == "" {
				return errors.New("adapter mongodb invalid config.Addresses value")
			}
			hosts = append(hosts, h)
		}
		opts.SetHosts(hosts)
	} else {
		return errors.New("adapter mongodb failed to parse config.Addresses")
	}

	if config.Database == "" {
		a.dbName = defaultDatabase
	} else {
		a.dbName = config.Database
	}

	if config.ReplicaSet != "" {
		opts.SetReplicaSet(config.ReplicaSet)
	}

	if config.Username != "" {
		var passwordSet bool
		if config.AuthSource == "" {
			config.AuthSource = "admin"
		}
		if config.Password != "" {
			passwordSet = true
		}
		opts.SetAuth(
			mdbopts.Credential{
				AuthMechanism: "SCRAM-SHA-256",
				AuthSource:    config.AuthSource,
				Username:      config.Username,
				Password:      config.Password,
				PasswordSet:   passwordSet,
			})
	}

	if config.ConnectTimeout > 0 {
		opts.SetConnectTimeout(time.Duration(config.ConnectTimeout) * time.Second)
	}

	if a.maxResults <= 0 {
		a.maxResults = defaultMaxResults
	}

	a.ctx = context.Background()
	a.conn, err = mdb.Connect(a.ctx, &opts)
	a.db = a.conn.Database(a.dbName)
	if err != nil {
		return err
	}

	return nil
}

// Close the adapter.
func (a *adapter) Close() error {
	var err error
	if a.conn != nil {
		err = a.conn.Disconnect(a.ctx)
		a.conn = nil
	}
	return err
}

// IsOpen checks if the adapter is ready for use.
func (a *adapter) IsOpen() bool {
	return a.conn != nil
}

// GetName returns the name of the adapter.
func (a *adapter) GetName() string {
	return adapterName
}

// SetMaxResults configures the maximum number of results returned by queries.
func (a *adapter) SetMaxResults(val int) error {
	if val <= 0 {
		a.maxResults = defaultMaxResults
	} else {
		a.maxResults = val
	}

	return nil
}

// CreateDb creates the database and indexes. Uniqueness of the conversation
// participant pair needs no separate index: the pair name IS the primary key.
func (a *adapter) CreateDb(reset bool) error {
	if reset {
		if err := a.db.Drop(a.ctx); err != nil {
			return err
		}
	}

	indexes := []struct {
		Collection string
		IndexOpts  mdb.IndexModel
	}{
		// Receiver entries: unique per (notification, user), used by targeted updates.
		{
			Collection: "notifications",
			IndexOpts: mdb.IndexModel{
				Keys:    b.D{{Key: "_id", Value: 1}, {Key: "receivers.user", Value: 1}},
				Options: mdbopts.Index().SetUnique(true),
			},
		},
		// Unread lookups and mark-all-read.
		{
			Collection: "notifications",
			IndexOpts:  mdb.IndexModel{Keys: b.M{"receivers.user": 1}},
		},
		// Retention sweep.
		{
			Collection: "notifications",
			IndexOpts:  mdb.IndexModel{Keys: b.M{"createdat": 1}},
		},
		// Reminder scan. Partial filter avoids indexing records with no reminder.
		{
			Collection: "notifications",
			IndexOpts: mdb.IndexModel{
				Keys:    b.M{"remindat": 1},
				Options: mdbopts.Index().SetPartialFilterExpression(b.M{"remindat": b.M{"$exists": true}}),
			},
		},
		// Conversation lists per user.
		{
			Collection: "conversations",
			IndexOpts:  mdb.IndexModel{Keys: b.M{"participants": 1}},
		},
		// Message pagination, newest first.
		{
			Collection: "messages",
			IndexOpts:  mdb.IndexModel{Keys: b.D{{Key: "conversation", Value: -1}, {Key: "seqid", Value: -1}}},
		},
		// Shared-group checks.
		{
			Collection: "groups",
			IndexOpts:  mdb.IndexModel{Keys: b.M{"members": 1}},
		},
	}

	var err error
	for _, idx := range indexes {
		_, err = a.db.Collection(idx.Collection).Indexes().CreateOne(a.ctx, idx.IndexOpts)
		if err != nil {
			return err
		}
	}

	return nil
}

// Stats returns the DB connection stats object.
func (a *adapter) Stats() interface{} {
	if a.db == nil {
		return nil
	}
	var result b.M
	if err := a.db.RunCommand(a.ctx, b.D{{Key: "serverStatus", Value: 1}}).Decode(&result); err != nil {
		return nil
	}
	return result["connections"]
}

// Notifications.

// NotifCreate persists a new notification shared by all its receivers.
func (a *adapter) NotifCreate(notif *t.Notification) error {
	_, err := a.db.Collection("notifications").InsertOne(a.ctx, notif)
	if isDuplicateErr(err) {
		return t.ErrDuplicate
	}
	return err
}

// NotifGet fetches a single notification by id.
func (a *adapter) NotifGet(id t.Uid) (*t.Notification, error) {
	var notif t.Notification
	err := a.db.Collection("notifications").FindOne(a.ctx, b.M{"_id": id.String()}).Decode(&notif)
	if err != nil {
		if err == mdb.ErrNoDocuments {
			return nil, t.ErrNotFound
		}
		return nil, err
	}
	return &notif, nil
}

// NotifGetForUser fetches a page of notifications with the given user among
// receivers, newest first.
func (a *adapter) NotifGetForUser(uid t.Uid, unreadOnly bool, opts *t.QueryOpt) ([]t.Notification, error) {
	limit, skip := a.pagination(opts)

	var filter b.M
	if unreadOnly {
		filter = b.M{"receivers": b.M{"$elemMatch": b.M{"user": uid.String(), "read": false}}}
	} else {
		filter = b.M{"receivers.user": uid.String()}
	}

	findOpts := mdbopts.Find().
		SetSort(b.M{"createdat": -1}).
		SetLimit(int64(limit)).
		SetSkip(int64(skip))

	cur, err := a.db.Collection("notifications").Find(a.ctx, filter, findOpts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(a.ctx)

	var notifs []t.Notification
	if err = cur.All(a.ctx, &notifs); err != nil {
		return nil, err
	}

	return notifs, nil
}

// NotifUnreadCount returns the number of notifications unread by the user.
func (a *adapter) NotifUnreadCount(uid t.Uid) (int, error) {
	count, err := a.db.Collection("notifications").CountDocuments(a.ctx,
		b.M{"receivers": b.M{"$elemMatch": b.M{"user": uid.String(), "read": false}}})
	return int(count), err
}

// NotifMarkRead flips the read flag of exactly one receiver entry.
// The array filter addresses the single matching element; sibling entries
// are not rewritten. Marking an already-read entry again is a no-op success,
// only a non-receiver gets ErrNotFound.
func (a *adapter) NotifMarkRead(id t.Uid, uid t.Uid, when time.Time) error {
	updOpts := mdbopts.Update().SetArrayFilters(mdbopts.ArrayFilters{
		Filters: []interface{}{b.M{"r.user": uid.String(), "r.read": false}}})
	res, err := a.db.Collection("notifications").UpdateOne(a.ctx,
		b.M{"_id": id.String(), "receivers": b.M{"$elemMatch": b.M{"user": uid.String(), "read": false}}},
		b.M{"$set": b.M{
			"receivers.$[r].read":   true,
			"receivers.$[r].readat": when,
			"updatedat":             when}},
		updOpts)
	if err != nil {
		return err
	}
	if res.MatchedCount > 0 {
		return nil
	}

	// No unread entry. Distinguish an already-read receiver from an outsider.
	n, err := a.db.Collection("notifications").CountDocuments(a.ctx,
		b.M{"_id": id.String(), "receivers.user": uid.String()})
	if err != nil {
		return err
	}
	if n == 0 {
		return t.ErrNotFound
	}
	return nil
}

// NotifMarkAllRead marks every notification unread by the user as read.
func (a *adapter) NotifMarkAllRead(uid t.Uid, when time.Time) (int, error) {
	updOpts := mdbopts.Update().SetArrayFilters(mdbopts.ArrayFilters{
		Filters: []interface{}{b.M{"r.user": uid.String(), "r.read": false}}})
	res, err := a.db.Collection("notifications").UpdateMany(a.ctx,
		b.M{"receivers": b.M{"$elemMatch": b.M{"user": uid.String(), "read": false}}},
		b.M{"$set": b.M{
			"receivers.$[r].read":   true,
			"receivers.$[r].readat": when,
			"updatedat":             when}},
		updOpts)
	if err != nil {
		return 0, err
	}
	return int(res.ModifiedCount), nil
}

// NotifDeleteForUser removes the user's receiver entry, then purges the
// record if the entry was the last one.
func (a *adapter) NotifDeleteForUser(id t.Uid, uid t.Uid) error {
	res, err := a.db.Collection("notifications").UpdateOne(a.ctx,
		b.M{"_id": id.String()},
		b.M{"$pull": b.M{"receivers": b.M{"user": uid.String()}}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 || res.ModifiedCount == 0 {
		return t.ErrNotFound
	}

	// A record must not outlive its last receiver.
	_, err = a.db.Collection("notifications").DeleteOne(a.ctx,
		b.M{"_id": id.String(), "receivers": b.M{"$size": 0}})
	return err
}

// NotifSweep deletes fully-read notifications created before the given time.
func (a *adapter) NotifSweep(before time.Time) (int, error) {
	res, err := a.db.Collection("notifications").DeleteMany(a.ctx,
		b.M{
			"createdat":      b.M{"$lt": before},
			"receivers.read": b.M{"$ne": false}})
	if err != nil {
		return 0, err
	}
	return int(res.DeletedCount), nil
}

// NotifDueReminders fetches notifications with a due reminder and clears the
// reminder marker so each reminder fires once.
func (a *adapter) NotifDueReminders(before time.Time) ([]t.Notification, error) {
	filter := b.M{"remindat": b.M{"$lte": before}}
	cur, err := a.db.Collection("notifications").Find(a.ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(a.ctx)

	var notifs []t.Notification
	if err = cur.All(a.ctx, &notifs); err != nil {
		return nil, err
	}
	if len(notifs) == 0 {
		return nil, nil
	}

	_, err = a.db.Collection("notifications").UpdateMany(a.ctx, filter,
		b.M{"$unset": b.M{"remindat": ""}})
	return notifs, err
}

// Conversations and messages.

// ConvCreate persists a new conversation. The _id is the pair name so a
// concurrent insert for the same pair loses with a duplicate key error.
func (a *adapter) ConvCreate(conv *t.Conversation) error {
	_, err := a.db.Collection("conversations").InsertOne(a.ctx, conv)
	if isDuplicateErr(err) {
		return t.ErrDuplicate
	}
	return err
}

// ConvGet fetches a conversation by its pair name.
func (a *adapter) ConvGet(name string) (*t.Conversation, error) {
	var conv t.Conversation
	err := a.db.Collection("conversations").FindOne(a.ctx, b.M{"_id": name}).Decode(&conv)
	if err != nil {
		if err == mdb.ErrNoDocuments {
			return nil, t.ErrNotFound
		}
		return nil, err
	}
	return &conv, nil
}

// ConvsForUser fetches conversations the user participates in, most recently
// touched first.
func (a *adapter) ConvsForUser(uid t.Uid, opts *t.QueryOpt) ([]t.Conversation, error) {
	limit, skip := a.pagination(opts)

	findOpts := mdbopts.Find().
		SetSort(b.M{"touchedat": -1}).
		SetLimit(int64(limit)).
		SetSkip(int64(skip))

	cur, err := a.db.Collection("conversations").Find(a.ctx, b.M{"participants": uid.String()}, findOpts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(a.ctx)

	var convs []t.Conversation
	if err = cur.All(a.ctx, &convs); err != nil {
		return nil, err
	}

	return convs, nil
}

// ConvNextSeq atomically increments the conversation's message sequence.
func (a *adapter) ConvNextSeq(name string, when time.Time) (int, error) {
	var conv t.Conversation
	err := a.db.Collection("conversations").FindOneAndUpdate(a.ctx,
		b.M{"_id": name},
		b.M{
			"$inc": b.M{"seqid": 1},
			"$set": b.M{"touchedat": when, "updatedat": when}},
		mdbopts.FindOneAndUpdate().SetReturnDocument(mdbopts.After)).Decode(&conv)
	if err != nil {
		if err == mdb.ErrNoDocuments {
			return 0, t.ErrNotFound
		}
		return 0, err
	}
	return conv.SeqId, nil
}

// MessageSave persists a new message.
func (a *adapter) MessageSave(msg *t.Message) error {
	_, err := a.db.Collection("messages").InsertOne(a.ctx, msg)
	return err
}

// MessagesGet fetches a page of messages in reverse-chronological storage
// order. The caller reverses the page to present chronological order.
func (a *adapter) MessagesGet(name string, opts *t.QueryOpt) ([]t.Message, error) {
	limit, skip := a.pagination(opts)

	findOpts := mdbopts.Find().
		SetSort(b.D{{Key: "conversation", Value: -1}, {Key: "seqid", Value: -1}}).
		SetLimit(int64(limit)).
		SetSkip(int64(skip))

	cur, err := a.db.Collection("messages").Find(a.ctx, b.M{"conversation": name}, findOpts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(a.ctx)

	var msgs []t.Message
	for cur.Next(a.ctx) {
		var msg t.Message
		if err = cur.Decode(&msg); err != nil {
			return nil, err
		}
		msgs = append(msgs, msg)
	}

	return msgs, nil
}

// MessagesMarkRead adds the user to readBy of every message in the
// conversation where absent. $addToSet keeps readBy append-only.
func (a *adapter) MessagesMarkRead(name string, uid t.Uid) error {
	_, err := a.db.Collection("messages").UpdateMany(a.ctx,
		b.M{"conversation": name, "readby": b.M{"$ne": uid.String()}},
		b.M{"$addToSet": b.M{"readby": uid.String()}})
	return err
}

// Groups.

// GroupCreate persists a new group.
func (a *adapter) GroupCreate(group *t.Group) error {
	_, err := a.db.Collection("groups").InsertOne(a.ctx, group)
	if isDuplicateErr(err) {
		return t.ErrDuplicate
	}
	return err
}

// GroupGet fetches a group by id.
func (a *adapter) GroupGet(id t.Uid) (*t.Group, error) {
	var group t.Group
	err := a.db.Collection("groups").FindOne(a.ctx, b.M{"_id": id.String()}).Decode(&group)
	if err != nil {
		if err == mdb.ErrNoDocuments {
			return nil, t.ErrNotFound
		}
		return nil, err
	}
	return &group, nil
}

// GroupAddMember adds a user to the group, no-op if already a member.
func (a *adapter) GroupAddMember(id t.Uid, uid t.Uid) error {
	res, err := a.db.Collection("groups").UpdateOne(a.ctx,
		b.M{"_id": id.String()},
		b.M{
			"$addToSet": b.M{"members": uid.String()},
			"$set":      b.M{"updatedat": t.TimeNow()}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return t.ErrNotFound
	}
	return nil
}

// GroupRemoveMember removes a user from the group.
func (a *adapter) GroupRemoveMember(id t.Uid, uid t.Uid) error {
	res, err := a.db.Collection("groups").UpdateOne(a.ctx,
		b.M{"_id": id.String()},
		b.M{
			"$pull": b.M{"members": uid.String()},
			"$set":  b.M{"updatedat": t.TimeNow()}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return t.ErrNotFound
	}
	return nil
}

// GroupIsMember checks if the user belongs to the group.
func (a *adapter) GroupIsMember(id t.Uid, uid t.Uid) (bool, error) {
	count, err := a.db.Collection("groups").CountDocuments(a.ctx,
		b.M{"_id": id.String(), "members": uid.String()})
	return count > 0, err
}

// GroupsShared checks if the two users are members of at least one common group.
func (a *adapter) GroupsShared(uid1, uid2 t.Uid) (bool, error) {
	count, err := a.db.Collection("groups").CountDocuments(a.ctx,
		b.M{"members": b.M{"$all": b.A{uid1.String(), uid2.String()}}})
	return count > 0, err
}

// pagination converts QueryOpt to a capped limit and a skip count.
func (a *adapter) pagination(opts *t.QueryOpt) (limit, skip int) {
	limit = a.maxResults
	if opts != nil {
		if opts.Limit > 0 && opts.Limit < limit {
			limit = opts.Limit
		}
		if opts.Skip > 0 {
			skip = opts.Skip
		}
	}
	return limit, skip
}

func isDuplicateErr(err error) bool {
	if err == nil {
		return false
	}

	msg := err.Error()
	return strings.Contains(msg, "duplicate key error")
}

func init() {
	store.RegisterAdapter(&adapter{})
}
