// Package types defines objects held in persistent storage and errors
// reported by the storage layer.
package types

import (
	"encoding/base64"
	"encoding/binary"
	"errors"
	"strings"
	"time"
)

// Uid is a database-specific record id, suitable to be used as a primary key.
type Uid uint64

// ZeroUid is a constant representing uninitialized Uid.
var ZeroUid Uid

const (
	uidBase64Unpadded = 11
	uidBase64Padded   = 12

	pairBase64Unpadded = 22
	pairBase64Padded   = 24
)

// IsZero checks if Uid is uninitialized.
func (uid Uid) IsZero() bool {
	return uid == 0
}

// Compare returns 0 if uid is equal to u2, -1 if uid is smaller, 1 if greater.
func (uid Uid) Compare(u2 Uid) int {
	if uid < u2 {
		return -1
	} else if uid > u2 {
		return 1
	}
	return 0
}

// MarshalBinary converts Uid to byte slice.
func (uid Uid) MarshalBinary() ([]byte, error) {
	dst := make([]byte, 8)
	binary.LittleEndian.PutUint64(dst, uint64(uid))
	return dst, nil
}

// UnmarshalBinary reads Uid from byte slice.
func (uid *Uid) UnmarshalBinary(b []byte) error {
	if len(b) < 8 {
		return errors.New("Uid.UnmarshalBinary: invalid length")
	}
	*uid = Uid(binary.LittleEndian.Uint64(b))
	return nil
}

// UnmarshalText reads Uid from base64url text.
func (uid *Uid) UnmarshalText(src []byte) error {
	if len(src) != uidBase64Unpadded {
		return errors.New("Uid.UnmarshalText: invalid length")
	}
	dec := make([]byte, base64.URLEncoding.DecodedLen(uidBase64Padded))
	for len(src) < uidBase64Padded {
		src = append(src, '=')
	}
	count, err := base64.URLEncoding.Decode(dec, src)
	if count < 8 {
		if err != nil {
			return errors.New("Uid.UnmarshalText: failed to decode " + err.Error())
		}
		return errors.New("Uid.UnmarshalText: failed to decode")
	}
	*uid = Uid(binary.LittleEndian.Uint64(dec))
	return nil
}

// MarshalText converts Uid to base64url text.
func (uid Uid) MarshalText() ([]byte, error) {
	if uid == 0 {
		return []byte{}, nil
	}
	src := make([]byte, 8)
	dst := make([]byte, base64.URLEncoding.EncodedLen(8))
	binary.LittleEndian.PutUint64(src, uint64(uid))
	base64.URLEncoding.Encode(dst, src)
	return dst[0:uidBase64Unpadded], nil
}

// MarshalJSON converts Uid to double quoted ("ajjj") string.
func (uid Uid) MarshalJSON() ([]byte, error) {
	dst, _ := uid.MarshalText()
	return append(append([]byte{'"'}, dst...), '"'), nil
}

// UnmarshalJSON reads Uid from a double quoted string.
func (uid *Uid) UnmarshalJSON(b []byte) error {
	size := len(b)
	if size != (uidBase64Unpadded + 2) {
		return errors.New("Uid.UnmarshalJSON: invalid length")
	} else if b[0] != '"' || b[size-1] != '"' {
		return errors.New("Uid.UnmarshalJSON: unrecognized")
	}
	return uid.UnmarshalText(b[1 : size-1])
}

// String converts Uid to its base64url string representation.
func (uid Uid) String() string {
	buf, _ := uid.MarshalText()
	return string(buf)
}

// ParseUid parses string NOT prefixed with anything.
func ParseUid(s string) Uid {
	var uid Uid
	uid.UnmarshalText([]byte(s))
	return uid
}

// UserId converts Uid to the "usr..." name of the user's private room.
func (uid Uid) UserId() string {
	return uid.PrefixId("usr")
}

// PrefixId converts Uid to a prefixed string.
func (uid Uid) PrefixId(prefix string) string {
	if uid.IsZero() {
		return ""
	}
	return prefix + uid.String()
}

// ParseUserId parses user ID of the form "usrXXXXXX".
func ParseUserId(s string) Uid {
	var uid Uid
	if strings.HasPrefix(s, "usr") {
		(&uid).UnmarshalText([]byte(s)[3:])
	}
	return uid
}

// GroupId converts Uid to the "grp..." name of a group room.
func (uid Uid) GroupId() string {
	return uid.PrefixId("grp")
}

// ParseGroupId parses group ID of the form "grpXXXXXX".
func ParseGroupId(s string) Uid {
	var uid Uid
	if strings.HasPrefix(s, "grp") {
		(&uid).UnmarshalText([]byte(s)[3:])
	}
	return uid
}

// PairName generates a conversation name from two user ids. The ids are
// ordered by binary value, consequently PairName(a, b) == PairName(b, a).
// Used as the conversation's primary key: the key itself enforces the
// at-most-one-conversation-per-pair constraint at the storage level.
func (uid Uid) PairName(u2 Uid) string {
	if !uid.IsZero() && !u2.IsZero() {
		b1, _ := uid.MarshalBinary()
		b2, _ := u2.MarshalBinary()

		if uid < u2 {
			b1 = append(b1, b2...)
		} else if uid > u2 {
			b1 = append(b2, b1...)
		} else {
			// Explicitly disable conversations with self.
			return ""
		}

		return "p2p" + base64.URLEncoding.EncodeToString(b1)[:pairBase64Unpadded]
	}

	return ""
}

// ParsePair extracts participant uids from the name of a conversation.
func ParsePair(pair string) (uid1, uid2 Uid, err error) {
	if strings.HasPrefix(pair, "p2p") {
		src := []byte(pair)[3:]
		if len(src) != pairBase64Unpadded {
			err = errors.New("ParsePair: invalid length")
			return
		}
		dec := make([]byte, base64.URLEncoding.DecodedLen(pairBase64Padded))
		for len(src) < pairBase64Padded {
			src = append(src, '=')
		}
		var count int
		count, err = base64.URLEncoding.Decode(dec, src)
		if count < 16 {
			if err != nil {
				err = errors.New("ParsePair: failed to decode " + err.Error())
				return
			}
			err = errors.New("ParsePair: invalid decoded length")
			return
		}
		uid1 = Uid(binary.LittleEndian.Uint64(dec))
		uid2 = Uid(binary.LittleEndian.Uint64(dec[8:]))
	} else {
		err = errors.New("ParsePair: missing or invalid prefix")
	}
	return
}

// StoreError satisfies Error interface but allows constant values for
// direct comparison.
type StoreError string

// Error is required by error interface.
func (s StoreError) Error() string {
	return string(s)
}

const (
	// ErrInternal means DB or other internal failure.
	ErrInternal = StoreError("internal")
	// ErrMalformed means the input is malformed.
	ErrMalformed = StoreError("malformed")
	// ErrFailed means authentication failed.
	ErrFailed = StoreError("failed")
	// ErrDuplicate means duplicate key, i.e. the object already exists.
	ErrDuplicate = StoreError("duplicate value")
	// ErrNotFound means the object is not found.
	ErrNotFound = StoreError("not found")
	// ErrPermissionDenied means the operation is not permitted.
	ErrPermissionDenied = StoreError("denied")
	// ErrPolicy means policy violation, e.g. empty receiver list.
	ErrPolicy = StoreError("policy")
	// ErrUnsupported means an operation is not supported.
	ErrUnsupported = StoreError("unsupported")
)

// ObjHeader is the header shared by all stored objects.
type ObjHeader struct {
	// Using string to get around the bson encoder's problems with unsigned integers.
	Id        string    `json:"id" bson:"_id"`
	id        Uid       `json:"-" bson:"-"`
	CreatedAt time.Time `json:"createdAt" bson:"createdat"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedat"`
}

// Uid returns Uid of the object.
func (h *ObjHeader) Uid() Uid {
	if h.id.IsZero() && h.Id != "" {
		h.id.UnmarshalText([]byte(h.Id))
	}
	return h.id
}

// SetUid assigns given Uid to the object.
func (h *ObjHeader) SetUid(uid Uid) {
	h.id = uid
	h.Id = uid.String()
}

// TimeNow returns current wall time in UTC rounded to milliseconds.
func TimeNow() time.Time {
	return time.Now().UTC().Round(time.Millisecond)
}

// InitTimes initializes time.Time variables in the header to current time.
func (h *ObjHeader) InitTimes() {
	if h.CreatedAt.IsZero() {
		h.CreatedAt = TimeNow()
	}
	h.UpdatedAt = h.CreatedAt
}

// Notification event tags. Also the allow-list of content kinds a
// notification may reference.
const (
	NotifPost        = "post"
	NotifMeeting     = "meeting"
	NotifMessage     = "message"
	NotifGroup       = "group"
	NotifInteraction = "interaction"
)

// ValidNotifWhat checks the event tag against the fixed set.
func ValidNotifWhat(what string) bool {
	switch what {
	case NotifPost, NotifMeeting, NotifMessage, NotifGroup, NotifInteraction:
		return true
	}
	return false
}

// ValidContentKind checks the referenced content kind against the allow-list.
func ValidContentKind(kind string) bool {
	// The allow-list is the same fixed set as the event tags.
	return ValidNotifWhat(kind)
}

// Receiver is one recipient's read-state record embedded in a shared
// notification. A receiver's entry is mutated with a targeted array update,
// never by rewriting siblings.
// User references are stored as strings, same as all other objects.
type Receiver struct {
	User   string     `json:"user" bson:"user"`
	Read   bool       `json:"read" bson:"read"`
	ReadAt *time.Time `json:"readAt,omitempty" bson:"readat,omitempty"`
}

// Notification is a single broadcast event shared by all its receivers.
type Notification struct {
	ObjHeader `bson:",inline"`
	// Event tag, one of the Notif* constants.
	What string `json:"what" bson:"what"`
	// Originator of the event.
	From string `json:"from" bson:"from"`
	// Reference to the content the event is about.
	ContentRef string `json:"contentRef" bson:"contentref"`
	// Kind of the referenced content.
	ContentKind string `json:"contentKind" bson:"contentkind"`
	// Human-readable text.
	Text string `json:"text" bson:"text"`
	// Per-receiver read state. Never empty while the record exists.
	Receivers []Receiver `json:"receivers" bson:"receivers"`
	// Addresses to send an out-of-band email copy to, if any.
	EmailCopy []string `json:"-" bson:"emailcopy,omitempty"`
	// Optional time when a reminder copy is due. Used for scheduled meetings.
	RemindAt *time.Time `json:"remindAt,omitempty" bson:"remindat,omitempty"`
}

// ReceiverEntry returns the receiver record for the given user, nil if the
// user is not among the receivers.
func (n *Notification) ReceiverEntry(uid Uid) *Receiver {
	user := uid.String()
	for i := range n.Receivers {
		if n.Receivers[i].User == user {
			return &n.Receivers[i]
		}
	}
	return nil
}

// Conversation is a two-party message exchange. The participant pair is
// fixed at creation; the _id is derived from the pair (see Uid.PairName).
type Conversation struct {
	ObjHeader `bson:",inline"`
	// Participants in ascending Uid order.
	Participants [2]string `json:"participants" bson:"participants"`
	// Server-issued id of the last message.
	SeqId int `json:"seq" bson:"seqid"`
	// Time of the last message, denormalized for sorting conversation lists.
	TouchedAt time.Time `json:"touchedAt" bson:"touchedat"`
}

// IsParticipant checks whether the given user is one of the two parties.
func (c *Conversation) IsParticipant(uid Uid) bool {
	user := uid.String()
	return c.Participants[0] == user || c.Participants[1] == user
}

// OtherParticipant returns the peer of the given user.
func (c *Conversation) OtherParticipant(uid Uid) Uid {
	if c.Participants[0] == uid.String() {
		return ParseUid(c.Participants[1])
	}
	return ParseUid(c.Participants[0])
}

// Message is a single message in a conversation.
type Message struct {
	ObjHeader `bson:",inline"`
	// Conversation (pair name) this message belongs to.
	Conversation string `json:"conversation" bson:"conversation"`
	// Server-issued sequential ID within the conversation.
	SeqId int `json:"seq" bson:"seqid"`
	// Sender.
	From string `json:"from" bson:"from"`
	// Message payload.
	Content string `json:"content" bson:"content"`
	// Users who have read the message. Seeded with the sender; only grows.
	ReadBy []string `json:"readBy" bson:"readby"`
}

// ReadByUser checks whether the given user has read the message.
func (m *Message) ReadByUser(uid Uid) bool {
	user := uid.String()
	for _, u := range m.ReadBy {
		if u == user {
			return true
		}
	}
	return false
}

// Group is a mentoring group. Shared membership is the authorization
// relationship which permits two users to converse.
type Group struct {
	ObjHeader `bson:",inline"`
	Name      string   `json:"name" bson:"name"`
	Members   []string `json:"members" bson:"members"`
}

// QueryOpt is options of a query returning a list of objects.
type QueryOpt struct {
	// Number of results to skip.
	Skip int
	// Maximum number of results to return. The adapter additionally caps it
	// at its own configured maximum.
	Limit int
}
