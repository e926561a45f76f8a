// Package auth provides interfaces and types for credential verification.
package auth

import (
	"encoding/json"

	"github.com/mentorhub/relay/server/store/types"
)

// AuthErr is a structure for reporting an error condition.
type AuthErr string

// Error implements the error interface.
func (e AuthErr) Error() string {
	return string(e)
}

const (
	// ErrInternal means DB or other internal failure.
	ErrInternal = AuthErr("internal")
	// ErrMalformed means the secret cannot be parsed or is otherwise wrong.
	ErrMalformed = AuthErr("malformed")
	// ErrFailed means authentication failed (wrong signature, etc).
	ErrFailed = AuthErr("failed")
	// ErrExpired means the secret has expired.
	ErrExpired = AuthErr("expired")
	// ErrUnsupported means an operation is not supported.
	ErrUnsupported = AuthErr("unsupported")
)

// Level is the type for authentication levels.
type Level int

// Authentication levels.
const (
	// LevelNone is undefined/not authenticated.
	LevelNone Level = iota * 10
	// LevelAnon is anonymous user/light authentication.
	LevelAnon
	// LevelAuth is a fully authenticated user.
	LevelAuth
	// LevelRoot is a superuser, i.e. a trusted collaborator service.
	LevelRoot
)

// String implements Stringer interface: gets human-readable name for a
// numeric authentication level.
func (l Level) String() string {
	switch l {
	case LevelNone:
		return ""
	case LevelAnon:
		return "anon"
	case LevelAuth:
		return "auth"
	case LevelRoot:
		return "root"
	default:
		return "unkn"
	}
}

// Rec is an authentication record obtained by successfully verifying a credential.
type Rec struct {
	// User who presented the credential.
	Uid types.Uid `json:"uid,omitempty"`
	// Authentication level.
	AuthLevel Level `json:"authlvl,omitempty"`
}

// Verifier is the interface which credential verifiers must implement.
// Verification happens exactly once per connection, at handshake time.
type Verifier interface {
	// Init initializes the verifier with a JSON config and its registered name.
	Init(jsonconf json.RawMessage, name string) error

	// Authenticate checks validity of the provided credential.
	// Returns the authentication record or an AuthErr.
	Authenticate(secret []byte) (*Rec, error)

	// GenSecret generates a new credential for the given record, if the
	// scheme supports issuance. Returns the secret and its expiration time.
	GenSecret(rec *Rec, lifetime int) ([]byte, error)
}

var verifiers = make(map[string]Verifier)

// Register makes a verifier available by the provided scheme name.
// If Register is called twice or if the verifier is nil, it panics.
func Register(name string, v Verifier) {
	if v == nil {
		panic("auth: Register verifier is nil")
	}
	if _, dup := verifiers[name]; dup {
		panic("auth: Register called twice for verifier " + name)
	}
	verifiers[name] = v
}

// Get returns a verifier by scheme name.
func Get(name string) Verifier {
	return verifiers[name]
}
