package token

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/binary"
	"encoding/json"
	"testing"
	"time"

	"github.com/mentorhub/relay/server/auth"
	"github.com/mentorhub/relay/server/store/types"
)

func testConfig(t *testing.T) json.RawMessage {
	t.Helper()
	key := base64.StdEncoding.EncodeToString(make([]byte, 32))
	return json.RawMessage(`{"key": "` + key + `", "serial_num": 1, "expire_in": 3600}`)
}

func newTestAuthenticator(t *testing.T) *authenticator {
	t.Helper()
	ta := &authenticator{}
	if err := ta.Init(testConfig(t), "token"); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	return ta
}

func TestInitRejectsBadConfig(t *testing.T) {
	cases := []string{
		`{"serial_num": 1, "expire_in": 3600}`,
		`{"key": "dG9vLXNob3J0", "serial_num": 1, "expire_in": 3600}`,
		`{"key": "` + base64.StdEncoding.EncodeToString(make([]byte, 32)) + `", "expire_in": 0}`,
		`not json`,
	}
	for _, conf := range cases {
		ta := &authenticator{}
		if err := ta.Init(json.RawMessage(conf), "token"); err == nil {
			t.Errorf("Init expected to fail for %s", conf)
		}
	}
}

func TestTokenRoundtrip(t *testing.T) {
	ta := newTestAuthenticator(t)

	rec := &auth.Rec{Uid: types.Uid(11235), AuthLevel: auth.LevelAuth}
	token, err := ta.GenSecret(rec, 0)
	if err != nil {
		t.Fatalf("GenSecret failed: %v", err)
	}

	got, err := ta.Authenticate(token)
	if err != nil {
		t.Fatalf("Authenticate failed: %v", err)
	}
	if got.Uid != rec.Uid {
		t.Errorf("Uid: expected %d, got %d", uint64(rec.Uid), uint64(got.Uid))
	}
	if got.AuthLevel != auth.LevelAuth {
		t.Errorf("AuthLevel: expected %s, got %s", auth.LevelAuth, got.AuthLevel)
	}
}

func TestTokenRootLevel(t *testing.T) {
	ta := newTestAuthenticator(t)

	token, err := ta.GenSecret(&auth.Rec{Uid: types.Uid(1), AuthLevel: auth.LevelRoot}, 0)
	if err != nil {
		t.Fatalf("GenSecret failed: %v", err)
	}
	got, err := ta.Authenticate(token)
	if err != nil {
		t.Fatalf("Authenticate failed: %v", err)
	}
	if got.AuthLevel != auth.LevelRoot {
		t.Errorf("AuthLevel: expected %s, got %s", auth.LevelRoot, got.AuthLevel)
	}
}

func TestTokenExpired(t *testing.T) {
	ta := newTestAuthenticator(t)

	// Mint a token which expired an hour ago, signed with the right key.
	tl := tokenLayout{
		Uid:          1,
		Expires:      uint32(time.Now().Add(-time.Hour).UTC().Unix()),
		AuthLevel:    uint16(auth.LevelAuth),
		SerialNumber: uint16(ta.serialNumber),
	}
	buf := new(bytes.Buffer)
	binary.Write(buf, binary.LittleEndian, &tl)
	hasher := hmac.New(sha256.New, ta.hmacSalt)
	hasher.Write(buf.Bytes())
	binary.Write(buf, binary.LittleEndian, hasher.Sum(nil))

	if _, err := ta.Authenticate(buf.Bytes()); err != auth.ErrExpired {
		t.Errorf("Expected ErrExpired, got %v", err)
	}
}

func TestTokenTampered(t *testing.T) {
	ta := newTestAuthenticator(t)

	token, err := ta.GenSecret(&auth.Rec{Uid: types.Uid(1), AuthLevel: auth.LevelAuth}, 0)
	if err != nil {
		t.Fatalf("GenSecret failed: %v", err)
	}
	// Flip a byte in the expiry field. The signature no longer matches.
	token[9]++
	if _, err := ta.Authenticate(token); err != auth.ErrFailed {
		t.Errorf("Tampered token: expected ErrFailed, got %v", err)
	}
}

func TestTokenWrongSerial(t *testing.T) {
	ta := newTestAuthenticator(t)
	token, err := ta.GenSecret(&auth.Rec{Uid: types.Uid(1), AuthLevel: auth.LevelAuth}, 0)
	if err != nil {
		t.Fatalf("GenSecret failed: %v", err)
	}

	// Same key, bumped serial number: all previously issued tokens invalid.
	bumped := &authenticator{}
	key := base64.StdEncoding.EncodeToString(make([]byte, 32))
	if err := bumped.Init(json.RawMessage(`{"key": "`+key+`", "serial_num": 2, "expire_in": 3600}`), "token"); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if _, err := bumped.Authenticate(token); err != auth.ErrFailed {
		t.Errorf("Expected ErrFailed for stale serial, got %v", err)
	}
}

func TestTokenMalformed(t *testing.T) {
	ta := newTestAuthenticator(t)

	if _, err := ta.Authenticate([]byte("short")); err != auth.ErrMalformed {
		t.Errorf("Short token: expected ErrMalformed, got %v", err)
	}
	if _, err := ta.Authenticate(make([]byte, 48)); err == nil {
		t.Error("Zero-filled token expected to fail.")
	}
}

func TestGenSecretRejectsZeroUid(t *testing.T) {
	ta := newTestAuthenticator(t)
	if _, err := ta.GenSecret(&auth.Rec{}, 0); err != auth.ErrMalformed {
		t.Errorf("Expected ErrMalformed, got %v", err)
	}
}
