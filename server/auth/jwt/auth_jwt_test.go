package jwt

import (
	"encoding/base64"
	"encoding/json"
	"testing"
	"time"

	jw "github.com/golang-jwt/jwt/v5"

	"github.com/mentorhub/relay/server/auth"
	"github.com/mentorhub/relay/server/store/types"
)

const testIssuer = "mentorhub-test"

func testKey() []byte {
	key := make([]byte, 32)
	for i := range key {
		key[i] = byte(i)
	}
	return key
}

func newTestAuthenticator(t *testing.T) *authenticator {
	t.Helper()
	ja := &authenticator{}
	conf := `{"key": "` + base64.StdEncoding.EncodeToString(testKey()) +
		`", "issuer": "` + testIssuer + `", "expire_in": 3600}`
	if err := ja.Init(json.RawMessage(conf), "jwt"); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	return ja
}

func TestInitRejectsShortKey(t *testing.T) {
	ja := &authenticator{}
	err := ja.Init(json.RawMessage(`{"key": "dG9vLXNob3J0", "expire_in": 3600}`), "jwt")
	if err == nil {
		t.Error("Init expected to reject a short key.")
	}
}

func TestJWTRoundtrip(t *testing.T) {
	ja := newTestAuthenticator(t)

	rec := &auth.Rec{Uid: types.Uid(887766), AuthLevel: auth.LevelAuth}
	token, err := ja.GenSecret(rec, 0)
	if err != nil {
		t.Fatalf("GenSecret failed: %v", err)
	}

	got, err := ja.Authenticate(token)
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

func TestJWTRootClaim(t *testing.T) {
	ja := newTestAuthenticator(t)

	token, err := ja.GenSecret(&auth.Rec{Uid: types.Uid(1), AuthLevel: auth.LevelRoot}, 0)
	if err != nil {
		t.Fatalf("GenSecret failed: %v", err)
	}
	got, err := ja.Authenticate(token)
	if err != nil {
		t.Fatalf("Authenticate failed: %v", err)
	}
	if got.AuthLevel != auth.LevelRoot {
		t.Errorf("AuthLevel: expected %s, got %s", auth.LevelRoot, got.AuthLevel)
	}
}

func TestJWTExpired(t *testing.T) {
	ja := newTestAuthenticator(t)

	claims := relayClaims{
		RegisteredClaims: jw.RegisteredClaims{
			Issuer:    testIssuer,
			Subject:   types.Uid(1).String(),
			ExpiresAt: jw.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	token, err := jw.NewWithClaims(jw.SigningMethodHS256, claims).SignedString(testKey())
	if err != nil {
		t.Fatalf("Failed to sign: %v", err)
	}

	if _, err := ja.Authenticate([]byte(token)); err != auth.ErrExpired {
		t.Errorf("Expected ErrExpired, got %v", err)
	}
}

func TestJWTWrongIssuer(t *testing.T) {
	ja := newTestAuthenticator(t)

	claims := relayClaims{
		RegisteredClaims: jw.RegisteredClaims{
			Issuer:    "somebody-else",
			Subject:   types.Uid(1).String(),
			ExpiresAt: jw.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jw.NewWithClaims(jw.SigningMethodHS256, claims).SignedString(testKey())
	if err != nil {
		t.Fatalf("Failed to sign: %v", err)
	}

	if _, err := ja.Authenticate([]byte(token)); err != auth.ErrFailed {
		t.Errorf("Expected ErrFailed, got %v", err)
	}
}

func TestJWTBadSignature(t *testing.T) {
	ja := newTestAuthenticator(t)

	claims := relayClaims{
		RegisteredClaims: jw.RegisteredClaims{
			Issuer:    testIssuer,
			Subject:   types.Uid(1).String(),
			ExpiresAt: jw.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jw.NewWithClaims(jw.SigningMethodHS256, claims).SignedString([]byte("a completely different signing key"))
	if err != nil {
		t.Fatalf("Failed to sign: %v", err)
	}

	if _, err := ja.Authenticate([]byte(token)); err != auth.ErrFailed {
		t.Errorf("Expected ErrFailed, got %v", err)
	}
}

func TestJWTNoneAlgorithmRejected(t *testing.T) {
	ja := newTestAuthenticator(t)

	claims := relayClaims{
		RegisteredClaims: jw.RegisteredClaims{
			Issuer:    testIssuer,
			Subject:   types.Uid(1).String(),
			ExpiresAt: jw.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jw.NewWithClaims(jw.SigningMethodNone, claims).SignedString(jw.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("Failed to sign: %v", err)
	}

	if _, err := ja.Authenticate([]byte(token)); err == nil {
		t.Error("Unsigned token expected to be rejected.")
	}
}

func TestJWTGarbage(t *testing.T) {
	ja := newTestAuthenticator(t)
	if _, err := ja.Authenticate([]byte("not.a.jwt")); err == nil {
		t.Error("Garbage expected to be rejected.")
	}
}
