// Package jwt implements credential verification of JWT bearer tokens
// issued by the platform's account service (HS256, shared secret).
package jwt

import (
	"encoding/json"
	"errors"
	"time"

	jw "github.com/golang-jwt/jwt/v5"

	"github.com/mentorhub/relay/server/auth"
	"github.com/mentorhub/relay/server/store/types"
)

type authenticator struct {
	name     string
	key      []byte
	issuer   string
	lifetime time.Duration
}

// relayClaims is the claim set accepted from the account service. The
// subject carries the user id; authlvl is optional and defaults to auth.
type relayClaims struct {
	AuthLevel string `json:"authlvl,omitempty"`
	jw.RegisteredClaims
}

// Init initializes the verifier.
func (ja *authenticator) Init(jsonconf json.RawMessage, name string) error {
	if ja.name != "" {
		return errors.New("auth_jwt: already initialized as " + ja.name + "; " + name)
	}

	type configType struct {
		// Shared HMAC secret.
		Key []byte `json:"key"`
		// Expected token issuer, not checked when empty.
		Issuer string `json:"issuer"`
		// Token lifetime in seconds, used for issuance only.
		ExpireIn int `json:"expire_in"`
	}
	var config configType
	if err := json.Unmarshal(jsonconf, &config); err != nil {
		return errors.New("auth_jwt: failed to parse config: " + err.Error())
	}

	if len(config.Key) < 32 {
		return errors.New("auth_jwt: the key is missing or too short")
	}

	ja.name = name
	ja.key = config.Key
	ja.issuer = config.Issuer
	ja.lifetime = time.Duration(config.ExpireIn) * time.Second

	return nil
}

// Authenticate checks validity of the provided token.
func (ja *authenticator) Authenticate(secret []byte) (*auth.Rec, error) {
	parseOpts := []jw.ParserOption{jw.WithValidMethods([]string{"HS256"})}
	if ja.issuer != "" {
		parseOpts = append(parseOpts, jw.WithIssuer(ja.issuer))
	}

	var claims relayClaims
	_, err := jw.ParseWithClaims(string(secret), &claims, func(token *jw.Token) (interface{}, error) {
		if _, ok := token.Method.(*jw.SigningMethodHMAC); !ok {
			return nil, auth.ErrMalformed
		}
		return ja.key, nil
	}, parseOpts...)
	if err != nil {
		if errors.Is(err, jw.ErrTokenExpired) {
			return nil, auth.ErrExpired
		}
		return nil, auth.ErrFailed
	}

	uid := types.ParseUid(claims.Subject)
	if uid.IsZero() {
		return nil, auth.ErrMalformed
	}

	lvl := auth.LevelAuth
	if claims.AuthLevel == "root" {
		lvl = auth.LevelRoot
	}

	return &auth.Rec{Uid: uid, AuthLevel: lvl}, nil
}

// GenSecret generates a new token.
func (ja *authenticator) GenSecret(rec *auth.Rec, lifetime int) ([]byte, error) {
	if rec == nil || rec.Uid.IsZero() {
		return nil, auth.ErrMalformed
	}

	lt := ja.lifetime
	if lifetime > 0 {
		lt = time.Duration(lifetime) * time.Second
	}
	if lt <= 0 {
		return nil, auth.ErrUnsupported
	}

	now := time.Now()
	claims := relayClaims{
		RegisteredClaims: jw.RegisteredClaims{
			Issuer:    ja.issuer,
			Subject:   rec.Uid.String(),
			ExpiresAt: jw.NewNumericDate(now.Add(lt)),
			IssuedAt:  jw.NewNumericDate(now),
		},
	}
	if rec.AuthLevel == auth.LevelRoot {
		claims.AuthLevel = "root"
	}

	token, err := jw.NewWithClaims(jw.SigningMethodHS256, claims).SignedString(ja.key)
	if err != nil {
		return nil, auth.ErrInternal
	}

	return []byte(token), nil
}

func init() {
	auth.Register("jwt", &authenticator{})
}
