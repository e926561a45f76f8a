// Command-line helper for development and integration setups: mints bearer
// credentials accepted by the relay without going through an identity
// provider. Supports both credential schemes the server understands.
package main

import (
	"encoding/base64"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/mentorhub/relay/server/auth"
	"github.com/mentorhub/relay/server/store/types"

	_ "github.com/mentorhub/relay/server/auth/jwt"
	_ "github.com/mentorhub/relay/server/auth/token"
)

func main() {
	var (
		scheme   = flag.String("scheme", "token", "Credential scheme: 'token' or 'jwt'.")
		conf     = flag.String("auth_config", "", "JSON config of the authenticator, as in the server config.")
		user     = flag.String("user", "", "User ID to mint the credential for, e.g. 'usrFsk73jYRR0Q'.")
		level    = flag.String("level", "auth", "Authentication level: 'auth' or 'root'.")
		lifetime = flag.Int("lifetime", 0, "Credential lifetime in seconds, 0 for the authenticator's default.")
	)
	flag.Parse()

	uid := types.ParseUserId(*user)
	if uid.IsZero() {
		log.Fatalln("Invalid or missing user ID:", *user)
	}

	authLvl := auth.LevelAuth
	switch *level {
	case "auth":
	case "root":
		authLvl = auth.LevelRoot
	default:
		log.Fatalln("Unknown authentication level:", *level)
	}

	verifier := auth.Get(*scheme)
	if verifier == nil {
		log.Fatalln("Unknown credential scheme:", *scheme)
	}
	if *conf == "" {
		log.Fatalln("Missing -auth_config")
	}
	if err := verifier.Init(json.RawMessage(*conf), *scheme); err != nil {
		log.Fatalln("Failed to initialize authenticator:", err)
	}

	secret, err := verifier.GenSecret(&auth.Rec{Uid: uid, AuthLevel: authLvl}, *lifetime)
	if err != nil {
		log.Fatalln("Failed to mint credential:", err)
	}

	if *scheme == "token" {
		// Binary tokens travel base64url-encoded.
		fmt.Fprintln(os.Stdout, base64.URLEncoding.EncodeToString(secret))
	} else {
		fmt.Fprintln(os.Stdout, string(secret))
	}
}
