/******************************************************************************
 *
 *  Description :
 *
 *  Setup & initialization of the relay: the real-time delivery and
 *  notification service. Wires together the storage layer, authentication,
 *  the session registry, the room router, the access cache and the HTTP
 *  surface.
 *
 *****************************************************************************/

package main

import (
	"encoding/json"
	"flag"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/gorilla/handlers"
	jcr "github.com/tinode/jsonco"

	"github.com/mentorhub/relay/server/auth"
	"github.com/mentorhub/relay/server/cache"
	"github.com/mentorhub/relay/server/email"
	"github.com/mentorhub/relay/server/logs"
	"github.com/mentorhub/relay/server/store"

	// Backend and authenticators are wired in by their init().
	_ "github.com/mentorhub/relay/server/auth/jwt"
	_ "github.com/mentorhub/relay/server/auth/token"
	_ "github.com/mentorhub/relay/server/db/mongodb"
)

const (
	// currentVersion is the reported version of the service.
	currentVersion = "0.2"

	// Default notification retention horizon.
	defaultNotifRetention = 90 * 24 * time.Hour
)

// Build timestamp set by the compiler as -ldflags "-X main.buildstamp=..."
var buildstamp = "undef"

var globals struct {
	// Active websocket sessions.
	sessionStore *SessionStore
	// Room subscription registry and delivery fabric.
	router *Router
	// Relationship and membership check cache.
	accessCache *cache.Cache
	// Outbound email, disabled when not configured.
	emailer *email.Dispatcher

	// Verifier of bearer credentials, selected by config.
	authVerifier auth.Verifier
	// Name of the selected verifier ("token" or "jwt").
	authScheme string

	// Channel for stats updates, nil when stats are disabled.
	statsUpdate chan *varUpdate

	// Closed to stop the maintenance ticker.
	sweeperStop chan bool
	// Age at which fully-read notifications are reclaimed.
	notifRetention time.Duration

	// Strict-Transport-Security max age, "" if disabled.
	tlsStrictMaxAge string
}

type configType struct {
	// HTTP(S) address:port to listen on.
	Listen string `json:"listen"`
	// URL path for exposing runtime stats, "-" to disable.
	ExpvarPath string `json:"expvar"`
	// TLS configuration.
	Tls *TlsConfig `json:"tls"`

	// Configuration of the selected authenticator, keyed by scheme name.
	Auth map[string]json.RawMessage `json:"auth_config"`
	// Name of the authenticator to use for bearer credentials.
	AuthScheme string `json:"auth_scheme"`

	// Database configuration.
	Store json.RawMessage `json:"store_config"`
	// SMTP configuration, null to disable email copies.
	Email json.RawMessage `json:"email"`

	// Access cache TTL in seconds, 0 for the default.
	CacheTTL int `json:"cache_ttl"`
	// Maintenance interval in seconds, 0 to rely on the external scheduler.
	SweepInterval int `json:"sweep_interval"`
	// Notification retention in days, 0 for the default.
	NotifRetentionDays int `json:"notif_retention_days"`
}

func main() {
	logs.Init()

	logs.Info.Printf("relay server v%s:%s pid %d started with processes: %d",
		currentVersion, buildstamp, os.Getpid(), runtime.GOMAXPROCS(runtime.NumCPU()))

	executable, _ := os.Executable()
	rootpath := filepath.Dir(executable)

	var configfile = flag.String("config", "relay.conf", "Path to config file.")
	var listenOn = flag.String("listen", "", "Override address and port to listen on.")
	var expvarPath = flag.String("expvar", "", "Override the path where runtime stats are exposed.")
	var initDb = flag.Bool("init_db", false, "Create the database schema and exit.")
	flag.Parse()

	*configfile = toAbsolutePath(rootpath, *configfile)
	logs.Info.Printf("Using config from '%s'", *configfile)

	var config configType
	if file, err := os.Open(*configfile); err != nil {
		logs.Err.Fatalln("Failed to read config file:", err)
	} else {
		jr := jcr.New(file)
		if err = json.NewDecoder(jr).Decode(&config); err != nil {
			switch jerr := err.(type) {
			case *json.UnmarshalTypeError:
				lnum, cnum, _ := jr.LineAndChar(jerr.Offset)
				logs.Err.Fatalf("Unmarshall error in config file in %s at %d:%d (offset %d bytes): %s",
					jerr.Field, lnum, cnum, jerr.Offset, jerr.Error())
			case *json.SyntaxError:
				lnum, cnum, _ := jr.LineAndChar(jerr.Offset)
				logs.Err.Fatalf("Syntax error in config file at %d:%d (offset %d bytes): %s",
					lnum, cnum, jerr.Offset, jerr.Error())
			default:
				logs.Err.Fatalln("Failed to parse config file:", err)
			}
		}
		file.Close()
	}

	if *listenOn != "" {
		config.Listen = *listenOn
	}
	if *expvarPath != "" {
		config.ExpvarPath = *expvarPath
	}

	if *initDb {
		if err := store.Store.InitDb(config.Store, true); err != nil {
			logs.Err.Fatalln("Failed to initialize the database:", err)
		}
		logs.Info.Println("Database initialized")
		return
	}

	if err := store.Store.Open(1, config.Store); err != nil {
		logs.Err.Fatalln("Failed to connect to DB:", err)
	}
	logs.Info.Println("DB adapter opened:", store.Store.GetAdapterName())
	defer func() {
		store.Store.Close()
		logs.Info.Println("Closed database connection(s)")
		logs.Info.Println("All done, good bye")
	}()

	// Select and initialize the authenticator of bearer credentials.
	globals.authScheme = config.AuthScheme
	if globals.authScheme == "" {
		globals.authScheme = "token"
	}
	globals.authVerifier = auth.Get(globals.authScheme)
	if globals.authVerifier == nil {
		logs.Err.Fatalln("Unknown auth scheme:", globals.authScheme)
	}
	if err := globals.authVerifier.Init(config.Auth[globals.authScheme], globals.authScheme); err != nil {
		logs.Err.Fatalf("Failed to initialize authenticator '%s': %v", globals.authScheme, err)
	}

	globals.sessionStore = NewSessionStore()
	globals.router = newRouter()
	globals.accessCache = cache.New(time.Duration(config.CacheTTL) * time.Second)

	globals.emailer = &email.Dispatcher{}
	if err := globals.emailer.Init(config.Email); err != nil {
		logs.Err.Fatalln("Failed to initialize email dispatcher:", err)
	}

	globals.notifRetention = time.Duration(config.NotifRetentionDays) * 24 * time.Hour
	if globals.notifRetention <= 0 {
		globals.notifRetention = defaultNotifRetention
	}

	mux := http.NewServeMux()

	// Exposed live stats.
	statsInit(mux, config.ExpvarPath)
	statsRegisterInt("LiveSessions")
	statsRegisterInt("TotalSessions")
	statsRegisterInt("RoomsLive")
	statsRegisterInt("RefusedConnectionsTotal")
	statsRegisterInt("IncomingMessagesWebsockTotal")
	statsRegisterInt("OutgoingMessagesWebsockTotal")
	statsRegisterInt("IncomingMessagesAPITotal")
	statsRegisterInt("DeliveryDropsTotal")
	statsRegisterInt("NotificationsCreatedTotal")
	statsRegisterInt("NotificationsSweptTotal")
	statsRegisterInt("RemindersSentTotal")
	statsRegisterInt("MessagesSentTotal")
	statsRegisterHistogram("NotificationFanoutSize", []float64{1, 2, 4, 8, 16, 32, 64})
	statsRegisterDbStats()

	mux.HandleFunc("/v0/channels", serveWebSocket)
	setupAPIRoutes(mux)
	mux.HandleFunc("/", serve404)

	if config.SweepInterval > 0 {
		globals.sweeperStop = make(chan bool)
		go sweeperLoop(time.Duration(config.SweepInterval)*time.Second, globals.sweeperStop)
	}

	if err := listenAndServe(config.Listen, hstsHandler(handlers.CompressHandler(mux)),
		config.Tls, signalHandler()); err != nil {
		logs.Err.Fatalln(err)
	}
}

// toAbsolutePath resolves a path relative to the given base unless it's
// already absolute.
func toAbsolutePath(base, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Clean(filepath.Join(base, path))
}
