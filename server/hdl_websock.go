/******************************************************************************
 *
 *  Description :
 *
 *  Handler of websocket connections: the connection gateway. The credential
 *  is verified exactly once, before the protocol upgrade; a connection with
 *  a bad credential is refused outright and no partial access is granted.
 *
 *****************************************************************************/

package main

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/mentorhub/relay/server/auth"
	"github.com/mentorhub/relay/server/logs"
	"github.com/mentorhub/relay/server/store/types"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 55 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum size of an inbound message.
	maxMessageSize = 1 << 18 // 256K
)

func (sess *Session) closeWS() {
	sess.ws.Close()
}

func (sess *Session) readLoop() {
	defer func() {
		sess.closeWS()
		sess.cleanUp()
	}()

	sess.ws.SetReadLimit(maxMessageSize)
	sess.ws.SetReadDeadline(time.Now().Add(pongWait))
	sess.ws.SetPongHandler(func(string) error {
		sess.ws.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		// Read a ClientComMessage.
		_, raw, err := sess.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure,
				websocket.CloseNormalClosure) {
				logs.Err.Println("ws: readLoop", sess.sid, err)
			}
			return
		}
		sess.dispatchRaw(raw)
	}
}

func (sess *Session) sendMessage(msg interface{}) bool {
	statsInc("OutgoingMessagesWebsockTotal", 1)
	if err := wsWrite(sess.ws, websocket.TextMessage, msg); err != nil {
		if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure,
			websocket.CloseNormalClosure) {
			logs.Err.Println("ws: writeLoop", sess.sid, err)
		}
		return false
	}
	return true
}

func (sess *Session) writeLoop() {
	ticker := time.NewTicker(pingPeriod)

	defer func() {
		ticker.Stop()
		// Break readLoop.
		sess.closeWS()
	}()

	for {
		select {
		case msg, ok := <-sess.send:
			if !ok {
				// Channel closed.
				return
			}
			if !sess.sendMessage(msg) {
				return
			}

		case msg := <-sess.stop:
			// Shutdown requested, don't care if the message is delivered.
			if msg != nil {
				wsWrite(sess.ws, websocket.TextMessage, msg)
			}
			return

		case <-ticker.C:
			if err := wsWrite(sess.ws, websocket.PingMessage, nil); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure,
					websocket.CloseNormalClosure) {
					logs.Err.Println("ws: writeLoop ping", sess.sid, err)
				}
				return
			}
		}
	}
}

// Writes a message with the given message type (mt) and payload.
func wsWrite(ws *websocket.Conn, mt int, msg interface{}) error {
	var bits []byte
	if msg != nil {
		bits = msg.([]byte)
	} else {
		bits = []byte{}
	}
	ws.SetWriteDeadline(time.Now().Add(writeWait))
	return ws.WriteMessage(mt, bits)
}

// Handles websocket requests from peers.
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Allow connections from any Origin.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// getCredential extracts the bearer credential from connection metadata:
// the Authorization header or, for clients which cannot set headers on a
// websocket request, the "token" query parameter.
func getCredential(req *http.Request) string {
	if bearer := req.Header.Get("Authorization"); bearer != "" {
		if token, found := strings.CutPrefix(bearer, "Bearer "); found {
			return token
		}
		return ""
	}
	return req.URL.Query().Get("token")
}

// authenticateRequest verifies the request's credential with the configured
// verifier. Called once per connection.
func authenticateRequest(req *http.Request) (*auth.Rec, error) {
	credential := getCredential(req)
	if credential == "" {
		return nil, auth.ErrMalformed
	}

	secret := []byte(credential)
	if globals.authScheme == "token" {
		// Binary tokens travel base64url-encoded.
		decoded, err := base64.URLEncoding.DecodeString(credential)
		if err != nil {
			return nil, auth.ErrMalformed
		}
		secret = decoded
	}

	return globals.authVerifier.Authenticate(secret)
}

func serveWebSocket(wrt http.ResponseWriter, req *http.Request) {
	now := types.TimeNow()

	if req.Method != http.MethodGet {
		wrt.WriteHeader(http.StatusMethodNotAllowed)
		json.NewEncoder(wrt).Encode(ErrOperationNotAllowed("", "", now))
		logs.Warn.Println("ws: invalid HTTP method", req.Method)
		return
	}

	rec, err := authenticateRequest(req)
	if err != nil {
		// Refused outright; the client must obtain a fresh credential and
		// reconnect. No server-side retry.
		code := http.StatusUnauthorized
		if err == auth.ErrMalformed {
			code = http.StatusBadRequest
		}
		wrt.WriteHeader(code)
		json.NewEncoder(wrt).Encode(ErrAuthRequired("", "", now))
		logs.Warn.Println("ws: connection refused:", err)
		statsInc("RefusedConnectionsTotal", 1)
		return
	}

	ws, err := upgrader.Upgrade(wrt, req, nil)
	if _, ok := err.(websocket.HandshakeError); ok {
		logs.Err.Println("ws: not a websocket handshake")
		return
	} else if err != nil {
		logs.Err.Println("ws: failed to upgrade", err)
		return
	}

	sess, count := globals.sessionStore.NewSession(ws, rec.Uid, rec.AuthLevel)
	sess.remoteAddr = req.RemoteAddr
	sess.userAgent = req.UserAgent()

	// Subscribe the connection to the user's private room right away so
	// unicast events reach it without an explicit join.
	globals.router.Join(rec.Uid.UserId(), sess)

	logs.Info.Println("ws: session started", sess.sid, sess.uid, sess.remoteAddr, count)

	sess.queueOut(NoErrParams("", "", now, map[string]interface{}{
		"user": rec.Uid.UserId(),
		"sid":  sess.sid,
	}))

	// Do work in goroutines to return from serveWebSocket() to release file pointers.
	// Otherwise "too many open files" will happen.
	go sess.writeLoop()
	go sess.readLoop()
}
