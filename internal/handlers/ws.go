package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/cinelog/cinelog-backend/internal/services"
	"github.com/cinelog/cinelog-backend/pkg/utils"
)

var feedUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// CORS is enforced at the HTTP layer for the REST surface; the feed
		// authenticates with a bearer token instead.
		return true
	},
}

// FeedHandler streams newly created messages over a WebSocket.
type FeedHandler struct {
	JWTSecret string
}

func NewFeedHandler(jwtSecret string) *FeedHandler {
	return &FeedHandler{JWTSecret: jwtSecret}
}

// Stream handles GET /ws/messages. Authentication uses the usual bearer
// token; browser WebSocket clients may pass it as a `token` query parameter
// since they cannot set headers.
func (h *FeedHandler) Stream(w http.ResponseWriter, r *http.Request) {
	token := ""
	if header := r.Header.Get("Authorization"); strings.HasPrefix(header, "Bearer ") {
		token = strings.TrimPrefix(header, "Bearer ")
	}
	if token == "" {
		token = r.URL.Query().Get("token")
	}
	if token == "" {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if _, err := utils.VerifyToken(token, h.JWTSecret); err != nil {
		writeError(w, http.StatusUnauthorized, "Invalid token")
		return
	}

	conn, err := feedUpgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	events, unsubscribe := services.SubscribeFeed()
	defer unsubscribe()

	streamFeed(conn, events)
}

// streamFeed pumps feed events to the connection until either side fails.
// The writer closes the connection on exit so a blocked read returns right
// away instead of waiting out the read deadline.
func streamFeed(conn *websocket.Conn, events <-chan services.FeedEvent) {
	go func() {
		defer conn.Close()
		for event := range events {
			if err := conn.WriteJSON(event); err != nil {
				return
			}
		}
	}()

	// Reader: only pings keep the connection alive; any read error ends it.
	conn.SetReadLimit(4 * 1024)
	_ = conn.SetReadDeadline(time.Now().Add(90 * time.Second))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(90 * time.Second))
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
		_ = conn.SetReadDeadline(time.Now().Add(90 * time.Second))
	}
}
