package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cinelog/cinelog-backend/internal/services"
	"github.com/cinelog/cinelog-backend/pkg/utils"
)

func TestStreamAuth(t *testing.T) {
	h := NewFeedHandler(testSecret)
	valid, err := utils.GenerateToken(utils.TokenUser{Email: "a@x.com"}, testSecret)
	require.NoError(t, err)

	tests := []struct {
		name       string
		target     string
		header     string
		wantStatus int
		wantBody   string
	}{
		{name: "no token", target: "/ws/messages", wantStatus: http.StatusUnauthorized, wantBody: `{"error":"Unauthorized"}`},
		{name: "garbage query token", target: "/ws/messages?token=garbage", wantStatus: http.StatusUnauthorized, wantBody: `{"error":"Invalid token"}`},
		{name: "garbage bearer header", target: "/ws/messages", header: "Bearer garbage", wantStatus: http.StatusUnauthorized, wantBody: `{"error":"Invalid token"}`},
		// A valid token over plain HTTP passes auth and fails at the upgrade.
		{name: "valid token without handshake", target: "/ws/messages?token=" + valid, wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h.Stream(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantBody != "" {
				assert.JSONEq(t, tt.wantBody, rec.Body.String())
			}
		})
	}
}

func TestStreamFeedUnblocksReader(t *testing.T) {
	events := make(chan services.FeedEvent)
	done := make(chan struct{})

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := feedUpgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		streamFeed(conn, events)
		close(done)
	}))
	defer srv.Close()

	client, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	defer client.Close()

	// An event published while connected reaches the client.
	go func() { events <- services.FeedEvent{Type: "message_created"} }()
	var got services.FeedEvent
	require.NoError(t, client.ReadJSON(&got))
	assert.Equal(t, "message_created", got.Type)

	// Ending the feed must end the stream immediately, not after the read
	// deadline expires.
	close(events)
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("stream kept running after the feed closed")
	}

	_, _, err = client.ReadMessage()
	assert.Error(t, err)
}
