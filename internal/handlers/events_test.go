package handlers_test

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func TestEventsFeedBroadcastsMutations(t *testing.T) {
	r := setupTestRouter(t)

	srv := httptest.NewServer(r)
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/events"

	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)

	if err != nil {
		t.Fatalf("Failed to dial events feed: %v", err)
	}
	defer conn.Close()

	read := func() map[string]interface{} {
		t.Helper()
		var msg map[string]interface{}
		if err := conn.SetReadDeadline(time.Now().Add(5 * time.Second)); err != nil {
			t.Fatalf("Failed to set read deadline: %v", err)
		}
		if err := conn.ReadJSON(&msg); err != nil {
			t.Fatalf("Failed to read event: %v", err)
		}
		return msg
	}

	if hello := read(); hello["type"] != "connected" {
		t.Fatalf("first frame = %v, want connected", hello)
	}

	user := registerUser(t, r, "demo@ghost.local", "Demo", "Demo123!")
	post := createPost(t, r, user.AccessToken, "Hello", "World")

	event := read()

	if event["type"] != "post.created" {
		t.Errorf("event type = %v, want post.created", event["type"])
	}

	if id, ok := event["postId"].(float64); !ok || uint(id) != post.ID {
		t.Errorf("event postId = %v, want %d", event["postId"], post.ID)
	}
}
