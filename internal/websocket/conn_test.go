package websocket

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gorilla/websocket"
)

// Two goroutines write the same connection at once, as the pub/sub
// forwarder and the request loop do on a live stream. Run with -race:
// the wrapper must serialize the writes and every frame the server
// receives must still be intact JSON.
func TestConnSerializesConcurrentWriters(t *testing.T) {
	upgrader := websocket.Upgrader{}
	received := make(chan [][]byte, 1)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Error(err)
			return
		}
		defer c.Close()

		var frames [][]byte
		for {
			_, p, err := c.ReadMessage()
			if err != nil {
				break
			}
			frames = append(frames, p)
		}
		received <- frames
	}))
	defer srv.Close()

	raw, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	conn := NewConn(raw)

	const perWriter = 50
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < perWriter; i++ {
			if err := conn.WriteRaw([]byte(`{"event":"notification","id":1,"title":"t"}`)); err != nil {
				t.Error(err)
				return
			}
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < perWriter; i++ {
			if err := conn.WriteTyped(UnreadCountEvent{Event: EventUnreadCount, Unread: i}); err != nil {
				t.Error(err)
				return
			}
		}
	}()
	wg.Wait()
	conn.Close()

	frames := <-received
	if len(frames) != 2*perWriter {
		t.Fatalf("server received %d frames, want %d", len(frames), 2*perWriter)
	}
	for _, p := range frames {
		var v map[string]interface{}
		if err := json.Unmarshal(p, &v); err != nil {
			t.Errorf("corrupted frame %q: %v", p, err)
		}
	}
}
