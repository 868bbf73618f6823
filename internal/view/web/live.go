package web

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

const liveWriteWait = 5 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// live - pushes the page state as JSON every time it changes, until the client goes away.
func (that *View) live(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "live")

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn("failed to upgrade connection", "error", err)
		return
	}
	defer conn.Close()

	log.Debug("websocket connection established", "remote", r.RemoteAddr)

	// the client never sends anything; reading only detects that it left
	gone := make(chan struct{})
	go func() {
		defer close(gone)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		snapshot, changed := that.subscribe()

		if err = conn.SetWriteDeadline(time.Now().Add(liveWriteWait)); err != nil {
			return
		}

		if err = conn.WriteJSON(snapshot); err != nil {
			log.Debug("websocket write failed", "error", err)
			return
		}

		select {
		case <-changed:
		case <-gone:
			log.Debug("websocket connection closed", "remote", r.RemoteAddr)
			return
		}
	}
}
