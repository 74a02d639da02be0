package telemetry

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// ViewerID identifies a connected viewer
type ViewerID uint32

// viewer is one websocket connection
// Only the newest pending frame is kept; a slow viewer skips frames instead of queueing them
type viewer struct {
	id      ViewerID
	addr    string
	conn    *websocket.Conn
	timeout time.Duration

	pending chan []byte // capacity 1

	closeCh   chan struct{}
	closeOnce sync.Once
}

func newViewer(id ViewerID, conn *websocket.Conn, timeout time.Duration) *viewer {
	return &viewer{
		id:      id,
		addr:    conn.RemoteAddr().String(),
		conn:    conn,
		timeout: timeout,
		pending: make(chan []byte, 1),
		closeCh: make(chan struct{}),
	}
}

// offer replaces any unsent frame with frame
// Callers serialize offers, so the second send cannot block
func (v *viewer) offer(frame []byte) {
	select {
	case v.pending <- frame:
		return
	default:
	}
	select {
	case <-v.pending:
	default:
	}
	select {
	case v.pending <- frame:
	default:
	}
}

// close sends a going-away frame and drops the connection
func (v *viewer) close() {
	v.closeOnce.Do(func() {
		close(v.closeCh)
		msg := websocket.FormatCloseMessage(websocket.CloseGoingAway, "")
		v.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(v.timeout))
		v.conn.Close()
	})
}

// readLoop discards inbound frames so control frames are processed and disconnects noticed
func (v *viewer) readLoop() {
	defer v.close()
	for {
		if _, _, err := v.conn.ReadMessage(); err != nil {
			return
		}
	}
}

// writeLoop sends pending frames as text messages
func (v *viewer) writeLoop() error {
	defer v.close()
	for {
		select {
		case <-v.closeCh:
			return nil
		case frame := <-v.pending:
			v.conn.SetWriteDeadline(time.Now().Add(v.timeout))
			if err := v.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				return err
			}
		}
	}
}
