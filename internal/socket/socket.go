// Package socket wraps the raw WebSocket transport the gateway driver rides
// on: JSON framing, zlib-stream decompression of binary frames, and a
// reusable buffer pool for the hot read path.
//
// Grounded on the teacher's wrapper/internal/socket/socket.go, ported from
// github.com/switchupcb/websocket (an unfetchable private fork) onto
// nhooyr.io/websocket, which the rest of the corpus (and the teacher's own
// go.mod, as an indirect dependency) already carries.
package socket

import (
	"compress/zlib"
	"context"
	"fmt"

	json "github.com/goccy/go-json"
	"nhooyr.io/websocket"
)

// Conn is a single WebSocket connection to the Discord Gateway.
type Conn struct {
	ws *websocket.Conn
}

// Dial opens a new WebSocket connection to endpoint.
func Dial(ctx context.Context, endpoint string) (*Conn, error) {
	ws, _, err := websocket.Dial(ctx, endpoint, nil)
	if err != nil {
		return nil, err
	}

	// Discord's gateway frames can be large (GUILD_CREATE for a big guild);
	// lift nhooyr's conservative default read limit.
	ws.SetReadLimit(1 << 24)

	return &Conn{ws: ws}, nil
}

// ReadJSON reads one gateway frame into dst, transparently inflating
// zlib-stream compressed binary frames.
func (c *Conn) ReadJSON(ctx context.Context, dst interface{}) error {
	messageType, reader, err := c.ws.Reader(ctx)
	if err != nil {
		return err
	}

	switch messageType {
	case websocket.MessageText:
		b := get()
		defer put(b)

		if _, err := b.ReadFrom(reader); err != nil {
			return err
		}

		return json.Unmarshal(b.Bytes(), dst)

	case websocket.MessageBinary:
		zr, err := zlib.NewReader(reader)
		if err != nil {
			return err
		}
		defer zr.Close()

		return json.NewDecoder(zr).Decode(dst)

	default:
		return fmt.Errorf("relay/socket: unexpected message type %v", messageType)
	}
}

// WriteJSON writes dst as a single text frame.
func (c *Conn) WriteJSON(ctx context.Context, dst interface{}) error {
	w, err := c.ws.Writer(ctx, websocket.MessageText)
	if err != nil {
		return err
	}

	if err := json.NewEncoder(w).Encode(dst); err != nil {
		return err
	}

	return w.Close()
}

// Close closes the underlying connection with the given close code and
// reason string.
func (c *Conn) Close(code websocket.StatusCode, reason string) error {
	return c.ws.Close(code, reason)
}
