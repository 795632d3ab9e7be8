// Package inspector exposes a read-only debug view of a running
// Console: a websocket feed of periodic state snapshots, and a
// clipboard export of the current frame for bug reports.
package inspector

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"net"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"golang.design/x/clipboard"

	"github.com/kestrel-emu/gbcore/internal/console"
	"github.com/kestrel-emu/gbcore/pkg/log"
)

// Snapshot is the JSON-serializable view of console state pushed to
// connected clients. It never round-trips back into a Console: this
// is a diagnostic export, not a save-state feature.
type Snapshot struct {
	PC, SP      uint16
	A, F        uint8
	B, C        uint8
	D, E        uint8
	H, L        uint8
	IME         bool
	LY          uint8
	PPUMode     uint8
	DividerReg  uint8
	Fingerprint uint64
}

// Capture reads the current state of c into a Snapshot.
func Capture(c *console.Console) Snapshot {
	return Snapshot{
		PC: c.CPU.PC, SP: c.CPU.SP,
		A: c.CPU.A, F: c.CPU.F,
		B: c.CPU.B, C: c.CPU.C,
		D: c.CPU.D, E: c.CPU.E,
		H: c.CPU.H, L: c.CPU.L,
		IME:         c.CPU.IME,
		LY:          c.PPU.ReadLY(),
		PPUMode:     c.PPU.ReadSTAT() & 0x03,
		DividerReg:  c.Timer.ReadDIV(),
		Fingerprint: c.Fingerprint,
	}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub accepts websocket connections and broadcasts snapshots pushed
// via Broadcast to every connected client.
type Hub struct {
	mu      sync.Mutex
	clients map[*client]bool

	log log.Logger
}

// NewHub returns an empty Hub. Call ServeHTTP's handler from an
// http.Server to accept connections.
func NewHub(logger log.Logger) *Hub {
	if logger == nil {
		logger = log.Null()
	}
	return &Hub{clients: make(map[*client]bool), log: logger}
}

// ServeHTTP upgrades the request to a websocket and registers the
// resulting client, which only ever receives (it never reads input
// back, since this is a read-only inspector).
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Errorf("inspector: upgrade: %v", err)
		return
	}

	c := &client{conn: conn, send: make(chan []byte, 8)}
	h.mu.Lock()
	h.clients[c] = true
	h.mu.Unlock()

	go h.writePump(c)
}

func (h *Hub) writePump(c *client) {
	defer func() {
		h.mu.Lock()
		delete(h.clients, c)
		h.mu.Unlock()
		c.conn.Close()
	}()

	for msg := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			return
		}
	}
}

// Broadcast sends snap to every connected client, dropping it for any
// client whose send buffer is full rather than blocking the caller.
func (h *Hub) Broadcast(snap Snapshot) {
	data, err := json.Marshal(snap)
	if err != nil {
		h.log.Errorf("inspector: marshal snapshot: %v", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		select {
		case c.send <- data:
		default:
		}
	}
}

// ListenAndServe starts the inspector's HTTP server on addr.
func (h *Hub) ListenAndServe(addr string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/", h.ServeHTTP)

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("inspector: listen: %w", err)
	}
	return http.Serve(ln, mux)
}

// CopyFrame encodes the current framebuffer as a PNG and pushes it to
// the host clipboard, for attaching a repro screenshot to a bug
// report without a file dialog.
func CopyFrame(frame *[160 * 144]uint32) error {
	if err := clipboard.Init(); err != nil {
		return fmt.Errorf("inspector: clipboard init: %w", err)
	}

	img := image.NewRGBA(image.Rect(0, 0, 160, 144))
	for i, px := range frame {
		img.Pix[i*4+0] = uint8(px >> 16)
		img.Pix[i*4+1] = uint8(px >> 8)
		img.Pix[i*4+2] = uint8(px)
		img.Pix[i*4+3] = uint8(px >> 24)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return fmt.Errorf("inspector: encode png: %w", err)
	}

	clipboard.Write(clipboard.FmtImage, buf.Bytes())
	return nil
}
