package websocket

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"dmvcalc/internal/i18n"
	"dmvcalc/internal/middleware"
	"dmvcalc/internal/service"
)

const (
	writeWait      = 10 * time.Second
	maxMessageSize = 16 * 1024
	sendBuffer     = 32
)

// Message types pushed to clients.
const (
	TypePreview = "preview"
	TypeSaved   = "saved"
	TypeError   = "error"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Message is the envelope of every frame the server writes.
type Message struct {
	Type  string      `json:"type"`
	Data  interface{} `json:"data,omitempty"`
	Error string      `json:"error,omitempty"`
}

// PreviewData answers one preview request.
type PreviewData struct {
	Record     service.CalculationResponse `json:"record"`
	Violations []i18n.LocalizedViolation   `json:"violations"`
	Valid      bool                        `json:"valid"`
}

// Client is one authenticated connection.
type Client struct {
	hub     *Hub
	conn    *websocket.Conn
	send    chan []byte
	ownerID string
	lang    string
}

type outbound struct {
	client  *Client
	ownerID string
	payload []byte
}

// Hub tracks live preview connections per owner. Clients send calculation
// requests and get processed records back; saved calculations are pushed
// to every connection of their owner.
type Hub struct {
	clients    map[string]map[*Client]struct{}
	register   chan *Client
	unregister chan *Client
	outbound   chan outbound
	done       chan struct{}
	mu         sync.RWMutex

	calcService service.CalculationService
	catalog     *i18n.Catalog
	log         *zap.Logger
}

func NewHub(calcService service.CalculationService, catalog *i18n.Catalog, log *zap.Logger) *Hub {
	return &Hub{
		clients:     make(map[string]map[*Client]struct{}),
		register:    make(chan *Client),
		unregister:  make(chan *Client),
		outbound:    make(chan outbound, 64),
		done:        make(chan struct{}),
		calcService: calcService,
		catalog:     catalog,
		log:         log,
	}
}

// Run dispatches hub events until ctx is cancelled, then closes every client.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for owner, set := range h.clients {
				for client := range set {
					close(client.send)
				}
				delete(h.clients, owner)
			}
			h.mu.Unlock()
			return
		case client := <-h.register:
			h.mu.Lock()
			if h.clients[client.ownerID] == nil {
				h.clients[client.ownerID] = make(map[*Client]struct{})
			}
			h.clients[client.ownerID][client] = struct{}{}
			h.mu.Unlock()
			h.log.Debug("websocket client connected", zap.String("owner", client.ownerID))
		case client := <-h.unregister:
			h.mu.Lock()
			h.remove(client)
			h.mu.Unlock()
			h.log.Debug("websocket client disconnected", zap.String("owner", client.ownerID))
		case msg := <-h.outbound:
			h.mu.Lock()
			if msg.client != nil {
				if _, ok := h.clients[msg.client.ownerID][msg.client]; ok {
					h.deliver(msg.client, msg.payload)
				}
			} else {
				for client := range h.clients[msg.ownerID] {
					h.deliver(client, msg.payload)
				}
			}
			h.mu.Unlock()
		}
	}
}

// deliver queues payload for client, dropping clients that cannot keep up.
// Callers hold h.mu.
func (h *Hub) deliver(client *Client, payload []byte) {
	select {
	case client.send <- payload:
	default:
		h.log.Warn("dropping slow websocket client", zap.String("owner", client.ownerID))
		h.remove(client)
	}
}

func (h *Hub) remove(client *Client) {
	set, ok := h.clients[client.ownerID]
	if !ok {
		return
	}
	if _, ok := set[client]; !ok {
		return
	}
	delete(set, client)
	close(client.send)
	if len(set) == 0 {
		delete(h.clients, client.ownerID)
	}
}

// ClientCount reports the live connections of one owner.
func (h *Hub) ClientCount(ownerID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[ownerID])
}

// NotifySaved pushes a saved calculation to the owner's connections.
func (h *Hub) NotifySaved(ownerID string, resp service.CalculationResponse) {
	payload, err := json.Marshal(Message{Type: TypeSaved, Data: resp})
	if err != nil {
		h.log.Error("failed to encode saved notice", zap.Error(err))
		return
	}
	h.enqueue(outbound{ownerID: ownerID, payload: payload})
}

func (h *Hub) enqueue(msg outbound) bool {
	select {
	case h.outbound <- msg:
		return true
	case <-h.done:
		return false
	}
}

// writePump is the only writer of the connection.
func (c *Client) writePump() {
	defer func() {
		_ = c.conn.Close()
	}()
	for message := range c.send {
		_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
			return
		}
	}
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}

// readPump treats every inbound frame as a calculation request and answers
// it with a preview.
func (c *Client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		_ = c.conn.Close()
	}()
	c.conn.SetReadLimit(maxMessageSize)
	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				c.hub.log.Warn("websocket read failed", zap.Error(err))
			}
			return
		}
		if !c.hub.enqueue(outbound{client: c, payload: c.preview(data)}) {
			return
		}
	}
}

func (c *Client) preview(data []byte) []byte {
	var req service.CalculationRequest
	msg := Message{Type: TypePreview}
	if err := json.Unmarshal(data, &req); err != nil {
		msg = Message{Type: TypeError, Error: "Invalid request payload: " + err.Error()}
	} else if res, err := c.hub.calcService.Preview(context.Background(), req); err != nil {
		msg = Message{Type: TypeError, Error: err.Error()}
	} else {
		msg.Data = PreviewData{
			Record:     res.Record,
			Violations: c.hub.catalog.Localize(c.lang, res.Violations),
			Valid:      res.Valid,
		}
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		c.hub.log.Error("failed to encode preview", zap.Error(err))
		payload = []byte(`{"type":"error","error":"internal server error"}`)
	}
	return payload
}

// ServeWs authenticates the token query parameter and upgrades the request.
// The lang query parameter, or Accept-Language, selects the message language.
func ServeWs(hub *Hub, c *gin.Context, secret []byte) {
	tokenString := c.Query("token")
	if tokenString == "" {
		hub.log.Info("websocket connection rejected: missing token")
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	userID, _, err := middleware.ParseToken(tokenString, secret)
	if err != nil {
		hub.log.Info("websocket connection rejected: invalid token", zap.Error(err))
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	lang := c.Query("lang")
	if lang == "" {
		lang = c.GetHeader("Accept-Language")
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		hub.log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	client := &Client{
		hub:     hub,
		conn:    conn,
		send:    make(chan []byte, sendBuffer),
		ownerID: userID,
		lang:    hub.catalog.Negotiate(lang),
	}

	select {
	case hub.register <- client:
	case <-hub.done:
		_ = conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()
}
