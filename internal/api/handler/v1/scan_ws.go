package v1

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"

	"github.com/bigbull/event-ticket-api/internal/api/handler/v1/response"
	"github.com/bigbull/event-ticket-api/internal/domain"
)

const (
	scanWriteWait  = 10 * time.Second
	scanPongWait   = 60 * time.Second
	scanPingPeriod = (scanPongWait * 9) / 10
	scanMaxMessage = 4096
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Scanners connect from the front end origin; CORS is enforced upstream.
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// scanClient is one scanner device. Frames in are decoded QR payloads,
// frames out are validation replies in the same order.
type scanClient struct {
	conn    *websocket.Conn
	send    chan []byte
	scanner ScanSubmitter
}

// HandleScanSocket godoc
// @Summary      Stream QR scans over a websocket
// @Description  Each text frame is a decoded QR payload; each reply is a validation outcome.
// @Tags         tickets
// @Success      101  {string}  string "Switching Protocols to WebSocket"
// @Failure      400  {object}  response.Err
// @Router       /tickets/scan/ws [get]
func (h *TicketHandler) HandleScanSocket(ctx *gin.Context) {
	conn, err := upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		zap.L().Warn("scanner websocket upgrade failed", zap.Error(err))
		return
	}

	client := &scanClient{
		conn:    conn,
		send:    make(chan []byte, 16),
		scanner: h.scanner,
	}

	connCtx, cancel := context.WithCancel(context.Background())
	go client.writePump(cancel)
	client.readPump(connCtx)
}

func (c *scanClient) readPump(ctx context.Context) {
	defer close(c.send)

	c.conn.SetReadLimit(scanMaxMessage)
	_ = c.conn.SetReadDeadline(time.Now().Add(scanPongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(scanPongWait))
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				zap.L().Warn("scanner websocket closed", zap.Error(err))
			}
			return
		}

		reply := scanReply(ctx, c.scanner, message)
		select {
		case c.send <- reply:
		case <-ctx.Done():
			return
		}
	}
}

func (c *scanClient) writePump(cancel context.CancelFunc) {
	ticker := time.NewTicker(scanPingPeriod)
	defer func() {
		ticker.Stop()
		cancel()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(scanWriteWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(scanWriteWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func scanReply(ctx context.Context, scanner ScanSubmitter, message []byte) []byte {
	var reply response.ScanResponse

	outcome, err := scanner.SubmitRaw(ctx, message)
	var validationErr *domain.ValidationError
	switch {
	case err == nil:
		reply = response.ScanResponse{Success: outcome.Success, Message: outcome.Message}
	case errors.As(err, &validationErr):
		reply = response.ScanResponse{Message: "Invalid QR code", Error: validationErr.Reason}
	default:
		zap.L().Error("scan over websocket failed", zap.Error(err))
		reply = response.ScanResponse{Message: "Validation unavailable", Error: http.StatusText(http.StatusServiceUnavailable)}
	}

	b, _ := jsoniter.ConfigCompatibleWithStandardLibrary.Marshal(reply)
	return b
}
