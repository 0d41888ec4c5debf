package v1

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bigbull/event-ticket-api/internal/api/handler/v1/response"
	"github.com/bigbull/event-ticket-api/internal/domain"
)


func TestHandleScanSocket(t *testing.T) {
	scanner := new(mockScanner)
	good := `{"ticket_id":"ticket_1","email":"fan@example.com"}`
	scanner.On("SubmitRaw", mock.Anything, good).Return(domain.OutcomeValidated(), nil).Once()
	scanner.On("SubmitRaw", mock.Anything, good).Return(domain.OutcomeRejected(domain.TicketStatusUsed), nil).Once()
	scanner.On("SubmitRaw", mock.Anything, "garbage").Return(domain.ValidationOutcome{}, domain.NewValidationError("malformed scan payload")).Once()

	h := NewTicketHandler(nil, nil, scanner, nil, nil)
	r := gin.New()
	r.GET("/tickets/scan/ws", h.HandleScanSocket)
	srv := httptest.NewServer(r)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/tickets/scan/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	var reply response.ScanResponse

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(good)))
	require.NoError(t, conn.ReadJSON(&reply))
	assert.True(t, reply.Success)
	assert.Equal(t, domain.MsgTicketValidated, reply.Message)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(good)))
	require.NoError(t, conn.ReadJSON(&reply))
	assert.False(t, reply.Success)
	assert.Equal(t, "Ticket is used", reply.Message)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("garbage")))
	reply = response.ScanResponse{}
	require.NoError(t, conn.ReadJSON(&reply))
	assert.False(t, reply.Success)
	assert.NotEmpty(t, reply.Error)
}
