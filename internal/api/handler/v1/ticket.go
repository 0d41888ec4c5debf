package v1

import (
	"context"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/bigbull/event-ticket-api/internal/api/handler/v1/request"
	"github.com/bigbull/event-ticket-api/internal/api/handler/v1/response"
	"github.com/bigbull/event-ticket-api/internal/api/middleware"
	"github.com/bigbull/event-ticket-api/internal/domain"
	"github.com/bigbull/event-ticket-api/internal/pkg/ticketpdf"
	"github.com/bigbull/event-ticket-api/internal/service"
)

type TicketService interface {
	Issue(ctx context.Context, caller domain.Caller, email, eventName string, price float64) (domain.Ticket, error)
	Get(ctx context.Context, id string) (domain.Ticket, error)
	List(ctx context.Context, caller domain.Caller, filter domain.TicketFilter) ([]domain.Ticket, error)
	Update(ctx context.Context, caller domain.Caller, id string, update domain.TicketUpdate) (domain.Ticket, error)
	Delete(ctx context.Context, caller domain.Caller, id string) error
}

type TicketValidator interface {
	Validate(ctx context.Context, payload domain.ScanPayload) (domain.ValidationOutcome, error)
}

type ScanSubmitter interface {
	SubmitRaw(ctx context.Context, raw []byte) (domain.ValidationOutcome, error)
}

type TicketPurchaser interface {
	Purchase(ctx context.Context, buyer domain.Caller) (domain.Ticket, error)
}

type TicketDocuments interface {
	RenderTicket(ctx context.Context, id string) (domain.Ticket, string, error)
}

type TicketHandler struct {
	svc       TicketService
	validator TicketValidator
	scanner   ScanSubmitter
	purchaser TicketPurchaser
	documents TicketDocuments
}

func NewTicketHandler(svc TicketService, validator TicketValidator, scanner ScanSubmitter, purchaser TicketPurchaser, documents TicketDocuments) *TicketHandler {
	return &TicketHandler{
		svc:       svc,
		validator: validator,
		scanner:   scanner,
		purchaser: purchaser,
		documents: documents,
	}
}

// HandleGenerateTicket godoc
// @Summary      Issue a ticket
// @Tags         tickets
// @Accept       json
// @Produce      json
// @Param        request  body      request.GenerateTicketRequest true "request body"
// @Success      200      {object}  response.TicketResponse
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /tickets/generate [post]
// @Security BearerAuth
func (h *TicketHandler) HandleGenerateTicket(ctx *gin.Context) {
	var req request.GenerateTicketRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	caller, _ := middleware.CallerFromContext(ctx)
	ticket, err := h.svc.Issue(ctx.Request.Context(), caller, req.Email, req.EventName, *req.Price)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleGenerateTicket -> h.svc.Issue", err)
		return
	}

	ctx.JSON(http.StatusOK, response.TicketResponse{Success: true, Ticket: ticket})
}

// HandleListTickets godoc
// @Summary      List tickets, most recent first
// @Tags         tickets
// @Produce      json
// @Param        status  query     string false "active, used or cancelled"
// @Param        email   query     string false "owner email"
// @Success      200     {object}  response.TicketListResponse
// @Failure      400     {object}  response.Err
// @Failure      401     {object}  response.Err
// @Failure      403     {object}  response.Err
// @Failure      500     {object}  response.Err
// @Router       /tickets/list [get]
// @Security BearerAuth
func (h *TicketHandler) HandleListTickets(ctx *gin.Context) {
	var query request.ListTicketsQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := query.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	caller, _ := middleware.CallerFromContext(ctx)
	tickets, err := h.svc.List(ctx.Request.Context(), caller, query.ToDomain())
	if err != nil {
		renderServiceErr(ctx, "v1.HandleListTickets -> h.svc.List", err)
		return
	}

	if tickets == nil {
		tickets = []domain.Ticket{}
	}

	ctx.JSON(http.StatusOK, response.TicketListResponse{Success: true, Tickets: tickets})
}

// HandleGetTicket godoc
// @Summary      Get a ticket
// @Tags         tickets
// @Produce      json
// @Param        ticketID path      string true "Ticket ID"
// @Success      200      {object}  response.TicketResponse
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /tickets/{ticketID} [get]
func (h *TicketHandler) HandleGetTicket(ctx *gin.Context) {
	ticket, err := h.svc.Get(ctx.Request.Context(), ctx.Param("ticketID"))
	if err != nil {
		renderServiceErr(ctx, "v1.HandleGetTicket -> h.svc.Get", err)
		return
	}

	ctx.JSON(http.StatusOK, response.TicketResponse{Success: true, Ticket: ticket})
}

// HandleUpdateTicket godoc
// @Summary      Update ticket fields
// @Description  Applies only the fields present. Status may be set to any value.
// @Tags         tickets
// @Accept       json
// @Produce      json
// @Param        ticketID path      string true "Ticket ID"
// @Param        request  body      request.UpdateTicketRequest true "request body"
// @Success      200      {object}  response.TicketResponse
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /tickets/{ticketID} [put]
// @Security BearerAuth
func (h *TicketHandler) HandleUpdateTicket(ctx *gin.Context) {
	var req request.UpdateTicketRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	caller, _ := middleware.CallerFromContext(ctx)
	ticket, err := h.svc.Update(ctx.Request.Context(), caller, ctx.Param("ticketID"), req.ToDomain())
	if err != nil {
		renderServiceErr(ctx, "v1.HandleUpdateTicket -> h.svc.Update", err)
		return
	}

	ctx.JSON(http.StatusOK, response.TicketResponse{Success: true, Ticket: ticket})
}

// HandleDeleteTicket godoc
// @Summary      Delete a ticket
// @Tags         tickets
// @Produce      json
// @Param        ticketID path      string true "Ticket ID"
// @Success      200      {object}  response.MessageResponse
// @Failure      401      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /tickets/{ticketID} [delete]
// @Security BearerAuth
func (h *TicketHandler) HandleDeleteTicket(ctx *gin.Context) {
	caller, _ := middleware.CallerFromContext(ctx)
	if err := h.svc.Delete(ctx.Request.Context(), caller, ctx.Param("ticketID")); err != nil {
		renderServiceErr(ctx, "v1.HandleDeleteTicket -> h.svc.Delete", err)
		return
	}

	ctx.JSON(http.StatusOK, response.MessageResponse{Success: true, Message: "Ticket deleted successfully"})
}

// HandleValidateTicket godoc
// @Summary      Validate a ticket at the gate
// @Description  Body must be exactly {"ticket_id", "email"}. Rejections are reported with success=false.
// @Tags         tickets
// @Accept       json
// @Produce      json
// @Param        request  body      domain.ScanPayload true "scan payload"
// @Success      200      {object}  domain.ValidationOutcome
// @Failure      400      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /tickets/validate [post]
func (h *TicketHandler) HandleValidateTicket(ctx *gin.Context) {
	raw, err := ctx.GetRawData()
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	payload, err := service.ParseScanPayload(raw)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleValidateTicket -> service.ParseScanPayload", err)
		return
	}

	outcome, err := h.validator.Validate(ctx.Request.Context(), payload)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleValidateTicket -> h.validator.Validate", err)
		return
	}

	ctx.JSON(http.StatusOK, outcome)
}

// HandleScanTicket godoc
// @Summary      Validate a decoded QR code
// @Description  The body is the raw text decoded from the ticket QR code.
// @Tags         tickets
// @Accept       plain
// @Produce      json
// @Param        request  body      string true "decoded QR text"
// @Success      200      {object}  domain.ValidationOutcome
// @Failure      400      {object}  response.Err
// @Failure      503      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /tickets/scan [post]
func (h *TicketHandler) HandleScanTicket(ctx *gin.Context) {
	raw, err := ctx.GetRawData()
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	outcome, err := h.scanner.SubmitRaw(ctx.Request.Context(), raw)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleScanTicket -> h.scanner.SubmitRaw", err)
		return
	}

	ctx.JSON(http.StatusOK, outcome)
}

// HandlePurchaseTicket godoc
// @Summary      Buy a ticket for the current event
// @Tags         tickets
// @Produce      json
// @Success      201  {object}  response.TicketResponse
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /tickets/purchase [post]
// @Security BearerAuth
func (h *TicketHandler) HandlePurchaseTicket(ctx *gin.Context) {
	buyer, _ := middleware.CallerFromContext(ctx)
	ticket, err := h.purchaser.Purchase(ctx.Request.Context(), buyer)
	if err != nil {
		renderServiceErr(ctx, "v1.HandlePurchaseTicket -> h.purchaser.Purchase", err)
		return
	}

	ctx.JSON(http.StatusCreated, response.TicketResponse{Success: true, Ticket: ticket})
}

// HandleDownloadTicket godoc
// @Summary      Download the ticket as PDF
// @Tags         tickets
// @Produce      application/pdf
// @Param        ticketID path      string true "Ticket ID"
// @Success      200      {file}    file
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /tickets/{ticketID}/pdf [get]
func (h *TicketHandler) HandleDownloadTicket(ctx *gin.Context) {
	ticket, path, err := h.documents.RenderTicket(ctx.Request.Context(), ctx.Param("ticketID"))
	if err != nil {
		renderServiceErr(ctx, "v1.HandleDownloadTicket -> h.documents.RenderTicket", err)
		return
	}
	defer func() {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			zap.L().Warn("failed to remove ticket document", zap.String("path", path), zap.Error(err))
		}
	}()

	ctx.FileAttachment(path, ticketpdf.FileName(ticket.ID))
}
