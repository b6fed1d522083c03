package handler

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/kuritkaj/eventlook/internal/dto"
	"github.com/kuritkaj/eventlook/internal/models"
	"github.com/kuritkaj/eventlook/internal/service"
	"github.com/labstack/echo/v4"
)

type EventHandler struct {
	eventSvc    service.EventService
	purchaseSvc service.PurchaseService
}

func NewEventHandler(eventSvc service.EventService, purchaseSvc service.PurchaseService) *EventHandler {
	return &EventHandler{eventSvc: eventSvc, purchaseSvc: purchaseSvc}
}

func (h *EventHandler) RegisterRoutes(e *echo.Echo) {
	events := e.Group("/api/v1/events")
	events.GET("", h.ListEvents)
	events.POST("", h.CreateEvent)
	events.GET("/:id", h.GetEvent)
	events.POST("/:id/purchase", h.PurchaseTickets)

	e.GET("/api/v1/orders/:id", h.GetOrder)
}

func (h *EventHandler) PurchaseTickets(c echo.Context) error {
	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid event id")
	}

	var req dto.PurchaseTicketsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	result, err := h.purchaseSvc.Purchase(c.Request().Context(), eventID, req.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEventNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrInvalidPurchaseQuantity),
			errors.Is(err, service.ErrEventSoldOut),
			errors.Is(err, service.ErrNotEnoughTicketsAvailable):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.JSON(http.StatusCreated, dto.ToPurchaseResponse(result))
}

func (h *EventHandler) CreateEvent(c echo.Context) error {
	var req dto.CreateEventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if req.Name == "" || req.Place == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "name and place are required")
	}
	if req.TicketCount <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "ticketCount must be greater than zero")
	}
	if req.TicketPrice < 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "ticketPrice must not be negative")
	}

	event := &models.Event{
		Name:        req.Name,
		Place:       req.Place,
		StartDate:   req.StartDate,
		TicketCount: req.TicketCount,
		TicketPrice: req.TicketPrice,
	}

	if err := h.eventSvc.CreateEvent(c.Request().Context(), event); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, dto.ToEventResponse(service.EventWithSold{Event: *event}))
}

func (h *EventHandler) GetEvent(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid event id")
	}

	event, err := h.eventSvc.GetEvent(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, dto.ToEventResponse(*event))
}

func (h *EventHandler) ListEvents(c echo.Context) error {
	listing, err := h.eventSvc.ListEvents(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	resp := make([]dto.EventResponse, len(listing))
	for i, e := range listing {
		resp[i] = dto.ToEventResponse(e)
	}

	return c.JSON(http.StatusOK, resp)
}

func (h *EventHandler) GetOrder(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid order id")
	}

	order, err := h.purchaseSvc.GetOrder(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, dto.ToOrderDetailResponse(order))
}
