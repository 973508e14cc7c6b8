package handler

import (
	"net/http"

	"carrental/internal/bookings/service"
	httputil "carrental/pkg/http"
	"carrental/pkg/logger"
	"carrental/pkg/middleware"
	"carrental/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type BookingHandler struct {
	service     service.BookingService
	log         *logger.Logger
	idempotency func(http.Handler) http.Handler
}

// NewBookingHandler mounts the booking endpoints. idempotency wraps creation
// and may be nil.
func NewBookingHandler(service service.BookingService, log *logger.Logger, idempotency func(http.Handler) http.Handler) *BookingHandler {
	return &BookingHandler{
		service:     service,
		log:         log,
		idempotency: idempotency,
	}
}

func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.BookingRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Create", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	booking, err := h.service.Create(r.Context(), &req)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Create", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	resp := model.BookingCreated{
		Message: "Booking created successfully",
		Booking: booking,
	}
	if err := httputil.WriteJSON(w, http.StatusCreated, resp); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "operation", "WriteJSON", "error", err)
	}
}

func (h *BookingHandler) ListForUser(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := ps.ByName("userId")

	bookings, err := h.service.ListForUser(r.Context(), userID)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "ListForUser", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteJSON(w, http.StatusOK, model.BookingList{Bookings: bookings}); err != nil {
		h.log.Error("failed to write success response", "handler", "ListForUser", "operation", "WriteJSON", "error", err)
	}
}

func (h *BookingHandler) RegisterRoutes(router *httprouter.Router) {
	router.Handler(http.MethodPost, "/booking/api/bookings", middleware.Route(h.Create, h.idempotency))
	router.GET("/booking/api/bookings/user/:userId", h.ListForUser)
}
