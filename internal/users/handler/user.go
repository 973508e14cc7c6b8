package handler

import (
	"net/http"

	"carrental/internal/users/service"
	httputil "carrental/pkg/http"
	"carrental/pkg/logger"
	"carrental/pkg/middleware"
	"carrental/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type Middleware = func(http.Handler) http.Handler

type LoginResponse struct {
	Message string      `json:"message"`
	User    *model.User `json:"user"`
	Token   string      `json:"token"`
}

type ProtectedResponse struct {
	Message string      `json:"message"`
	User    *model.User `json:"user,omitempty"`
}

type UserHandler struct {
	service      service.UserService
	log          *logger.Logger
	authenticate Middleware
	otpLimit     Middleware
}

// NewUserHandler wires the auth endpoints. otpLimit guards the endpoints that
// send or check OTPs and may be nil.
func NewUserHandler(service service.UserService, log *logger.Logger, authenticate, otpLimit Middleware) *UserHandler {
	return &UserHandler{
		service:      service,
		log:          log,
		authenticate: authenticate,
		otpLimit:     otpLimit,
	}
}

func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.RegisterRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.writeError(w, "Register", err)
		return
	}

	if _, err := h.service.Register(r.Context(), &req); err != nil {
		h.writeError(w, "Register", err)
		return
	}

	if err := httputil.WriteMessage(w, http.StatusCreated, "User registered successfully. OTP sent to your email."); err != nil {
		h.log.Error("failed to write created response", "handler", "Register", "operation", "WriteMessage", "error", err)
	}
}

func (h *UserHandler) RequestOTP(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.RequestOTPRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.writeError(w, "RequestOTP", err)
		return
	}

	if err := h.service.RequestOTP(r.Context(), &req); err != nil {
		h.writeError(w, "RequestOTP", err)
		return
	}

	if err := httputil.WriteMessage(w, http.StatusOK, "OTP sent to your email."); err != nil {
		h.log.Error("failed to write success response", "handler", "RequestOTP", "operation", "WriteMessage", "error", err)
	}
}

func (h *UserHandler) VerifyOTP(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.VerifyOTPRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.writeError(w, "VerifyOTP", err)
		return
	}

	result, err := h.service.VerifyOTP(r.Context(), &req)
	if err != nil {
		h.writeError(w, "VerifyOTP", err)
		return
	}

	resp := LoginResponse{
		Message: "Login successful",
		User:    result.User,
		Token:   result.Token,
	}
	if err := httputil.WriteJSON(w, http.StatusOK, resp); err != nil {
		h.log.Error("failed to write success response", "handler", "VerifyOTP", "operation", "WriteJSON", "error", err)
	}
}

// Protected is reachable only through the authenticate middleware.
func (h *UserHandler) Protected(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	resp := ProtectedResponse{Message: "This is a protected route"}

	if userID, ok := middleware.UserIDFromContext(r.Context()); ok {
		// The token already proved the caller; a failed profile lookup only
		// drops the user from the body.
		user, err := h.service.GetByID(r.Context(), userID)
		if err != nil {
			h.log.Warn("profile lookup failed", "handler", "Protected", "operation", "GetByID", "user_id", userID, "error", err)
		} else {
			resp.User = user
		}
	}

	if err := httputil.WriteJSON(w, http.StatusOK, resp); err != nil {
		h.log.Error("failed to write success response", "handler", "Protected", "operation", "WriteJSON", "error", err)
	}
}

func (h *UserHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "operation", "WriteError", "error", writeErr)
	}
}

func (h *UserHandler) RegisterRoutes(router *httprouter.Router) {
	router.Handler(http.MethodPost, "/register", middleware.Route(h.Register, h.otpLimit))
	router.Handler(http.MethodPost, "/request-otp", middleware.Route(h.RequestOTP, h.otpLimit))
	router.Handler(http.MethodPost, "/verify-otp", middleware.Route(h.VerifyOTP, h.otpLimit))
	router.Handler(http.MethodGet, "/protected", middleware.Route(h.Protected, h.authenticate))
}
