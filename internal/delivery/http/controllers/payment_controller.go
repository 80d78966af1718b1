package controllers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"seekers/internal/delivery/http/helpers"
	"seekers/internal/delivery/http/middleware"
	"seekers/internal/domain"
)

// PaymentController handles the token purchase flow: package listing, checkout
// creation, and the payment gateway's server-to-server notification webhook.
type PaymentController struct {
	Logger  *slog.Logger
	Service domain.PaymentService
}

func NewPaymentController(logger *slog.Logger, svc domain.PaymentService) *PaymentController {
	return &PaymentController{Logger: logger, Service: svc}
}

// ListPackagesSuccessResponse is the success response envelope for GET /payments/packages (200).
type ListPackagesSuccessResponse struct {
	Data  []domain.TokenPackage `json:"data"`
	Error *helpers.APIError     `json:"error"`
}

// ListPackages godoc
// @Summary List purchasable token packages
// @Tags payments
// @Produce json
// @Success 200 {object} controllers.ListPackagesSuccessResponse "data is the package catalog"
// @Router /payments/packages [get]
func (c *PaymentController) ListPackages(w http.ResponseWriter, r *http.Request) {
	helpers.WriteJSONSuccess(w, http.StatusOK, c.Service.Packages(r.Context()))
}

// CreateCheckoutRequest is the request body for POST /payments.
type CreateCheckoutRequest struct {
	PackageType string `json:"package_type"`
}

// Validate implements Validator.
func (p CreateCheckoutRequest) Validate() []string {
	if strings.TrimSpace(p.PackageType) == "" {
		return []string{"package_type is required"}
	}
	return nil
}

// CreateCheckoutSuccessResponse is the success response envelope for POST /payments (201).
type CreateCheckoutSuccessResponse struct {
	Data  *domain.PaymentOrder `json:"data"`
	Error *helpers.APIError    `json:"error"`
}

// CreateCheckout godoc
// @Summary Create a checkout for a token package
// @Description Registers a pending order with the payment gateway and returns the order with the snap token the client widget consumes.
// @Tags payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateCheckoutRequest true "Package selection"
// @Success 201 {object} controllers.CreateCheckoutSuccessResponse "data contains the pending order"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found (unknown package)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /payments [post]
func (c *PaymentController) CreateCheckout(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	var req CreateCheckoutRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	order, err := c.Service.CreateCheckout(r.Context(), userID, req.PackageType)
	if err != nil {
		if errors.Is(err, domain.ErrPackageNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "unknown token package")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, order)
}

// NotificationSuccessResponse is the success response envelope for POST /payments/notification (200).
type NotificationSuccessResponse struct {
	Data  map[string]string `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// HandleNotification godoc
// @Summary Payment gateway notification webhook
// @Description Server-to-server callback from the payment gateway. Authenticated by the SHA-512 signature in the payload, not by a Bearer token. Settlement credits tokens exactly once; replays are acknowledged without side effects.
// @Tags payments
// @Accept json
// @Produce json
// @Param body body domain.PaymentNotification true "Gateway notification payload"
// @Success 200 {object} controllers.NotificationSuccessResponse "acknowledged"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized (bad signature)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found (unknown order)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /payments/notification [post]
func (c *PaymentController) HandleNotification(w http.ResponseWriter, r *http.Request) {
	// The gateway payload carries many fields beyond the ones we read, so this
	// endpoint decodes leniently instead of going through DecodeAndValidate.
	var notif domain.PaymentNotification
	if err := json.NewDecoder(r.Body).Decode(&notif); err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
		return
	}
	if notif.OrderID == "" || notif.SignatureKey == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "order_id and signature_key are required")
		return
	}
	if err := c.Service.HandleNotification(r.Context(), &notif); err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidSignature):
			c.Logger.WarnContext(r.Context(), "rejected payment notification", "order_id", notif.OrderID, "err", err)
			helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "invalid signature")
		case errors.Is(err, domain.ErrOrderNotFound):
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "order not found")
		default:
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
			helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		}
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, map[string]string{"status": "ok"})
}
