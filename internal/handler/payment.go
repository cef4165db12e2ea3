package handler

import (
	"net/http"

	"github.com/dsolodov/foodwheel/internal/config"
	"github.com/dsolodov/foodwheel/internal/domain"
	"github.com/dsolodov/foodwheel/internal/logger"
	"github.com/dsolodov/foodwheel/internal/payment"
)

type PaymentHandler struct {
	service    payment.Service
	requisites config.PaymentRequisites
	venue      string
	phone      string
}

func NewPaymentHandler(service payment.Service, cfg *config.Config) *PaymentHandler {
	return &PaymentHandler{
		service:    service,
		requisites: cfg.Payment,
		venue:      cfg.VenueAddress,
		phone:      cfg.ContactPhone,
	}
}

type CreateIntentRequest struct {
	UserID string `json:"user_id" validate:"required,max=64"`
	Amount int    `json:"amount" validate:"required,gt=0"`
	Spins  int    `json:"spins" validate:"required,gt=0"`
	Method string `json:"method" validate:"required,payment_method"`
}

// HandleCreateIntent records a declared payment. Nothing is credited here;
// an admin confirms the intent once the money actually arrives.
func (h *PaymentHandler) HandleCreateIntent(w http.ResponseWriter, r *http.Request) {
	var req CreateIntentRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Create payment intent"); err != nil {
		return
	}

	intent, err := h.service.CreateIntent(r.Context(), req.UserID, req.Amount, req.Spins, domain.PaymentMethod(req.Method))
	if err != nil {
		logger.FromContext(r.Context()).Error("Failed to create payment intent",
			"user_id", req.UserID, "error", err)
		statusCode, userMsg := mapServiceErrorToUserMessage(err)
		respondError(w, statusCode, userMsg)
		return
	}

	respondJSON(w, http.StatusCreated, intent)
}

// RequisitesResponse is the presentation data for the payment panel.
type RequisitesResponse struct {
	VenueAddress string                   `json:"venue_address"`
	ContactPhone string                   `json:"contact_phone,omitempty"`
	Requisites   config.PaymentRequisites `json:"requisites"`
	Methods      []string                 `json:"methods"`
}

// HandleGetRequisites returns where and how to pay. Static per deployment.
func (h *PaymentHandler) HandleGetRequisites(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, RequisitesResponse{
		VenueAddress: h.venue,
		ContactPhone: h.phone,
		Requisites:   h.requisites,
		Methods: []string{
			string(domain.MethodCard),
			string(domain.MethodSBP),
			string(domain.MethodManual),
		},
	})
}
