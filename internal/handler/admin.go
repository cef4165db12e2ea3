package handler

import (
	"net/http"

	"github.com/dsolodov/foodwheel/internal/domain"
	"github.com/dsolodov/foodwheel/internal/logger"
	"github.com/dsolodov/foodwheel/internal/payment"
)

// AdminHandler serves the intent review surface. The router mounts it
// behind the shared-secret middleware; nothing here re-checks auth.
type AdminHandler struct {
	service payment.Service
}

func NewAdminHandler(service payment.Service) *AdminHandler {
	return &AdminHandler{service: service}
}

// IntentListResponse wraps the intent list so an empty result renders as
// a JSON array.
type IntentListResponse struct {
	Intents []domain.PaymentIntent `json:"intents"`
}

// IntentActionResponse reports a confirm or reject outcome together with
// the updated intent.
type IntentActionResponse struct {
	SuccessResponse
	Intent domain.PaymentIntent `json:"intent"`
}

// HandleListIntents returns intents, optionally filtered by ?status=.
func (h *AdminHandler) HandleListIntents(w http.ResponseWriter, r *http.Request) {
	status := domain.IntentStatus(GetOptionalQueryParam(r, "status", ""))
	if status != "" && status != domain.IntentPending && status != domain.IntentConfirmed && status != domain.IntentRejected {
		http.Error(w, ErrMsgInvalidRequestSummary, http.StatusBadRequest)
		return
	}

	intents, err := h.service.ListIntents(r.Context(), status)
	if err != nil {
		logger.FromContext(r.Context()).Error("Failed to list intents", "error", err)
		respondError(w, http.StatusInternalServerError, ErrMsgListIntentsFailed)
		return
	}

	if intents == nil {
		intents = []domain.PaymentIntent{}
	}
	respondJSON(w, http.StatusOK, IntentListResponse{Intents: intents})
}

// HandleConfirmIntent marks an intent paid and credits the player.
func (h *AdminHandler) HandleConfirmIntent(w http.ResponseWriter, r *http.Request) {
	intentID, ok := GetQueryParam(r, w, "id")
	if !ok {
		return
	}

	intent, err := h.service.Confirm(r.Context(), intentID)
	if err != nil {
		logger.FromContext(r.Context()).Error("Failed to confirm intent", "intent_id", intentID, "error", err)
		statusCode, userMsg := mapServiceErrorToUserMessage(err)
		respondError(w, statusCode, userMsg)
		return
	}

	respondJSON(w, http.StatusOK, IntentActionResponse{
		SuccessResponse: SuccessResponse{Message: MsgIntentConfirmedSuccess},
		Intent:          *intent,
	})
}

// HandleRejectIntent closes an intent without crediting anything.
func (h *AdminHandler) HandleRejectIntent(w http.ResponseWriter, r *http.Request) {
	intentID, ok := GetQueryParam(r, w, "id")
	if !ok {
		return
	}

	intent, err := h.service.Reject(r.Context(), intentID)
	if err != nil {
		logger.FromContext(r.Context()).Error("Failed to reject intent", "intent_id", intentID, "error", err)
		statusCode, userMsg := mapServiceErrorToUserMessage(err)
		respondError(w, statusCode, userMsg)
		return
	}

	respondJSON(w, http.StatusOK, IntentActionResponse{
		SuccessResponse: SuccessResponse{Message: MsgIntentRejectedSuccess},
		Intent:          *intent,
	})
}
