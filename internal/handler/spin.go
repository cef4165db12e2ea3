package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/dsolodov/foodwheel/internal/domain"
	"github.com/dsolodov/foodwheel/internal/history"
	"github.com/dsolodov/foodwheel/internal/logger"
	"github.com/dsolodov/foodwheel/internal/spin"
)

type SpinHandler struct {
	service   spin.Service
	spinPrice int
	sectors   []domain.Sector
}

func NewSpinHandler(service spin.Service, spinPrice int, sectors []domain.Sector) *SpinHandler {
	return &SpinHandler{service: service, spinPrice: spinPrice, sectors: sectors}
}

type SpinRequest struct {
	UserID string `json:"user_id" validate:"required,max=64"`
}

// HandleSpin accepts a spin request and returns the animation plan.
// Denials come back as structured errors: the client distinguishes an empty
// wallet from a wheel that is already spinning.
func (h *SpinHandler) HandleSpin(w http.ResponseWriter, r *http.Request) {
	var req SpinRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Spin"); err != nil {
		return
	}

	result, err := h.service.RequestSpin(r.Context(), req.UserID)
	if err != nil {
		logger.FromContext(r.Context()).Warn("Spin request refused", "user_id", req.UserID, "error", err)
		statusCode, userMsg := mapServiceErrorToUserMessage(err)
		respondError(w, statusCode, userMsg)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// StateResponse is the full display snapshot: player state plus the static
// game parameters the rendering layer draws the wheel from.
type StateResponse struct {
	Balance   int             `json:"balance"`
	FreeSpins int             `json:"free_spins"`
	Spinning  bool            `json:"spinning"`
	SpinPrice int             `json:"spin_price"`
	Sectors   []domain.Sector `json:"sectors"`
}

// HandleGetState returns the player state along with spin price and sectors.
func (h *SpinHandler) HandleGetState(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetQueryParam(r, w, "user_id")
	if !ok {
		return
	}

	state, err := h.service.State(r.Context(), userID)
	if err != nil {
		logger.FromContext(r.Context()).Error("Failed to get state", "user_id", userID, "error", err)
		respondError(w, http.StatusInternalServerError, ErrMsgGetStateFailed)
		return
	}

	respondJSON(w, http.StatusOK, StateResponse{
		Balance:   state.Balance,
		FreeSpins: state.FreeSpins,
		Spinning:  state.Spinning,
		SpinPrice: h.spinPrice,
		Sectors:   h.sectors,
	})
}

// HistoryResponse wraps the record list so an empty history still renders
// as a JSON array, never null.
type HistoryResponse struct {
	Records []HistoryRecordView `json:"records"`
}

// HistoryRecordView is the display form of one spin record.
type HistoryRecordView struct {
	Kind       string `json:"kind"`
	PrizeLabel string `json:"prize_label,omitempty"`
	PrizeIcon  string `json:"prize_icon,omitempty"`
	Code       string `json:"code,omitempty"`
	Timestamp  string `json:"timestamp"`
}

// HandleGetHistory returns the newest-first spin records, capped at the
// display limit unless a smaller limit is requested.
func (h *SpinHandler) HandleGetHistory(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetQueryParam(r, w, "user_id")
	if !ok {
		return
	}

	limit := history.DisplayLimit
	if raw := GetOptionalQueryParam(r, "limit", ""); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			http.Error(w, ErrMsgInvalidLimit, http.StatusBadRequest)
			return
		}
		if parsed < limit {
			limit = parsed
		}
	}

	records, err := h.service.History(r.Context(), userID, limit)
	if err != nil {
		logger.FromContext(r.Context()).Error("Failed to get history", "user_id", userID, "error", err)
		respondError(w, http.StatusInternalServerError, ErrMsgGetHistoryFailed)
		return
	}

	views := make([]HistoryRecordView, 0, len(records))
	for _, record := range records {
		views = append(views, HistoryRecordView{
			Kind:       string(record.Kind),
			PrizeLabel: record.PrizeLabel,
			PrizeIcon:  record.PrizeIcon,
			Code:       record.Code,
			Timestamp:  record.Timestamp.Format(time.RFC3339),
		})
	}

	respondJSON(w, http.StatusOK, HistoryResponse{Records: views})
}
