//go:build staging

package staging

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"
)

// TestPlayerState exercises the state endpoint for a throwaway user.
func TestPlayerState(t *testing.T) {
	userID := fmt.Sprintf("staging-%d", time.Now().UnixNano())

	resp, body := makeRequest(t, "GET", "/api/v1/state?user_id="+userID, nil)

	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected status 200, got %d", resp.StatusCode)
	}

	var state struct {
		Balance   int  `json:"balance"`
		FreeSpins int  `json:"free_spins"`
		Spinning  bool `json:"spinning"`
	}
	if err := json.Unmarshal(body, &state); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if state.Spinning {
		t.Error("Fresh user should not be spinning")
	}
}

func TestHistoryEmpty(t *testing.T) {
	userID := fmt.Sprintf("staging-%d", time.Now().UnixNano())

	resp, body := makeRequest(t, "GET", "/api/v1/history?user_id="+userID, nil)

	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected status 200, got %d", resp.StatusCode)
	}

	var history struct {
		Records []json.RawMessage `json:"records"`
	}
	if err := json.Unmarshal(body, &history); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if len(history.Records) != 0 {
		t.Errorf("Expected empty history for fresh user, got %d records", len(history.Records))
	}
}

func TestPaymentRequisites(t *testing.T) {
	resp, body := makeRequest(t, "GET", "/api/v1/payment/requisites", nil)

	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected status 200, got %d", resp.StatusCode)
	}

	var requisites struct {
		Methods []string `json:"methods"`
	}
	if err := json.Unmarshal(body, &requisites); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if len(requisites.Methods) == 0 {
		t.Error("Expected at least one payment method")
	}
}

// TestSpinDenied hits the spin endpoint with a fresh broke user. Unless the
// deployment runs free play, the request must be refused without side effects.
func TestSpinDenied(t *testing.T) {
	userID := fmt.Sprintf("staging-%d", time.Now().UnixNano())

	resp, _ := makeRequest(t, "POST", "/api/v1/spin", map[string]string{"user_id": userID})

	if resp.StatusCode != http.StatusPaymentRequired && resp.StatusCode != http.StatusOK {
		t.Errorf("Expected 402 (paid mode) or 200 (free play), got %d", resp.StatusCode)
	}
}

func TestAdminListIntents(t *testing.T) {
	resp, _ := makeRequest(t, "GET", "/api/v1/admin/payment/intents?status=pending", nil)

	// Without ADMIN_PASSWORD in the environment this must be rejected.
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("Expected 200 or 401, got %d", resp.StatusCode)
	}
}
