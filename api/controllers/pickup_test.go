package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mnmarket/marketlink-backend/internal/pickup"
)

func TestPickupSlots(t *testing.T) {
	rec := httptest.NewRecorder()
	PickupSlots(pickup.NewPolicy()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/pickup-slots", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}

	var envelope struct {
		Data []struct {
			Hour   int    `json:"hour"`
			Minute int    `json:"minute"`
			Label  string `json:"label"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(envelope.Data) != 11 {
		t.Fatalf("expected 11 slots, got %d", len(envelope.Data))
	}
	if envelope.Data[0].Label != "8:00 AM" {
		t.Fatalf("unexpected first label %q", envelope.Data[0].Label)
	}
	if last := envelope.Data[len(envelope.Data)-1]; last.Label != "1:00 PM" || last.Hour != 13 {
		t.Fatalf("unexpected last slot %+v", last)
	}
}
