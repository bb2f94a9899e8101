package controllers

import (
	"net/http"

	"github.com/mnmarket/marketlink-backend/api/responses"
	"github.com/mnmarket/marketlink-backend/internal/pickup"
)

type pickupSlot struct {
	Hour   int    `json:"hour"`
	Minute int    `json:"minute"`
	Label  string `json:"label"`
}

// PickupSlots lists the offered pickup times with display labels.
func PickupSlots(policy *pickup.Policy) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slots := policy.AllowedSlots()
		out := make([]pickupSlot, len(slots))
		for i, s := range slots {
			out[i] = pickupSlot{Hour: s.Hour, Minute: s.Minute, Label: s.String()}
		}
		responses.WriteSuccess(w, out)
	}
}
