package services

import (
	"testing"

	"little-lemon-api/models"
)

func TestValidStatusTransition(t *testing.T) {
	tests := []struct {
		from, to models.OrderStatus
		want     bool
	}{
		{models.StatusPending, models.StatusDelivered, true},
		{models.StatusPending, models.StatusPending, true},
		{models.StatusDelivered, models.StatusDelivered, true},
		{models.StatusDelivered, models.StatusPending, false},
	}
	for _, tt := range tests {
		if got := validStatusTransition(tt.from, tt.to); got != tt.want {
			t.Errorf("validStatusTransition(%q, %q) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}
