package record

import (
	"testing"
	"time"
)

func TestOrderStatusBuckets(t *testing.T) {
	t.Parallel()

	placed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		elapsed time.Duration
		want    string
	}{
		{0, "Order received"},
		{59 * time.Second, "Order received"},
		{time.Minute, "Preparing your order"},
		{4 * time.Minute, "Preparing your order"},
		{5 * time.Minute, "Out for delivery"},
		{14 * time.Minute, "Out for delivery"},
		{15 * time.Minute, "Delivered"},
		{24 * time.Hour, "Delivered"},
	}
	for _, tc := range cases {
		if got := OrderStatus(placed, placed.Add(tc.elapsed)); got != tc.want {
			t.Fatalf("elapsed %v: status = %q, want %q", tc.elapsed, got, tc.want)
		}
	}
}

func TestNewOrderID(t *testing.T) {
	t.Parallel()

	at := time.Date(2026, 3, 1, 12, 30, 45, 0, time.UTC)
	if got, want := NewOrderID(at), "ORD-20260301-123045"; got != want {
		t.Fatalf("order id = %q, want %q", got, want)
	}
}
