package record

import "time"

// Elapsed-time buckets standing in for a real fulfillment state machine.
// Production should replace this with explicit placed -> preparing ->
// dispatched -> delivered transitions driven by external events.
var statusBuckets = []struct {
	within time.Duration
	label  string
}{
	{time.Minute, "Order received"},
	{5 * time.Minute, "Preparing your order"},
	{15 * time.Minute, "Out for delivery"},
}

const statusDelivered = "Delivered"

// OrderStatus maps the elapsed time since placement onto an ordered status
// bucket.
func OrderStatus(placedAt, now time.Time) string {
	elapsed := now.Sub(placedAt)
	for _, bucket := range statusBuckets {
		if elapsed < bucket.within {
			return bucket.label
		}
	}
	return statusDelivered
}
