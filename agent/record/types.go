package record

import "time"

// Snapshots written to the persistence layer. Field names on the wire follow
// the original data files.

// OrderLine is one cart entry frozen into an order.
type OrderLine struct {
	ItemID    string  `json:"item_id"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	Notes     string  `json:"notes,omitempty"`
}

// Order is one placed grocery order. ID is derived from the placement
// timestamp.
type Order struct {
	ID        string      `json:"id"`
	CreatedAt time.Time   `json:"timestamp"`
	Items     []OrderLine `json:"items"`
	Total     float64     `json:"total"`
}

// CoffeeOrder is one confirmed coffee order.
type CoffeeOrder struct {
	CreatedAt time.Time `json:"timestamp"`
	DrinkType string    `json:"drinkType"`
	Size      string    `json:"size"`
	Milk      string    `json:"milk"`
	Extras    []string  `json:"extras"`
	Name      string    `json:"name"`
}

// CheckIn is one completed wellness check-in.
type CheckIn struct {
	ID            string    `json:"id"`
	CreatedAt     time.Time `json:"timestamp"`
	GuestName     string    `json:"guestName"`
	Mood          string    `json:"mood"`
	StressFactors []string  `json:"stressFactors"`
	Highlight     string    `json:"highlight,omitempty"`
}

// Lead is one qualified sales lead.
type Lead struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"timestamp"`
	Company   string    `json:"company"`
	Contact   string    `json:"contactName"`
	Budget    string    `json:"budget"`
	Timeline  string    `json:"timeline"`
	Needs     []string  `json:"needs"`
}

// Case is one fraud-review case. Unlike the append-only records above, cases
// are mutated in place keyed by userName.
type Case struct {
	UserName            string `json:"userName"`
	SecurityIdentifier  string `json:"securityIdentifier"`
	CardEnding          string `json:"cardEnding"`
	TransactionName     string `json:"transactionName"`
	TransactionAmount   string `json:"transactionAmount"`
	TransactionTime     string `json:"transactionTime"`
	TransactionLocation string `json:"transactionLocation"`
	TransactionSource   string `json:"transactionSource"`
	SecurityQuestion    string `json:"securityQuestion"`
	SecurityAnswer      string `json:"securityAnswer"`
	Status              string `json:"status"`
	OutcomeNote         string `json:"outcome_note"`
}

// Case status values.
const (
	CasePendingReview  = "pending_review"
	CaseConfirmedSafe  = "confirmed_safe"
	CaseConfirmedFraud = "confirmed_fraud"
)

// NewOrderID derives an order identifier from the placement time.
func NewOrderID(now time.Time) string {
	return "ORD-" + now.UTC().Format("20060102-150405")
}
