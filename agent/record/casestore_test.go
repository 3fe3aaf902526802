package record

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	contractx "github.com/kritsw/attendant/agent/contract"
)

func seedCases(t *testing.T) string {
	t.Helper()

	cases := []Case{
		{
			UserName:         "John Appleseed",
			SecurityQuestion: "What is your mother's maiden name?",
			SecurityAnswer:   "Smith",
			CardEnding:       "4242",
			TransactionName:  "TechWorld Online",
			Status:           CasePendingReview,
		},
		{
			UserName:       "Dana Reyes",
			SecurityAnswer: "Rover",
			Status:         CasePendingReview,
		},
	}
	data, err := json.MarshalIndent(cases, "", "  ")
	if err != nil {
		t.Fatalf("marshal fixture: %v", err)
	}
	path := filepath.Join(t.TempDir(), "fraud_cases.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestCaseStoreFind(t *testing.T) {
	t.Parallel()

	store := NewCaseStore(seedCases(t))
	ctx := context.Background()

	c, err := store.Find(ctx, "john appleseed")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if c.SecurityAnswer != "Smith" {
		t.Fatalf("case = %+v, want John Appleseed's", c)
	}

	if _, err := store.Find(ctx, "Nobody Here"); !errors.Is(err, contractx.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestCaseStoreUpdateOutcome(t *testing.T) {
	t.Parallel()

	store := NewCaseStore(seedCases(t))
	ctx := context.Background()

	found, err := store.UpdateOutcome(ctx, "John Appleseed", CaseConfirmedSafe, "customer recognized the purchase")
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !found {
		t.Fatal("update of present case reported not-found")
	}

	c, err := store.Find(ctx, "John Appleseed")
	if err != nil {
		t.Fatalf("find after update: %v", err)
	}
	if c.Status != CaseConfirmedSafe || c.OutcomeNote != "customer recognized the purchase" {
		t.Fatalf("case after update = %+v", c)
	}

	// The other case must be untouched.
	other, err := store.Find(ctx, "Dana Reyes")
	if err != nil {
		t.Fatalf("find other: %v", err)
	}
	if other.Status != CasePendingReview {
		t.Fatalf("unrelated case mutated: %+v", other)
	}
}

func TestCaseStoreUpdateOutcomeMissing(t *testing.T) {
	t.Parallel()

	store := NewCaseStore(seedCases(t))
	found, err := store.UpdateOutcome(context.Background(), "Nobody Here", CaseConfirmedFraud, "")
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if found {
		t.Fatal("update of absent case reported found")
	}
}
