package response

import (
	"testing"

	"oficina_billing/internal/domain/entities"
	"oficina_billing/internal/domain/valueobjects"
)

func testBudget(t *testing.T) *entities.Budget {
	t.Helper()
	price, err := valueobjects.NewBRL(15000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	item, err := entities.NewBudgetItem("Inspection", 2, price)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := entities.NewBudget("budget-1", "order-1", []entities.BudgetItem{item})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return b
}

func TestFromBudget(t *testing.T) {
	b := testBudget(t)

	res := FromBudget(b)
	if res.ID != "budget-1" || res.ServiceOrderID != "order-1" {
		t.Fatalf("unexpected ids: %+v", res)
	}
	if res.Status != "PENDING" {
		t.Fatalf("unexpected status: %s", res.Status)
	}
	if res.TotalAmountInCents != 30000 || res.Currency != "BRL" {
		t.Fatalf("unexpected total: %+v", res)
	}
	if res.TotalAmount != "R$ 300,00" {
		t.Fatalf("unexpected formatted total: %s", res.TotalAmount)
	}
	if len(res.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(res.Items))
	}
	item := res.Items[0]
	if item.Description != "Inspection" || item.Quantity != 2 || item.UnitPriceInCents != 15000 || item.TotalPriceInCents != 30000 {
		t.Fatalf("unexpected item: %+v", item)
	}
	if res.ApprovedAt != nil || res.RejectedAt != nil {
		t.Fatalf("decision timestamps must be omitted while pending")
	}
}

func TestFromBudget_Approved(t *testing.T) {
	b := testBudget(t)
	if err := b.Approve(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	res := FromBudget(b)
	if res.Status != "APPROVED" || res.ApprovedAt == nil {
		t.Fatalf("unexpected response: %+v", res)
	}
}

func TestFromBudgets(t *testing.T) {
	res := FromBudgets([]*entities.Budget{testBudget(t)}, 7)
	if len(res.Budgets) != 1 || res.Total != 7 {
		t.Fatalf("unexpected list: %+v", res)
	}

	empty := FromBudgets(nil, 0)
	if empty.Budgets == nil || len(empty.Budgets) != 0 {
		t.Fatalf("expected empty non-nil slice, got %+v", empty.Budgets)
	}
}
