package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"oficina_billing/internal/adapter/http/handlers/mocks"
	"oficina_billing/internal/domain/entities"
	"oficina_billing/internal/domain/errs"
	"oficina_billing/internal/domain/valueobjects"
	"oficina_billing/internal/usecase"
	"oficina_billing/internal/usecase/interfaces"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

func testBudget(t *testing.T, id, serviceOrderID string) *entities.Budget {
	t.Helper()
	price, err := valueobjects.NewBRL(15000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	item, err := entities.NewBudgetItem("Inspection", 1, price)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := entities.NewBudget(id, serviceOrderID, []entities.BudgetItem{item})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return b
}

func budgetRouter(h *BudgetHandler) *gin.Engine {
	r := gin.New()
	r.POST("/v1/budgets", h.CreateBudget)
	r.GET("/v1/budgets", h.ListBudgets)
	r.GET("/v1/budgets/:id", h.GetBudget)
	r.PATCH("/v1/budgets/:id/approve", h.ApproveBudget)
	r.PATCH("/v1/budgets/:id/reject", h.RejectBudget)
	return r
}

func TestBudgetHandler_CreateBudget(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("invalid payload", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIBudgetUseCase(ctrl)
		r := budgetRouter(NewBudgetHandler(uc))

		req := httptest.NewRequest(http.MethodPost, "/v1/budgets", bytes.NewBufferString("{"))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("missing items rejected by binding", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIBudgetUseCase(ctrl)
		r := budgetRouter(NewBudgetHandler(uc))

		req := httptest.NewRequest(http.MethodPost, "/v1/budgets", bytes.NewBufferString(`{"service_order_id":"order-1"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("conflict", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIBudgetUseCase(ctrl)
		r := budgetRouter(NewBudgetHandler(uc))

		uc.EXPECT().CreateBudget(gomock.Any(), "order-1", gomock.Any()).Return(nil, &errs.ConflictError{Resource: "budget", Key: "service order order-1"})

		body := `{"service_order_id":"order-1","items":[{"description":"Inspection","quantity":1,"unit_price_in_cents":15000}]}`
		req := httptest.NewRequest(http.MethodPost, "/v1/budgets", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", w.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIBudgetUseCase(ctrl)
		r := budgetRouter(NewBudgetHandler(uc))

		uc.EXPECT().CreateBudget(gomock.Any(), "order-1", []usecase.BudgetItemInput{
			{Description: "Inspection", Quantity: 1, UnitPriceInCents: 15000},
		}).Return(testBudget(t, "budget-1", "order-1"), nil)

		body := `{"service_order_id":"order-1","items":[{"description":"Inspection","quantity":1,"unit_price_in_cents":15000}]}`
		req := httptest.NewRequest(http.MethodPost, "/v1/budgets", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", w.Code)
		}

		var resp map[string]any
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("invalid response json: %v", err)
		}
		if resp["id"] != "budget-1" || resp["status"] != "PENDING" {
			t.Fatalf("unexpected response: %v", resp)
		}
		if resp["total_amount_in_cents"] != float64(15000) {
			t.Fatalf("unexpected total: %v", resp["total_amount_in_cents"])
		}
	})
}

func TestBudgetHandler_GetBudget(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIBudgetUseCase(ctrl)
		r := budgetRouter(NewBudgetHandler(uc))

		uc.EXPECT().GetByID(gomock.Any(), "budget-9").Return(nil, &errs.NotFoundError{Resource: "budget", ID: "budget-9"})

		req := httptest.NewRequest(http.MethodGet, "/v1/budgets/budget-9", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIBudgetUseCase(ctrl)
		r := budgetRouter(NewBudgetHandler(uc))

		uc.EXPECT().GetByID(gomock.Any(), "budget-1").Return(testBudget(t, "budget-1", "order-1"), nil)

		req := httptest.NewRequest(http.MethodGet, "/v1/budgets/budget-1", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})
}

func TestBudgetHandler_ListBudgets(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("filters from query string", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIBudgetUseCase(ctrl)
		r := budgetRouter(NewBudgetHandler(uc))

		uc.EXPECT().List(gomock.Any(), interfaces.BudgetFilters{
			ServiceOrderID: "order-1",
			Status:         entities.BudgetStatusPending,
			Limit:          5,
			Offset:         10,
		}).Return([]*entities.Budget{testBudget(t, "budget-1", "order-1")}, 1, nil)

		req := httptest.NewRequest(http.MethodGet, "/v1/budgets?service_order_id=order-1&status=PENDING&limit=5&offset=10", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}

		var resp map[string]any
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("invalid response json: %v", err)
		}
		if resp["total"] != float64(1) {
			t.Fatalf("unexpected total: %v", resp["total"])
		}
	})
}

func TestBudgetHandler_ApproveBudget(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("invalid transition", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIBudgetUseCase(ctrl)
		r := budgetRouter(NewBudgetHandler(uc))

		uc.EXPECT().Approve(gomock.Any(), "budget-1").Return(nil, &errs.InvalidStatusTransitionError{
			Entity: "budget", Current: "REJECTED", Attempted: "APPROVED", Allowed: []string{},
		})

		req := httptest.NewRequest(http.MethodPatch, "/v1/budgets/budget-1/approve", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIBudgetUseCase(ctrl)
		r := budgetRouter(NewBudgetHandler(uc))

		approved := testBudget(t, "budget-1", "order-1")
		if err := approved.Approve(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		uc.EXPECT().Approve(gomock.Any(), "budget-1").Return(approved, nil)

		req := httptest.NewRequest(http.MethodPatch, "/v1/budgets/budget-1/approve", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}

		var resp map[string]any
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("invalid response json: %v", err)
		}
		if resp["status"] != "APPROVED" || resp["approved_at"] == nil {
			t.Fatalf("unexpected response: %v", resp)
		}
	})
}

func TestBudgetHandler_RejectBudget(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("reason forwarded", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIBudgetUseCase(ctrl)
		r := budgetRouter(NewBudgetHandler(uc))

		rejected := testBudget(t, "budget-1", "order-1")
		if err := rejected.Reject(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		uc.EXPECT().Reject(gomock.Any(), "budget-1", "too expensive").Return(rejected, nil)

		req := httptest.NewRequest(http.MethodPatch, "/v1/budgets/budget-1/reject", bytes.NewBufferString(`{"reason":"too expensive"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})

	t.Run("empty body is allowed", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIBudgetUseCase(ctrl)
		r := budgetRouter(NewBudgetHandler(uc))

		rejected := testBudget(t, "budget-1", "order-1")
		if err := rejected.Reject(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		uc.EXPECT().Reject(gomock.Any(), "budget-1", "").Return(rejected, nil)

		req := httptest.NewRequest(http.MethodPatch, "/v1/budgets/budget-1/reject", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})
}
