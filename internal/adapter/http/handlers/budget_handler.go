package handlers

import (
	"log"
	"net/http"
	"strconv"

	request "oficina_billing/internal/adapter/http/dto/request"
	response "oficina_billing/internal/adapter/http/dto/response"
	"oficina_billing/internal/domain/entities"
	"oficina_billing/internal/usecase"
	"oficina_billing/internal/usecase/interfaces"
	"oficina_billing/pkg"

	"github.com/gin-gonic/gin"
)

var errInvalidBudgetPayload = pkg.NewDomainErrorSimple("INVALID_BUDGET_INPUT", "Invalid budget payload", http.StatusBadRequest)

// BudgetHandler handles HTTP requests for service-order budgets.

type BudgetHandler struct {
	usecase usecase.IBudgetUseCase
}

func NewBudgetHandler(uc usecase.IBudgetUseCase) *BudgetHandler {
	return &BudgetHandler{usecase: uc}
}

// CreateBudget creates a PENDING budget from a list of line items.
func (h *BudgetHandler) CreateBudget(c *gin.Context) {
	var payload request.CreateBudgetRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidBudgetPayload.HTTPStatus, errInvalidBudgetPayload.ToHTTPError())
		return
	}

	items := make([]usecase.BudgetItemInput, 0, len(payload.Items))
	for _, item := range payload.Items {
		items = append(items, usecase.BudgetItemInput{
			Description:      item.Description,
			Quantity:         item.Quantity,
			UnitPriceInCents: item.UnitPriceInCents,
			Currency:         item.Currency,
		})
	}

	budget, err := h.usecase.CreateBudget(c.Request.Context(), payload.ServiceOrderID, items)
	if err != nil {
		log.Printf("[budget][handler] create failed service_order_id=%s err=%v", payload.ServiceOrderID, err)
		appErr := mapDomainError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusCreated, response.FromBudget(budget))
}

// GetBudget returns a budget by id.
func (h *BudgetHandler) GetBudget(c *gin.Context) {
	budget, err := h.usecase.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		appErr := mapDomainError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromBudget(budget))
}

// ListBudgets lists budgets with optional service_order_id/status/limit/offset
// query filters.
func (h *BudgetHandler) ListBudgets(c *gin.Context) {
	filters := interfaces.BudgetFilters{
		ServiceOrderID: c.Query("service_order_id"),
		Status:         entities.BudgetStatus(c.Query("status")),
		Limit:          queryInt(c, "limit"),
		Offset:         queryInt(c, "offset"),
	}

	budgets, total, err := h.usecase.List(c.Request.Context(), filters)
	if err != nil {
		appErr := mapDomainError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromBudgets(budgets, total))
}

// ApproveBudget moves a budget to APPROVED.
func (h *BudgetHandler) ApproveBudget(c *gin.Context) {
	budgetID := c.Param("id")
	budget, err := h.usecase.Approve(c.Request.Context(), budgetID)
	if err != nil {
		log.Printf("[budget][handler] approve failed budget_id=%s err=%v", budgetID, err)
		appErr := mapDomainError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromBudget(budget))
}

// RejectBudget moves a budget to REJECTED with an optional reason.
func (h *BudgetHandler) RejectBudget(c *gin.Context) {
	budgetID := c.Param("id")

	var payload request.RejectBudgetRequest
	if err := c.ShouldBindJSON(&payload); err != nil && err.Error() != "EOF" {
		c.JSON(errInvalidBudgetPayload.HTTPStatus, errInvalidBudgetPayload.ToHTTPError())
		return
	}

	budget, err := h.usecase.Reject(c.Request.Context(), budgetID, payload.Reason)
	if err != nil {
		log.Printf("[budget][handler] reject failed budget_id=%s err=%v", budgetID, err)
		appErr := mapDomainError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromBudget(budget))
}

func queryInt(c *gin.Context, key string) int {
	v, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return 0
	}
	return v
}
