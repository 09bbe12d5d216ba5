package handlers

import (
	"errors"
	"net/http"

	"oficina_billing/internal/domain/errs"
	"oficina_billing/internal/usecase"
	"oficina_billing/pkg"
)

// mapDomainError translates the domain error taxonomy into the HTTP error
// envelope. Matching is structural (errors.As/Is); message text is never
// inspected.
func mapDomainError(err error) *pkg.AppError {
	var (
		validation *errs.ValidationError
		mismatch   *errs.CurrencyMismatchError
		transition *errs.InvalidStatusTransitionError
		notFound   *errs.NotFoundError
		conflict   *errs.ConflictError
		gateway    *errs.GatewayError
		publish    *errs.PublishError
	)

	switch {
	case errors.As(err, &validation):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", validation.Message, http.StatusBadRequest)
	case errors.As(err, &mismatch):
		return pkg.NewDomainErrorSimple("CURRENCY_MISMATCH", mismatch.Error(), http.StatusBadRequest)
	case errors.As(err, &transition):
		return pkg.NewDomainErrorSimple("INVALID_STATUS_TRANSITION", transition.Error(), http.StatusBadRequest)
	case errors.As(err, &notFound):
		return pkg.NewDomainErrorSimple("NOT_FOUND", notFound.Error(), http.StatusNotFound)
	case errors.As(err, &conflict):
		return pkg.NewDomainErrorSimple("ALREADY_EXISTS", conflict.Error(), http.StatusConflict)
	case errors.Is(err, usecase.ErrBudgetNotApproved):
		return pkg.NewDomainErrorSimple("BUDGET_NOT_APPROVED", "Budget must be approved before creating payment", http.StatusConflict)
	case errors.As(err, &gateway):
		return pkg.NewDomainError("PAYMENT_PROVIDER_ERROR", "Payment provider request failed", err, http.StatusBadGateway)
	case errors.As(err, &publish):
		return pkg.NewDomainError("EVENT_PUBLISH_ERROR", "Event could not be published", err, http.StatusInternalServerError)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
