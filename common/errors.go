package common

const (
	ErrCodeBadRequestInvalidBody      = "bad_request.body.invalid"
	ErrCodeBadRequestEmptyCart        = "bad_request.cart.empty"
	ErrCodeBadRequestInvalidItem      = "bad_request.cart.item.invalid"
	ErrCodeBadRequestInvalidDateRange = "bad_request.dates.invalid_range"
	ErrCodeBadRequestMissingParams    = "bad_request.query.missing_params"
	ErrCodeInternal                   = "internal"
)

var (
	ErrBadRequestInvalidBody      = StayflowError{Code: ErrCodeBadRequestInvalidBody}
	ErrBadRequestEmptyCart        = StayflowError{Code: ErrCodeBadRequestEmptyCart}
	ErrBadRequestInvalidItem      = StayflowError{Code: ErrCodeBadRequestInvalidItem}
	ErrBadRequestInvalidDateRange = StayflowError{Code: ErrCodeBadRequestInvalidDateRange}
	ErrBadRequestMissingParams    = StayflowError{Code: ErrCodeBadRequestMissingParams}
	ErrInternal                   = StayflowError{Code: ErrCodeInternal}
)

type StayflowError struct {
	Code string
}

func (se StayflowError) Error() string {
	return se.Code
}
