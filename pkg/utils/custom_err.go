package utils

import "errors"

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrInvalidDateRange  = errors.New("invalid date range")
	ErrInvalidPage       = errors.New("invalid page parameter")
	ErrInvalidPageSize   = errors.New("invalid page size parameter")
	ErrTripNotFound      = errors.New("trip not found")
	ErrActivityNotFound  = errors.New("activity not found")
	ErrDatabaseError     = errors.New("database error")
	ErrPlannerFailed     = errors.New("planner backend failed")
	ErrPoorQualityInput  = errors.New("not enough signal in the request")
	ErrUnexpectedAIReply = errors.New("unexpected behavior of AI backend")
)
