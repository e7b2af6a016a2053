package waitlist

import "errors"

var (
	ErrEntryNotFound   = errors.New("waitlist entry not found")
	ErrAlreadyReviewed = errors.New("waitlist entry already reviewed")
	ErrReasonRequired  = errors.New("rejection reason is required")
)
