package domain

import "time"

type WaitlistStatus string

const (
	WaitlistPending  WaitlistStatus = "pending"
	WaitlistApproved WaitlistStatus = "approved"
	WaitlistRejected WaitlistStatus = "rejected"
)

type WaitlistEntry struct {
	ID             int64          `json:"id"`
	Email          string         `json:"email"`
	Name           string         `json:"name"`
	Status         WaitlistStatus `json:"status"`
	RejectedReason string         `json:"rejected_reason,omitempty"`
	ReviewedBy     *int64         `json:"reviewed_by,omitempty"`
	ReviewedAt     *time.Time     `json:"reviewed_at,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
}
