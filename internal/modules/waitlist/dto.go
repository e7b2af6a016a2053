package waitlist

import "draftdeck/internal/domain"

type JoinRequest struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name" validate:"required,max=120"`
}

type RejectRequest struct {
	Reason string `json:"reason" binding:"required"`
}

type ListResponse struct {
	Entries []domain.WaitlistEntry `json:"entries"`
	Total   int64                  `json:"total"`
	Page    int                    `json:"page"`
	Limit   int                    `json:"limit"`
}
