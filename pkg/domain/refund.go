package domain

import "time"

// RefundStatus is the lifecycle state of a reimbursement request.
type RefundStatus string

const (
	RefundPending  RefundStatus = "PENDING"
	RefundApproved RefundStatus = "APPROVED"
	RefundRejected RefundStatus = "REJECTED"
)

// Valid reports whether s is one of the known statuses.
func (s RefundStatus) Valid() bool {
	switch s {
	case RefundPending, RefundApproved, RefundRejected:
		return true
	}
	return false
}

// RefundUser is the minimal requester info embedded in a refund.
type RefundUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Refund represents an expense-reimbursement request.
type Refund struct {
	ID          string       `json:"id"`
	Description string       `json:"description"`
	Amount      float64      `json:"amount"`
	Status      RefundStatus `json:"status"`
	UserID      string       `json:"userId"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
	User        *RefundUser  `json:"user,omitempty"`
}

// RefundReport is a refund row enriched for reporting.
type RefundReport struct {
	ID                string       `json:"id"`
	Description       string       `json:"description"`
	Amount            float64      `json:"amount"`
	Status            RefundStatus `json:"status"`
	UserID            string       `json:"userId"`
	CreatedAt         time.Time    `json:"createdAt"`
	UpdatedAt         time.Time    `json:"updatedAt"`
	DaysSinceCreation int          `json:"daysSinceCreation"`
}

// CreateRefundRequest is the payload for requesting a reimbursement.
type CreateRefundRequest struct {
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	UserID      string  `json:"userId"`
}

// UpdateRefundRequest is the payload for updating a refund.
// Approvals and rejections send only Status.
type UpdateRefundRequest struct {
	Description string       `json:"description,omitempty"`
	Amount      float64      `json:"amount,omitempty"`
	Status      RefundStatus `json:"status,omitempty"`
}
