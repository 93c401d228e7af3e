package domain

import "time"

// RefundsByStatus breaks refund counts down by lifecycle state.
type RefundsByStatus struct {
	Pending  int `json:"pending"`
	Approved int `json:"approved"`
	Rejected int `json:"rejected"`
}

// RefundsSummary aggregates refund KPIs.
type RefundsSummary struct {
	TotalRefunds  int             `json:"totalRefunds"`
	TotalAmount   float64         `json:"totalAmount"`
	ByStatus      RefundsByStatus `json:"byStatus"`
	AverageAmount float64         `json:"averageAmount"`
}

// UsersSummary aggregates member KPIs.
type UsersSummary struct {
	TotalUsers          int `json:"totalUsers"`
	ActiveUsers         int `json:"activeUsers"`
	UsersWithoutRefunds int `json:"usersWithoutRefunds"`
}

// ClientsSummary aggregates client KPIs.
type ClientsSummary struct {
	TotalClients        int `json:"totalClients"`
	TotalWithRefunds    int `json:"totalWithRefunds"`
	TotalWithoutRefunds int `json:"totalWithoutRefunds"`
	ClosedContracts     int `json:"closedContracts"`
}

// DashboardSummary is the aggregate KPI payload for the dashboard screen.
type DashboardSummary struct {
	Refunds     RefundsSummary `json:"refunds"`
	Users       UsersSummary   `json:"users"`
	Clients     ClientsSummary `json:"clients"`
	GeneratedAt time.Time      `json:"generatedAt"`
}
