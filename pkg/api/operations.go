package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/refundesk/refundesk/pkg/domain"
)

// Login authenticates with email and password and returns the session
// token plus the signed-in user's profile.
func (c *Client) Login(ctx context.Context, email, password string) (*domain.AuthResponse, error) {
	var auth domain.AuthResponse
	req := domain.LoginRequest{Email: email, Password: password}
	if err := c.post(ctx, "/auth/login", "", req, &auth); err != nil {
		return nil, fmt.Errorf("client.Login: %w", err)
	}
	return &auth, nil
}

// Signup registers a new account. The backend returns the created user.
func (c *Client) Signup(ctx context.Context, req domain.CreateUserRequest) (*domain.User, error) {
	var user domain.User
	if err := c.post(ctx, "/users", "", req, &user); err != nil {
		return nil, fmt.Errorf("client.Signup: %w", err)
	}
	return &user, nil
}

// --- Members ---

// ListUsers fetches all members.
func (c *Client) ListUsers(ctx context.Context, token string) ([]domain.User, error) {
	var users []domain.User
	if err := c.get(ctx, "/users", token, &users); err != nil {
		return nil, fmt.Errorf("client.ListUsers: %w", err)
	}
	return users, nil
}

// GetUser fetches a single member by ID.
func (c *Client) GetUser(ctx context.Context, token string, id int64) (*domain.User, error) {
	var user domain.User
	if err := c.get(ctx, "/users/"+strconv.FormatInt(id, 10), token, &user); err != nil {
		return nil, fmt.Errorf("client.GetUser: %w", err)
	}
	return &user, nil
}

// CreateUser creates a member. Same endpoint as Signup, but performed
// by an authenticated operator from the members screen.
func (c *Client) CreateUser(ctx context.Context, token string, req domain.CreateUserRequest) (*domain.User, error) {
	var user domain.User
	if err := c.post(ctx, "/users", token, req, &user); err != nil {
		return nil, fmt.Errorf("client.CreateUser: %w", err)
	}
	return &user, nil
}

// UpdateUser updates a member.
func (c *Client) UpdateUser(ctx context.Context, token string, id int64, req domain.UpdateUserRequest) error {
	if err := c.put(ctx, "/users/"+strconv.FormatInt(id, 10), token, req, nil); err != nil {
		return fmt.Errorf("client.UpdateUser: %w", err)
	}
	return nil
}

// DeleteUser removes a member.
func (c *Client) DeleteUser(ctx context.Context, token string, id int64) error {
	if err := c.delete(ctx, "/users/"+strconv.FormatInt(id, 10), token); err != nil {
		return fmt.Errorf("client.DeleteUser: %w", err)
	}
	return nil
}

// --- Clients ---

// ListClients fetches all clients.
func (c *Client) ListClients(ctx context.Context, token string) ([]domain.Client, error) {
	var clients []domain.Client
	if err := c.get(ctx, "/clients", token, &clients); err != nil {
		return nil, fmt.Errorf("client.ListClients: %w", err)
	}
	return clients, nil
}

// CreateClient registers a client.
func (c *Client) CreateClient(ctx context.Context, token string, req domain.CreateClientRequest) (*domain.Client, error) {
	var created domain.Client
	if err := c.post(ctx, "/clients", token, req, &created); err != nil {
		return nil, fmt.Errorf("client.CreateClient: %w", err)
	}
	return &created, nil
}

// UpdateClient updates a client.
func (c *Client) UpdateClient(ctx context.Context, token, id string, req domain.UpdateClientRequest) error {
	if err := c.put(ctx, "/clients/"+url.PathEscape(id), token, req, nil); err != nil {
		return fmt.Errorf("client.UpdateClient: %w", err)
	}
	return nil
}

// DeleteClient removes a client.
func (c *Client) DeleteClient(ctx context.Context, token, id string) error {
	if err := c.delete(ctx, "/clients/"+url.PathEscape(id), token); err != nil {
		return fmt.Errorf("client.DeleteClient: %w", err)
	}
	return nil
}

// --- Refunds ---

// ListRefunds fetches all reimbursement requests.
func (c *Client) ListRefunds(ctx context.Context, token string) ([]domain.Refund, error) {
	var refunds []domain.Refund
	if err := c.get(ctx, "/refunds", token, &refunds); err != nil {
		return nil, fmt.Errorf("client.ListRefunds: %w", err)
	}
	return refunds, nil
}

// GetRefund fetches a single refund by ID.
func (c *Client) GetRefund(ctx context.Context, token, id string) (*domain.Refund, error) {
	var refund domain.Refund
	if err := c.get(ctx, "/refunds/"+url.PathEscape(id), token, &refund); err != nil {
		return nil, fmt.Errorf("client.GetRefund: %w", err)
	}
	return &refund, nil
}

// ListRefundsByUser fetches the refunds requested by one member.
func (c *Client) ListRefundsByUser(ctx context.Context, token, userID string) ([]domain.Refund, error) {
	var refunds []domain.Refund
	if err := c.get(ctx, "/refunds/user/"+url.PathEscape(userID), token, &refunds); err != nil {
		return nil, fmt.Errorf("client.ListRefundsByUser: %w", err)
	}
	return refunds, nil
}

// CreateRefund submits a reimbursement request.
func (c *Client) CreateRefund(ctx context.Context, token string, req domain.CreateRefundRequest) (*domain.Refund, error) {
	var created domain.Refund
	if err := c.post(ctx, "/refunds", token, req, &created); err != nil {
		return nil, fmt.Errorf("client.CreateRefund: %w", err)
	}
	return &created, nil
}

// UpdateRefund updates a refund; approving or rejecting sends only Status.
func (c *Client) UpdateRefund(ctx context.Context, token, id string, req domain.UpdateRefundRequest) error {
	if err := c.put(ctx, "/refunds/"+url.PathEscape(id), token, req, nil); err != nil {
		return fmt.Errorf("client.UpdateRefund: %w", err)
	}
	return nil
}

// DeleteRefund removes a refund.
func (c *Client) DeleteRefund(ctx context.Context, token, id string) error {
	if err := c.delete(ctx, "/refunds/"+url.PathEscape(id), token); err != nil {
		return fmt.Errorf("client.DeleteRefund: %w", err)
	}
	return nil
}

// --- Dashboard ---

// DashboardSummary fetches the aggregate KPI payload.
func (c *Client) DashboardSummary(ctx context.Context, token string) (*domain.DashboardSummary, error) {
	var summary domain.DashboardSummary
	if err := c.get(ctx, "/dashboard/summary", token, &summary); err != nil {
		return nil, fmt.Errorf("client.DashboardSummary: %w", err)
	}
	return &summary, nil
}

// RefundsReport fetches refund report rows, optionally filtered by status.
func (c *Client) RefundsReport(ctx context.Context, token string, status domain.RefundStatus) ([]domain.RefundReport, error) {
	path := "/dashboard/refunds/report"
	if status != "" {
		params := url.Values{}
		params.Set("status", string(status))
		path += "?" + params.Encode()
	}
	var report []domain.RefundReport
	if err := c.get(ctx, path, token, &report); err != nil {
		return nil, fmt.Errorf("client.RefundsReport: %w", err)
	}
	return report, nil
}
