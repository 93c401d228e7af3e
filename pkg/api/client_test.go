package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/refundesk/refundesk/pkg/domain"
)

func TestLogin(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/login" || r.Method != http.MethodPost {
			http.NotFound(w, r)
			return
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q, want application/json", ct)
		}
		var req domain.LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if req.Email != "a@b.com" || req.Password != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode(domain.AuthResponse{ //nolint:errcheck
			AccessToken: "T",
			User:        domain.User{ID: 1, Name: "A", Email: "a@b.com", Role: "user"},
		})
	}))
	defer srv.Close()

	c := New(srv.URL)
	auth, err := c.Login(context.Background(), "a@b.com", "secret")
	if err != nil {
		t.Fatalf("Login() error: %v", err)
	}
	if auth.AccessToken != "T" {
		t.Errorf("AccessToken = %q, want %q", auth.AccessToken, "T")
	}
	if auth.User.Name != "A" {
		t.Errorf("User.Name = %q, want %q", auth.User.Name, "A")
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.Login(context.Background(), "a@b.com", "wrong")
	if err == nil {
		t.Fatal("expected error for rejected login")
	}
	if !IsStatus(err, 400) {
		t.Errorf("err = %v, want APIError with status 400", err)
	}
	if !strings.Contains(err.Error(), "invalid credentials") {
		t.Errorf("err = %q, want the 400 default message", err.Error())
	}
}

func TestAuthenticatedRequestSendsBearer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer test-token" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"message": "not authenticated"}) //nolint:errcheck
			return
		}
		json.NewEncoder(w).Encode([]domain.Client{ //nolint:errcheck
			{ID: "c1", CompanyName: "Acme", ContactPerson: "Jo"},
		})
	}))
	defer srv.Close()

	c := New(srv.URL)
	clients, err := c.ListClients(context.Background(), "test-token")
	if err != nil {
		t.Fatalf("ListClients() error: %v", err)
	}
	if len(clients) != 1 || clients[0].CompanyName != "Acme" {
		t.Errorf("clients = %+v, want one Acme entry", clients)
	}

	if _, err := c.ListClients(context.Background(), "bad-token"); !IsStatus(err, 401) {
		t.Errorf("err = %v, want 401 APIError", err)
	}
}

func TestCreateClientConflictUsesBodyMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]string{"message": "duplicate"}) //nolint:errcheck
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.CreateClient(context.Background(), "tok", domain.CreateClientRequest{
		CompanyName:   "Acme",
		ContactPerson: "Jo",
	})
	if err == nil {
		t.Fatal("expected error for conflict response")
	}
	if !strings.Contains(err.Error(), "duplicate") {
		t.Errorf("err = %q, want the body message, not the 409 default", err.Error())
	}
}

func TestConnectionErrorKind(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {}))
	srv.Close() // nothing is listening anymore

	c := New(srv.URL)
	_, err := c.ListRefunds(context.Background(), "tok")
	if err == nil {
		t.Fatal("expected error when the server is unreachable")
	}
	if !IsConnError(err) {
		t.Errorf("err = %v, want ConnError", err)
	}
	if !strings.Contains(err.Error(), "connection error") {
		t.Errorf("err = %q, want the fixed connection message", err.Error())
	}
}

func TestMalformedSuccessBodyDegradesToZero(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("not json at all")) //nolint:errcheck
	}))
	defer srv.Close()

	c := New(srv.URL)
	summary, err := c.DashboardSummary(context.Background(), "tok")
	if err != nil {
		t.Fatalf("DashboardSummary() error: %v, want parse failure to degrade", err)
	}
	if summary.Refunds.TotalRefunds != 0 {
		t.Errorf("summary = %+v, want zero value", summary)
	}
}

func TestRefundsReportStatusFilter(t *testing.T) {
	var gotStatus string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/dashboard/refunds/report" {
			http.NotFound(w, r)
			return
		}
		gotStatus = r.URL.Query().Get("status")
		json.NewEncoder(w).Encode([]domain.RefundReport{ //nolint:errcheck
			{ID: "r1", Status: domain.RefundPending, DaysSinceCreation: 3},
		})
	}))
	defer srv.Close()

	c := New(srv.URL)
	report, err := c.RefundsReport(context.Background(), "tok", domain.RefundPending)
	if err != nil {
		t.Fatalf("RefundsReport() error: %v", err)
	}
	if gotStatus != "PENDING" {
		t.Errorf("status query = %q, want PENDING", gotStatus)
	}
	if len(report) != 1 || report[0].DaysSinceCreation != 3 {
		t.Errorf("report = %+v, want one row with 3 days", report)
	}
}

func TestUpdateRefundSendsStatusOnly(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		var payload map[string]any
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if payload["status"] != "APPROVED" {
			t.Errorf("payload = %v, want status APPROVED", payload)
		}
		if _, ok := payload["description"]; ok {
			t.Error("payload carries description, want it omitted")
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := New(srv.URL)
	err := c.UpdateRefund(context.Background(), "tok", "r1", domain.UpdateRefundRequest{
		Status: domain.RefundApproved,
	})
	if err != nil {
		t.Fatalf("UpdateRefund() error: %v", err)
	}
}

func TestListRefundsByUserPath(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/refunds/user/7" {
			t.Errorf("path = %q, want /refunds/user/7", r.URL.Path)
		}
		json.NewEncoder(w).Encode([]domain.Refund{ //nolint:errcheck
			{ID: "r1", Description: "Taxi", Amount: 45.9, Status: domain.RefundPending, UserID: "7"},
		})
	}))
	defer srv.Close()

	c := New(srv.URL)
	refunds, err := c.ListRefundsByUser(context.Background(), "tok", "7")
	if err != nil {
		t.Fatalf("ListRefundsByUser() error: %v", err)
	}
	if len(refunds) != 1 || refunds[0].UserID != "7" {
		t.Errorf("refunds = %v, want the user's single refund", refunds)
	}
}
