package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/housemate/internal/api"
	"github.com/mmynk/housemate/internal/auth"
	"github.com/mmynk/housemate/internal/calculator"
	"github.com/mmynk/housemate/internal/calendar"
	"github.com/mmynk/housemate/internal/middleware"
	"github.com/mmynk/housemate/internal/models"
	"github.com/mmynk/housemate/internal/storage/sqlite"
)

type fixture struct {
	client *DashboardServiceClient
	store  *sqlite.SQLiteStore
	jwt    *auth.JWTManager
}

// setupTestServer serves the DashboardService behind the auth and logging
// interceptors on a temp database.
func setupTestServer(t *testing.T) *fixture {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	jwtManager := auth.NewJWTManager("test-secret-key-0123456789", time.Hour)

	path, handler := NewDashboardServiceHandler(
		NewDashboardService(store),
		connect.WithInterceptors(middleware.RequireAuth(jwtManager), middleware.LoggingInterceptor()),
	)
	mux := http.NewServeMux()
	mux.Handle(path, handler)
	server := httptest.NewServer(mux)

	t.Cleanup(func() {
		server.Close()
		store.Close()
	})
	return &fixture{
		client: NewDashboardServiceClient(http.DefaultClient, server.URL),
		store:  store,
		jwt:    jwtManager,
	}
}

func (f *fixture) member(t *testing.T, loginID string) (*models.Member, string) {
	t.Helper()
	m := models.NewMember(loginID, loginID, "x")
	if err := f.store.CreateMember(context.Background(), m); err != nil {
		t.Fatalf("CreateMember failed: %v", err)
	}
	token, err := f.jwt.Generate(m)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	return m, token
}

func authed[T any](msg *T, token string) *connect.Request[T] {
	req := connect.NewRequest(msg)
	req.Header().Set("Authorization", "Bearer "+token)
	return req
}

func TestDashboardService(t *testing.T) {
	f := setupTestServer(t)
	ctx := context.Background()

	alice, aliceToken := f.member(t, "alice")
	bob, bobToken := f.member(t, "bob")
	_, loneToken := f.member(t, "loner")

	group := &models.Group{Name: "Flat", InviteCode: "ABCD1234"}
	if err := f.store.CreateGroup(ctx, group, alice.ID); err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}
	if err := f.store.JoinGroup(ctx, group.ID, bob.ID); err != nil {
		t.Fatalf("JoinGroup failed: %v", err)
	}

	for _, p := range []*models.Puzzle{
		{GroupID: group.ID, MemberID: bob.ID, Title: "Laundry", ScheduledDate: "2025-07-24"},
		{GroupID: group.ID, MemberID: alice.ID, Title: "Trash", ScheduledDate: "2025-07-24"},
		{GroupID: group.ID, MemberID: alice.ID, Title: "Later", ScheduledDate: "2025-08-02"},
	} {
		if err := f.store.CreatePuzzle(ctx, p); err != nil {
			t.Fatalf("CreatePuzzle failed: %v", err)
		}
	}

	account := &models.Account{
		GroupID:      group.ID,
		Title:        "Internet",
		Date:         "2025-07-01",
		TotalAmount:  models.Won(30000),
		CreatedBy:    bob.ID,
		Participants: []models.Participant{{MemberID: bob.ID}, {MemberID: alice.ID}},
	}
	if err := calculator.ApplySplit(account); err != nil {
		t.Fatalf("ApplySplit failed: %v", err)
	}
	if err := f.store.CreateAccount(ctx, account); err != nil {
		t.Fatalf("CreateAccount failed: %v", err)
	}

	t.Run("GetCalendar", func(t *testing.T) {
		resp, err := f.client.GetCalendar(ctx, authed(&GetCalendarRequest{Month: "2025-07"}, aliceToken))
		if err != nil {
			t.Fatalf("GetCalendar failed: %v", err)
		}
		day := resp.Msg.Dots["2025-07-24"]
		if len(resp.Msg.Dots) != 1 || len(day.Dots) != 2 {
			t.Fatalf("dots = %+v", resp.Msg.Dots)
		}
		if day.Dots[0].Color != calendar.ColorMine || day.Dots[1].Color != calendar.ColorMate {
			t.Errorf("alice's marker should lead: %+v", day.Dots)
		}
	})

	t.Run("GetCalendar from the other side", func(t *testing.T) {
		resp, err := f.client.GetCalendar(ctx, authed(&GetCalendarRequest{}, bobToken))
		if err != nil {
			t.Fatalf("GetCalendar failed: %v", err)
		}
		if len(resp.Msg.Dots) != 2 {
			t.Errorf("every month expected, got %+v", resp.Msg.Dots)
		}
		if got := resp.Msg.Dots["2025-07-24"].Dots[0].Color; got != calendar.ColorMine {
			t.Errorf("bob's marker should lead for bob, got %s", got)
		}
	})

	t.Run("ListAccountCards", func(t *testing.T) {
		resp, err := f.client.ListAccountCards(ctx, authed(&ListAccountCardsRequest{View: api.ViewPaid}, aliceToken))
		if err != nil {
			t.Fatalf("ListAccountCards failed: %v", err)
		}
		if len(resp.Msg.Paid) != 1 || resp.Msg.Paid[0].Color != "purple" {
			t.Errorf("paid = %+v", resp.Msg.Paid)
		}
	})

	errorCases := []struct {
		name string
		call func() error
		want connect.Code
	}{
		{"missing token", func() error {
			_, err := f.client.GetCalendar(ctx, connect.NewRequest(&GetCalendarRequest{}))
			return err
		}, connect.CodeUnauthenticated},
		{"bad month", func() error {
			_, err := f.client.GetCalendar(ctx, authed(&GetCalendarRequest{Month: "07/2025"}, aliceToken))
			return err
		}, connect.CodeInvalidArgument},
		{"bad view", func() error {
			_, err := f.client.ListAccountCards(ctx, authed(&ListAccountCardsRequest{View: "grid"}, aliceToken))
			return err
		}, connect.CodeInvalidArgument},
		{"no group", func() error {
			_, err := f.client.ListAccountCards(ctx, authed(&ListAccountCardsRequest{}, loneToken))
			return err
		}, connect.CodePermissionDenied},
	}
	for _, tc := range errorCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.call()
			if err == nil {
				t.Fatal("expected error")
			}
			if code := connect.CodeOf(err); code != tc.want {
				t.Errorf("code = %v, want %v", code, tc.want)
			}
		})
	}
}
