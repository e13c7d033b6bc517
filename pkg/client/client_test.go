package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/crypto/bcrypt"

	"github.com/mmynk/housemate/internal/api"
	"github.com/mmynk/housemate/internal/auth"
	"github.com/mmynk/housemate/internal/httpapi"
	"github.com/mmynk/housemate/internal/models"
	"github.com/mmynk/housemate/internal/storage/sqlite"
	"github.com/mmynk/housemate/pkg/feed"
)

type testEnv struct {
	url     string
	meCalls atomic.Int64
}

func setupTestServer(t *testing.T) *testEnv {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	mux := http.NewServeMux()
	httpapi.New(
		store,
		auth.NewPasswordAuthenticator(store).WithCost(bcrypt.MinCost),
		auth.NewJWTManager("test-secret-key-0123456789", time.Hour),
		nil,
	).Register(mux)

	env := &testEnv{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/members/me") {
			env.meCalls.Add(1)
		}
		mux.ServeHTTP(w, r)
	}))
	env.url = server.URL

	t.Cleanup(func() {
		server.Close()
		store.Close()
	})
	return env
}

func (e *testEnv) member(t *testing.T, loginID string) (*Client, models.Member) {
	t.Helper()
	c := New(e.url)
	resp, err := c.Register(context.Background(), api.RegisterRequest{LoginID: loginID, DisplayName: loginID, Password: "password123"})
	if err != nil {
		t.Fatalf("Register(%s) failed: %v", loginID, err)
	}
	return c, resp.Member
}

func (e *testEnv) household(t *testing.T) (alice, bob *Client, aliceM, bobM models.Member) {
	t.Helper()
	ctx := context.Background()
	alice, aliceM = e.member(t, "alice")
	bob, bobM = e.member(t, "bob")

	group, err := alice.CreateGroup(ctx, "Flat")
	if err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}
	if _, err := bob.JoinGroup(ctx, group.InviteCode); err != nil {
		t.Fatalf("JoinGroup failed: %v", err)
	}
	return alice, bob, aliceM, bobM
}

func TestAPIError(t *testing.T) {
	env := setupTestServer(t)
	env.member(t, "alice")

	_, err := New(env.url).Register(context.Background(), api.RegisterRequest{LoginID: "alice", DisplayName: "A", Password: "password123"})
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %v, want *APIError", err)
	}
	if apiErr.Status != http.StatusConflict || apiErr.Code != api.CodeConflict {
		t.Errorf("apiErr = %+v", apiErr)
	}

	_, err = New(env.url).Me(context.Background())
	if !errors.As(err, &apiErr) || apiErr.Code != api.CodeUnauthorized {
		t.Errorf("anonymous Me err = %v", err)
	}
}

func TestIdentityCache(t *testing.T) {
	env := setupTestServer(t)
	c, _ := env.member(t, "Alice")
	ctx := context.Background()

	for range 3 {
		id, err := c.Identity().LoginID(ctx)
		if err != nil {
			t.Fatalf("LoginID failed: %v", err)
		}
		if id != "Alice" {
			t.Errorf("login id = %q", id)
		}
	}
	if got := env.meCalls.Load(); got != 1 {
		t.Errorf("/members/me called %d times, want 1", got)
	}

	c.Identity().Invalidate()
	if _, err := c.Identity().LoginID(ctx); err != nil {
		t.Fatal(err)
	}
	if got := env.meCalls.Load(); got != 2 {
		t.Errorf("/members/me called %d times after Invalidate, want 2", got)
	}
}

func TestScreensMatchServer(t *testing.T) {
	env := setupTestServer(t)
	alice, bob, aliceM, bobM := env.household(t)
	ctx := context.Background()

	for _, req := range []struct {
		c    *Client
		date string
	}{
		{bob, "2025-07-24"}, {alice, "2025-07-24"}, {alice, "2025-07-03"}, {bob, "2025-08-01"},
	} {
		if _, err := req.c.CreatePuzzle(ctx, api.PuzzleRequest{Title: "chore", ScheduledDate: req.date}); err != nil {
			t.Fatalf("CreatePuzzle failed: %v", err)
		}
	}
	if _, err := bob.CreateAccount(ctx, api.AccountRequest{
		Title: "Internet", Date: "2025-07-01", TotalAmount: 30000, ParticipantIDs: []int64{aliceM.ID},
	}); err != nil {
		t.Fatalf("CreateAccount failed: %v", err)
	}

	t.Run("calendar", func(t *testing.T) {
		local, err := alice.CalendarScreen(ctx, "2025-07")
		if err != nil {
			t.Fatalf("CalendarScreen failed: %v", err)
		}
		remote, err := alice.Calendar(ctx, "2025-07")
		if err != nil {
			t.Fatalf("Calendar failed: %v", err)
		}
		if diff := cmp.Diff(remote, local); diff != "" {
			t.Errorf("local and server aggregation differ (-server +local):\n%s", diff)
		}
		if len(local.Dots) != 2 {
			t.Errorf("days = %d, want 2", len(local.Dots))
		}
	})

	t.Run("accounts", func(t *testing.T) {
		local, err := alice.AccountScreen(ctx)
		if err != nil {
			t.Fatalf("AccountScreen failed: %v", err)
		}
		remote, err := alice.AccountCards(ctx, api.ViewAll)
		if err != nil {
			t.Fatalf("AccountCards failed: %v", err)
		}
		if diff := cmp.Diff(remote, local); diff != "" {
			t.Errorf("cards differ (-server +local):\n%s", diff)
		}
		if len(local.Unpaid) != 1 || local.List[0].Author != "mate" {
			t.Errorf("cards = %+v", local)
		}
	})

	t.Run("balances", func(t *testing.T) {
		b, err := alice.Balances(ctx)
		if err != nil {
			t.Fatal(err)
		}
		want := []int64{aliceM.ID, bobM.ID, 15000}
		if len(b.Debts) != 1 {
			t.Fatalf("debts = %+v", b.Debts)
		}
		got := []int64{b.Debts[0].From, b.Debts[0].To, b.Debts[0].Amount}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("debt mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestCollectionAgainstServer(t *testing.T) {
	env := setupTestServer(t)
	alice, bob, _, _ := env.household(t)
	ctx := context.Background()

	puzzles, err := alice.AllPuzzles(ctx)
	if err != nil {
		t.Fatal(err)
	}
	col := feed.NewCollection(func(p models.Puzzle) int64 { return p.ID }, puzzles)

	created, err := col.Insert(ctx, models.Puzzle{Title: "Trash", ScheduledDate: "2025-07-24"},
		func(ctx context.Context, p models.Puzzle) (models.Puzzle, error) {
			got, err := alice.CreatePuzzle(ctx, api.PuzzleRequest{Title: p.Title, ScheduledDate: p.ScheduledDate})
			if err != nil {
				return models.Puzzle{}, err
			}
			return *got, nil
		})
	if err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if items := col.Items(); len(items) != 1 || items[0].ID != created.ID || items[0].MemberLoginID != "alice" {
		t.Errorf("items = %+v", items)
	}

	// bob is not the creator, so the server refuses and the list is restored.
	err = col.Remove(ctx, created.ID, bob.DeletePuzzle)
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Status != http.StatusForbidden {
		t.Fatalf("Remove err = %v, want 403", err)
	}
	if len(col.Items()) != 1 {
		t.Errorf("remove was not rolled back: %+v", col.Items())
	}

	if err := col.Remove(ctx, created.ID, alice.DeletePuzzle); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if len(col.Items()) != 0 {
		t.Errorf("items = %+v", col.Items())
	}
}

func TestLoaderAgainstServer(t *testing.T) {
	env := setupTestServer(t)
	alice, _, _, _ := env.household(t)
	ctx := context.Background()

	loader := feed.NewLoader(alice.AllAccounts)
	if _, err := loader.Load(ctx); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	canceled, cancel := context.WithCancel(ctx)
	cancel()
	_, err := loader.Load(canceled)
	if !feed.IsCanceled(err) {
		t.Errorf("err = %v, want a cancellation", err)
	}
	if _, ok := loader.Value(); !ok {
		t.Error("earlier value should survive a canceled load")
	}
}
