package feed

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestLoader_Load(t *testing.T) {
	calls := 0
	l := NewLoader(func(ctx context.Context) ([]string, error) {
		calls++
		return []string{"a", "b"}, nil
	})

	if _, ok := l.Value(); ok {
		t.Fatal("nothing loaded yet")
	}
	got, err := l.Load(context.Background())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if diff := cmp.Diff([]string{"a", "b"}, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
	if v, ok := l.Value(); !ok || len(v) != 2 {
		t.Errorf("Value() = %v, %v", v, ok)
	}
	if l.Seq() != 1 || calls != 1 {
		t.Errorf("seq = %d, calls = %d", l.Seq(), calls)
	}
}

func TestLoader_NewerLoadCancelsOlder(t *testing.T) {
	started := make(chan struct{})
	n := 0
	l := NewLoader(func(ctx context.Context) (int, error) {
		n++
		if n == 1 {
			close(started)
			<-ctx.Done()
			return 0, ctx.Err()
		}
		return 2, nil
	})

	first := make(chan error, 1)
	go func() {
		_, err := l.Load(context.Background())
		first <- err
	}()
	<-started

	v, err := l.Load(context.Background())
	if err != nil || v != 2 {
		t.Fatalf("second Load = %d, %v", v, err)
	}

	err = <-first
	if !errors.Is(err, ErrStale) || !IsCanceled(err) {
		t.Errorf("first Load err = %v, want ErrStale", err)
	}
	if got, _ := l.Value(); got != 2 {
		t.Errorf("Value() = %d, want 2", got)
	}
}

func TestLoader_LateResponseDiscarded(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	n := 0
	l := NewLoader(func(ctx context.Context) (string, error) {
		n++
		if n == 1 {
			close(started)
			<-release // ignores cancellation
			return "old", nil
		}
		return "new", nil
	})

	first := make(chan error, 1)
	go func() {
		_, err := l.Load(context.Background())
		first <- err
	}()
	<-started

	if _, err := l.Load(context.Background()); err != nil {
		t.Fatalf("second Load failed: %v", err)
	}
	close(release)

	if err := <-first; !errors.Is(err, ErrStale) {
		t.Errorf("late Load err = %v, want ErrStale", err)
	}
	if v, _ := l.Value(); v != "new" {
		t.Errorf("Value() = %q, the late response must not overwrite", v)
	}
}

func TestLoader_Cancel(t *testing.T) {
	started := make(chan struct{})
	l := NewLoader(func(ctx context.Context) (int, error) {
		close(started)
		<-ctx.Done()
		return 0, ctx.Err()
	})

	done := make(chan error, 1)
	go func() {
		_, err := l.Load(context.Background())
		done <- err
	}()
	<-started
	l.Cancel()

	select {
	case err := <-done:
		if !IsCanceled(err) {
			t.Errorf("err = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Cancel did not abort the load")
	}
}

func TestLoader_ErrorKeepsPreviousValue(t *testing.T) {
	fail := false
	l := NewLoader(func(ctx context.Context) (int, error) {
		if fail {
			return 0, errors.New("boom")
		}
		return 7, nil
	})
	if _, err := l.Load(context.Background()); err != nil {
		t.Fatal(err)
	}
	fail = true
	if _, err := l.Load(context.Background()); err == nil || IsCanceled(err) {
		t.Errorf("err = %v, want a real error", err)
	}
	if v, ok := l.Value(); !ok || v != 7 {
		t.Errorf("Value() = %d, %v", v, ok)
	}
}

type item struct {
	ID    int64
	Title string
}

func itemKey(i item) int64 { return i.ID }

func seed() *Collection[item] {
	return NewCollection(itemKey, []item{{1, "one"}, {2, "two"}})
}

var errServer = errors.New("server said no")

func TestCollection_Insert(t *testing.T) {
	c := seed()
	var during []item
	created, err := c.Insert(context.Background(), item{Title: "three"}, func(ctx context.Context, i item) (item, error) {
		during = c.Items()
		i.ID = 3
		return i, nil
	})
	if err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if created.ID != 3 {
		t.Errorf("created = %+v", created)
	}
	if diff := cmp.Diff([]item{{0, "three"}, {1, "one"}, {2, "two"}}, during); diff != "" {
		t.Errorf("optimistic state mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]item{{3, "three"}, {1, "one"}, {2, "two"}}, c.Items()); diff != "" {
		t.Errorf("final state mismatch (-want +got):\n%s", diff)
	}
}

func TestCollection_Rollback(t *testing.T) {
	original := []item{{1, "one"}, {2, "two"}}

	tests := []struct {
		name   string
		mutate func(c *Collection[item]) error
	}{
		{"insert", func(c *Collection[item]) error {
			_, err := c.Insert(context.Background(), item{Title: "x"}, func(context.Context, item) (item, error) {
				return item{}, errServer
			})
			return err
		}},
		{"replace", func(c *Collection[item]) error {
			_, err := c.Replace(context.Background(), item{2, "edited"}, func(context.Context, item) (item, error) {
				return item{}, errServer
			})
			return err
		}},
		{"remove", func(c *Collection[item]) error {
			return c.Remove(context.Background(), 1, func(context.Context, int64) error {
				return errServer
			})
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := seed()
			if err := tt.mutate(c); !errors.Is(err, errServer) {
				t.Fatalf("err = %v, want errServer", err)
			}
			if diff := cmp.Diff(original, c.Items()); diff != "" {
				t.Errorf("not rolled back (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCollection_ReplaceKeepsServerVersion(t *testing.T) {
	c := seed()
	_, err := c.Replace(context.Background(), item{2, "edited"}, func(ctx context.Context, i item) (item, error) {
		return item{2, "edited (server)"}, nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]item{{1, "one"}, {2, "edited (server)"}}, c.Items()); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestCollection_Remove(t *testing.T) {
	c := seed()
	if err := c.Remove(context.Background(), 1, func(context.Context, int64) error { return nil }); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]item{{2, "two"}}, c.Items()); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}
