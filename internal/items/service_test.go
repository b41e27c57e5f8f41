package items_test

import (
	"context"
	"errors"
	"testing"

	"github.com/reclaimhq/reclaim/internal/auth"
	"github.com/reclaimhq/reclaim/internal/items"
	"github.com/reclaimhq/reclaim/internal/store"
	"github.com/reclaimhq/reclaim/internal/testutil"
)

var (
	alice = &auth.Identity{Email: "alice@example.com", Name: "Alice"}
	bob   = &auth.Identity{Email: "bob@example.com", Name: "Bob"}
	admin = &auth.Identity{Email: "admin@example.com", Name: "Admin", IsAdmin: true}
)

func newEnv(t *testing.T) (*items.Service, *store.ItemStore) {
	t.Helper()
	s := store.NewItemStore(testutil.NewTestDB(t))
	return items.NewService(s), s
}

func countItems(t *testing.T, s *store.ItemStore) int {
	t.Helper()
	all, err := s.ListAll(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	return len(all)
}

func TestCreate_Anonymous_NoMutation(t *testing.T) {
	svc, s := newEnv(t)

	err := svc.Create(context.Background(), nil, items.CreateInput{Title: "Wallet", Status: "lost"})
	if !errors.Is(err, items.ErrUnauthenticated) {
		t.Fatalf("err = %v, want ErrUnauthenticated", err)
	}
	if n := countItems(t, s); n != 0 {
		t.Errorf("items = %d, want 0 (no mutation on deny)", n)
	}
}

func TestCreate_MissingRequiredFields(t *testing.T) {
	svc, s := newEnv(t)
	ctx := context.Background()

	cases := []struct {
		name string
		in   items.CreateInput
	}{
		{"empty title", items.CreateInput{Title: "", Status: "lost"}},
		{"blank title", items.CreateInput{Title: "   ", Status: "lost"}},
		{"empty status", items.CreateInput{Title: "Wallet", Status: ""}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := svc.Create(ctx, alice, c.in)
			if !errors.Is(err, items.ErrInvalidInput) {
				t.Fatalf("err = %v, want ErrInvalidInput", err)
			}
		})
	}
	if n := countItems(t, s); n != 0 {
		t.Errorf("items = %d, want 0 (no mutation on invalid input)", n)
	}
}

func TestCreate_SetsOwnerAndUnreported(t *testing.T) {
	svc, s := newEnv(t)
	ctx := context.Background()

	if err := svc.Create(ctx, alice, items.CreateInput{Title: "Wallet", Status: "lost"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	all, err := s.ListAll(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("items = %d, want 1", len(all))
	}
	it := all[0]
	if it.OwnerEmail != alice.Email {
		t.Errorf("owner_email = %q, want creator", it.OwnerEmail)
	}
	if it.Reported || it.ReportedBy != "" {
		t.Errorf("new item reported=%v reported_by=%q, want unreported", it.Reported, it.ReportedBy)
	}
}

func TestReport_InvariantAndIdempotence(t *testing.T) {
	svc, s := newEnv(t)
	ctx := context.Background()

	it, err := s.Create(ctx, "Phone", "", "found", "", "", alice.Email)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	// reported == true iff reported_by non-empty, after every report call.
	for i := 0; i < 2; i++ {
		got, err := svc.Report(ctx, bob, it.ID)
		if err != nil {
			t.Fatalf("report #%d: %v", i+1, err)
		}
		if got.Reported != (got.ReportedBy != "") {
			t.Errorf("invariant broken: reported=%v reported_by=%q", got.Reported, got.ReportedBy)
		}
		if got.ReportedBy != bob.Email {
			t.Errorf("reported_by = %q, want bob", got.ReportedBy)
		}
	}
}

func TestReport_AnonymousAndMissing(t *testing.T) {
	svc, s := newEnv(t)
	ctx := context.Background()

	if _, err := svc.Report(ctx, nil, 1); !errors.Is(err, items.ErrUnauthenticated) {
		t.Errorf("anonymous report: err = %v, want ErrUnauthenticated", err)
	}
	if _, err := svc.Report(ctx, alice, 999); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("missing item: err = %v, want ErrNotFound", err)
	}

	if n := countItems(t, s); n != 0 {
		t.Errorf("items = %d, want 0", n)
	}
}

func TestReport_OverwriteByLaterReporter(t *testing.T) {
	svc, s := newEnv(t)
	ctx := context.Background()

	it, err := s.Create(ctx, "Phone", "", "found", "", "", alice.Email)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	if _, err := svc.Report(ctx, alice, it.ID); err != nil {
		t.Fatalf("first report: %v", err)
	}
	got, err := svc.Report(ctx, bob, it.ID)
	if err != nil {
		t.Fatalf("second report: %v", err)
	}
	if got.ReportedBy != bob.Email {
		t.Errorf("reported_by = %q, want latest reporter", got.ReportedBy)
	}
}

func TestDelete_DenyMatrix(t *testing.T) {
	svc, s := newEnv(t)
	ctx := context.Background()

	it, err := s.Create(ctx, "Bag", "", "lost", "", "", alice.Email)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	if err := svc.Delete(ctx, nil, it.ID); !errors.Is(err, items.ErrUnauthenticated) {
		t.Errorf("anonymous: err = %v, want ErrUnauthenticated", err)
	}
	if err := svc.Delete(ctx, alice, 999); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("missing: err = %v, want ErrNotFound", err)
	}

	// The owner is not the reporter, so even the owner cannot delete an
	// unreported item.
	if err := svc.Delete(ctx, alice, it.ID); !errors.Is(err, items.ErrForbidden) {
		t.Errorf("non-reporter owner: err = %v, want ErrForbidden", err)
	}
	if _, err := s.GetByID(ctx, it.ID); err != nil {
		t.Errorf("item should remain after denied delete: %v", err)
	}
}

func TestDelete_AdminAlwaysAllowed(t *testing.T) {
	svc, s := newEnv(t)
	ctx := context.Background()

	it, err := s.Create(ctx, "Bag", "", "lost", "", "", alice.Email)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	if err := svc.Delete(ctx, admin, it.ID); err != nil {
		t.Fatalf("admin delete: %v", err)
	}
	if _, err := s.GetByID(ctx, it.ID); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("item should be gone: err = %v", err)
	}
}

// Identity A creates X; B reports X; A's delete is denied, B's succeeds and
// the item disappears from the listing.
func TestDelete_ReporterScenario(t *testing.T) {
	svc, s := newEnv(t)
	ctx := context.Background()

	if err := svc.Create(ctx, alice, items.CreateInput{Title: "Jacket", Status: "found"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	all, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	x := all[0]

	if _, err := svc.Report(ctx, bob, x.ID); err != nil {
		t.Fatalf("report: %v", err)
	}

	if err := svc.Delete(ctx, alice, x.ID); !errors.Is(err, items.ErrForbidden) {
		t.Fatalf("owner delete: err = %v, want ErrForbidden", err)
	}
	if err := svc.Delete(ctx, bob, x.ID); err != nil {
		t.Fatalf("reporter delete: %v", err)
	}
	if n := countItems(t, s); n != 0 {
		t.Errorf("items = %d, want 0 after reporter delete", n)
	}
}
