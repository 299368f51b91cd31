package account_test

import (
	"errors"
	"testing"

	"github.com/11bDev/yall-sub001/internal/domain"
	"github.com/11bDev/yall-sub001/internal/services/account"
	"github.com/11bDev/yall-sub001/internal/store"
)

func newService(t *testing.T) *account.Service {
	t.Helper()
	return account.New(store.NewFileStore(t.TempDir(), "passphrase"))
}

func TestSaveListGet(t *testing.T) {
	svc := newService(t)

	a := domain.NewAccount(domain.PlatformNostr, "First", "first", map[string]string{"k": "v"})
	b := domain.NewAccount(domain.PlatformMastodon, "Second", "second", nil)
	for _, acct := range []domain.Account{a, b} {
		if err := svc.Save(acct); err != nil {
			t.Fatalf("Save: %v", err)
		}
	}

	all, err := svc.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("len = %d, want 2", len(all))
	}

	got, err := svc.Get(a.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if v, _ := got.Credential("k"); v != "v" {
		t.Fatalf("credential lost on roundtrip: %+v", got)
	}

	if _, err := svc.Get("no-such-id"); !errors.Is(err, account.ErrNotFound) {
		t.Fatalf("Get missing: %v, want ErrNotFound", err)
	}
}

func TestSaveUpserts(t *testing.T) {
	svc := newService(t)

	a := domain.NewAccount(domain.PlatformNostr, "Old Name", "user", nil)
	if err := svc.Save(a); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := svc.Save(a.WithDisplayName("New Name")); err != nil {
		t.Fatalf("Save update: %v", err)
	}

	all, err := svc.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("upsert duplicated the account: %d entries", len(all))
	}
	if all[0].DisplayName != "New Name" {
		t.Fatalf("DisplayName = %q", all[0].DisplayName)
	}
}

func TestByPlatformSkipsInactive(t *testing.T) {
	svc := newService(t)

	active := domain.NewAccount(domain.PlatformNostr, "Active", "a", nil)
	inactive := domain.NewAccount(domain.PlatformNostr, "Inactive", "b", nil).WithActive(false)
	other := domain.NewAccount(domain.PlatformMastodon, "Other", "c", nil)
	for _, acct := range []domain.Account{active, inactive, other} {
		if err := svc.Save(acct); err != nil {
			t.Fatalf("Save: %v", err)
		}
	}

	got, err := svc.ByPlatform(domain.PlatformNostr)
	if err != nil {
		t.Fatalf("ByPlatform: %v", err)
	}
	if len(got) != 1 || got[0].ID != active.ID {
		t.Fatalf("ByPlatform = %+v, want only the active nostr account", got)
	}
}

func TestDelete(t *testing.T) {
	svc := newService(t)

	a := domain.NewAccount(domain.PlatformNostr, "Doomed", "d", nil)
	if err := svc.Save(a); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := svc.Delete(a.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := svc.Get(a.ID); !errors.Is(err, account.ErrNotFound) {
		t.Fatalf("deleted account still found: %v", err)
	}
	if err := svc.Delete(a.ID); !errors.Is(err, account.ErrNotFound) {
		t.Fatalf("double delete: %v, want ErrNotFound", err)
	}
}
