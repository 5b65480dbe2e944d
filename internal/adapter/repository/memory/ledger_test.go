package memory

import (
	"errors"
	"testing"

	"github.com/iho/txengine/internal/domain"
	"github.com/iho/txengine/internal/usecase"
)

var _ usecase.AccountRepository = (*Ledger)(nil)

func TestLedger_GetMissing(t *testing.T) {
	l := NewLedger()

	if _, err := l.Get(1); !errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
	if l.Len() != 0 {
		t.Fatalf("Get must not create accounts, len=%d", l.Len())
	}
}

func TestLedger_GetOrCreate(t *testing.T) {
	l := NewLedger()

	acc, created := l.GetOrCreate(7)
	if !created {
		t.Fatal("expected first reference to create the account")
	}
	if acc.ClientID != 7 || !acc.Total.IsZero() || !acc.Held.IsZero() || acc.Locked {
		t.Fatalf("expected zero unlocked account, got %+v", acc)
	}

	again, created := l.GetOrCreate(7)
	if created {
		t.Fatal("expected second reference to reuse the account")
	}
	if again != acc {
		t.Fatal("expected the same account instance")
	}

	got, err := l.Get(7)
	if err != nil || got != acc {
		t.Fatalf("expected Get to find created account, got %v, %v", got, err)
	}
}

func TestLedger_ListPreservesCreationOrder(t *testing.T) {
	l := NewLedger()
	for _, id := range []domain.ClientID{5, 2, 9, 2, 1} {
		l.GetOrCreate(id)
	}

	accounts := l.List()
	want := []domain.ClientID{5, 2, 9, 1}
	if len(accounts) != len(want) {
		t.Fatalf("expected %d accounts, got %d", len(want), len(accounts))
	}
	for i, acc := range accounts {
		if acc.ClientID != want[i] {
			t.Errorf("position %d: expected client %d, got %d", i, want[i], acc.ClientID)
		}
	}
	if l.Len() != 4 {
		t.Errorf("expected len 4, got %d", l.Len())
	}
}
