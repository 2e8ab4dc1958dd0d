package service

import (
	"context"
	"errors"
	"testing"

	"github.com/garimobility/admin-dashboard/internal/core/domain"
)

func TestFetch(t *testing.T) {
	boom := errors.New("boom")
	fallback := []string{"demo"}

	live := Fetch(context.Background(), "test", func(context.Context) ([]string, error) {
		return []string{"live"}, nil
	}, &fallback)
	if !live.OK() || live.Data[0] != "live" {
		t.Fatalf("expected live data, got %+v", live)
	}

	substituted := Fetch(context.Background(), "test", func(context.Context) ([]string, error) {
		return nil, boom
	}, &fallback)
	if !substituted.Fallback || !substituted.Usable() || substituted.Data[0] != "demo" {
		t.Fatalf("expected fallback data, got %+v", substituted)
	}
	if !errors.Is(substituted.Err, boom) {
		t.Fatalf("expected triggering error kept, got %v", substituted.Err)
	}

	failed := Fetch(context.Background(), "test", func(context.Context) ([]string, error) {
		return nil, boom
	}, nil)
	if failed.Usable() || failed.Fallback {
		t.Fatalf("expected failure without fallback, got %+v", failed)
	}
}

func TestFetch_NeverMasksSessionExpiry(t *testing.T) {
	fallback := []string{"demo"}

	res := Fetch(context.Background(), "test", func(context.Context) ([]string, error) {
		return nil, domain.ErrSessionExpired
	}, &fallback)

	if res.Usable() || !errors.Is(res.Err, domain.ErrSessionExpired) {
		t.Fatalf("expected session expiry to surface, got %+v", res)
	}
}
