package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/garimobility/admin-dashboard/internal/core/domain"
	"github.com/garimobility/admin-dashboard/internal/core/ports"
)

// NewRepositories binds every resource repository to r.
func NewRepositories(r ports.Requester) ports.Repositories {
	return ports.Repositories{
		Users:      &UserRepository{r: r},
		Bikes:      &BikeRepository{r: r},
		Categories: &CategoryRepository{r: r},
		Loans:      &LoanRepository{r: r},
		Wallet:     &WalletRepository{r: r},
	}
}

var listKeys = []string{"results", "data"}

// decodeList accepts a bare JSON array or an object carrying the array under
// one of keys (checked in order) or one of the common pagination keys.
func decodeList[T any](raw json.RawMessage, keys ...string) ([]T, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return []T{}, nil
	}

	if raw[0] == '[' {
		var items []T
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, fmt.Errorf("decode list: %w", err)
		}
		return items, nil
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("decode list envelope: %w", err)
	}
	for _, k := range append(keys, listKeys...) {
		inner, ok := envelope[k]
		if !ok {
			continue
		}
		inner = bytes.TrimSpace(inner)
		if len(inner) == 0 || inner[0] != '[' {
			continue
		}
		var items []T
		if err := json.Unmarshal(inner, &items); err != nil {
			return nil, fmt.Errorf("decode list %q: %w", k, err)
		}
		return items, nil
	}
	return []T{}, nil
}

// withAdminFallback calls the admin path first and retries the regular path
// when the admin endpoint does not exist.
func withAdminFallback(adminPath, path string, call func(path string) error) error {
	err := call(adminPath)
	if errors.Is(err, domain.ErrNotFound) {
		return call(path)
	}
	return err
}

// UserRepository implements ports.UserRepository over /api/v1/users.
type UserRepository struct {
	r ports.Requester
}

func (u *UserRepository) List(ctx context.Context) ([]domain.User, error) {
	var raw json.RawMessage
	err := withAdminFallback("/api/v1/admin/users/list_all_users/", "/api/v1/users/", func(path string) error {
		return u.r.Do(ctx, http.MethodGet, path, nil, &raw)
	})
	if err != nil {
		return nil, err
	}
	return decodeList[domain.User](raw, "users")
}

func (u *UserRepository) Update(ctx context.Context, id int64, patch map[string]any) (*domain.User, error) {
	var out domain.User
	err := withAdminFallback(fmt.Sprintf("/api/v1/admin/users/%d/", id), fmt.Sprintf("/api/v1/users/%d/", id), func(path string) error {
		return u.r.Do(ctx, http.MethodPut, path, patch, &out)
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (u *UserRepository) Delete(ctx context.Context, id int64) error {
	return withAdminFallback(fmt.Sprintf("/api/v1/admin/users/%d/", id), fmt.Sprintf("/api/v1/users/%d/", id), func(path string) error {
		return u.r.Do(ctx, http.MethodDelete, path, nil, nil)
	})
}

func (u *UserRepository) Me(ctx context.Context) (*domain.UserProfile, error) {
	var out domain.UserProfile
	if err := u.r.Do(ctx, http.MethodGet, "/api/v1/users/me/", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// BikeRepository implements ports.BikeRepository over /api/v1/products.
type BikeRepository struct {
	r ports.Requester
}

func (b *BikeRepository) List(ctx context.Context) ([]domain.Bike, error) {
	var raw json.RawMessage
	if err := b.r.Do(ctx, http.MethodGet, "/api/v1/products/", nil, &raw); err != nil {
		return nil, err
	}
	return decodeList[domain.Bike](raw, "products")
}

func (b *BikeRepository) Create(ctx context.Context, bike *domain.Bike) (*domain.Bike, error) {
	var out domain.Bike
	if err := b.r.Do(ctx, http.MethodPost, "/api/v1/products/", bike, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (b *BikeRepository) Update(ctx context.Context, id int64, bike *domain.Bike) (*domain.Bike, error) {
	var out domain.Bike
	if err := b.r.Do(ctx, http.MethodPut, fmt.Sprintf("/api/v1/products/%d/", id), bike, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (b *BikeRepository) Delete(ctx context.Context, id int64) error {
	return b.r.Do(ctx, http.MethodDelete, fmt.Sprintf("/api/v1/products/%d/", id), nil, nil)
}

// CategoryRepository implements ports.CategoryRepository over /api/v1/categories.
type CategoryRepository struct {
	r ports.Requester
}

func (c *CategoryRepository) List(ctx context.Context) ([]domain.Category, error) {
	var raw json.RawMessage
	if err := c.r.Do(ctx, http.MethodGet, "/api/v1/categories/", nil, &raw); err != nil {
		return nil, err
	}
	return decodeList[domain.Category](raw, "categories")
}

func (c *CategoryRepository) Create(ctx context.Context, cat *domain.Category) (*domain.Category, error) {
	var out domain.Category
	if err := c.r.Do(ctx, http.MethodPost, "/api/v1/categories/", cat, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *CategoryRepository) Update(ctx context.Context, id int64, cat *domain.Category) (*domain.Category, error) {
	var out domain.Category
	if err := c.r.Do(ctx, http.MethodPut, fmt.Sprintf("/api/v1/categories/%d/", id), cat, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *CategoryRepository) Delete(ctx context.Context, id int64) error {
	return c.r.Do(ctx, http.MethodDelete, fmt.Sprintf("/api/v1/categories/%d/", id), nil, nil)
}

// WalletRepository implements ports.WalletRepository.
type WalletRepository struct {
	r ports.Requester
}

func (w *WalletRepository) Transactions(ctx context.Context) ([]domain.Transaction, error) {
	var raw json.RawMessage
	if err := w.r.Do(ctx, http.MethodGet, "/api/v1/transactions/", nil, &raw); err != nil {
		return nil, err
	}
	return decodeList[domain.Transaction](raw, "transactions")
}

func (w *WalletRepository) Wallet(ctx context.Context) (*domain.Wallet, error) {
	var out domain.Wallet
	if err := w.r.Do(ctx, http.MethodGet, "/api/v1/wallet/", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
