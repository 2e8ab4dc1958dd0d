package backend

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/garimobility/admin-dashboard/internal/core/domain"
)

type call struct {
	method string
	path   string
	body   any
}

// fakeRequester answers from a path-keyed table and records every call.
type fakeRequester struct {
	responses map[string]string
	errs      map[string]error
	calls     []call
}

func (f *fakeRequester) Do(ctx context.Context, method, path string, body, out any) error {
	f.calls = append(f.calls, call{method: method, path: path, body: body})
	if err := f.errs[path]; err != nil {
		return err
	}
	if raw, ok := f.responses[path]; ok && out != nil {
		return json.Unmarshal([]byte(raw), out)
	}
	return nil
}

func TestDecodeList_Envelopes(t *testing.T) {
	cases := map[string]string{
		"array":        `[{"id":1},{"id":2}]`,
		"results":      `{"count":2,"results":[{"id":1},{"id":2}]}`,
		"data":         `{"data":[{"id":1},{"id":2}]}`,
		"resource key": `{"users":[{"id":1},{"id":2}]}`,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			users, err := decodeList[domain.User](json.RawMessage(raw), "users")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(users) != 2 || users[1].ID != 2 {
				t.Fatalf("unexpected users %+v", users)
			}
		})
	}

	empty, err := decodeList[domain.User](json.RawMessage(`{"detail":"nothing"}`), "users")
	if err != nil || len(empty) != 0 {
		t.Fatalf("expected empty list, got %+v (%v)", empty, err)
	}
}

func TestUserRepository_AdminFallback(t *testing.T) {
	f := &fakeRequester{
		responses: map[string]string{"/api/v1/users/": `{"users":[{"id":5,"email":"x@y.z"}]}`},
		errs:      map[string]error{"/api/v1/admin/users/list_all_users/": &domain.APIError{Status: http.StatusNotFound}},
	}

	users, err := NewRepositories(f).Users.List(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(users) != 1 || users[0].ID != 5 {
		t.Fatalf("unexpected users %+v", users)
	}
	if len(f.calls) != 2 || f.calls[0].path != "/api/v1/admin/users/list_all_users/" || f.calls[1].path != "/api/v1/users/" {
		t.Fatalf("unexpected call sequence %+v", f.calls)
	}
}

func TestUserRepository_NoFallbackOnOtherErrors(t *testing.T) {
	f := &fakeRequester{errs: map[string]error{"/api/v1/admin/users/3/": domain.ErrSessionExpired}}

	_, err := NewRepositories(f).Users.Update(context.Background(), 3, map[string]any{"is_active": false})
	if !errors.Is(err, domain.ErrSessionExpired) {
		t.Fatalf("expected ErrSessionExpired, got %v", err)
	}
	if len(f.calls) != 1 || f.calls[0].method != http.MethodPut {
		t.Fatalf("expected a single PUT, got %+v", f.calls)
	}
}

func TestLoanRepository_Paths(t *testing.T) {
	f := &fakeRequester{responses: map[string]string{
		"/api/v1/admin/loan-applications/list_all_applications/": `{"applications":[{"id":9,"status":"pending"}]}`,
		"/api/v1/admin/loan-applications/9/":                     `{"id":9,"status":"approved"}`,
	}}
	loans := NewRepositories(f).Loans

	apps, err := loans.List(context.Background())
	if err != nil || len(apps) != 1 || apps[0].ID != "9" {
		t.Fatalf("unexpected list %+v (%v)", apps, err)
	}

	app, err := loans.Patch(context.Background(), "9", domain.StatusUpdate{Status: domain.LoanApproved})
	if err != nil || app.Status != domain.LoanApproved {
		t.Fatalf("unexpected patch result %+v (%v)", app, err)
	}
	if f.calls[1].method != http.MethodPatch {
		t.Fatalf("expected PATCH, got %s", f.calls[1].method)
	}

	if err := loans.Delete(context.Background(), "9"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if last := f.calls[len(f.calls)-1]; last.method != http.MethodDelete || last.path != "/api/v1/loan-application/9/" {
		t.Fatalf("unexpected delete call %+v", last)
	}
}

func TestBikeRepository_ProductsEnvelope(t *testing.T) {
	f := &fakeRequester{responses: map[string]string{
		"/api/v1/products/": `{"products":[{"id":1,"name":"Volt","features":"gps, lights","stock_quantity":2}]}`,
	}}

	bikes, err := NewRepositories(f).Bikes.List(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(bikes) != 1 || len(bikes[0].Features) != 2 || !bikes[0].Available() {
		t.Fatalf("unexpected bikes %+v", bikes)
	}
}

func TestLoanRepository_Applications(t *testing.T) {
	f := &fakeRequester{responses: map[string]string{
		"/api/v1/loan-application/": `[{"id":4,"status":"pending","product":{"id":2,"name":"Volt","price":"1200.00","currency":"RWF"}}]`,
	}}

	apps, err := NewRepositories(f).Loans.Applications(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(apps) != 1 || apps[0].ID != "4" || apps[0].Product == nil || apps[0].Product.Price != 1200 {
		t.Fatalf("unexpected applications %+v", apps)
	}
	if len(f.calls) != 1 || f.calls[0].method != http.MethodGet {
		t.Fatalf("expected a single GET, got %+v", f.calls)
	}
}

func TestFleetRepositories_MutationPaths(t *testing.T) {
	f := &fakeRequester{responses: map[string]string{
		"/api/v1/products/5/":   `{"id":5,"name":"Volt"}`,
		"/api/v1/categories/5/": `{"id":5,"name":"City"}`,
	}}
	repos := NewRepositories(f)
	ctx := context.Background()

	bike, err := repos.Bikes.Update(ctx, 5, &domain.Bike{Name: "Volt"})
	if err != nil || bike.ID != 5 {
		t.Fatalf("unexpected bike %+v (%v)", bike, err)
	}
	if err := repos.Bikes.Delete(ctx, 5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cat, err := repos.Categories.Update(ctx, 5, &domain.Category{Name: "City"})
	if err != nil || cat.ID != 5 {
		t.Fatalf("unexpected category %+v (%v)", cat, err)
	}
	if err := repos.Categories.Delete(ctx, 5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []call{
		{method: http.MethodPut, path: "/api/v1/products/5/"},
		{method: http.MethodDelete, path: "/api/v1/products/5/"},
		{method: http.MethodPut, path: "/api/v1/categories/5/"},
		{method: http.MethodDelete, path: "/api/v1/categories/5/"},
	}
	if len(f.calls) != len(want) {
		t.Fatalf("expected %d calls, got %+v", len(want), f.calls)
	}
	for i, w := range want {
		if f.calls[i].method != w.method || f.calls[i].path != w.path {
			t.Fatalf("call %d: expected %s %s, got %s %s", i, w.method, w.path, f.calls[i].method, f.calls[i].path)
		}
	}
	if f.calls[1].body != nil || f.calls[3].body != nil {
		t.Fatalf("deletes must not send a body")
	}
}
