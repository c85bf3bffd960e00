package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

func TestHasRole(t *testing.T) {
	cases := []struct {
		role     string
		required []string
		want     bool
	}{
		{RoleAdmin, []string{RoleAdmin}, true},
		{RoleAdmin, []string{RoleHospitalAdmin}, false},
		{RoleHospitalAdmin, []string{RoleAdmin, RoleHospitalAdmin}, true},
		{RoleUser, []string{RoleAdmin, RoleHospitalAdmin}, false},
		{"", []string{RoleUser}, false},
	}
	for _, tc := range cases {
		if got := HasRole(tc.role, tc.required...); got != tc.want {
			t.Errorf("HasRole(%q, %v) = %v, want %v", tc.role, tc.required, got, tc.want)
		}
	}
}

func TestValidRole(t *testing.T) {
	for _, role := range []string{RoleUser, RoleAdmin, RoleHospitalAdmin} {
		if !ValidRole(role) {
			t.Errorf("ValidRole(%q) = false, want true", role)
		}
	}
	if ValidRole("superuser") {
		t.Error(`ValidRole("superuser") = true, want false`)
	}
}

func requestWithRole(role string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if role != "" {
		ctx := WithIdentity(req.Context(), Identity{UserID: uuid.New(), Role: role})
		c.SetRequest(req.WithContext(ctx))
	}
	return c, rec
}

func TestRequireRole(t *testing.T) {
	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	mw := RequireRole(RoleAdmin, RoleHospitalAdmin)

	t.Run("allowed role passes", func(t *testing.T) {
		c, rec := requestWithRole(RoleHospitalAdmin)
		if err := mw(next)(c); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if rec.Code != http.StatusOK {
			t.Errorf("status = %d, want 200", rec.Code)
		}
	})

	t.Run("disallowed role forbidden", func(t *testing.T) {
		c, _ := requestWithRole(RoleUser)
		err := mw(next)(c)
		he, ok := err.(*echo.HTTPError)
		if !ok || he.Code != http.StatusForbidden {
			t.Errorf("got %v, want 403", err)
		}
	})

	t.Run("unauthenticated rejected", func(t *testing.T) {
		c, _ := requestWithRole("")
		err := mw(next)(c)
		he, ok := err.(*echo.HTTPError)
		if !ok || he.Code != http.StatusUnauthorized {
			t.Errorf("got %v, want 401", err)
		}
	})
}

func TestIdentityRoundTrip(t *testing.T) {
	id := Identity{UserID: uuid.New(), Role: RoleUser}
	ctx := WithIdentity(context.Background(), id)

	if got := IdentityFromContext(ctx); got != id {
		t.Errorf("IdentityFromContext = %+v, want %+v", got, id)
	}
	if RoleFromContext(context.Background()) != "" {
		t.Error("expected empty role on bare context")
	}
}
