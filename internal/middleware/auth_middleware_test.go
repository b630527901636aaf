package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mkowalczyk/campushub/internal/app/models"
	"github.com/mkowalczyk/campushub/internal/pkg/auth"
)

func newTestMiddleware() *AuthMiddleware {
	return NewAuthMiddleware(auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  time.Hour,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "campushub.test",
	}))
}

func roleSetter(role models.RoleType) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ContextRole, string(role))
	}
}

func TestRoleRequired(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := newTestMiddleware()

	tests := []struct {
		name       string
		role       models.RoleType
		wantStatus int
	}{
		{"super-admin passes", models.RoleSuperAdmin, http.StatusOK},
		{"student forbidden", models.RoleStudent, http.StatusForbidden},
		{"org-admin forbidden", models.RoleOrgAdmin, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.DELETE("/things/:id",
				roleSetter(tt.role),
				m.RoleRequired(models.RoleSuperAdmin),
				func(c *gin.Context) { c.Status(http.StatusOK) },
			)

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodDelete, "/things/1", nil)
			router.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
		})
	}
}

func TestJWTAuthRejectsMissingAndMalformedHeader(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := newTestMiddleware()

	router := gin.New()
	router.GET("/secure", m.JWTAuth(), func(c *gin.Context) { c.Status(http.StatusOK) })

	for _, header := range []string{"", "not-a-bearer", "Basic dXNlcg=="} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/secure", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		router.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("header %q: status = %d, want 401", header, w.Code)
		}
	}
}

func TestJWTAuthAcceptsValidToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := newTestMiddleware()

	user := &models.User{ID: 42, Email: "student@example.com", RoleType: models.RoleStudent}
	accessToken, _, _, _, err := m.jwtService.GenerateTokenPair(user)
	if err != nil {
		t.Fatalf("GenerateTokenPair: %v", err)
	}

	router := gin.New()
	router.GET("/secure", m.JWTAuth(), func(c *gin.Context) {
		caller, ok := CallerFromContext(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		if caller.ID != 42 || caller.RoleType != models.RoleStudent {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/secure", nil)
	req.Header.Set("Authorization", "Bearer "+accessToken)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
}
