package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"ops-dashboard/internal/domain"
	"ops-dashboard/internal/service/auth"
)

type authServiceMock struct {
	mock.Mock
}

func (m *authServiceMock) ValidateAccessToken(token string) (*auth.Claims, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.Claims), args.Error(1)
}

func (m *authServiceMock) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func echoViewer(c *fiber.Ctx) error {
	return c.JSON(GetViewer(c))
}

func TestAuthRequired(t *testing.T) {
	t.Run("Should reject a missing header", func(t *testing.T) {
		app := fiber.New()
		app.Get("/", AuthRequired(new(authServiceMock)), echoViewer)

		resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("Should reject a non-bearer header", func(t *testing.T) {
		app := fiber.New()
		app.Get("/", AuthRequired(new(authServiceMock)), echoViewer)

		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("Authorization", "Basic abc")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("Should reject an invalid token", func(t *testing.T) {
		svc := new(authServiceMock)
		svc.On("ValidateAccessToken", "bad").Return(nil, auth.ErrInvalidToken)
		app := fiber.New()
		app.Get("/", AuthRequired(svc), echoViewer)

		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("Authorization", "Bearer bad")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("Should use the stored role over the token claim", func(t *testing.T) {
		svc := new(authServiceMock)
		svc.On("ValidateAccessToken", "good").Return(&auth.Claims{UserID: "alice", Role: "ADMIN"}, nil)
		svc.On("GetUserByID", mock.Anything, "alice").Return(&domain.User{ID: "alice", Role: domain.RoleClient}, nil)
		app := fiber.New()
		app.Get("/", AuthRequired(svc), echoViewer)

		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("Authorization", "Bearer good")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		var viewer domain.Viewer
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&viewer))
		assert.Equal(t, domain.Viewer{ID: "alice", Role: domain.RoleClient}, viewer)
	})

	t.Run("Should reject a token for a deleted user", func(t *testing.T) {
		svc := new(authServiceMock)
		svc.On("ValidateAccessToken", "orphan").Return(&auth.Claims{UserID: "gone"}, nil)
		svc.On("GetUserByID", mock.Anything, "gone").Return(nil, nil)
		app := fiber.New()
		app.Get("/", AuthRequired(svc), echoViewer)

		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("Authorization", "Bearer orphan")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})
}

func TestRequireElevated(t *testing.T) {
	cases := []struct {
		role domain.UserRole
		want int
	}{
		{domain.RoleAdmin, fiber.StatusOK},
		{domain.RoleManager, fiber.StatusOK},
		{domain.RoleTeam, fiber.StatusForbidden},
		{domain.RoleClient, fiber.StatusForbidden},
		{domain.RoleGuest, fiber.StatusForbidden},
	}

	for _, tc := range cases {
		t.Run(fmt.Sprintf("Should answer %d for %s", tc.want, tc.role), func(t *testing.T) {
			app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
			app.Get("/", func(c *fiber.Ctx) error {
				c.Locals(UserContextKey, &domain.User{ID: "u", Role: tc.role})
				return c.Next()
			}, RequireElevated(), func(c *fiber.Ctx) error {
				return c.SendStatus(fiber.StatusOK)
			})

			resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
			require.NoError(t, err)
			assert.Equal(t, tc.want, resp.StatusCode)
		})
	}

	t.Run("Should answer 401 without a user", func(t *testing.T) {
		app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
		app.Get("/", RequireElevated(), func(c *fiber.Ctx) error {
			return c.SendStatus(fiber.StatusOK)
		})

		resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})
}

func TestErrorHandler(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
		body string
	}{
		{"unavailable data", fmt.Errorf("%w: activities: %w", domain.ErrDataUnavailable, errors.New("timeout")), 503, "DATA_UNAVAILABLE"},
		{"forbidden", domain.ErrForbidden, 403, "FORBIDDEN"},
		{"missing project", domain.ErrProjectNotFound, 404, "NOT_FOUND"},
		{"bad request", BadRequest("nope"), 400, "BAD_REQUEST"},
		{"anything else", errors.New("boom"), 500, "INTERNAL_ERROR"},
	}

	for _, tc := range cases {
		t.Run("Should map "+tc.name, func(t *testing.T) {
			app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
			app.Get("/", func(c *fiber.Ctx) error { return tc.err })

			resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
			require.NoError(t, err)
			assert.Equal(t, tc.code, resp.StatusCode)

			var body ErrorResponse
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, tc.body, body.Code)
			assert.NotEmpty(t, body.TraceID)
		})
	}
}
