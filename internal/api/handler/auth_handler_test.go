package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"recipehub/internal/api/dto"
	"recipehub/internal/api/handler"
	"recipehub/internal/api/models"
	"recipehub/internal/api/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, req dto.RegisterRequest) (*models.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (string, string, *models.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(2) == nil {
		return args.String(0), args.String(1), nil, args.Error(3)
	}
	return args.String(0), args.String(1), args.Get(2).(*models.User), args.Error(3)
}

func (m *MockAuthService) RefreshAccessToken(ctx context.Context, refreshToken string) (string, string, error) {
	args := m.Called(ctx, refreshToken)
	return args.String(0), args.String(1), args.Error(2)
}

func (m *MockAuthService) RevokeToken(ctx context.Context, refreshToken string) error {
	args := m.Called(ctx, refreshToken)
	return args.Error(0)
}

func (m *MockAuthService) ValidateToken(tokenString string) (*service.Claims, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Claims), args.Error(1)
}

func setupAuthRouter(mockService *MockAuthService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := handler.NewAuthHandler(mockService, 15*time.Minute)
	h.RegisterRoutes(r.Group("/api/auth"))
	return r
}

func postJSON(r *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	payload, _ := json.Marshal(body)
	req, _ := http.NewRequest(http.MethodPost, path, bytes.NewBuffer(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthHandler_Register(t *testing.T) {
	mockService := new(MockAuthService)
	r := setupAuthRouter(mockService)

	body := dto.RegisterRequest{
		Email:     "test@example.com",
		Username:  "testuser",
		FirstName: "Test",
		LastName:  "User",
		Password:  "password123",
	}

	t.Run("Created", func(t *testing.T) {
		user := &models.User{ID: 7, Username: "testuser", Email: "test@example.com"}
		mockService.On("Register", mock.Anything, body).Return(user, nil).Once()

		w := postJSON(r, "/api/auth/register", body)

		assert.Equal(t, http.StatusCreated, w.Code)
		var resp map[string]interface{}
		json.Unmarshal(w.Body.Bytes(), &resp)
		assert.Equal(t, float64(7), resp["user_id"])
		assert.Equal(t, "testuser", resp["username"])
	})

	t.Run("UsernameConflict", func(t *testing.T) {
		mockService.On("Register", mock.Anything, body).Return(nil, service.ErrNameInUse).Once()

		w := postJSON(r, "/api/auth/register", body)

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("InvalidUsername", func(t *testing.T) {
		bad := body
		bad.Username = "has spaces"
		mockService.On("Register", mock.Anything, bad).Return(nil, service.ErrInvalidUsername).Once()

		w := postJSON(r, "/api/auth/register", bad)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("MissingFields", func(t *testing.T) {
		w := postJSON(r, "/api/auth/register", gin.H{"email": "test@example.com"})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockService.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
	})
}

func TestAuthHandler_Login(t *testing.T) {
	mockService := new(MockAuthService)
	r := setupAuthRouter(mockService)

	body := dto.LoginRequest{Email: "test@example.com", Password: "password123"}

	t.Run("Success", func(t *testing.T) {
		user := &models.User{ID: 7, Username: "testuser"}
		mockService.On("Login", mock.Anything, "test@example.com", "password123").
			Return("access-token", "refresh-token", user, nil).Once()

		w := postJSON(r, "/api/auth/login", body)

		assert.Equal(t, http.StatusOK, w.Code)
		var resp dto.AuthResponse
		json.Unmarshal(w.Body.Bytes(), &resp)
		assert.Equal(t, "access-token", resp.AccessToken)
		assert.Equal(t, "refresh-token", resp.RefreshToken)
		assert.Equal(t, int64(7), resp.UserID)
		assert.Equal(t, int64(900), resp.ExpiresIn)
	})

	t.Run("BadCredentials", func(t *testing.T) {
		mockService.On("Login", mock.Anything, "test@example.com", "password123").
			Return("", "", nil, service.ErrInvalidCredentials).Once()

		w := postJSON(r, "/api/auth/login", body)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestAuthHandler_RefreshToken(t *testing.T) {
	mockService := new(MockAuthService)
	r := setupAuthRouter(mockService)

	t.Run("Rotates", func(t *testing.T) {
		mockService.On("RefreshAccessToken", mock.Anything, "old-refresh").
			Return("new-access", "new-refresh", nil).Once()

		w := postJSON(r, "/api/auth/refresh", dto.RefreshTokenRequest{RefreshToken: "old-refresh"})

		assert.Equal(t, http.StatusOK, w.Code)
		var resp dto.RefreshResponse
		json.Unmarshal(w.Body.Bytes(), &resp)
		assert.Equal(t, "new-access", resp.AccessToken)
		assert.Equal(t, "new-refresh", resp.RefreshToken)
		assert.Equal(t, "Bearer", resp.TokenType)
	})

	t.Run("Invalid", func(t *testing.T) {
		mockService.On("RefreshAccessToken", mock.Anything, "garbage").
			Return("", "", service.ErrInvalidToken).Once()

		w := postJSON(r, "/api/auth/refresh", dto.RefreshTokenRequest{RefreshToken: "garbage"})

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestAuthHandler_RevokeToken_AlwaysOK(t *testing.T) {
	mockService := new(MockAuthService)
	r := setupAuthRouter(mockService)

	// even an unknown token gets a success response
	mockService.On("RevokeToken", mock.Anything, "whatever").
		Return(service.ErrInvalidToken).Once()

	w := postJSON(r, "/api/auth/logout", dto.RevokeTokenRequest{RefreshToken: "whatever"})

	assert.Equal(t, http.StatusOK, w.Code)
}
