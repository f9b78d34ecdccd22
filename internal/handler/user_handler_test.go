package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"paxala/internal/auth"
	"paxala/internal/handler"
	"paxala/internal/middleware"
	"paxala/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	user := args.Get(0)
	if user == nil {
		return nil, args.Error(1)
	}
	return user.(*model.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	user := args.Get(0)
	if user == nil {
		return nil, args.Error(1)
	}
	return user.(*model.User), args.Error(1)
}

var testTokens = auth.NewTokenManager("test-secret", 1)

func setupTest() (*gin.Engine, *MockUserRepository) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	mockRepo := new(MockUserRepository)
	userHandler := handler.NewUserHandler(mockRepo, testTokens)

	r.POST("/register", userHandler.Register)
	r.POST("/login", userHandler.Login)
	r.GET("/me", middleware.JWTAuthMiddleware(testTokens, mockRepo), userHandler.Me)
	return r, mockRepo
}

func postJSON(router http.Handler, path string, body any) *httptest.ResponseRecorder {
	jsonBody, _ := json.Marshal(body)
	req, _ := http.NewRequest("POST", path, bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestRegister_Success(t *testing.T) {
	router, mockRepo := setupTest()

	mockRepo.On("FindByEmail", mock.Anything, "test@example.com").Return(nil, nil)
	mockRepo.On("Create", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
		return u.Role == model.RoleClient && u.HashedPassword != "password123"
	})).Return(nil)

	reqBody := handler.RegisterRequest{
		Name:     "Test User",
		Email:    "Test@Example.com",
		Password: "password123",
	}
	resp := postJSON(router, "/register", reqBody)

	assert.Equal(t, http.StatusCreated, resp.Code)

	var response handler.AuthResponse
	err := json.Unmarshal(resp.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.NotEmpty(t, response.Token)
	assert.Equal(t, reqBody.Name, response.User.Name)
	assert.Equal(t, "test@example.com", response.User.Email)
	assert.Equal(t, model.RoleClient, response.User.Role)

	claims, err := testTokens.ParseToken(response.Token)
	assert.NoError(t, err)
	assert.Equal(t, response.User.ID, claims.UserID)

	mockRepo.AssertExpectations(t)
}

func TestRegister_UserAlreadyExists(t *testing.T) {
	router, mockRepo := setupTest()

	existingUser := &model.User{
		ID:             uuid.New(),
		Email:          "existing@example.com",
		HashedPassword: "hashed_password",
		Name:           "Existing User",
	}
	mockRepo.On("FindByEmail", mock.Anything, "existing@example.com").Return(existingUser, nil)

	resp := postJSON(router, "/register", handler.RegisterRequest{
		Name:     "Test User",
		Email:    "existing@example.com",
		Password: "password123",
	})

	assert.Equal(t, http.StatusConflict, resp.Code)

	var response map[string]string
	err := json.Unmarshal(resp.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, "User with this email already exists", response["error"])

	mockRepo.AssertExpectations(t)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRegister_InvalidInput(t *testing.T) {
	router, mockRepo := setupTest()

	resp := postJSON(router, "/register", map[string]string{"email": "nope", "password": "1"})

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	mockRepo.AssertNotCalled(t, "FindByEmail", mock.Anything, mock.Anything)
}

func TestLogin_Success(t *testing.T) {
	router, mockRepo := setupTest()

	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	testUser := &model.User{
		ID:             uuid.New(),
		Email:          "test@example.com",
		HashedPassword: string(hashedPassword),
		Name:           "Test User",
		Role:           model.RoleStaff,
	}
	mockRepo.On("FindByEmail", mock.Anything, "test@example.com").Return(testUser, nil)

	resp := postJSON(router, "/login", handler.LoginRequest{
		Email:    "test@example.com",
		Password: "password123",
	})

	assert.Equal(t, http.StatusOK, resp.Code)

	var response handler.AuthResponse
	err := json.Unmarshal(resp.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.NotEmpty(t, response.Token)
	assert.Equal(t, testUser.Name, response.User.Name)
	assert.Equal(t, testUser.Email, response.User.Email)
	assert.Equal(t, testUser.ID.String(), response.User.ID)

	claims, err := testTokens.ParseToken(response.Token)
	assert.NoError(t, err)
	assert.Equal(t, model.RoleStaff, claims.Role)

	mockRepo.AssertExpectations(t)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	router, mockRepo := setupTest()

	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("correct_password"), bcrypt.DefaultCost)
	testUser := &model.User{
		ID:             uuid.New(),
		Email:          "test@example.com",
		HashedPassword: string(hashedPassword),
		Name:           "Test User",
	}
	mockRepo.On("FindByEmail", mock.Anything, "test@example.com").Return(testUser, nil)

	resp := postJSON(router, "/login", handler.LoginRequest{
		Email:    "test@example.com",
		Password: "wrong_password",
	})

	assert.Equal(t, http.StatusUnauthorized, resp.Code)

	var response map[string]string
	err := json.Unmarshal(resp.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, "Invalid credentials", response["error"])

	mockRepo.AssertExpectations(t)
}

func TestLogin_UserNotFound(t *testing.T) {
	router, mockRepo := setupTest()

	mockRepo.On("FindByEmail", mock.Anything, "nonexistent@example.com").Return(nil, nil)

	resp := postJSON(router, "/login", handler.LoginRequest{
		Email:    "nonexistent@example.com",
		Password: "password123",
	})

	assert.Equal(t, http.StatusUnauthorized, resp.Code)

	var response map[string]string
	err := json.Unmarshal(resp.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, "Invalid credentials", response["error"])

	mockRepo.AssertExpectations(t)
}

func TestMe(t *testing.T) {
	router, mockRepo := setupTest()

	user := &model.User{ID: uuid.New(), Email: "me@example.com", Name: "Me", Role: model.RoleAdmin}
	mockRepo.On("GetByID", mock.Anything, user.ID).Return(user, nil)

	token, err := testTokens.GenerateToken(user.ID, user.Role)
	assert.NoError(t, err)

	req, _ := http.NewRequest("GET", "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)

	var response handler.UserResponse
	assert.NoError(t, json.Unmarshal(resp.Body.Bytes(), &response))
	assert.Equal(t, user.ID.String(), response.ID)
	assert.Equal(t, model.RoleAdmin, response.Role)

	mockRepo.AssertExpectations(t)
}
