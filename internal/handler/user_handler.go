package handler

import (
	"net/http"
	"strings"

	"paxala/internal/apperr"
	"paxala/internal/auth"
	"paxala/internal/model"
	"paxala/internal/repository"
	"paxala/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type UserHandler struct {
	repo   repository.UserRepositoryInterface
	tokens *auth.TokenManager
}

func NewUserHandler(repo repository.UserRepositoryInterface, tokens *auth.TokenManager) *UserHandler {
	return &UserHandler{repo: repo, tokens: tokens}
}

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name" binding:"required,min=2"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UserResponse struct {
	ID        string     `json:"id"`
	Email     string     `json:"email"`
	Name      string     `json:"name"`
	Role      model.Role `json:"role"`
	ManagerID *string    `json:"managerId,omitempty"`
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

func toUserResponse(u *model.User) UserResponse {
	resp := UserResponse{
		ID:    u.ID.String(),
		Email: u.Email,
		Name:  u.Name,
		Role:  u.Role,
	}
	if u.ManagerID != nil {
		id := u.ManagerID.String()
		resp.ManagerID = &id
	}
	return resp
}

func (h *UserHandler) authResponse(c *gin.Context, status int, user *model.User) {
	token, err := h.tokens.GenerateToken(user.ID, user.Role)
	if err != nil {
		respondError(c, apperr.Internal("Failed to generate token", err))
		return
	}
	c.JSON(status, AuthResponse{Token: token, User: toUserResponse(user)})
}

// Register creates a CLIENT account and signs it in.
// @Summary  Register a client account
// @Tags     Users
// @Accept   json
// @Produce  json
// @Param    request body RegisterRequest true "Account"
// @Success  201 {object} AuthResponse
// @Failure  400 {object} map[string]string
// @Failure  409 {object} map[string]string
// @Router   /register [post]
func (h *UserHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	existing, err := h.repo.FindByEmail(c.Request.Context(), req.Email)
	if err != nil {
		respondError(c, apperr.Internal("Failed to look up user", err))
		return
	}
	if existing != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "User with this email already exists"})
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		respondError(c, apperr.Internal("Failed to hash password", err))
		return
	}

	user := &model.User{
		ID:             uuid.New(),
		Email:          req.Email,
		Name:           strings.TrimSpace(req.Name),
		HashedPassword: hash,
		Role:           model.RoleClient,
	}
	if err := h.repo.Create(c.Request.Context(), user); err != nil {
		respondError(c, apperr.Internal("Failed to create user", err))
		return
	}

	h.authResponse(c, http.StatusCreated, user)
}

// Login exchanges email and password for a token.
// @Summary  Log in
// @Tags     Users
// @Accept   json
// @Produce  json
// @Param    request body LoginRequest true "Credentials"
// @Success  200 {object} AuthResponse
// @Failure  401 {object} map[string]string
// @Router   /login [post]
func (h *UserHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	user, err := h.repo.FindByEmail(c.Request.Context(), strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		respondError(c, apperr.Internal("Failed to look up user", err))
		return
	}
	if user == nil || !auth.CheckPassword(user.HashedPassword, req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	h.authResponse(c, http.StatusOK, user)
}

// Me returns the signed-in user.
// @Summary  Current user
// @Tags     Users
// @Produce  json
// @Security BearerAuth
// @Success  200 {object} UserResponse
// @Router   /me [get]
func (h *UserHandler) Me(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	user, err := h.repo.GetByID(c.Request.Context(), p.UserID)
	if err != nil {
		respondError(c, apperr.Internal("Failed to load user", err))
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	c.JSON(http.StatusOK, toUserResponse(user))
}

// AdminUserHandler serves user management for ADMINs.
type AdminUserHandler struct {
	users *service.UserService
}

func NewAdminUserHandler(users *service.UserService) *AdminUserHandler {
	return &AdminUserHandler{users: users}
}

func (h *AdminUserHandler) List(c *gin.Context) {
	var role *model.Role
	if v := c.Query("role"); v != "" {
		r := model.Role(strings.ToUpper(v))
		role = &r
	}
	users, err := h.users.List(c.Request.Context(), role)
	if err != nil {
		respondError(c, err)
		return
	}
	resp := make([]UserResponse, 0, len(users))
	for i := range users {
		resp = append(resp, toUserResponse(&users[i]))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AdminUserHandler) Create(c *gin.Context) {
	var req service.CreateUserInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	user, err := h.users.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toUserResponse(user))
}

type roleRequest struct {
	Role model.Role `json:"role" binding:"required"`
}

func (h *AdminUserHandler) UpdateRole(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req roleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	user, err := h.users.UpdateRole(c.Request.Context(), id, req.Role)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toUserResponse(user))
}

type managerRequest struct {
	ManagerID *uuid.UUID `json:"managerId"`
}

func (h *AdminUserHandler) UpdateManager(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req managerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	user, err := h.users.UpdateManager(c.Request.Context(), id, req.ManagerID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toUserResponse(user))
}
