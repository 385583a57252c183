package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"catalog-backend/internal/domains/user"
	"catalog-backend/internal/shared/response"
)

type UserHandler struct {
	service user.Service
}

func NewUserHandler(service user.Service) *UserHandler {
	return &UserHandler{service: service}
}

// Register handles POST /auth/register
func (h *UserHandler) Register(c *gin.Context) {
	var req user.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, "invalid request body", "INVALID_USER_DATA")
		return
	}

	result, err := h.service.Register(c.Request.Context(), &req)
	if err != nil {
		statusCode, message, code := user.GetErrorResponse(err)
		response.ErrorResponse(c, statusCode, message, code)
		return
	}

	response.Success(c, http.StatusCreated, "user registered successfully", result)
}

// Login handles POST /auth/login
func (h *UserHandler) Login(c *gin.Context) {
	var req user.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, "invalid request body", "INVALID_USER_DATA")
		return
	}

	result, err := h.service.Login(c.Request.Context(), &req)
	if err != nil {
		statusCode, message, code := user.GetErrorResponse(err)
		response.ErrorResponse(c, statusCode, message, code)
		return
	}

	response.Success(c, http.StatusOK, "logged in successfully", result)
}

// CheckToken handles POST /auth/check-token. It re-validates the
// bearer token and returns the user it belongs to.
func (h *UserHandler) CheckToken(c *gin.Context) {
	header := c.GetHeader("Authorization")
	token := strings.TrimPrefix(header, "Bearer ")
	if token == "" || token == header {
		response.ErrorResponse(c, http.StatusUnauthorized, "missing bearer token", "INVALID_TOKEN")
		return
	}

	u, err := h.service.CheckToken(c.Request.Context(), token)
	if err != nil {
		statusCode, message, code := user.GetErrorResponse(err)
		response.ErrorResponse(c, statusCode, message, code)
		return
	}

	response.Success(c, http.StatusOK, "token is valid", u)
}

// Get handles GET /users/:id
func (h *UserHandler) Get(c *gin.Context) {
	u, err := h.service.GetUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		statusCode, message, code := user.GetErrorResponse(err)
		response.ErrorResponse(c, statusCode, message, code)
		return
	}

	response.Success(c, http.StatusOK, "user retrieved successfully", u)
}

// List handles GET /users
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.service.ListUsers(c.Request.Context())
	if err != nil {
		statusCode, message, code := user.GetErrorResponse(err)
		response.ErrorResponse(c, statusCode, message, code)
		return
	}

	response.Success(c, http.StatusOK, "users retrieved successfully", users)
}
