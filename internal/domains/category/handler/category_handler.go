package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"catalog-backend/internal/domains/category"
	"catalog-backend/internal/shared/response"
)

// CategoryHandler handles HTTP requests for the category domain
type CategoryHandler struct {
	service category.Service
}

// NewCategoryHandler creates a new category handler instance
func NewCategoryHandler(service category.Service) *CategoryHandler {
	return &CategoryHandler{service: service}
}

// List handles GET /categories
func (h *CategoryHandler) List(c *gin.Context) {
	result, err := h.service.ListCategories(c.Request.Context())
	if err != nil {
		statusCode, message, code := category.GetErrorResponse(err)
		response.ErrorResponse(c, statusCode, message, code)
		return
	}

	response.Success(c, http.StatusOK, "Categories retrieved successfully", gin.H{"categories": result})
}

// Create handles POST /categories
func (h *CategoryHandler) Create(c *gin.Context) {
	var req category.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request payload")
		return
	}

	result, err := h.service.CreateCategory(c.Request.Context(), &req)
	if err != nil {
		statusCode, message, code := category.GetErrorResponse(err)
		response.ErrorResponse(c, statusCode, message, code)
		return
	}

	response.Success(c, http.StatusCreated, "Category created successfully", gin.H{"category": result})
}

// Update handles PUT /categories/:id
func (h *CategoryHandler) Update(c *gin.Context) {
	var req category.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request payload")
		return
	}

	result, err := h.service.UpdateCategory(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		statusCode, message, code := category.GetErrorResponse(err)
		response.ErrorResponse(c, statusCode, message, code)
		return
	}

	response.Success(c, http.StatusOK, "Category updated successfully", gin.H{"category": result})
}

// Delete handles DELETE /categories/:id
func (h *CategoryHandler) Delete(c *gin.Context) {
	result, err := h.service.DeleteCategory(c.Request.Context(), c.Param("id"))
	if err != nil {
		statusCode, message, code := category.GetErrorResponse(err)
		response.ErrorResponse(c, statusCode, message, code)
		return
	}

	response.Success(c, http.StatusOK, "Category deleted successfully", gin.H{
		"subCategoriesDeleted":    result.SubCategoriesDeleted,
		"serviceProvidersDeleted": result.ProvidersDeleted,
	})
}
