package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"catalog-backend/internal/domains/subcategory"
	"catalog-backend/internal/shared/response"
)

// SubCategoryHandler handles HTTP requests for the sub-category domain
type SubCategoryHandler struct {
	service subcategory.Service
}

// NewSubCategoryHandler creates a new sub-category handler instance
func NewSubCategoryHandler(service subcategory.Service) *SubCategoryHandler {
	return &SubCategoryHandler{service: service}
}

// ListByParent handles GET /sub-categories/:id where :id is the main category
func (h *SubCategoryHandler) ListByParent(c *gin.Context) {
	result, err := h.service.ListByParent(c.Request.Context(), c.Param("id"))
	if err != nil {
		statusCode, message, code := subcategory.GetErrorResponse(err)
		response.ErrorResponse(c, statusCode, message, code)
		return
	}

	response.Success(c, http.StatusOK, "Sub-categories retrieved successfully", gin.H{"subCategories": result})
}

// Create handles POST /sub-categories/:id where :id is the main category
func (h *SubCategoryHandler) Create(c *gin.Context) {
	var req subcategory.CreateSubCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request payload")
		return
	}

	result, err := h.service.CreateSubCategory(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		statusCode, message, code := subcategory.GetErrorResponse(err)
		response.ErrorResponse(c, statusCode, message, code)
		return
	}

	response.Success(c, http.StatusCreated, "Sub-category created successfully", gin.H{"subCategory": result})
}

// Update handles PUT /sub-categories/:id
func (h *SubCategoryHandler) Update(c *gin.Context) {
	var req subcategory.UpdateSubCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request payload")
		return
	}

	result, err := h.service.UpdateSubCategory(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		statusCode, message, code := subcategory.GetErrorResponse(err)
		response.ErrorResponse(c, statusCode, message, code)
		return
	}

	response.Success(c, http.StatusOK, "Sub-category updated successfully", gin.H{"subCategory": result})
}

// Delete handles DELETE /sub-categories/:id
func (h *SubCategoryHandler) Delete(c *gin.Context) {
	result, err := h.service.DeleteSubCategory(c.Request.Context(), c.Param("id"))
	if err != nil {
		statusCode, message, code := subcategory.GetErrorResponse(err)
		response.ErrorResponse(c, statusCode, message, code)
		return
	}

	response.Success(c, http.StatusOK, "Sub-category deleted successfully", gin.H{
		"serviceProvidersDeleted": result.ProvidersDeleted,
	})
}
