package handler

import (
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"catalog-backend/internal/domains/provider"
	"catalog-backend/internal/shared/response"
)

type ProviderHandler struct {
	service provider.Service
}

func NewProviderHandler(service provider.Service) *ProviderHandler {
	return &ProviderHandler{service: service}
}

// ListByParent handles GET /service-providers/:id
func (h *ProviderHandler) ListByParent(c *gin.Context) {
	providers, err := h.service.ListProviders(c.Request.Context(), c.Param("id"))
	if err != nil {
		statusCode, message, code := provider.GetErrorResponse(err)
		response.ErrorResponse(c, statusCode, message, code)
		return
	}

	response.Success(c, http.StatusOK, "service providers retrieved successfully", providers)
}

// Get handles GET /service-providers/by-id/:id
func (h *ProviderHandler) Get(c *gin.Context) {
	p, err := h.service.GetProvider(c.Request.Context(), c.Param("id"))
	if err != nil {
		statusCode, message, code := provider.GetErrorResponse(err)
		response.ErrorResponse(c, statusCode, message, code)
		return
	}

	response.Success(c, http.StatusOK, "service provider retrieved successfully", p)
}

// Search handles GET /service-providers/search?searchString=
func (h *ProviderHandler) Search(c *gin.Context) {
	providers, err := h.service.SearchProviders(c.Request.Context(), c.Query("searchString"))
	if err != nil {
		statusCode, message, code := provider.GetErrorResponse(err)
		response.ErrorResponse(c, statusCode, message, code)
		return
	}

	response.Success(c, http.StatusOK, "service providers retrieved successfully", providers)
}

// Create handles POST /service-providers/:id.
// The request is multipart: a JSON-encoded "data" field plus up to
// ten "images" files.
func (h *ProviderHandler) Create(c *gin.Context) {
	var req provider.CreateServiceProviderRequest
	if !bindDataField(c, &req) {
		return
	}

	images, ok := readImageFiles(c)
	if !ok {
		return
	}

	created, err := h.service.CreateProvider(c.Request.Context(), c.Param("id"), &req, images)
	if err != nil {
		statusCode, message, code := provider.GetErrorResponse(err)
		response.ErrorResponse(c, statusCode, message, code)
		return
	}

	response.Success(c, http.StatusCreated, "service provider created successfully", created)
}

// Update handles PUT /service-providers/:id with the same multipart shape as
// Create; the "data" field is a partial patch and may carry
// deletedImageIds.
func (h *ProviderHandler) Update(c *gin.Context) {
	var req provider.UpdateServiceProviderRequest
	if !bindDataField(c, &req) {
		return
	}

	images, ok := readImageFiles(c)
	if !ok {
		return
	}

	updated, err := h.service.UpdateProvider(c.Request.Context(), c.Param("id"), &req, images)
	if err != nil {
		statusCode, message, code := provider.GetErrorResponse(err)
		response.ErrorResponse(c, statusCode, message, code)
		return
	}

	response.Success(c, http.StatusOK, "service provider updated successfully", updated)
}

// Delete handles DELETE /service-providers/:id
func (h *ProviderHandler) Delete(c *gin.Context) {
	if err := h.service.DeleteProvider(c.Request.Context(), c.Param("id")); err != nil {
		statusCode, message, code := provider.GetErrorResponse(err)
		response.ErrorResponse(c, statusCode, message, code)
		return
	}

	response.Success(c, http.StatusOK, "service provider deleted successfully", nil)
}

// BulkImport handles POST /service-providers/:id/bulk-import
// with an xlsx workbook in the "file" field.
func (h *ProviderHandler) BulkImport(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, "file is required", "INVALID_PROVIDER_DATA")
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, "failed to read uploaded file", "INVALID_PROVIDER_DATA")
		return
	}
	defer f.Close()

	result, err := h.service.BulkImport(c.Request.Context(), c.Param("id"), f)
	if err != nil {
		statusCode, message, code := provider.GetErrorResponse(err)
		response.ErrorResponse(c, statusCode, message, code)
		return
	}

	response.Success(c, http.StatusOK, "service providers imported", result)
}

func bindDataField(c *gin.Context, dest interface{}) bool {
	data := c.PostForm("data")
	if data == "" {
		response.ErrorResponse(c, http.StatusBadRequest, "data field is required", "INVALID_PROVIDER_DATA")
		return false
	}
	if err := json.Unmarshal([]byte(data), dest); err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, "data field is not valid JSON", "INVALID_PROVIDER_DATA")
		return false
	}
	return true
}

func readImageFiles(c *gin.Context) ([][]byte, bool) {
	form, err := c.MultipartForm()
	if err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, "invalid multipart form", "INVALID_PROVIDER_DATA")
		return nil, false
	}

	files := form.File["images"]
	if len(files) > provider.MaxImagesPerProvider {
		response.ErrorResponse(c, http.StatusBadRequest, "too many images", "INVALID_PROVIDER_DATA")
		return nil, false
	}

	images := make([][]byte, 0, len(files))
	for _, fh := range files {
		data, err := readFileHeader(fh)
		if err != nil {
			response.ErrorResponse(c, http.StatusBadRequest, "failed to read image file", "INVALID_IMAGE")
			return nil, false
		}
		images = append(images, data)
	}
	return images, true
}

func readFileHeader(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}
