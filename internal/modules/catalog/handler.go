package catalog

import (
	"errors"
	"net/http"
	"strconv"

	"homeserve/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterPublicRoutes mounts the read-only catalog endpoints.
func (h *Handler) RegisterPublicRoutes(api *gin.RouterGroup) {
	api.GET("/categories", h.ListCategories)
	api.GET("/categories/:id", h.GetCategory)
	api.GET("/services", h.ListServices)
	api.GET("/services/:id", h.GetService)
}

// RegisterAdminRoutes mounts the catalog writes; the caller wraps the
// group in the admin-only middleware.
func (h *Handler) RegisterAdminRoutes(admin *gin.RouterGroup) {
	admin.GET("/categories", h.ListAllCategories)
	admin.GET("/services", h.ListAllServices)
	admin.POST("/categories", h.CreateCategory)
	admin.PUT("/categories/:id", h.UpdateCategory)
	admin.DELETE("/categories/:id", h.DeleteCategory)
	admin.POST("/services", h.CreateService)
	admin.PUT("/services/:id", h.UpdateService)
	admin.DELETE("/services/:id", h.DeleteService)
}

func (h *Handler) ListCategories(c *gin.Context) {
	list, err := h.service.ListCategories(c.Request.Context(), false)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to fetch categories")
		return
	}
	response.List(c, http.StatusOK, len(list), list)
}

// ListAllCategories is the admin view: inactive categories included.
func (h *Handler) ListAllCategories(c *gin.Context) {
	list, err := h.service.ListCategories(c.Request.Context(), true)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to fetch categories")
		return
	}
	response.List(c, http.StatusOK, len(list), list)
}

func (h *Handler) GetCategory(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid category ID")
		return
	}

	cat, err := h.service.GetCategory(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrCategoryNotFound) {
			response.Error(c, http.StatusNotFound, "Category not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to fetch category")
		return
	}
	response.Success(c, http.StatusOK, cat)
}

func (h *Handler) CreateCategory(c *gin.Context) {
	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Please provide a category name")
		return
	}

	cat, err := h.service.CreateCategory(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrDuplicateCategory) {
			response.Error(c, http.StatusConflict, "Category already exists")
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to create category")
		return
	}
	response.Success(c, http.StatusCreated, cat)
}

func (h *Handler) UpdateCategory(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid category ID")
		return
	}

	var req UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	cat, err := h.service.UpdateCategory(c.Request.Context(), id, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrCategoryNotFound):
			response.Error(c, http.StatusNotFound, "Category not found")
		case errors.Is(err, ErrDuplicateCategory):
			response.Error(c, http.StatusConflict, "Category already exists")
		default:
			response.Error(c, http.StatusInternalServerError, "Failed to update category")
		}
		return
	}
	response.Success(c, http.StatusOK, cat)
}

func (h *Handler) DeleteCategory(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid category ID")
		return
	}

	if err := h.service.DeleteCategory(c.Request.Context(), id); err != nil {
		if errors.Is(err, ErrCategoryNotFound) {
			response.Error(c, http.StatusNotFound, "Category not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to delete category")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Category deleted"})
}

func (h *Handler) ListServices(c *gin.Context) {
	var q ListServicesQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid query parameters")
		return
	}

	list, err := h.service.ListServices(c.Request.Context(), q, false)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to fetch services")
		return
	}
	response.List(c, http.StatusOK, len(list), list)
}

// ListAllServices is the admin view: same filters, inactive rows included.
func (h *Handler) ListAllServices(c *gin.Context) {
	var q ListServicesQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid query parameters")
		return
	}

	list, err := h.service.ListServices(c.Request.Context(), q, true)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to fetch services")
		return
	}
	response.List(c, http.StatusOK, len(list), list)
}

func (h *Handler) GetService(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid service ID")
		return
	}

	svc, err := h.service.GetService(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrServiceNotFound) {
			response.Error(c, http.StatusNotFound, "Service not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to fetch service")
		return
	}
	response.Success(c, http.StatusOK, svc)
}

func (h *Handler) CreateService(c *gin.Context) {
	var req CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Please provide name, description, category, price and duration")
		return
	}

	svc, err := h.service.CreateService(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrCategoryNotFound):
			response.Error(c, http.StatusBadRequest, "Category not found")
		case errors.Is(err, ErrInvalidDiscount):
			response.Error(c, http.StatusBadRequest, "Discount must be below the base price")
		default:
			response.Error(c, http.StatusInternalServerError, "Failed to create service")
		}
		return
	}
	response.Success(c, http.StatusCreated, svc)
}

func (h *Handler) UpdateService(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid service ID")
		return
	}

	var req UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	svc, err := h.service.UpdateService(c.Request.Context(), id, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrServiceNotFound):
			response.Error(c, http.StatusNotFound, "Service not found")
		case errors.Is(err, ErrCategoryNotFound):
			response.Error(c, http.StatusBadRequest, "Category not found")
		case errors.Is(err, ErrInvalidDiscount):
			response.Error(c, http.StatusBadRequest, "Discount must be below the base price")
		default:
			response.Error(c, http.StatusInternalServerError, "Failed to update service")
		}
		return
	}
	response.Success(c, http.StatusOK, svc)
}

func (h *Handler) DeleteService(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid service ID")
		return
	}

	if err := h.service.DeleteService(c.Request.Context(), id); err != nil {
		if errors.Is(err, ErrServiceNotFound) {
			response.Error(c, http.StatusNotFound, "Service not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to delete service")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Service deleted"})
}
