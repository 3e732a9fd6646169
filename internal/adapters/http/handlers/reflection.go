package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/learning-journal/internal/adapters/http/dto"
	"github.com/jsamuelsen/learning-journal/internal/domain"
	"github.com/jsamuelsen/learning-journal/internal/ports"
)

// ReflectionService is the application surface the REST handlers drive.
type ReflectionService interface {
	ports.Journal
	Update(ctx context.Context, id int, patch domain.ReflectionPatch) (*domain.Reflection, error)
	Delete(ctx context.Context, id int) error
}

// ReflectionHandler serves the /api/reflections endpoints.
type ReflectionHandler struct {
	service ReflectionService
}

// NewReflectionHandler creates a new reflection handler.
func NewReflectionHandler(service ReflectionService) *ReflectionHandler {
	return &ReflectionHandler{service: service}
}

// List handles GET /api/reflections
//
// @Summary List reflections
// @Tags reflections
// @Produce json
// @Success 200 {array} dto.ReflectionResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/reflections [get]
func (h *ReflectionHandler) List(c *gin.Context) {
	entries, err := h.service.List(c.Request.Context())
	if err != nil {
		dto.HandleError(c, err, dto.MessageLoadFailed)
		return
	}

	c.JSON(http.StatusOK, dto.NewReflectionListResponse(entries))
}

// Create handles POST /api/reflections
//
// @Summary Create a reflection
// @Tags reflections
// @Accept json
// @Produce json
// @Param body body dto.CreateReflectionRequest true "New reflection"
// @Success 201 {object} dto.ReflectionResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/reflections [post]
func (h *ReflectionHandler) Create(c *gin.Context) {
	var req dto.CreateReflectionRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		dto.HandleBindError(c, err)
		return
	}

	created, err := h.service.Create(c.Request.Context(), req.ToDomain())
	if err != nil {
		dto.HandleError(c, err, dto.MessageSaveFailed)
		return
	}

	c.JSON(http.StatusCreated, dto.NewReflectionResponse(created))
}

// Update handles PUT /api/reflections/:id
//
// @Summary Update a reflection
// @Description Overwrites only the fields present in the body.
// @Tags reflections
// @Accept json
// @Produce json
// @Param id path int true "Reflection ID"
// @Param body body dto.UpdateReflectionRequest true "Fields to overwrite"
// @Success 200 {object} dto.ReflectionResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/reflections/{id} [put]
func (h *ReflectionHandler) Update(c *gin.Context) {
	id, ok := reflectionID(c)
	if !ok {
		return
	}

	var req dto.UpdateReflectionRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		dto.HandleBindError(c, err)
		return
	}

	updated, err := h.service.Update(c.Request.Context(), id, req.ToDomain())
	if err != nil {
		dto.HandleError(c, err, dto.MessageUpdateFailed)
		return
	}

	c.JSON(http.StatusOK, dto.NewReflectionResponse(updated))
}

// Delete handles DELETE /api/reflections/:id
//
// @Summary Delete a reflection
// @Tags reflections
// @Produce json
// @Param id path int true "Reflection ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/reflections/{id} [delete]
func (h *ReflectionHandler) Delete(c *gin.Context) {
	id, ok := reflectionID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		dto.HandleError(c, err, dto.MessageDeleteFailed)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: dto.MessageDeleted})
}

// reflectionID parses the :id path segment. A segment that is not an integer
// cannot name a stored entry, so it answers 404 like any unknown id.
func reflectionID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		dto.Abort(c, dto.ErrorCodeNotFound, dto.MessageNotFound)
		return 0, false
	}

	return id, true
}

// RegisterReflectionRoutes registers the reflection routes on the given router group.
func (h *ReflectionHandler) RegisterReflectionRoutes(rg *gin.RouterGroup) {
	reflections := rg.Group("/reflections")
	reflections.GET("", h.List)
	reflections.POST("", h.Create)
	reflections.PUT("/:id", h.Update)
	reflections.DELETE("/:id", h.Delete)
}
