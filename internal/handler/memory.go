package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/wanderlog/backend/internal/model"
	"github.com/wanderlog/backend/internal/service"
)

type MemoryHandler struct {
	svc *service.MemoryService
}

func NewMemoryHandler(svc *service.MemoryService) *MemoryHandler {
	return &MemoryHandler{svc: svc}
}

// AddMemory godoc
// @Summary Add a photo/video memory to a tour
// @Description Multipart form: media file required; caption, mood, locationName optional.
// @Tags memories
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param tourId path string true "Tour ID"
// @Success 201 {object} model.Memory
// @Failure 400 {object} model.ErrorResponse
// @Failure 403 {object} model.ErrorResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /api/v1/tours/{tourId}/memories [post]
func (h *MemoryHandler) AddMemory(c *gin.Context) {
	media, closeMedia, err := formUpload(c, "media")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid media upload"})
		return
	}
	defer closeMedia()

	memory, err := h.svc.AddMemory(c.Request.Context(), GetAuthUser(c), c.Param("tourId"), service.AddMemoryParams{
		Caption:      c.PostForm("caption"),
		LocationName: c.PostForm("locationName"),
		Mood:         c.PostForm("mood"),
		Media:        media,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, memory)
}

// GetTourMemories godoc
// @Summary List a tour's memories
// @Tags memories
// @Produce json
// @Security BearerAuth
// @Param tourId path string true "Tour ID"
// @Success 200 {array} model.Memory
// @Failure 403 {object} model.ErrorResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /api/v1/tours/{tourId}/memories [get]
func (h *MemoryHandler) GetTourMemories(c *gin.Context) {
	memories, err := h.svc.ListMemories(c.Request.Context(), GetAuthUser(c), c.Param("tourId"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, memories)
}

// GetMemoryByID godoc
// @Summary Get a single memory
// @Tags memories
// @Produce json
// @Security BearerAuth
// @Param memoryId path string true "Memory ID"
// @Success 200 {object} model.Memory
// @Failure 403 {object} model.ErrorResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /api/v1/memories/{memoryId} [get]
func (h *MemoryHandler) GetMemoryByID(c *gin.Context) {
	memory, err := h.svc.GetMemory(c.Request.Context(), GetAuthUser(c), c.Param("memoryId"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, memory)
}

// UpdateMemory godoc
// @Summary Update a memory's caption, mood or location name
// @Tags memories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param memoryId path string true "Memory ID"
// @Param request body model.UpdateMemoryRequest true "Fields to update"
// @Success 200 {object} model.Memory
// @Failure 400 {object} model.ErrorResponse
// @Failure 403 {object} model.ErrorResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /api/v1/memories/{memoryId} [patch]
func (h *MemoryHandler) UpdateMemory(c *gin.Context) {
	var req model.UpdateMemoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	memory, err := h.svc.UpdateMemory(c.Request.Context(), GetAuthUser(c), c.Param("memoryId"), req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, memory)
}

// DeleteMemory godoc
// @Summary Delete a memory and its media object
// @Tags memories
// @Produce json
// @Security BearerAuth
// @Param memoryId path string true "Memory ID"
// @Success 200 {object} model.StatusResponse
// @Failure 403 {object} model.ErrorResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /api/v1/memories/{memoryId} [delete]
func (h *MemoryHandler) DeleteMemory(c *gin.Context) {
	if err := h.svc.DeleteMemory(c.Request.Context(), GetAuthUser(c), c.Param("memoryId")); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, model.StatusResponse{Status: "deleted"})
}
