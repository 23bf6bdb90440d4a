package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/wanderlog/backend/internal/model"
	"github.com/wanderlog/backend/internal/service"
)

type TourHandler struct {
	svc *service.TourService
}

func NewTourHandler(svc *service.TourService) *TourHandler {
	return &TourHandler{svc: svc}
}

// CreateTour godoc
// @Summary Create a tour
// @Description Multipart form: title, startDate required; description, endDate, budgetLimit, locations (JSON array), isPublic, isDraft, coverImage file optional.
// @Tags tours
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Success 201 {object} model.Tour
// @Failure 400 {object} model.ErrorResponse
// @Failure 401 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /api/v1/tours [post]
func (h *TourHandler) CreateTour(c *gin.Context) {
	startDate, err := parseDate(c.PostForm("startDate"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid startDate"})
		return
	}

	var endDate *time.Time
	if raw := c.PostForm("endDate"); raw != "" {
		parsed, err := parseDate(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid endDate"})
			return
		}
		endDate = &parsed
	}

	budgetLimit := 0.0
	if raw := c.PostForm("budgetLimit"); raw != "" {
		budgetLimit, err = strconv.ParseFloat(raw, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid budgetLimit"})
			return
		}
	}

	var locations []model.Location
	if raw := c.PostForm("locations"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &locations); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid format for locations"})
			return
		}
	}

	cover, closeCover, err := formUpload(c, "coverImage")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid cover upload"})
		return
	}
	defer closeCover()

	tour, err := h.svc.CreateTour(c.Request.Context(), GetAuthUser(c), service.CreateTourParams{
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		StartDate:   startDate,
		EndDate:     endDate,
		BudgetLimit: budgetLimit,
		Locations:   locations,
		IsPublic:    c.PostForm("isPublic") == "true",
		IsDraft:     c.PostForm("isDraft") == "true",
		CoverImage:  cover,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, tour)
}

// GetUserTours godoc
// @Summary List the caller's tours
// @Tags tours
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page (default 1)"
// @Param limit query int false "Page size (default 10)"
// @Param isDraft query bool false "Filter by draft state"
// @Success 200 {object} model.TourListResponse
// @Failure 401 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /api/v1/tours [get]
func (h *TourHandler) GetUserTours(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	var isDraft *bool
	if raw := c.Query("isDraft"); raw != "" {
		parsed := raw == "true"
		isDraft = &parsed
	}

	res, err := h.svc.ListTours(c.Request.Context(), GetAuthUser(c), page, limit, isDraft)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

// GetTourByID godoc
// @Summary Get tour details
// @Description Owners always see their tour; others only when it is public and not a draft.
// @Tags tours
// @Produce json
// @Security BearerAuth
// @Param tourId path string true "Tour ID"
// @Success 200 {object} model.Tour
// @Failure 403 {object} model.ErrorResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /api/v1/tours/{tourId} [get]
func (h *TourHandler) GetTourByID(c *gin.Context) {
	tour, err := h.svc.GetTour(c.Request.Context(), GetAuthUser(c), c.Param("tourId"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, tour)
}

// UpdateTour godoc
// @Summary Update a tour
// @Tags tours
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param tourId path string true "Tour ID"
// @Success 200 {object} model.Tour
// @Failure 400 {object} model.ErrorResponse
// @Failure 403 {object} model.ErrorResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /api/v1/tours/{tourId} [patch]
func (h *TourHandler) UpdateTour(c *gin.Context) {
	var params service.UpdateTourParams

	if v, ok := c.GetPostForm("title"); ok {
		params.Title = &v
	}
	if v, ok := c.GetPostForm("description"); ok {
		params.Description = &v
	}
	if v, ok := c.GetPostForm("status"); ok {
		params.Status = &v
	}
	if v, ok := c.GetPostForm("budgetLimit"); ok {
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid budgetLimit"})
			return
		}
		params.BudgetLimit = &parsed
	}
	if v, ok := c.GetPostForm("endDate"); ok {
		parsed, err := parseDate(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid endDate"})
			return
		}
		params.EndDate = &parsed
	}
	if v, ok := c.GetPostForm("isPublic"); ok {
		parsed := v == "true"
		params.IsPublic = &parsed
	}
	if v, ok := c.GetPostForm("isDraft"); ok {
		parsed := v == "true"
		params.IsDraft = &parsed
	}

	cover, closeCover, err := formUpload(c, "coverImage")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid cover upload"})
		return
	}
	defer closeCover()
	params.CoverImage = cover

	tour, err := h.svc.UpdateTour(c.Request.Context(), GetAuthUser(c), c.Param("tourId"), params)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, tour)
}

// DeleteTour godoc
// @Summary Delete a tour
// @Tags tours
// @Produce json
// @Security BearerAuth
// @Param tourId path string true "Tour ID"
// @Success 200 {object} model.StatusResponse
// @Failure 403 {object} model.ErrorResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /api/v1/tours/{tourId} [delete]
func (h *TourHandler) DeleteTour(c *gin.Context) {
	if err := h.svc.DeleteTour(c.Request.Context(), GetAuthUser(c), c.Param("tourId")); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, model.StatusResponse{Status: "deleted"})
}

// parseDate accepts RFC 3339 or bare YYYY-MM-DD.
func parseDate(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", raw)
}
