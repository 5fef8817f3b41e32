package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/office-space-api/internal/dto"
	appErrors "github.com/noah-isme/office-space-api/pkg/errors"
	"github.com/noah-isme/office-space-api/pkg/response"
)

type assignmentService interface {
	ListGroupedByOffice(ctx context.Context) (dto.OfficesResponse, error)
	Create(ctx context.Context, officeID string, req dto.CreateOccupantRequest) (*dto.OccupantView, error)
	Update(ctx context.Context, id int64, req dto.UpdateOccupantRequest) (*dto.OccupantView, error)
	Delete(ctx context.Context, id int64) error
}

// OfficeHandler exposes office occupancy endpoints.
type OfficeHandler struct {
	service assignmentService
}

// NewOfficeHandler builds a new handler.
func NewOfficeHandler(service assignmentService) *OfficeHandler {
	return &OfficeHandler{service: service}
}

// List godoc
// @Summary List all office assignments grouped by office
// @Tags Offices
// @Produce json
// @Success 200 {object} dto.OfficesResponse
// @Failure 500 {object} response.ErrorBody
// @Router /offices [get]
func (h *OfficeHandler) List(c *gin.Context) {
	resp, err := h.service.ListGroupedByOffice(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resp)
}

// CreateOccupant godoc
// @Summary Add an occupant to an office
// @Tags Offices
// @Accept json
// @Produce json
// @Param officeId path string true "Office ID"
// @Param payload body dto.CreateOccupantRequest true "Occupant payload"
// @Success 201 {object} dto.OccupantView
// @Failure 400 {object} response.ErrorBody
// @Router /offices/{officeId}/occupants [post]
func (h *OfficeHandler) CreateOccupant(c *gin.Context) {
	var req dto.CreateOccupantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "request must be JSON"))
		return
	}
	view, err := h.service.Create(c.Request.Context(), c.Param("officeId"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, gin.H{"message": "Occupant added successfully", "occupant": view})
}

// UpdateOccupant godoc
// @Summary Update an occupant
// @Tags Occupants
// @Accept json
// @Produce json
// @Param id path int true "Occupant ID"
// @Param payload body dto.UpdateOccupantRequest true "Occupant payload"
// @Success 200 {object} dto.OccupantView
// @Failure 404 {object} response.ErrorBody
// @Router /occupants/{id} [put]
func (h *OfficeHandler) UpdateOccupant(c *gin.Context) {
	id, ok := occupantID(c)
	if !ok {
		return
	}
	var req dto.UpdateOccupantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "request must be JSON"))
		return
	}
	view, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"message": "Occupant updated successfully", "occupant": view})
}

// DeleteOccupant godoc
// @Summary Delete an occupant
// @Tags Occupants
// @Produce json
// @Param id path int true "Occupant ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} response.ErrorBody
// @Router /occupants/{id} [delete]
func (h *OfficeHandler) DeleteOccupant(c *gin.Context) {
	id, ok := occupantID(c)
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Occupant deleted successfully")
}

// occupantID parses the id path parameter. Non-numeric ids behave like any
// other id without a record behind it.
func occupantID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "occupant not found"))
		return 0, false
	}
	return id, true
}
