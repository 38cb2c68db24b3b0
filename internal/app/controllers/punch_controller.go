package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/blackstanton/punchclock/internal/app/models/dto"
	"github.com/blackstanton/punchclock/internal/app/services"
	"github.com/blackstanton/punchclock/internal/middleware"
)

// PunchController handles punch lifecycle endpoints
type PunchController struct {
	punchService *services.PunchService
}

// NewPunchController creates a new PunchController
func NewPunchController(punchService *services.PunchService) *PunchController {
	return &PunchController{
		punchService: punchService,
	}
}

// OpenPunch starts a new punch for a student+task pair
// @Summary Open a punch
// @Tags punches
// @Accept json
// @Produce json
// @Param request body dto.OpenPunchRequest true "Punch information"
// @Success 201 {object} dto.APIResponse{data=dto.PunchResponse}
// @Failure 400 {object} dto.ErrorResponse "Unknown student or task"
// @Router /punches [post]
func (c *PunchController) OpenPunch(ctx *gin.Context) {
	var req dto.OpenPunchRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid punch data").
			WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	var start time.Time
	if req.TimeStart != nil {
		start = *req.TimeStart
	}

	punch, err := c.punchService.Open(ctx, req.StudentID, req.TaskID, start)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(dto.NewPunchResponse(punch)))
}

// ClosePunch ends an open punch
// @Summary Close a punch
// @Tags punches
// @Accept json
// @Produce json
// @Param id path int true "Punch ID"
// @Param request body dto.ClosePunchRequest false "End time, defaults to now"
// @Success 200 {object} dto.APIResponse{data=dto.PunchResponse}
// @Failure 404 {object} dto.ErrorResponse "Punch not found"
// @Failure 422 {object} dto.ErrorResponse "Punch already closed"
// @Router /punches/{id}/close [post]
func (c *PunchController) ClosePunch(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	// An empty body closes the punch at the current instant.
	var req dto.ClosePunchRequest
	if ctx.Request.ContentLength > 0 {
		if err := ctx.ShouldBindJSON(&req); err != nil {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid punch data").
				WithDetails(err.Error())
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return
		}
	}

	var end time.Time
	if req.TimeEnd != nil {
		end = *req.TimeEnd
	}

	punch, err := c.punchService.Close(ctx, id, end)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.NewPunchResponse(punch)))
}

// BackfillPunch records an already-closed punch from supplied times
// @Summary Back-fill a closed punch
// @Tags punches
// @Accept json
// @Produce json
// @Param request body dto.BackfillPunchRequest true "Punch information"
// @Success 201 {object} dto.APIResponse{data=dto.PunchResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid times or references"
// @Router /punches/backfill [post]
func (c *PunchController) BackfillPunch(ctx *gin.Context) {
	var req dto.BackfillPunchRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid punch data").
			WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	punch, err := c.punchService.CreateClosed(ctx, req.StudentID, req.TaskID, req.TimeStart, req.TimeEnd)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(dto.NewPunchResponse(punch)))
}

// GetPunchByID retrieves a punch by ID
// @Summary Get punch by ID
// @Tags punches
// @Produce json
// @Param id path int true "Punch ID"
// @Success 200 {object} dto.APIResponse{data=dto.PunchResponse}
// @Failure 404 {object} dto.ErrorResponse "Punch not found"
// @Router /punches/{id} [get]
func (c *PunchController) GetPunchByID(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	punch, err := c.punchService.GetByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.NewPunchResponse(punch)))
}

// GetAllPunches retrieves all punches
// @Summary Get all punches
// @Tags punches
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]dto.PunchResponse}
// @Router /punches [get]
func (c *PunchController) GetAllPunches(ctx *gin.Context) {
	punches, err := c.punchService.GetAll(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.NewPunchResponses(punches)))
}
