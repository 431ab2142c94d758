package handler

import (
	"errors"
	"net/http"
	"strconv"

	"dmvcalc/internal/i18n"
	"dmvcalc/internal/middleware"
	"dmvcalc/internal/service"
	"dmvcalc/internal/taxcalc"
	"dmvcalc/pkg/pagination"
	"dmvcalc/pkg/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ViolationsPayload is the data of a 422 response.
type ViolationsPayload struct {
	Violations []i18n.LocalizedViolation `json:"violations"`
}

// PreviewPayload is a processed record with localized violations.
type PreviewPayload struct {
	Record     service.CalculationResponse `json:"record"`
	Violations []i18n.LocalizedViolation   `json:"violations"`
	Valid      bool                        `json:"valid"`
}

type CalculationHandler struct {
	calcService service.CalculationService
	catalog     *i18n.Catalog
	log         *zap.Logger
}

func NewCalculationHandler(calcService service.CalculationService, catalog *i18n.Catalog, log *zap.Logger) *CalculationHandler {
	return &CalculationHandler{calcService: calcService, catalog: catalog, log: log}
}

func (h *CalculationHandler) RegisterRoutes(router *gin.RouterGroup, auth gin.HandlerFunc) {
	group := router.Group("/api/dmv-calculations")
	group.Use(auth)
	{
		group.POST("/preview", h.Preview)
		group.POST("", h.Create)
		group.GET("", h.List)
		group.GET("/:id", h.Get)
		group.PUT("/:id", h.Update)
		group.DELETE("/:id", h.Delete)
	}
}

// Preview processes a record without saving it
// @Summary      Preview a DMV calculation
// @Description  Validates the record and derives its tax totals; nothing is stored
// @Tags         dmv-calculations
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        body  body      service.CalculationRequest  true  "Calculation input"
// @Success      200   {object}  response.Response{data=PreviewPayload}
// @Router       /api/dmv-calculations/preview [post]
func (h *CalculationHandler) Preview(c *gin.Context) {
	var req service.CalculationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	res, err := h.calcService.Preview(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	lang := h.catalog.Negotiate(c.GetHeader("Accept-Language"))
	c.JSON(http.StatusOK, response.Success(http.StatusOK, PreviewPayload{
		Record:     res.Record,
		Violations: h.catalog.Localize(lang, res.Violations),
		Valid:      res.Valid,
	}))
}

// Create validates, derives and stores a calculation
// @Summary      Create a DMV calculation
// @Tags         dmv-calculations
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        body  body      service.CalculationRequest  true  "Calculation input"
// @Success      201   {object}  response.Response{data=service.CalculationResponse}
// @Failure      422   {object}  response.Response{data=ViolationsPayload}
// @Router       /api/dmv-calculations [post]
func (h *CalculationHandler) Create(c *gin.Context) {
	var req service.CalculationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	calc, err := h.calcService.Create(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, calc))
}

// List returns the caller's calculations, newest first
// @Summary      List DMV calculations
// @Tags         dmv-calculations
// @Security     BearerAuth
// @Produce      json
// @Param        page   query     int  false  "Page number (default 1)"
// @Param        limit  query     int  false  "Number of items per page (default 20)"
// @Success      200    {object}  response.Response{data=pagination.Page[service.CalculationResponse]}
// @Router       /api/dmv-calculations [get]
func (h *CalculationHandler) List(c *gin.Context) {
	p := pagination.Parse(c)

	items, total, err := h.calcService.List(c.Request.Context(), middleware.UserID(c), p.Page, p.Limit)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, pagination.NewPage(items, p, total)))
}

// Get returns one calculation
// @Summary      Get a DMV calculation
// @Tags         dmv-calculations
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      int  true  "Calculation ID"
// @Success      200  {object}  response.Response{data=service.CalculationResponse}
// @Router       /api/dmv-calculations/{id} [get]
func (h *CalculationHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	calc, err := h.calcService.Get(c.Request.Context(), middleware.UserID(c), id)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, calc))
}

// Update re-runs the calculation with new input
// @Summary      Update a DMV calculation
// @Tags         dmv-calculations
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id    path      int                         true  "Calculation ID"
// @Param        body  body      service.CalculationRequest  true  "Calculation input"
// @Success      200   {object}  response.Response{data=service.CalculationResponse}
// @Failure      422   {object}  response.Response{data=ViolationsPayload}
// @Router       /api/dmv-calculations/{id} [put]
func (h *CalculationHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req service.CalculationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	calc, err := h.calcService.Update(c.Request.Context(), middleware.UserID(c), id, req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, calc))
}

// Delete soft-deletes a calculation
// @Summary      Delete a DMV calculation
// @Tags         dmv-calculations
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      int  true  "Calculation ID"
// @Success      200  {object}  response.Response
// @Router       /api/dmv-calculations/{id} [delete]
func (h *CalculationHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.calcService.Delete(c.Request.Context(), middleware.UserID(c), id); err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"id": id, "isDeleted": true}))
}

// writeError maps service errors onto HTTP statuses.
func (h *CalculationHandler) writeError(c *gin.Context, err error) {
	var violations taxcalc.Violations
	switch {
	case errors.As(err, &violations):
		lang := h.catalog.Negotiate(c.GetHeader("Accept-Language"))
		c.JSON(http.StatusUnprocessableEntity, response.Fail(http.StatusUnprocessableEntity, "validation failed", ViolationsPayload{
			Violations: h.catalog.Localize(lang, violations),
		}))
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
	case errors.Is(err, service.ErrCalculationNotFound), errors.Is(err, service.ErrListingNotFound):
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, response.Error(http.StatusForbidden, err.Error()))
	default:
		h.log.Error("dmv calculation request failed", zap.Error(err), zap.String("path", c.FullPath()))
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "internal server error"))
	}
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "invalid id"))
		return 0, false
	}
	return uint(id), true
}
