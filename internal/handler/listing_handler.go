package handler

import (
	"errors"
	"net/http"

	"dmvcalc/internal/middleware"
	"dmvcalc/internal/service"
	"dmvcalc/pkg/response"

	"github.com/gin-gonic/gin"
)

type ListingHandler struct {
	listingService service.ListingService
}

func NewListingHandler(listingService service.ListingService) *ListingHandler {
	return &ListingHandler{listingService: listingService}
}

func (h *ListingHandler) RegisterRoutes(router *gin.RouterGroup, auth gin.HandlerFunc) {
	group := router.Group("/api/market-listings")
	group.Use(auth)
	{
		group.POST("", h.Create)
		group.GET("/:id", h.Get)
	}
}

// Create imports a market listing
// @Summary      Create a market listing
// @Tags         market-listings
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        body  body      service.CreateListingRequest  true  "Listing"
// @Success      201   {object}  response.Response{data=model.MarketListing}
// @Failure      409   {object}  response.Response
// @Router       /api/market-listings [post]
func (h *ListingHandler) Create(c *gin.Context) {
	var req service.CreateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	listing, err := h.listingService.Create(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, service.ErrInvalidInput):
			status = http.StatusBadRequest
		case errors.Is(err, service.ErrDuplicateListing):
			status = http.StatusConflict
		}
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, listing))
}

// Get returns one market listing
// @Summary      Get a market listing
// @Tags         market-listings
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      int  true  "Listing ID"
// @Success      200  {object}  response.Response{data=model.MarketListing}
// @Router       /api/market-listings/{id} [get]
func (h *ListingHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	listing, err := h.listingService.Get(c.Request.Context(), id)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, service.ErrListingNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, listing))
}
