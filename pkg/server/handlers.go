package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gokaycavdar/go-georisk/pkg/auth"
	"github.com/gokaycavdar/go-georisk/pkg/engine"
	"github.com/gokaycavdar/go-georisk/pkg/models"
	"github.com/gokaycavdar/go-georisk/pkg/storage"
)

// summaryRequest is the JSON body of POST /risk/summary.
type summaryRequest struct {
	Origin        string              `json:"origin"`
	Destination   string              `json:"destination"`
	Waypoints     []string            `json:"waypoints"`
	OriginCountry string              `json:"origin_country"`
	DestCountry   string              `json:"dest_country"`
	OriginCoords  *models.Coordinates `json:"origin_coords"`
	DestCoords    *models.Coordinates `json:"dest_coords"`
	Parties       []models.Party      `json:"parties" binding:"dive"`
}

// routeRequest is the JSON body of PUT /routes/cache.
type routeRequest struct {
	Origin      string               `json:"origin" binding:"required"`
	Dest        string               `json:"dest" binding:"required"`
	Profile     string               `json:"profile"`
	Points      []models.Coordinates `json:"points"`
	DistanceKm  float64              `json:"distance_km"`
	DurationSec float64              `json:"duration_sec"`
}

func (h *handlers) assess(c *gin.Context) {
	var q models.RouteQuery
	if err := c.ShouldBindJSON(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.engine.AssessRouteRisk(c.Request.Context(), auth.CallerID(c), q)
	if err != nil {
		h.engineError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *handlers) summary(c *gin.Context) {
	var req summaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.engine.RouteRiskSummary(c.Request.Context(), auth.CallerID(c), engine.SummaryRequest{
		Origin:        req.Origin,
		Destination:   req.Destination,
		Waypoints:     req.Waypoints,
		OriginCountry: req.OriginCountry,
		DestCountry:   req.DestCountry,
		OriginCoords:  req.OriginCoords,
		DestCoords:    req.DestCoords,
		Parties:       req.Parties,
		RequesterIP:   c.ClientIP(),
	})
	if err != nil {
		h.engineError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *handlers) quick(c *gin.Context) {
	c.JSON(http.StatusOK, h.engine.QuickRiskCheck(c.Query("origin"), c.Query("dest")))
}

func (h *handlers) zones(c *gin.Context) {
	c.JSON(http.StatusOK, h.engine.HighRiskCountries())
}

func (h *handlers) putRoute(c *gin.Context) {
	var req routeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	stored, err := h.routes.Put(c.Request.Context(), models.CachedRoute{
		Origin:      req.Origin,
		Dest:        req.Dest,
		Profile:     req.Profile,
		Points:      req.Points,
		DistanceKm:  req.DistanceKm,
		DurationSec: req.DurationSec,
	})
	if errors.Is(err, storage.ErrInvalidRoute) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		h.logger.Error("route cache write failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "route cache unavailable"})
		return
	}
	c.JSON(http.StatusOK, stored)
}

func (h *handlers) getRoute(c *gin.Context) {
	origin, dest := c.Query("origin"), c.Query("dest")
	if origin == "" || dest == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "origin and dest are required"})
		return
	}

	route, err := h.routes.Get(c.Request.Context(), origin, dest, c.Query("profile"))
	if err != nil {
		h.logger.Error("route cache read failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "route cache unavailable"})
		return
	}
	if route == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "route not cached"})
		return
	}
	c.JSON(http.StatusOK, route)
}

func (h *handlers) engineError(c *gin.Context, err error) {
	if errors.Is(err, engine.ErrUnauthorized) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	h.logger.Error("assessment failed", "error", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "assessment failed"})
}
