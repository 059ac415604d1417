package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/spacesedan/reviewtopics/internal/analysis"
)

type messageResponse struct {
	Message string `json:"message"`
}

func (s *Server) handleLiveness(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"status": "ok",
		"uptime": time.Since(s.startTime).Seconds(),
	})
}

// handleLocationReviews serves the topic sentiment profile of one location.
func (s *Server) handleLocationReviews(c echo.Context) error {
	location := c.Param("location")

	ctx := c.Request().Context()
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	profile, err := s.analyzer.AnalyzeLocation(ctx, location)
	switch {
	case errors.Is(err, analysis.ErrLocationNotFound):
		return c.JSON(http.StatusNotFound, messageResponse{Message: "Location reviews not found"})
	case errors.Is(err, context.DeadlineExceeded):
		return c.JSON(http.StatusServiceUnavailable, messageResponse{Message: "Analysis timed out"})
	case errors.Is(err, context.Canceled):
		// the client went away; nobody reads this response
		slog.Debug("[Server] Location analysis cancelled",
			slog.String("location", location))
		return c.JSON(http.StatusServiceUnavailable, messageResponse{Message: "Analysis cancelled"})
	case err != nil:
		slog.Error("[Server] Error processing location reviews",
			slog.String("location", location),
			slog.String("error", err.Error()))
		return c.JSON(http.StatusInternalServerError, messageResponse{Message: "Internal server error"})
	}

	return c.JSON(http.StatusOK, profile)
}
