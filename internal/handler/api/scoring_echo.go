package api

import (
	"net/http"
	"time"

	models "MarketLens/internal/domain/models"
	domsvc "MarketLens/internal/domain/service"
	"MarketLens/internal/usecase"
	xhttp "MarketLens/pkg/http"
	xlogger "MarketLens/pkg/logger"

	"github.com/labstack/echo/v4"
)

// ScoringEchoHandler implements Echo-based HTTP handlers for the scoring engine.
type ScoringEchoHandler struct {
	logger   *xlogger.Logger
	pipeline *usecase.NewsPipeline
	earnings *usecase.EarningsScoring
}

func NewScoringEchoHandler(logger *xlogger.Logger, pipeline *usecase.NewsPipeline, earnings *usecase.EarningsScoring) *ScoringEchoHandler {
	return &ScoringEchoHandler{logger: logger, pipeline: pipeline, earnings: earnings}
}

func (h *ScoringEchoHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.POST("/news/attribute", h.Attribute)
	g.POST("/macro/events", h.MacroEvents)
	g.POST("/earnings/confidence", h.EarningsConfidence)
	g.POST("/earnings/quality", h.BeatQuality)
	e.GET("/healthz", h.Health)
}

func (h *ScoringEchoHandler) Attribute(c echo.Context) error {
	req := &models.AttributeRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	now := req.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}
	for i := range req.Articles {
		if req.Articles[i].ID == "" {
			req.Articles[i].ID = models.ArticleID(req.Articles[i].CanonicalURL)
		}
	}

	buckets := h.pipeline.ScoreBatch(req.Articles, req.Tickers, now)
	return xhttp.SuccessResponse(c, models.AttributeResponse{Buckets: buckets})
}

func (h *ScoringEchoHandler) MacroEvents(c echo.Context) error {
	req := &models.MacroEventsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	events, summary := h.pipeline.MacroEvents(req.Articles, req.TopN)
	return xhttp.SuccessResponse(c, models.MacroEventsResponse{Events: events, Summary: summary})
}

func (h *ScoringEchoHandler) EarningsConfidence(c echo.Context) error {
	req := &models.EarningsConfidenceRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	now := req.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}

	res := h.earnings.Confidence(domsvc.ConfidenceInput{
		Symbol:          req.Symbol,
		Now:             now,
		Quote:           req.Quote,
		Earnings:        req.Earnings,
		RecentHeadlines: req.RecentHeadlines,
		AnalystActions:  req.AnalystActions,
	})
	return xhttp.SuccessResponse(c, res)
}

func (h *ScoringEchoHandler) BeatQuality(c echo.Context) error {
	req := &models.BeatQualityRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	res := h.earnings.Quality(req.Earnings)
	return xhttp.SuccessResponse(c, res)
}

func (h *ScoringEchoHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
