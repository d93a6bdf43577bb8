package transport

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"chart-color-inspector/internal/classifier"
	"chart-color-inspector/internal/config"
	apperrors "chart-color-inspector/internal/errors"
	"chart-color-inspector/internal/logger"
	"chart-color-inspector/internal/service"
	"chart-color-inspector/pkg/validation"
)

// AnalysisRequest is the body of POST /analyze.
type AnalysisRequest struct {
	URL   string `json:"url" binding:"required,url"`
	Color string `json:"color" binding:"required"`
	TopN  int    `json:"top_n,omitempty"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// NewHandler builds the HTTP router.
func NewHandler(svc service.ClassificationService, cfg *config.Config) http.Handler {
	r := gin.Default()

	r.Use(
		requestSizeLimiter(cfg.MaxRequestBodySize),
		errorHandler(),
	)

	r.GET("/health", healthCheck)
	r.GET("/colors", listColors(svc))
	r.POST("/analyze", analyzeImage(svc, cfg))

	return r
}

func analyzeImage(svc service.ClassificationService, cfg *config.Config) gin.HandlerFunc {
	urlValidator := validation.NewURLValidator()

	return func(c *gin.Context) {
		startTime := time.Now()
		ctx, cancel := context.WithTimeout(c.Request.Context(), cfg.RequestTimeout)
		defer cancel()

		logger.WithFields(logrus.Fields{
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"user_agent": c.Request.UserAgent(),
			"ip":         c.ClientIP(),
		}).Info("Processing color analysis request")

		var req AnalysisRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			logger.WithError(err).WithFields(logrus.Fields{
				"ip": c.ClientIP(),
			}).Error("Invalid request format")
			respondError(c, http.StatusBadRequest, "invalid request format", err)
			return
		}

		if err := urlValidator.ValidateImageURL(req.URL); err != nil {
			logger.WithError(err).WithFields(logrus.Fields{
				"url": req.URL,
				"ip":  c.ClientIP(),
			}).Error("Invalid image URL")
			respondError(c, apperrors.GetStatusCode(err), "invalid image URL", err)
			return
		}

		opts := service.DefaultAnalyzeOptions()
		// The API serves counts and rankings; nothing renders the mask.
		opts.ComputeMask = false
		if req.TopN > 0 {
			opts.TopN = req.TopN
		}

		report, _, err := svc.AnalyzeColor(ctx, req.URL, req.Color, opts)
		if err != nil {
			if errors.Is(err, context.DeadlineExceeded) {
				err = apperrors.NewTimeoutError("analysis timeout", err)
			}
			logger.WithError(err).WithFields(logrus.Fields{
				"url":   req.URL,
				"color": req.Color,
				"ip":    c.ClientIP(),
			}).Error("Analysis failed")
			respondError(c, apperrors.GetStatusCode(err), "analysis failed", err)
			return
		}

		logger.WithFields(logrus.Fields{
			"url":                req.URL,
			"color":              req.Color,
			"total_matched":      report.TotalMatched,
			"percentage":         report.Percentage,
			"processing_time_ms": time.Since(startTime).Milliseconds(),
		}).Info("Color analysis completed successfully")

		c.JSON(http.StatusOK, report)
	}
}

// colorInfo is one rule in the GET /colors listing.
type colorInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	RuleSummary string `json:"rule_summary"`
}

func listColors(svc service.ClassificationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		rules := svc.Rules(service.AnalyzeOptions{})
		infos := make([]colorInfo, 0, len(rules))
		for _, rule := range rules {
			infos = append(infos, colorInfo{
				Name:        rule.Name,
				Description: rule.Description,
				RuleSummary: rule.Summary(),
			})
		}
		c.JSON(http.StatusOK, gin.H{"colors": infos})
	}
}

func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "available",
		"version": "1.0.0",
		"colors":  classifier.RuleNames(),
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}

// Middleware and helper functions
func requestSizeLimiter(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

func errorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 {
			err := c.Errors.Last()
			respondError(c, determineStatusCode(err), "request processing failed", err)
		}
	}
}

func determineStatusCode(err error) int {
	if appErr, ok := err.(*apperrors.AppError); ok {
		return appErr.StatusCode
	}

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, context.Canceled):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, code int, message string, err error) {
	logger.WithError(err).WithFields(logrus.Fields{
		"status_code": code,
		"message":     message,
		"path":        c.Request.URL.Path,
		"method":      c.Request.Method,
		"ip":          c.ClientIP(),
	}).Error("Request failed")

	c.AbortWithStatusJSON(code, ErrorResponse{
		Error:   http.StatusText(code),
		Message: fmt.Sprintf("%s: %v", message, err),
	})
}
