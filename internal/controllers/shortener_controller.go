package controllers

import (
	"net/http"
	"strconv"

	"technext-be/internal/middleware"
	"technext-be/internal/models"
	"technext-be/internal/response"
	"technext-be/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ShortenerController struct {
	urlService service.URLService
	logger     *zap.Logger
}

func NewShortenerController(urlService service.URLService, logger *zap.Logger) *ShortenerController {
	return &ShortenerController{
		urlService: urlService,
		logger:     logger,
	}
}

// CreateShortURL handles POST /api/v1/url/shorten
func (sc *ShortenerController) CreateShortURL(c *gin.Context) {
	var req models.CreateURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "originalUrl is required")
		return
	}

	userID := c.GetString(middleware.ContextUserID)

	result, err := sc.urlService.CreateShortURL(c.Request.Context(), req.OriginalURL, userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, http.StatusCreated, "URL shortened successfully", result)
}

// GetUserURLs handles GET /api/v1/url/my-urls
func (sc *ShortenerController) GetUserURLs(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)

	// Unparsable values fall back to the service defaults.
	page, _ := strconv.Atoi(c.Query("page"))
	limit, _ := strconv.Atoi(c.Query("limit"))

	result, err := sc.urlService.GetUserURLs(c.Request.Context(), userID, page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, http.StatusOK, "User URLs retrieved successfully", result)
}

// DeleteURL handles DELETE /api/v1/url/:shortCode
func (sc *ShortenerController) DeleteURL(c *gin.Context) {
	shortCode := c.Param("shortCode")
	userID := c.GetString(middleware.ContextUserID)

	if err := sc.urlService.DeleteURL(c.Request.Context(), shortCode, userID); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, http.StatusOK, "URL deleted successfully", nil)
}

// GetURLAnalytics handles GET /api/v1/url/:shortCode/analytics
func (sc *ShortenerController) GetURLAnalytics(c *gin.Context) {
	shortCode := c.Param("shortCode")
	userID := c.GetString(middleware.ContextUserID)

	analytics, err := sc.urlService.GetURLAnalytics(c.Request.Context(), shortCode, userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, http.StatusOK, "URL analytics retrieved successfully", analytics)
}

// RedirectToURL handles GET /url/:shortCode - the public redirect.
// A miss renders the 404 envelope, never a redirect. A failed click
// increment is logged but does not stop the redirect.
func (sc *ShortenerController) RedirectToURL(c *gin.Context) {
	shortCode := c.Param("shortCode")

	originalURL, err := sc.urlService.Resolve(c.Request.Context(), shortCode)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := sc.urlService.IncrementClicks(c.Request.Context(), shortCode); err != nil {
		sc.logger.Warn("failed to increment clicks",
			zap.String("short_code", shortCode), zap.Error(err))
	}

	c.Redirect(http.StatusFound, originalURL)
}
