package controllers

import (
	"net/http"

	"technext-be/internal/middleware"
	"technext-be/internal/response"
	"technext-be/internal/service"

	"github.com/gin-gonic/gin"
	qrcode "github.com/skip2/go-qrcode"
)

type QRCodeController struct {
	urlService service.URLService
}

func NewQRCodeController(urlService service.URLService) *QRCodeController {
	return &QRCodeController{
		urlService: urlService,
	}
}

// GenerateQRCode handles GET /api/v1/url/:shortCode/qr. Ownership is
// enforced the same way as analytics: non-owned and missing codes 404 alike.
func (qc *QRCodeController) GenerateQRCode(c *gin.Context) {
	shortCode := c.Param("shortCode")
	userID := c.GetString(middleware.ContextUserID)

	record, err := qc.urlService.GetURLAnalytics(c.Request.Context(), shortCode, userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	png, err := qrcode.Encode(record.ShortURL, qrcode.Medium, 256)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Data(http.StatusOK, "image/png", png)
}
