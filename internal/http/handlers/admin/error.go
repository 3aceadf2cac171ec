package admin

import (
	handlershared "github.com/stationery-next/internal/http/handlers/shared"
	"github.com/stationery-next/internal/http/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func requestLog(c *gin.Context) *zap.SugaredLogger {
	return handlershared.RequestLog(c)
}

func respondError(c *gin.Context, code int, key string, err error) {
	handlershared.RespondError(c, code, key, err)
}

func respondCatalogError(c *gin.Context, err error) {
	handlershared.RespondMappedError(c, err, handlershared.CatalogErrorRules, response.CodeInternal, "error.internal")
}

func respondReportError(c *gin.Context, err error) {
	handlershared.RespondMappedError(c, err, handlershared.ReportErrorRules, response.CodeInternal, "error.report_failed")
}

func respondIngestError(c *gin.Context, err error) {
	handlershared.RespondMappedError(c, err, handlershared.IngestErrorRules, response.CodeInternal, "error.ingest_failed")
}
