package public

import (
	handlershared "github.com/stationery-next/internal/http/handlers/shared"
	"github.com/stationery-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

func respondCartError(c *gin.Context, err error) {
	handlershared.RespondMappedError(c, err, handlershared.CartErrorRules, response.CodeInternal, "error.internal")
}

func respondAuthError(c *gin.Context, err error) {
	handlershared.RespondMappedError(c, err, handlershared.AuthErrorRules, response.CodeInternal, "error.internal")
}

func respondProductError(c *gin.Context, err error) {
	handlershared.RespondMappedError(c, err, handlershared.CatalogErrorRules, response.CodeInternal, "error.internal")
}
