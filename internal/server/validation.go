package server

import (
	"mime"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hendrianz14/UMKM-KIT-STUDIO-sub001/internal/api"
)

// JSONBodyMiddleware rejects write requests whose body is not JSON. The body
// itself is left unread for the handler.
func JSONBodyMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodPost, http.MethodPut, http.MethodPatch:
		default:
			c.Next()
			return
		}

		if c.Request.ContentLength == 0 {
			c.Next()
			return
		}

		mediaType, _, err := mime.ParseMediaType(c.GetHeader("Content-Type"))
		if err != nil || mediaType != "application/json" {
			c.AbortWithStatusJSON(http.StatusUnsupportedMediaType, api.ErrorResponse{Error: "content type must be application/json"})
			return
		}

		c.Next()
	}
}
