package gateway

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hendrianz14/UMKM-KIT-STUDIO-sub001/internal/api"
)

type Handler struct {
	channels *ChannelCache
}

func NewHandler(channels *ChannelCache) *Handler {
	return &Handler{channels: channels}
}

// ListChannels godoc
// @Summary      Active payment channels
// @Tags         payments
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}   Channel
// @Failure      400  {object}  api.ErrorResponse
// @Router       /payments/channels [get]
func (h *Handler) ListChannels(c *gin.Context) {
	channels, err := h.channels.Get(c.Request.Context())
	if err != nil {
		api.RespondError(c, err)
		return
	}

	active := make([]Channel, 0, len(channels))
	for _, ch := range channels {
		if ch.Active {
			active = append(active, ch)
		}
	}

	c.JSON(http.StatusOK, active)
}
