package subscription

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hendrianz14/UMKM-KIT-STUDIO-sub001/internal/api"
	"github.com/hendrianz14/UMKM-KIT-STUDIO-sub001/internal/auth"
	"github.com/hendrianz14/UMKM-KIT-STUDIO-sub001/internal/logger"
)

type Handler struct {
	repo Repository
}

func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

// GetLatest godoc
// @Summary      Current subscription
// @Description  Returns the most recently activated subscription of the caller.
// @Tags         subscription
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  Subscription
// @Failure      401  {object}  api.ErrorResponse
// @Failure      404  {object}  api.ErrorResponse
// @Router       /subscription [get]
func (h *Handler) GetLatest(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		api.RespondError(c, api.ErrUnauthenticated)
		return
	}

	sub, err := h.repo.Latest(c.Request.Context(), userID)
	if errors.Is(err, ErrNotFound) {
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "no subscription"})
		return
	}
	if err != nil {
		logger.Error("failed to load subscription", "user_id", userID, "error", err)
		api.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, sub)
}

// ListPlans godoc
// @Summary      List plans
// @Tags         subscription
// @Produce      json
// @Success      200  {array}  Plan
// @Router       /plans [get]
func (h *Handler) ListPlans(c *gin.Context) {
	c.JSON(http.StatusOK, Plans())
}
