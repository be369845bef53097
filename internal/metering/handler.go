package metering

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hendrianz14/UMKM-KIT-STUDIO-sub001/internal/api"
	"github.com/hendrianz14/UMKM-KIT-STUDIO-sub001/internal/auth"
)

type Handler struct {
	authorizer Authorizer
}

func NewHandler(authorizer Authorizer) *Handler {
	return &Handler{authorizer: authorizer}
}

type AuthorizeRequest struct {
	IdempotencyKey string     `json:"idempotencyKey" binding:"required,max=128"`
	Credential     Credential `json:"credential" binding:"omitempty,oneof=system user"`
}

// Authorize godoc
// @Summary      Authorize a metered action
// @Description  Charges the action's credit cost when the system credential is used. A user credential bypasses metering.
// @Tags         credits
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        action   path      string            true  "generate_description, generate_caption or edit_image"
// @Param        request  body      AuthorizeRequest  true  "Authorization"
// @Success      200      {object}  Result
// @Failure      400      {object}  api.ErrorResponse
// @Failure      401      {object}  api.ErrorResponse
// @Failure      402      {object}  api.ErrorResponse
// @Router       /credits/actions/{action}/authorize [post]
func (h *Handler) Authorize(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		api.RespondError(c, api.ErrUnauthenticated)
		return
	}

	var req AuthorizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "idempotencyKey is required and credential must be system or user"})
		return
	}

	res, err := h.authorizer.Authorize(c.Request.Context(), Request{
		UserID:         userID,
		Action:         Action(c.Param("action")),
		Credential:     req.Credential,
		IdempotencyKey: req.IdempotencyKey,
	})
	if errors.Is(err, api.ErrInsufficientCredits) {
		c.JSON(http.StatusPaymentRequired, api.ErrorResponse{Error: err.Error(), Detail: res})
		return
	}
	if err != nil {
		api.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}
