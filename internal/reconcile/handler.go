package reconcile

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hendrianz14/UMKM-KIT-STUDIO-sub001/internal/api"
)

const (
	SignatureHeader = "X-Callback-Signature"
	maxBodyBytes    = 64 << 10
)

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

// Callback godoc
// @Summary      Payment gateway callback
// @Description  Receives payment notifications. Returns 200 once the notification is authenticated or its reference is unknown, 400 when it is malformed or fails authentication.
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        X-Callback-Signature  header    string  false  "HMAC-SHA256 signature"
// @Success      200                   {object}  api.AckResponse
// @Failure      400                   {object}  api.ErrorResponse
// @Router       /payments/callback [post]
func (h *Handler) Callback(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxBodyBytes))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "unreadable body"})
		return
	}

	res, err := h.svc.HandleNotification(c.Request.Context(), body, c.GetHeader(SignatureHeader))
	switch {
	case errors.Is(err, api.ErrUnknownReference):
		c.JSON(http.StatusOK, api.AckResponse{Success: true, Message: string(OutcomeUnknownReference)})
	case err != nil:
		api.RespondError(c, err)
	default:
		c.JSON(http.StatusOK, api.AckResponse{Success: true, Message: string(res.Outcome)})
	}
}

// Reconcile godoc
// @Summary      Reconcile a payment
// @Description  Fetches the authoritative status from the gateway and applies it. Admin only.
// @Tags         admin
// @Security     BearerAuth
// @Produce      json
// @Param        merchantRef  path      string  true  "Merchant reference"
// @Success      200          {object}  Result
// @Failure      400          {object}  api.ErrorResponse
// @Failure      500          {object}  api.ErrorResponse
// @Router       /admin/payments/{merchantRef}/reconcile [post]
func (h *Handler) Reconcile(c *gin.Context) {
	res, err := h.svc.ReconcileRef(c.Request.Context(), c.Param("merchantRef"))
	if err != nil {
		api.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}
