package checkout

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hendrianz14/UMKM-KIT-STUDIO-sub001/internal/api"
	"github.com/hendrianz14/UMKM-KIT-STUDIO-sub001/internal/auth"
)

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

type CheckoutRequest struct {
	Plan   string `json:"plan" binding:"required"`
	Method string `json:"method"`
}

// Create godoc
// @Summary      Start a plan checkout
// @Description  Opens a payment session for the plan and returns the URL to redirect the buyer to. Free plans return the success URL directly.
// @Tags         checkout
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      CheckoutRequest  true  "Plan and optional payment method"
// @Success      200      {object}  api.CheckoutResponse
// @Failure      400      {object}  api.ErrorResponse
// @Failure      401      {object}  api.ErrorResponse
// @Router       /checkout [post]
func (h *Handler) Create(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		api.RespondError(c, api.ErrUnauthenticated)
		return
	}

	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "plan is required"})
		return
	}

	res, err := h.svc.CreateCheckout(c.Request.Context(), Request{
		UserID: userID,
		Email:  auth.GetUserEmail(c),
		Plan:   req.Plan,
		Method: req.Method,
	})
	if err != nil {
		api.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, api.CheckoutResponse{PaymentURL: res.PaymentURL})
}
