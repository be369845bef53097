package wallet

import (
	"net/http"
	"strconv"

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

type DeductRequest struct {
	Amount         int64  `json:"amount" binding:"required,gt=0"`
	IdempotencyKey string `json:"idempotencyKey" binding:"required,max=128"`
	Reason         string `json:"reason"`
}

type GrantRequest struct {
	UserID         int    `json:"userId" binding:"required,gt=0"`
	Amount         int64  `json:"amount" binding:"required,gt=0"`
	IdempotencyKey string `json:"idempotencyKey" binding:"required,max=128"`
}

// Deduct godoc
// @Summary      Deduct credits
// @Description  Atomically debits credits for a metered action. Idempotent per idempotencyKey.
// @Tags         credits
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      DeductRequest  true  "Deduction"
// @Success      200      {object}  Result
// @Failure      400      {object}  api.ErrorResponse
// @Failure      401      {object}  api.ErrorResponse
// @Failure      402      {object}  api.ErrorResponse
// @Router       /credits/deduct [post]
func (h *Handler) Deduct(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		api.RespondError(c, api.ErrUnauthenticated)
		return
	}

	var req DeductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "amount and idempotencyKey are required"})
		return
	}

	res, err := h.svc.Deduct(c.Request.Context(), userID, req.Amount, Reason(req.Reason), req.IdempotencyKey)
	if err != nil {
		api.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

// GetBalance godoc
// @Summary      Credit balance
// @Tags         credits
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  Wallet
// @Router       /credits [get]
func (h *Handler) GetBalance(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		api.RespondError(c, api.ErrUnauthenticated)
		return
	}

	w, err := h.svc.Balance(c.Request.Context(), userID)
	if err != nil {
		api.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, w)
}

// ListLedger godoc
// @Summary      Credit history
// @Tags         credits
// @Security     BearerAuth
// @Produce      json
// @Param        limit   query  int  false  "Page size"
// @Param        offset  query  int  false  "Offset"
// @Success      200  {array}  LedgerEntry
// @Router       /credits/ledger [get]
func (h *Handler) ListLedger(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		api.RespondError(c, api.ErrUnauthenticated)
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	entries, err := h.svc.History(c.Request.Context(), userID, limit, offset)
	if err != nil {
		api.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, entries)
}

// Grant godoc
// @Summary      Grant credits
// @Description  Operator top-up. Admin only.
// @Tags         admin
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      GrantRequest  true  "Grant"
// @Success      200      {object}  Result
// @Failure      400      {object}  api.ErrorResponse
// @Router       /admin/credits/grant [post]
func (h *Handler) Grant(c *gin.Context) {
	var req GrantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	res, err := h.svc.Grant(c.Request.Context(), req.UserID, req.Amount, req.IdempotencyKey)
	if err != nil {
		api.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}
