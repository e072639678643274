package handler

import (
	"social-system/internal/service"
	"social-system/pkg/jwt"
	"social-system/pkg/logger"
	"social-system/pkg/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PaymentHandler 支付HTTP处理器
type PaymentHandler struct {
	paymentService *service.PaymentService
}

// NewPaymentHandler 创建PaymentHandler实例
func NewPaymentHandler(paymentService *service.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// CreateIntentRequest 创建支付意向请求，金额为主货币单位
type CreateIntentRequest struct {
	Amount float64 `json:"amount" binding:"required"`
}

// CreateIntent 创建支付意向
// POST /payments/create-intent
func (h *PaymentHandler) CreateIntent(c *gin.Context) {
	userID := jwt.GetUserIDUint(c)
	if userID == 0 {
		response.Unauthorized(c, "未授权")
		return
	}

	var req CreateIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	pi, err := h.paymentService.CreateIntent(req.Amount)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	logger.Info("支付意向创建成功", zap.Uint("user_id", userID), zap.String("intent_id", pi.ID))
	response.Created(c, "支付意向创建成功", response.PaymentIntentResponse{
		ID:           pi.ID,
		ClientSecret: pi.ClientSecret,
		Amount:       pi.Amount,
		Currency:     string(pi.Currency),
		Status:       string(pi.Status),
	})
}
