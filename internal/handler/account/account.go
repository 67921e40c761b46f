package account

import (
	"github.com/gin-gonic/gin"

	"tradedesk/internal/service"
	"tradedesk/pkg/response"
)

type AccountHandler struct {
	accountService *service.AccountService
}

func NewAccountHandler(accountService *service.AccountService) *AccountHandler {
	return &AccountHandler{
		accountService: accountService,
	}
}

func (ah *AccountHandler) AccountGet() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		snap, err := ah.accountService.Latest(ctx)
		if err != nil {
			response.JSON(ctx, err, nil)
			return
		}
		response.JSON(ctx, nil, snap)
	}
}
