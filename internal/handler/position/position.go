package position

import (
	"github.com/gin-gonic/gin"
	"github.com/spf13/cast"

	"tradedesk/internal/model"
	"tradedesk/internal/service"
	"tradedesk/pkg/errors"
	"tradedesk/pkg/errors/ecode"
	"tradedesk/pkg/response"
	"tradedesk/pkg/validator"
)

type PositionHandler struct {
	positionService *service.PositionService
}

func NewPositionHandler(positionService *service.PositionService) *PositionHandler {
	return &PositionHandler{
		positionService: positionService,
	}
}

func (ph *PositionHandler) PositionGetList() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var req model.PositionListReq
		if err := ctx.ShouldBindQuery(&req); err != nil {
			response.JSON(ctx, errors.WithCode(ecode.ValidateErr, validator.Translate(err)), nil)
			return
		}
		list := ph.positionService.List(ctx, req.Status)
		if limit := cast.ToInt(ctx.Query("limit")); limit > 0 && limit < len(list) {
			list = list[:limit]
		}
		response.JSON(ctx, nil, list)
	}
}

// PositionClose 平仓永远放行，即便处于熔断状态
func (ph *PositionHandler) PositionClose() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		pos, err := ph.positionService.Close(ctx, ctx.Param("id"))
		if err != nil {
			response.JSON(ctx, err, nil)
			return
		}
		response.JSON(ctx, nil, pos)
	}
}
