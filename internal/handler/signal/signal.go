package signal

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

type SignalHandler struct {
	signalService *service.SignalService
}

func NewSignalHandler(signalService *service.SignalService) *SignalHandler {
	return &SignalHandler{
		signalService: signalService,
	}
}

func (sh *SignalHandler) SignalGetList() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var req model.SignalListReq
		if err := ctx.ShouldBindQuery(&req); err != nil {
			response.JSON(ctx, errors.WithCode(ecode.ValidateErr, validator.Translate(err)), nil)
			return
		}
		list := sh.signalService.List(ctx, req.Status)
		if limit := cast.ToInt(ctx.Query("limit")); limit > 0 && limit < len(list) {
			list = list[:limit]
		}
		response.JSON(ctx, nil, list)
	}
}

func (sh *SignalHandler) SignalGetDetail() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		sig, err := sh.signalService.Get(ctx, ctx.Param("id"))
		if err != nil {
			response.JSON(ctx, err, nil)
			return
		}
		response.JSON(ctx, nil, sig)
	}
}

func (sh *SignalHandler) SignalCreate() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var draft model.SignalDraft
		if err := ctx.ShouldBindJSON(&draft); err != nil {
			response.JSON(ctx, errors.WithCode(ecode.ValidateErr, validator.Translate(err)), nil)
			return
		}
		sig, err := sh.signalService.Create(ctx, draft)
		if err != nil {
			response.JSON(ctx, err, nil)
			return
		}
		response.JSON(ctx, nil, sig)
	}
}

func (sh *SignalHandler) SignalApprove() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var req model.QuantityReq
		if err := ctx.ShouldBindJSON(&req); err != nil {
			response.JSON(ctx, errors.WithCode(ecode.ValidateErr, validator.Translate(err)), nil)
			return
		}
		sig, err := sh.signalService.Approve(ctx, ctx.Param("id"), req.Quantity)
		if err != nil {
			response.JSON(ctx, err, nil)
			return
		}
		response.JSON(ctx, nil, sig)
	}
}

func (sh *SignalHandler) SignalExecute() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var req model.QuantityReq
		if err := ctx.ShouldBindJSON(&req); err != nil {
			response.JSON(ctx, errors.WithCode(ecode.ValidateErr, validator.Translate(err)), nil)
			return
		}
		pos, err := sh.signalService.Execute(ctx, ctx.Param("id"), req.Quantity)
		if err != nil {
			response.JSON(ctx, err, nil)
			return
		}
		response.JSON(ctx, nil, pos)
	}
}

func (sh *SignalHandler) SignalReject() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		sig, err := sh.signalService.Reject(ctx, ctx.Param("id"))
		if err != nil {
			response.JSON(ctx, err, nil)
			return
		}
		response.JSON(ctx, nil, sig)
	}
}
