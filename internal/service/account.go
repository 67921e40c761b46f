package service

import (
	"context"

	"tradedesk/internal/account"
	"tradedesk/internal/model"
	"tradedesk/pkg/errors"
	"tradedesk/pkg/errors/ecode"
)

// AccountService 账户快照查询
type AccountService struct {
	holder *account.Holder
}

func NewAccountService(holder *account.Holder) *AccountService {
	return &AccountService{holder: holder}
}

func (s *AccountService) Latest(ctx context.Context) (model.AccountSnapshot, error) {
	snap, ok := s.holder.Latest()
	if !ok {
		return model.AccountSnapshot{}, errors.WithCode(ecode.NotFoundErr, "no account snapshot received yet")
	}
	return snap, nil
}
