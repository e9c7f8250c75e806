package wallet

import (
	"context"

	"lending/core"

	"github.com/fox-one/pkg/logger"
	"github.com/sirupsen/logrus"
)

type walletService struct{}

// New new wallet service
//
// The default collaborator only acknowledges payouts; deployments wire
// their own custody integration behind core.WalletService.
func New() core.WalletService {
	return &walletService{}
}

func (s *walletService) HandleTransfer(ctx context.Context, transfer *core.Transfer) error {
	logger.FromContext(ctx).WithFields(logrus.Fields{
		"trace":  transfer.TraceID,
		"user":   transfer.UserID,
		"asset":  transfer.AssetID,
		"amount": transfer.Amount,
		"memo":   transfer.Memo,
	}).Infoln("transfer handled")

	return nil
}
