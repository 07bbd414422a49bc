package service

import (
	"github.com/shopspring/decimal"

	"github.com/efranca/tradecore/internal/domain"
	"github.com/efranca/tradecore/internal/ledger"
)

// AssetBalance is the response shape for a balance query.
type AssetBalance struct {
	AssetType domain.AssetType
	Available decimal.Decimal
	Locked    decimal.Decimal
}

// AssetService handles balance queries and administrative funding.
type AssetService struct {
	ledger *ledger.Ledger
	pairs  *domain.PairRegistry
}

// NewAssetService creates a new AssetService.
func NewAssetService(l *ledger.Ledger, pairs *domain.PairRegistry) *AssetService {
	return &AssetService{ledger: l, pairs: pairs}
}

// GetBalance returns the account's available and locked funds in the asset.
// Assets the account never touched report zero balances; asset types outside
// every configured pair are ErrInvalidAsset.
func (s *AssetService) GetBalance(accountID string, asset domain.AssetType) (*AssetBalance, error) {
	if !s.pairs.AssetExists(asset) {
		return nil, domain.ErrInvalidAsset
	}
	available, locked := s.ledger.Balance(accountID, asset)
	return &AssetBalance{
		AssetType: asset,
		Available: available,
		Locked:    locked,
	}, nil
}

// Recharge credits amount to the account's available balance. It is the
// administrative funding entry point and takes no part in matching.
func (s *AssetService) Recharge(accountID string, asset domain.AssetType, amount decimal.Decimal) (*AssetBalance, error) {
	if !s.pairs.AssetExists(asset) {
		return nil, domain.ErrInvalidAsset
	}
	if !amount.IsPositive() {
		return nil, &domain.ValidationError{Message: "amount must be > 0"}
	}
	s.ledger.Credit(accountID, asset, amount)
	available, locked := s.ledger.Balance(accountID, asset)
	return &AssetBalance{
		AssetType: asset,
		Available: available,
		Locked:    locked,
	}, nil
}
