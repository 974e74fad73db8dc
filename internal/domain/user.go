package domain

import "github.com/shopspring/decimal"

// UserBalance holds the balances credited by reward settlement and the level read by verifiers
type UserBalance struct {
	UserID        string          `json:"user_id"`
	WalletBalance decimal.Decimal `json:"wallet_balance"`
	AicoreBalance decimal.Decimal `json:"aicore_balance"`
	Level         int             `json:"level"`
}
