package reward

import "github.com/shopspring/decimal"

// Reward-core micro-format: "<N>$" credits the core balance, "<N>$+?" splits N
// between core and wallet.
const (
	rewardCorePattern = `^(\d+)\$(\+\?)?$`
	splitSuffix       = "+?"
)

// CoreShareOfSplit is the fraction of a split grant credited to the core balance.
// The remainder goes to the wallet.
var CoreShareOfSplit = decimal.RequireFromString("0.7")

// DefaultItemCount is used when a reward item carries no positive count
const DefaultItemCount = 1

// Error context messages
const (
	ErrContextFailedToLoadBalance   = "failed to load balance"
	ErrContextFailedToSaveBalance   = "failed to save balance"
	ErrContextFailedToLoadInventory = "failed to load inventory"
	ErrContextFailedToSaveInventory = "failed to save inventory"
)
