package reward

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var rewardCoreRe = regexp.MustCompile(rewardCorePattern)

// CoreGrant is the balance credit described by a reward-core string
type CoreGrant struct {
	Aicore decimal.Decimal `json:"aicore"`
	Wallet decimal.Decimal `json:"wallet"`
}

// IsZero reports whether the grant changes no balance
func (g CoreGrant) IsZero() bool {
	return g.Aicore.IsZero() && g.Wallet.IsZero()
}

// ParseRewardCore decodes a reward-core string.
//
//	"5$"    -> aicore +5
//	"10$+?" -> aicore +floor(10*0.7)=7, wallet +3
//
// Anything unrecognised yields a zero grant rather than an error.
func ParseRewardCore(spec string) CoreGrant {
	m := rewardCoreRe.FindStringSubmatch(strings.TrimSpace(spec))
	if m == nil {
		return CoreGrant{}
	}

	n, err := decimal.NewFromString(m[1])
	if err != nil {
		return CoreGrant{}
	}

	if m[2] != splitSuffix {
		return CoreGrant{Aicore: n}
	}

	core := n.Mul(CoreShareOfSplit).Floor()
	return CoreGrant{Aicore: core, Wallet: n.Sub(core)}
}

// ValidRewardCore reports whether spec is empty or a well-formed reward-core string
func ValidRewardCore(spec string) bool {
	spec = strings.TrimSpace(spec)
	return spec == "" || rewardCoreRe.MatchString(spec)
}
