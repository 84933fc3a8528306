package widget

import (
	"errors"
	"fmt"
	"slices"

	mapset "github.com/deckarep/golang-set/v2"
)

// ErrUnsupportedChain reports a chain id outside both the EVM set and
// the Solana id. It indicates a deployment defect, not a client error.
var ErrUnsupportedChain = errors.New("unsupported chain")

const (
	ChainEthereum  int64 = 1
	ChainOptimism  int64 = 10
	ChainBNB       int64 = 56
	ChainPolygon   int64 = 137
	ChainBase      int64 = 8453
	ChainArbitrum  int64 = 42161
	ChainAvalanche int64 = 43114

	// ChainSolana is the bridge-internal numeric id for the only
	// supported non-EVM chain.
	ChainSolana int64 = 7565164
)

var evmChains = mapset.NewSet(
	ChainEthereum,
	ChainOptimism,
	ChainBNB,
	ChainPolygon,
	ChainBase,
	ChainArbitrum,
	ChainAvalanche,
)

// Referral codes and affiliate fee recipients are keyed per VM family:
// one pair for every EVM chain, one for Solana.
const (
	evmReferralKey    = "31805"
	solanaReferralKey = "31806"

	evmFeeRecipient    = "0x3C0f18812599B71Ffc92F575f366d8FBBfBee6dA"
	solanaFeeRecipient = "9h1kXWhBGGp7ZVXjDdQc4u1BCAHMvuXnUTAzNDt2uRrp"
)

// The empty string denotes the chain's native asset.
var inputTokens = map[int64][]string{
	ChainEthereum:  {"", "0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48", "0xdAC17F958D2ee523a2206206994597C13D831ec7"},
	ChainOptimism:  {"", "0x0b2C639c533813f4Aa9D7837CAf62653d097Ff85"},
	ChainBNB:       {"", "0x8AC76a51cc950d9822D68b83fE1Ad97B32Cd580d"},
	ChainPolygon:   {"", "0x3c499c542cEF5E3811e1192ce70d8cC03d5c3359"},
	ChainBase:      {"", "0x833589fCD6eDb6E08f4c7C32D4f71b54bdA02913"},
	ChainArbitrum:  {"", "0xaf88d065e77c8cC2239327C5EDb3A432268e5831"},
	ChainAvalanche: {"", "0xB97EF9Ef8734C71904D8002F8b6Bc66Dd9c48a6E"},
	ChainSolana:    {"", "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v"},
}

var outputTokens = map[int64][]string{
	ChainEthereum:  {"", "0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48", "0xdAC17F958D2ee523a2206206994597C13D831ec7"},
	ChainOptimism:  {"", "0x0b2C639c533813f4Aa9D7837CAf62653d097Ff85"},
	ChainBNB:       {"", "0x8AC76a51cc950d9822D68b83fE1Ad97B32Cd580d"},
	ChainPolygon:   {"", "0x3c499c542cEF5E3811e1192ce70d8cC03d5c3359"},
	ChainBase:      {"", "0x833589fCD6eDb6E08f4c7C32D4f71b54bdA02913"},
	ChainArbitrum:  {"", "0xaf88d065e77c8cC2239327C5EDb3A432268e5831"},
	ChainAvalanche: {"", "0xB97EF9Ef8734C71904D8002F8b6Bc66Dd9c48a6E"},
	ChainSolana:    {"", "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v"},
}

// ReferralKey returns the referral code attributed to swaps initiated
// from the given chain.
func ReferralKey(chainID int64) (string, error) {
	switch {
	case evmChains.Contains(chainID):
		return evmReferralKey, nil
	case chainID == ChainSolana:
		return solanaReferralKey, nil
	}
	return "", fmt.Errorf("referral key for chain %d: %w", chainID, ErrUnsupportedChain)
}

// FeeRecipient returns the affiliate fee address for the given chain.
func FeeRecipient(chainID int64) (string, error) {
	switch {
	case evmChains.Contains(chainID):
		return evmFeeRecipient, nil
	case chainID == ChainSolana:
		return solanaFeeRecipient, nil
	}
	return "", fmt.Errorf("fee recipient for chain %d: %w", chainID, ErrUnsupportedChain)
}

// IsSupported reports whether a chain id belongs to the EVM set or is
// the Solana id.
func IsSupported(chainID int64) bool {
	return evmChains.Contains(chainID) || chainID == ChainSolana
}

// SupportedChains returns every configured chain id in ascending order.
func SupportedChains() []int64 {
	ids := evmChains.ToSlice()
	ids = append(ids, ChainSolana)
	slices.Sort(ids)
	return ids
}

// validateTables checks that the referral and fee tables cover exactly
// the chain set of the token tables. Called once per config build so a
// table edit that breaks coverage fails loudly at startup.
func validateTables() error {
	for _, id := range SupportedChains() {
		if _, ok := inputTokens[id]; !ok {
			return fmt.Errorf("chain %d has no input token entry: %w", id, ErrUnsupportedChain)
		}
		if _, ok := outputTokens[id]; !ok {
			return fmt.Errorf("chain %d has no output token entry: %w", id, ErrUnsupportedChain)
		}
	}
	for id := range inputTokens {
		if !IsSupported(id) {
			return fmt.Errorf("input token table references chain %d: %w", id, ErrUnsupportedChain)
		}
	}
	for id := range outputTokens {
		if !IsSupported(id) {
			return fmt.Errorf("output token table references chain %d: %w", id, ErrUnsupportedChain)
		}
	}
	return nil
}
