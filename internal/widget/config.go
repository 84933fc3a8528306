// Package widget assembles the configuration document consumed by the
// embeddable bridge widget. The document is built once from static
// tables and is byte-stable across builds for the same input chain.
package widget

import (
	"fmt"
	"slices"
	"strconv"

	json "github.com/goccy/go-json"
)

// TokenTables is the nested chain -> allowed-tokens structure embedded
// in the config document. Keys are decimal chain ids.
type TokenTables struct {
	InputChains  map[string][]string `json:"inputChains"`
	OutputChains map[string][]string `json:"outputChains"`
}

// Config is the widget configuration document. Read-only once built.
type Config struct {
	Version               string      `json:"v"`
	Element               string      `json:"element"`
	Title                 string      `json:"title"`
	Width                 string      `json:"width"`
	Height                string      `json:"height"`
	Referral              string      `json:"r"`
	AffiliateFeePercent   string      `json:"affiliateFeePercent"`
	AffiliateFeeRecipient string      `json:"affiliateFeeRecipient"`
	InputChain            int64       `json:"inputChain"`
	OutputChain           int64       `json:"outputChain"`
	Mode                  string      `json:"mode"`
	Lang                  string      `json:"lang"`
	Theme                 string      `json:"theme"`
	SupportedChains       TokenTables `json:"supportedChains"`
}

// BuildConfig assembles the document for the given default input
// chain. Pure: no I/O, no clock, identical output for identical input.
func BuildConfig(defaultInputChain int64) (*Config, error) {
	if err := validateTables(); err != nil {
		return nil, err
	}

	referral, err := ReferralKey(defaultInputChain)
	if err != nil {
		return nil, err
	}
	feeRecipient, err := FeeRecipient(defaultInputChain)
	if err != nil {
		return nil, err
	}

	outputChain := ChainSolana
	if defaultInputChain == ChainSolana {
		outputChain = ChainEthereum
	}

	return &Config{
		Version:               "1",
		Element:               "swaplinkWidget",
		Title:                 "SwapLink Bridge",
		Width:                 "600",
		Height:                "800",
		Referral:              referral,
		AffiliateFeePercent:   "0.1",
		AffiliateFeeRecipient: feeRecipient,
		InputChain:            defaultInputChain,
		OutputChain:           outputChain,
		Mode:                  "deswap",
		Lang:                  "en",
		Theme:                 "dark",
		SupportedChains: TokenTables{
			InputChains:  tokenTableByDecimalID(inputTokens),
			OutputChains: tokenTableByDecimalID(outputTokens),
		},
	}, nil
}

// JSON serializes the document. Map keys marshal in sorted order, so
// the bytes are stable across calls.
func (c *Config) JSON() ([]byte, error) {
	data, err := json.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("marshal widget config: %w", err)
	}
	return data, nil
}

func tokenTableByDecimalID(table map[int64][]string) map[string][]string {
	out := make(map[string][]string, len(table))
	for id, tokens := range table {
		out[strconv.FormatInt(id, 10)] = slices.Clone(tokens)
	}
	return out
}
