package clientapi

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/tellor-io/layerprof/pkg/spec"
)

const (
	inflationaryRewardsEvent = "inflationary_rewards_distributed"
	extraRewardsEvent        = "extra_rewards_distributed"
)

type blockResultsResponse struct {
	Result struct {
		TxsResults []struct {
			GasWanted string      `json:"gas_wanted"`
			GasUsed   string      `json:"gas_used"`
			Events    []abciEvent `json:"events"`
		} `json:"txs_results"`
		FinalizeBlockEvents []abciEvent `json:"finalize_block_events"`
	} `json:"result"`
}

type abciEvent struct {
	Type       string `json:"type"`
	Attributes []struct {
		Key   string `json:"key"`
		Value string `json:"value"`
	} `json:"attributes"`
}

// MintedRewards holds the mint amounts a single block distributed, in loya.
type MintedRewards struct {
	Inflationary float64
	Extra        float64
}

func (m MintedRewards) Total() float64 {
	return m.Inflationary + m.Extra
}

// BlockResults fetches the ABCI results for a block.
func (c *APIClient) BlockResults(height int64) (*blockResultsResponse, error) {
	var results blockResultsResponse
	url := fmt.Sprintf("%s/block_results?height=%d", c.rpcEndpoint, height)
	if err := c.getJSON(url, &results); err != nil {
		return nil, err
	}
	return &results, nil
}

// MintedRewardsAtHeight scans the finalize-block events of a block for the
// mint module's reward distribution events. Blocks that minted nothing
// return zero amounts, not an error.
func (c *APIClient) MintedRewardsAtHeight(height int64) (MintedRewards, error) {
	results, err := c.BlockResults(height)
	if err != nil {
		return MintedRewards{}, err
	}

	var minted MintedRewards
	for _, event := range results.Result.FinalizeBlockEvents {
		switch event.Type {
		case inflationaryRewardsEvent:
			amount, err := eventLoyaAmount(event)
			if err != nil {
				return MintedRewards{}, errors.Wrapf(err, "bad %s event at height %d", event.Type, height)
			}
			minted.Inflationary += amount
		case extraRewardsEvent:
			amount, err := eventLoyaAmount(event)
			if err != nil {
				return MintedRewards{}, errors.Wrapf(err, "bad %s event at height %d", event.Type, height)
			}
			minted.Extra += amount
		}
	}
	return minted, nil
}

// MintSample aggregates observed mint events over a block range.
type MintSample struct {
	TotalLoya        float64
	InflationaryLoya float64
	ExtraLoya        float64
	BlocksSampled    int64
}

func (s MintSample) AvgPerBlock() float64 {
	if s.BlocksSampled == 0 {
		return 0
	}
	return s.TotalLoya / float64(s.BlocksSampled)
}

// SampleMintedRewards scans the last numBlocks blocks for mint events.
// The observed average cross-checks the minter's deterministic provision.
func (c *APIClient) SampleMintedRewards(headHeight int64, numBlocks int) (MintSample, error) {
	sample := MintSample{}

	for height := headHeight; height > 0 && height > headHeight-int64(numBlocks); height-- {
		if err := c.ctx.Err(); err != nil {
			return MintSample{}, err
		}
		minted, err := c.MintedRewardsAtHeight(height)
		if err != nil {
			return MintSample{}, errors.Wrapf(err, "unable to sample mint events at height %d", height)
		}
		sample.InflationaryLoya += minted.Inflationary
		sample.ExtraLoya += minted.Extra
		sample.TotalLoya += minted.Total()
		sample.BlocksSampled++
	}
	return sample, nil
}

// eventLoyaAmount extracts the total_amount attribute of a rewards event.
// The value carries the denom suffix, e.g. "3401loya".
func eventLoyaAmount(event abciEvent) (float64, error) {
	for _, attr := range event.Attributes {
		if attr.Key != "total_amount" {
			continue
		}
		value := strings.TrimSuffix(attr.Value, spec.BondDenom)
		amount, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return 0, errors.Wrapf(err, "unable to parse amount %q", attr.Value)
		}
		return amount, nil
	}
	return 0, errors.Errorf("event %s has no total_amount attribute", event.Type)
}
