package clientapi

import (
	"encoding/base64"
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/tellor-io/layerprof/pkg/spec"
)

const (
	// Fee sampling walks back from the chain head until it has collected
	// FeeSampleLimit transactions, taking at most feeSampleTxsPerBlock from
	// any single block so one busy block cannot dominate the average.
	FeeSampleLimit       = 10
	feeSampleTxsPerBlock = 2
)

var bech32AddrRegex = regexp.MustCompile(`tellor1[02-9ac-hj-np-z]{38}`)

// SampledTx is one observed on-chain transaction with its gas and fee.
type SampledTx struct {
	Height    int64
	Sender    string
	GasWanted int64
	GasUsed   int64
	FeeLoya   float64
}

// FeeSample aggregates recently observed transactions.
type FeeSample struct {
	Txs           []SampledTx
	AvgGasWanted  float64
	AvgGasUsed    float64
	AvgFeeLoya    float64
	AvgMinCost    float64 // avg gas used times the minimum gas price
	BlocksScanned int64
}

// SampleRecentFees walks up to maxLookback recent blocks collecting
// transaction gas and fee data until it has FeeSampleLimit samples. An
// empty sample is not an error; quiet chains simply fall back to the
// minimum gas price estimate.
func (c *APIClient) SampleRecentFees(headHeight int64, maxLookback int, minGasPrice float64) (FeeSample, error) {
	sample := FeeSample{}

	for height := headHeight; height > 0 && height > headHeight-int64(maxLookback); height-- {
		if err := c.ctx.Err(); err != nil {
			return FeeSample{}, err
		}
		txs, err := c.sampleBlockTxs(height)
		if err != nil {
			return FeeSample{}, errors.Wrapf(err, "unable to sample txs at height %d", height)
		}
		sample.BlocksScanned++
		sample.Txs = append(sample.Txs, txs...)
		if len(sample.Txs) >= FeeSampleLimit {
			sample.Txs = sample.Txs[:FeeSampleLimit]
			break
		}
	}

	if len(sample.Txs) == 0 {
		log.Warnf("no transactions found in the last %d blocks, fee averages unavailable", sample.BlocksScanned)
		return sample, nil
	}

	var gasWanted, gasUsed, fee float64
	for _, tx := range sample.Txs {
		gasWanted += float64(tx.GasWanted)
		gasUsed += float64(tx.GasUsed)
		fee += tx.FeeLoya
	}
	n := float64(len(sample.Txs))
	sample.AvgGasWanted = gasWanted / n
	sample.AvgGasUsed = gasUsed / n
	sample.AvgFeeLoya = fee / n
	sample.AvgMinCost = sample.AvgGasUsed * minGasPrice
	return sample, nil
}

// sampleBlockTxs pairs the raw txs of a block with their ABCI results and
// returns at most feeSampleTxsPerBlock samples.
func (c *APIClient) sampleBlockTxs(height int64) ([]SampledTx, error) {
	block, err := c.Block(height)
	if err != nil {
		return nil, err
	}
	rawTxs := block.Result.Block.Data.Txs
	if len(rawTxs) == 0 {
		return nil, nil
	}

	results, err := c.BlockResults(height)
	if err != nil {
		return nil, err
	}
	txResults := results.Result.TxsResults

	var sampled []SampledTx
	for i, raw := range rawTxs {
		if len(sampled) >= feeSampleTxsPerBlock {
			break
		}
		if i >= len(txResults) {
			break
		}

		tx := SampledTx{
			Height: height,
			Sender: senderFromRawTx(raw),
		}
		if gas, err := strconv.ParseInt(txResults[i].GasWanted, 10, 64); err == nil {
			tx.GasWanted = gas
		}
		if gas, err := strconv.ParseInt(txResults[i].GasUsed, 10, 64); err == nil {
			tx.GasUsed = gas
		}
		tx.FeeLoya = feeFromEvents(txResults[i].Events)

		sampled = append(sampled, tx)
	}
	return sampled, nil
}

// senderFromRawTx scans the base64-encoded protobuf tx bytes for the first
// bech32 account address. Good enough for attribution in the report; the
// proper decode would need the chain's proto definitions.
func senderFromRawTx(raw string) string {
	decoded, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return ""
	}
	return bech32AddrRegex.FindString(string(decoded))
}

// feeFromEvents pulls the paid fee out of a tx's events. The fee attribute
// value carries the denom suffix, e.g. "5000loya".
func feeFromEvents(events []abciEvent) float64 {
	for _, event := range events {
		if event.Type != "tx" {
			continue
		}
		for _, attr := range event.Attributes {
			if attr.Key != "fee" || attr.Value == "" {
				continue
			}
			value := strings.TrimSuffix(attr.Value, spec.BondDenom)
			if fee, err := strconv.ParseFloat(value, 64); err == nil {
				return fee
			}
		}
	}
	return 0
}
