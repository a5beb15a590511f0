package clientapi

import (
	"strconv"

	"github.com/pkg/errors"

	"github.com/tellor-io/layerprof/pkg/spec"
)

type validatorsResponse struct {
	Validators []struct {
		Tokens string `json:"tokens"`
		Jailed bool   `json:"jailed"`
		Status string `json:"status"`
	} `json:"validators"`
}

// Validators queries the staking module's validator set and folds it into
// the per-status totals of the report. Token amounts stay in loya.
func (c *APIClient) Validators() (spec.ValidatorSetSummary, error) {
	url, err := c.restURL("/cosmos/staking/v1beta1/validators")
	if err != nil {
		return spec.ValidatorSetSummary{}, err
	}

	var resp validatorsResponse
	if err := c.getJSON(url, &resp); err != nil {
		return spec.ValidatorSetSummary{}, err
	}

	var summary spec.ValidatorSetSummary
	for _, v := range resp.Validators {
		tokens, err := strconv.ParseFloat(v.Tokens, 64)
		if err != nil {
			return spec.ValidatorSetSummary{}, errors.Wrapf(err, "unable to parse validator tokens %q", v.Tokens)
		}

		switch {
		case !v.Jailed && v.Status == spec.BondStatusBonded && tokens > 0:
			summary.TotalActiveTokens += tokens
			summary.ActiveCount++
			summary.ActiveStakes = append(summary.ActiveStakes, tokens)
		case !v.Jailed && v.Status == spec.BondStatusUnbonding && tokens > 0:
			summary.TotalUnbondingTokens += tokens
			summary.UnbondingCount++
		case v.Jailed:
			summary.TotalJailedTokens += tokens
			summary.JailedCount++
		default:
			summary.TotalUnbondedTokens += tokens
			summary.UnbondedCount++
		}
	}
	return summary, nil
}
