package clientapi

import (
	"strconv"

	"github.com/pkg/errors"

	"github.com/tellor-io/layerprof/pkg/spec"
)

type globalFeeResponse struct {
	MinimumGasPrices []struct {
		Denom  string `json:"denom"`
		Amount string `json:"amount"`
	} `json:"minimum_gas_prices"`
}

// MinimumGasPrice returns the chain's minimum gas price for the bond denom,
// in loya per gas unit.
func (c *APIClient) MinimumGasPrice() (float64, error) {
	url, err := c.restURL("/cosmos/globalfee/v1beta1/minimum_gas_prices")
	if err != nil {
		return 0, err
	}

	var resp globalFeeResponse
	if err := c.getJSON(url, &resp); err != nil {
		return 0, err
	}

	for _, price := range resp.MinimumGasPrices {
		if price.Denom != spec.BondDenom {
			continue
		}
		amount, err := strconv.ParseFloat(price.Amount, 64)
		if err != nil {
			return 0, errors.Wrapf(err, "unable to parse minimum gas price %q", price.Amount)
		}
		return amount, nil
	}
	return 0, errors.Errorf("no minimum gas price found for denom %s", spec.BondDenom)
}
