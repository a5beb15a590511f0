package clientapi

import (
	"strconv"
	"strings"

	"github.com/tellor-io/layerprof/pkg/spec"
)

type reportersResponse struct {
	Reporters []struct {
		Address  string `json:"address"`
		Power    string `json:"power"`
		Metadata struct {
			Moniker        string `json:"moniker"`
			CommissionRate string `json:"commission_rate"`
			Jailed         bool   `json:"jailed"`
		} `json:"metadata"`
	} `json:"reporters"`
}

// Reporters queries the Layer reporter registry and splits it into active,
// inactive (zero power) and jailed sets. Some registry entries omit the
// power field entirely; those count as inactive rather than being dropped.
func (c *APIClient) Reporters() (spec.ReporterSet, error) {
	url, err := c.restURL("/tellor-io/layer/reporter/reporters")
	if err != nil {
		return spec.ReporterSet{}, err
	}

	var resp reportersResponse
	if err := c.getJSON(url, &resp); err != nil {
		return spec.ReporterSet{}, err
	}

	var set spec.ReporterSet
	for _, r := range resp.Reporters {
		record := spec.ReporterRecord{
			Address:        r.Address,
			Moniker:        r.Metadata.Moniker,
			Power:          parsePower(r.Power),
			CommissionRate: parseCommissionRate(r.Metadata.CommissionRate),
		}

		switch {
		case r.Metadata.Jailed:
			set.Jailed = append(set.Jailed, record)
		case record.Power == 0:
			set.Inactive = append(set.Inactive, record)
		default:
			set.Active = append(set.Active, record)
		}
	}
	return set, nil
}

// parsePower converts the registry's whole-TRB power string to loya, so
// reporter powers share the validator token scale. Missing or malformed
// powers become 0.
func parsePower(power string) int64 {
	if power == "" {
		return 0
	}
	n, err := strconv.ParseInt(power, 10, 64)
	if err != nil || n < 0 {
		return 0
	}
	return n * spec.LoyaPerTRB
}

// parseCommissionRate handles both encodings the chain has used: a plain
// decimal ("0.25") and the SDK's 18-decimal fixed-point integer string
// ("250000000000000000").
func parseCommissionRate(rate string) float64 {
	if rate == "" {
		return 0
	}
	if strings.Contains(rate, ".") {
		f, err := strconv.ParseFloat(rate, 64)
		if err != nil {
			return 0
		}
		return f
	}
	n, err := strconv.ParseFloat(rate, 64)
	if err != nil {
		return 0
	}
	return n / 1e18
}
