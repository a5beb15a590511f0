package apr

import (
	"sort"

	"github.com/tellor-io/layerprof/pkg/spec"
)

// ComputeReporterAPRs evaluates the individual-share APR for every reporter
// with bonded power and returns them sorted by power, largest first.
// Zero-power reporters contribute no APR and are dropped from the output
// entirely. The sort is stable so equal powers keep their registry order.
func ComputeReporterAPRs(reporters []spec.ReporterRecord, state spec.NetworkState) ([]spec.ReporterAPR, error) {
	out := make([]spec.ReporterAPR, 0, len(reporters))
	for _, r := range reporters {
		if r.Power <= 0 {
			continue
		}
		apr, err := ByStake(float64(r.Power), state)
		if err != nil {
			return nil, err
		}
		out = append(out, spec.ReporterAPR{
			Address:               r.Address,
			Moniker:               r.DisplayName(),
			Power:                 r.Power,
			APRPercent:            apr,
			CommissionRatePercent: r.CommissionRate * 100,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Power > out[j].Power
	})
	return out, nil
}

// Aggregate reduces the per-reporter APRs into the two population stats the
// report prints: the power-weighted average and the plain median of the
// individual values (the median deliberately ignores power). An empty
// population or one with zero total power yields (0, 0); report generation
// continues with no reporters.
func Aggregate(reporterAPRs []spec.ReporterAPR) (weightedAvg, median float64) {
	if len(reporterAPRs) == 0 {
		return 0, 0
	}

	var totalWeighted float64
	var totalPower int64
	values := make([]float64, 0, len(reporterAPRs))
	for _, r := range reporterAPRs {
		totalWeighted += r.APRPercent * float64(r.Power)
		totalPower += r.Power
		values = append(values, r.APRPercent)
	}
	if totalPower == 0 {
		return 0, 0
	}

	return totalWeighted / float64(totalPower), spec.Median(values)
}
