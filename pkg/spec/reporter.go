package spec

// ReporterRecord is one entry of the Layer reporter registry. Power is in
// loya, CommissionRate is a 0..1 fraction.
type ReporterRecord struct {
	Address        string
	Moniker        string
	Power          int64
	CommissionRate float64
}

// DisplayName prefers the moniker and falls back to a shortened address.
func (r ReporterRecord) DisplayName() string {
	if r.Moniker != "" {
		return r.Moniker
	}
	if len(r.Address) <= 12 {
		return r.Address
	}
	return r.Address[:12] + "..."
}

// ReporterAPR is the computed profitability of a single reporter.
type ReporterAPR struct {
	Address               string
	Moniker               string
	Power                 int64 // loya
	APRPercent            float64
	CommissionRatePercent float64
}

// ReporterSet splits the registry by eligibility for selection.
type ReporterSet struct {
	Active   []ReporterRecord
	Inactive []ReporterRecord
	Jailed   []ReporterRecord
}

func (s ReporterSet) TotalActivePower() int64 {
	var total int64
	for _, r := range s.Active {
		total += r.Power
	}
	return total
}
