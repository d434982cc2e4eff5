package profile

// Report bundles a profile with its summary and zone breakdown, the shape
// served to chart clients.
type Report struct {
	Profile *Profile    `json:"profile"`
	Stats   Stats       `json:"stats"`
	Zones   []ZoneShare `json:"zones"`
}

func NewReport(p *Profile) Report {
	if p == nil {
		p = &Profile{}
	}
	return Report{
		Profile: p,
		Stats:   Summarize(p),
		Zones:   ZoneBreakdown(p),
	}
}
