package signals

import (
	"strings"

	"github.com/okian/swimzones/internal/domain/model"
)

const contextSeparator = "; "

// Merge fuses signals per zone. A zone keeps its strongest confidence rather
// than the sum, contexts are joined in input order and later metrics overwrite
// earlier ones. The result is ordered by confidence, highest first, with equal
// confidences in zone order (Z1 first), so confidences are non-increasing
// rather than strictly decreasing. It is capped at maxZones (no cap when <= 0).
func Merge(maxZones int, groups ...[]model.ZoneSignal) []model.ZoneSignal {
	byZone := make(map[model.Zone]*model.ZoneSignal)
	contexts := make(map[model.Zone][]string)
	var order []model.Zone

	for _, group := range groups {
		for _, s := range group {
			if !s.Zone.Valid() {
				continue
			}
			cur, ok := byZone[s.Zone]
			if !ok {
				cur = &model.ZoneSignal{Zone: s.Zone}
				byZone[s.Zone] = cur
				order = append(order, s.Zone)
			}
			cur.Confidence = max(cur.Confidence, Clamp(s.Confidence))
			if s.Metrics != nil {
				cur.Metrics = cur.Metrics.Merge(s.Metrics)
			}
			if s.Context != "" {
				contexts[s.Zone] = append(contexts[s.Zone], s.Context)
			}
		}
	}

	out := make([]model.ZoneSignal, 0, len(order))
	for _, z := range order {
		s := *byZone[z]
		s.Context = strings.Join(contexts[z], contextSeparator)
		out = append(out, s)
	}
	Sort(out)
	if maxZones > 0 && len(out) > maxZones {
		out = out[:maxZones]
	}
	return out
}
