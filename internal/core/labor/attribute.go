package labor

import (
	"laborreport/internal/platform/logger"
)

// Stats counts how items were treated during one attribution pass
type Stats struct {
	Attributed int
	Ignored    int
	Malformed  int
}

// Add folds o into s
func (s *Stats) Add(o Stats) {
	s.Attributed += o.Attributed
	s.Ignored += o.Ignored
	s.Malformed += o.Malformed
}

// Tally sums labor quantities per roster technician. Items that are not
// tagged, or whose technician is not on the roster, are ignored; malformed
// items are logged and skipped
func Tally(items []Item, tag string, roster Roster, log *logger.Logger) (Metrics, Stats) {
	out := roster.Zero()
	var st Stats
	for i, it := range items {
		rec, err := it.Parse(tag)
		if err != nil {
			log.Warn().Err(err).Int("index", i).Msg("skipping malformed job item")
			st.Malformed++
			continue
		}
		if rec.Kind != KindLabor || !roster.Has(rec.Technician) {
			st.Ignored++
			continue
		}
		out[rec.Technician] += rec.Qty
		st.Attributed++
	}
	return out, st
}

// AllocateOrder splits one work order's parts revenue between technicians in
// proportion to their share of the order's labor hours. Service fees are not
// revenue; a zero hour total gives every technician a zero share
func AllocateOrder(items []Item, roster Roster, log *logger.Logger) (Metrics, Stats) {
	hours := roster.Zero()
	var (
		revenue float64
		st      Stats
	)
	for i, it := range items {
		rec, err := it.Parse(LaborTag)
		if err != nil {
			log.Warn().Err(err).Int("index", i).Msg("skipping malformed job item")
			st.Malformed++
			continue
		}
		switch rec.Kind {
		case KindLabor:
			if !roster.Has(rec.Technician) {
				st.Ignored++
				continue
			}
			hours[rec.Technician] += rec.Qty
			st.Attributed++
		case KindParts:
			if !rec.HasAmount {
				log.Warn().Int("index", i).Msg("skipping parts item without Amount")
				st.Malformed++
				continue
			}
			revenue += rec.Amount
			st.Attributed++
		default:
			st.Ignored++
		}
	}

	var total float64
	for _, h := range hours {
		total += h
	}
	out := roster.Zero()
	if total == 0 {
		return out, st
	}
	for tech, h := range hours {
		out[tech] = revenue * (h / total)
	}
	return out, st
}
