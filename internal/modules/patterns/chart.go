package patterns

import (
	"github.com/tradeinsight/analytics/internal/domain"
)

// Detector is the stable signature for chart-formation detectors.
type Detector func(series domain.Series) []domain.Pattern

type namedDetector struct {
	name   string
	detect Detector
}

// chartDetectors is the chart-formation registry. All entries are
// currently inert: the registry keeps the names and signature stable so
// geometric implementations can be plugged in without touching the
// orchestrator.
func chartDetectors() []namedDetector {
	return []namedDetector{
		{"head_and_shoulders", detectNone},
		{"inverse_head_and_shoulders", detectNone},
		{"double_top", detectNone},
		{"double_bottom", detectNone},
		{"triangle_ascending", detectNone},
		{"triangle_descending", detectNone},
		{"triangle_symmetrical", detectNone},
		{"wedge_rising", detectNone},
		{"wedge_falling", detectNone},
		{"flag_bull", detectNone},
		{"flag_bear", detectNone},
		{"pennant", detectNone},
	}
}

// detectNone is the shared no-op detector for registered-but-inert formations.
func detectNone(domain.Series) []domain.Pattern { return nil }
