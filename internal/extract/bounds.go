package extract

import "github.com/ja-he/wardmap/internal/model"

// Tolerances for PipelineAt. A pipeline's box is drawn below its line, so a
// point may sit further below the pipeline's visibility than above it.
const (
	PipelineToleranceAbove = 0.02
	PipelineToleranceBelow = 0.06
	pipelineMaturityPad    = 0.02
)

// PipelineAt returns the pipeline whose band contains the point, or nil.
//
// The band spans the pipeline's visibility minus PipelineToleranceBelow to
// plus PipelineToleranceAbove, and the maturity range of its children
// (padded slightly). The first matching pipeline wins.
func PipelineAt(m *model.Map, p model.Point) *model.Pipeline {
	if m == nil {
		return nil
	}
	for i := range m.Pipelines {
		pl := &m.Pipelines[i]
		v := pl.Point.Visibility
		if p.Visibility > v+PipelineToleranceAbove || p.Visibility < v-PipelineToleranceBelow {
			continue
		}
		lo, hi := pl.MaturityRange()
		if p.Maturity < lo-pipelineMaturityPad || p.Maturity > hi+pipelineMaturityPad {
			continue
		}
		return pl
	}
	return nil
}
