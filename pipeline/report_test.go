package pipeline_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/waygraph/waygraph/pipeline"
)

func TestReportCountsWarningsAndTurns(t *testing.T) {
	r := pipeline.NewReport()

	r.IncProcessed()
	r.IncProcessed()
	r.IncSkipped()
	r.Warn(pipeline.WarnClampedEdgeWeight)
	r.Warn(pipeline.WarnClampedEdgeWeight)
	r.Warn(pipeline.WarnUnknownTravelMode)

	assert.EqualValues(t, 2, r.Processed())
	assert.EqualValues(t, 1, r.Skipped())
	assert.EqualValues(t, 2, r.WarningCount(pipeline.WarnClampedEdgeWeight))
	assert.EqualValues(t, 1, r.WarningCount(pipeline.WarnUnknownTravelMode))
	assert.EqualValues(t, 0, r.WarningCount(pipeline.WarnUnparseableCondition))
	assert.Contains(t, r.Summary(), "processed=2 skipped=1")
}

func TestReportExceedsDropThreshold(t *testing.T) {
	r := pipeline.NewReport()
	for i := 0; i < 98; i++ {
		r.IncProcessed()
	}
	for i := 0; i < 2; i++ {
		r.IncSkipped()
	}

	assert.False(t, r.ExceedsDropThreshold(0.02))
	assert.True(t, r.ExceedsDropThreshold(0.01))
}

func TestReportExceedsDropThresholdEmpty(t *testing.T) {
	r := pipeline.NewReport()
	assert.False(t, r.ExceedsDropThreshold(0.0))
}
