package reconmetrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/petalo-go/petalo/mlem"
)

func TestPercentile_EmptyReport_ReturnsZero(t *testing.T) {
	r := &Report{}
	assert.Equal(t, 0.0, r.Percentile(50))
}

func TestPercentile_UniformDurations_P50MatchesMedian(t *testing.T) {
	r := &Report{}
	for i, d := range []time.Duration{1 * time.Second, 2 * time.Second, 3 * time.Second} {
		r.Record(i, d, float64(i), mlem.Stats{})
	}

	assert.InDelta(t, 2.0, r.Percentile(50), 0.5)
}

func TestRecord_CapturesSkippedLORsFromStats(t *testing.T) {
	r := &Report{}
	r.Record(1, time.Millisecond, 10.0, mlem.Stats{SkippedLORs: 3, Iterations: 1})

	assert.Len(t, r.Records, 1)
	assert.Equal(t, 3, r.Records[0].SkippedLORs)
}
