package units

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLightTravel_OneNanosecond_ReturnsSpeedOfLight(t *testing.T) {
	got := LightTravel(Time(1))
	assert.Equal(t, Length(299.792458), got)
}

func TestNsToPs_RoundTrip(t *testing.T) {
	got := PsToNs(NsToPs(Time(2.5)))
	assert.InDelta(t, 2.5, float64(got), 1e-9)
}

func TestLength_Abs_NegativeValue_ReturnsPositive(t *testing.T) {
	assert.Equal(t, Length(3), Length(-3).Abs())
}

func TestLength_IsFinite(t *testing.T) {
	assert.True(t, Length(1.0).IsFinite())
	assert.False(t, Length(math.NaN()).IsFinite())
	assert.False(t, Length(math.Inf(1)).IsFinite())
}
