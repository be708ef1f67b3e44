package profile_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glasskit/glasskit/pkg/profile"
)

func TestMeasure(t *testing.T) {
	t.Parallel()

	msr := profile.NewDefaultMeasure()
	assert.Nil(t, msr.GetMetric("spin"))

	mt := msr.AddMetric("spin")
	require.NotNil(t, mt)
	assert.Same(t, mt, msr.AddMetric("spin"))
	assert.Same(t, mt, msr.GetMetric("spin"))
	assert.Len(t, msr.AllMetrics(), 1)
}

func TestMetricAverages(t *testing.T) {
	t.Parallel()

	mt := profile.NewDefaultMeasure().AddMetric("spin")
	assert.Equal(t, time.Duration(0), mt.AVGDuration())

	mt.AddDuration(10 * time.Millisecond)
	mt.AddDuration(20 * time.Millisecond)
	assert.Equal(t, int64(2), mt.Count())
	assert.Equal(t, 15*time.Millisecond, mt.AVGDuration())

	mt.SetTotalDuration(time.Second)
	assert.Equal(t, time.Second, mt.GetTotalDuration())
}
