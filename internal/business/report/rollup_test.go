package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func countMetric(b monthBucket) int64 {
	return int64(b.count)
}

func TestExtremes(t *testing.T) {
	buckets := []monthBucket{
		{year: 2019, month: time.January, count: 5},
		{year: 2019, month: time.November, count: 8},
		{year: 2019, month: time.February, count: 10},
		{year: 2019, month: time.September, count: 15},
		{year: 2019, month: time.July, count: 18},
	}

	most, least := extremes(buckets, countMetric)

	assert.Equal(t, []monthBucket{{year: 2019, month: time.July, count: 18}}, most)
	assert.Equal(t, []monthBucket{{year: 2019, month: time.January, count: 5}}, least)
}

func TestExtremesKeepsTies(t *testing.T) {
	buckets := []monthBucket{
		{year: 2019, month: time.May, count: 3},
		{year: 2019, month: time.March, count: 7},
		{year: 2019, month: time.August, count: 7},
		{year: 2020, month: time.January, count: 3},
	}

	most, least := extremes(buckets, countMetric)

	assert.Equal(t, []monthBucket{
		{year: 2019, month: time.March, count: 7},
		{year: 2019, month: time.August, count: 7},
	}, most)
	assert.Equal(t, []monthBucket{
		{year: 2019, month: time.May, count: 3},
		{year: 2020, month: time.January, count: 3},
	}, least)
}

func TestExtremesSingleBucketInBothGroups(t *testing.T) {
	buckets := []monthBucket{{year: 2021, month: time.June, count: 4}}

	most, least := extremes(buckets, countMetric)

	assert.Equal(t, buckets, most)
	assert.Equal(t, buckets, least)
}

func TestExtremesEmpty(t *testing.T) {
	most, least := extremes(nil, countMetric)

	assert.Empty(t, most)
	assert.NotNil(t, most)
	assert.Empty(t, least)
	assert.NotNil(t, least)
}

func TestLastThreeMonths(t *testing.T) {
	buckets := []monthBucket{
		{year: 2019, month: time.November, count: 8},
		{year: 2019, month: time.January, count: 5},
		{year: 2019, month: time.September, count: 15},
		{year: 2019, month: time.July, count: 18},
	}

	res := lastThreeMonths(buckets, 2019, time.September)

	assert.Equal(t, []monthBucket{
		{year: 2019, month: time.September, count: 15},
		{year: 2019, month: time.November, count: 8},
	}, res)
}

// The window is a pointwise comparison of year and month, not a true
// calendar one: months below the reference month fail even in later
// years.
func TestLastThreeMonthsPointwiseQuirk(t *testing.T) {
	buckets := []monthBucket{
		{year: 2020, month: time.January, count: 1},
		{year: 2020, month: time.October, count: 2},
		{year: 2020, month: time.December, count: 4},
		{year: 2019, month: time.December, count: 3},
	}

	res := lastThreeMonths(buckets, 2019, time.November)

	assert.Equal(t, []monthBucket{
		{year: 2019, month: time.December, count: 3},
		{year: 2020, month: time.December, count: 4},
	}, res)
}

func TestMonthLabelZeroPadded(t *testing.T) {
	assert.Equal(t, "2019-07", monthBucket{year: 2019, month: time.July}.label())
	assert.Equal(t, "2019-11", monthBucket{year: 2019, month: time.November}.label())
}
