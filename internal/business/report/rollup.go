package report

import (
	"fmt"
	"sort"
	"time"
)

// monthBucket is one (year, month) aggregate of eligible events, keyed
// by the localized year and month of the event start.
type monthBucket struct {
	year     int
	month    time.Month
	count    int
	duration time.Duration
}

func (b monthBucket) label() string {
	return fmt.Sprintf("%d-%02d", b.year, int(b.month))
}

func (b monthBucket) before(other monthBucket) bool {
	if b.year != other.year {
		return b.year < other.year
	}
	return b.month < other.month
}

func sortChronologically(buckets []monthBucket) {
	sort.Slice(buckets, func(i, j int) bool {
		return buckets[i].before(buckets[j])
	})
}

// extremes returns the buckets holding the maximum and the minimum
// metric value over the whole table. Ties keep every qualifying
// bucket, so either group may hold more than one month. Both groups
// come back chronologically ordered; an empty table yields empty
// groups.
func extremes(buckets []monthBucket, metric func(monthBucket) int64) (most, least []monthBucket) {
	most = []monthBucket{}
	least = []monthBucket{}
	if len(buckets) == 0 {
		return most, least
	}

	max := metric(buckets[0])
	min := max
	for _, b := range buckets[1:] {
		if v := metric(b); v > max {
			max = v
		} else if v < min {
			min = v
		}
	}

	// A bucket may land in both groups when max == min.
	for _, b := range buckets {
		v := metric(b)
		if v == max {
			most = append(most, b)
		}
		if v == min {
			least = append(least, b)
		}
	}

	sortChronologically(most)
	sortChronologically(least)
	return most, least
}

// lastThreeMonths filters buckets against the reference window start
// with a pointwise comparison: a bucket qualifies when its year and
// its month are each independently >= the window's. This is not a true
// calendar comparison (e.g. January of a later year fails the month
// check) but it is the established behaviour of the report and is kept
// as is. The result is chronologically ordered.
func lastThreeMonths(buckets []monthBucket, windowYear int, windowMonth time.Month) []monthBucket {
	res := []monthBucket{}
	for _, b := range buckets {
		if b.year >= windowYear && b.month >= windowMonth {
			res = append(res, b)
		}
	}

	sortChronologically(res)
	return res
}
