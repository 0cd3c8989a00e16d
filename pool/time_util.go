package pool

import "time"

func millisDuration(ms int64) time.Duration {
	if ms < 0 {
		return -1
	}
	return time.Duration(ms) * time.Millisecond
}

func millisOrInf(ms int64) time.Duration {
	if ms <= 0 {
		return time.Duration(1<<63 - 1) // effectively +Inf for comparison purposes
	}
	return time.Duration(ms) * time.Millisecond
}
