package lottery

import metrics "github.com/rcrowley/go-metrics"

var (
	refreshTimer     = metrics.GetOrRegisterTimer("lottery/refresh", nil)
	historyCacheHits = metrics.GetOrRegisterCounter("lottery/history/cachehits", nil)
)

func submittedCounter(action Action) metrics.Counter {
	return metrics.GetOrRegisterCounter("lottery/actions/"+string(action)+"/submitted", nil)
}

func failedCounter(action Action) metrics.Counter {
	return metrics.GetOrRegisterCounter("lottery/actions/"+string(action)+"/failed", nil)
}
