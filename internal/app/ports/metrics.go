package ports

type InteractMetrics interface {
	RecordSearch(band string, found bool)
	RecordSkipped(outcome string)
	RecordSteal()
	RecordFailure()
}
