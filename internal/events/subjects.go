package events

const (
	SubjectRankComputed  = "livebetter.rank.computed"
	SubjectDataRefreshed = "livebetter.data.refreshed"

	StreamName   = "LIVEBETTER_EVENTS"
	StreamMaxAge = "168h" // 7 days
)
