package storage

// DayPlanRange selects stored plans by inclusive date key bounds. Empty
// bounds are open.
type DayPlanRange struct {
	FromKey string
	ToKey   string
	Limit   int
	Offset  int
}

type ReflectionListFilter struct {
	Limit  int
	Offset int
}

const pinnedPhraseSetting = "pinned_phrase"
