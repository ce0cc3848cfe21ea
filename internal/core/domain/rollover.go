package domain

// RolloverReport summarizes one annual rollover run.
type RolloverReport struct {
	Year           int
	GroupsSeen     int
	GroupsPlanted  int
	GroupsSkipped  int
	RowsCreated    int
	SkippedReasons map[string]string // repeatCode -> reason
}
