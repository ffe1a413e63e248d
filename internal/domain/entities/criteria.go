package entities

// Criteria is a normalized query request: a mandatory inclusive time range
// plus optional equality constraints. An empty optional field imposes no
// constraint.
type Criteria struct {
	Start     int64
	End       int64
	Phone     string
	Voicemail string
	UserID    string
	ClusterID string
}

// Validate checks the range invariant.
func (c Criteria) Validate() error {
	if c.Start > c.End {
		return ErrInvalidCriteria
	}
	return nil
}

// Filters returns the filter pipeline for this criteria: the time range
// filter always comes first, followed by one filter per set optional field.
func (c Criteria) Filters() []FilterFunc {
	filters := []FilterFunc{ByTimeRange(c.Start, c.End)}
	if c.Phone != "" {
		filters = append(filters, ByPhone(c.Phone))
	}
	if c.Voicemail != "" {
		filters = append(filters, ByVoicemail(c.Voicemail))
	}
	if c.UserID != "" {
		filters = append(filters, ByUserID(c.UserID))
	}
	if c.ClusterID != "" {
		filters = append(filters, ByClusterID(c.ClusterID))
	}
	return filters
}
