package entities

// FilterFunc narrows a record sequence. Implementations must be pure so that
// backends can compose any subset in any order; ordering only matters for
// performance.
type FilterFunc func([]Record) []Record

// Apply runs the filters in order over records and returns the result.
// The input slice is never mutated.
func Apply(records []Record, filters ...FilterFunc) []Record {
	for _, f := range filters {
		records = f(records)
	}
	return records
}

// ByTimeRange retains records with start <= originationTime <= end.
func ByTimeRange(start, end int64) FilterFunc {
	return func(records []Record) []Record {
		var out []Record
		for _, r := range records {
			if start <= r.OriginationTime && r.OriginationTime <= end {
				out = append(out, r)
			}
		}
		return out
	}
}

// ByPhone retains records whose phone device matches exactly. Records
// without a phone device are excluded.
func ByPhone(phone string) FilterFunc {
	return func(records []Record) []Record {
		var out []Record
		for _, r := range records {
			if r.Devices.Phone != "" && r.Devices.Phone == phone {
				out = append(out, r)
			}
		}
		return out
	}
}

// ByVoicemail retains records whose voicemail device matches exactly.
// Records without a voicemail device are excluded.
func ByVoicemail(voicemail string) FilterFunc {
	return func(records []Record) []Record {
		var out []Record
		for _, r := range records {
			if r.Devices.Voicemail != "" && r.Devices.Voicemail == voicemail {
				out = append(out, r)
			}
		}
		return out
	}
}

// ByUserID retains records whose user ID matches exactly.
func ByUserID(userID string) FilterFunc {
	return func(records []Record) []Record {
		var out []Record
		for _, r := range records {
			if r.UserID == userID {
				out = append(out, r)
			}
		}
		return out
	}
}

// ByClusterID retains records whose cluster ID matches exactly.
func ByClusterID(clusterID string) FilterFunc {
	return func(records []Record) []Record {
		var out []Record
		for _, r := range records {
			if r.ClusterID == clusterID {
				out = append(out, r)
			}
		}
		return out
	}
}
