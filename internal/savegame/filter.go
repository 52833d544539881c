package savegame

// Filter returns the records carrying every checked badge. Checked filters
// combine with AND semantics; an empty filter set keeps everything.
func Filter(records []Record, checked []Badge) []Record {
	if len(checked) == 0 {
		return records
	}

	out := make([]Record, 0, len(records))
	for _, rec := range records {
		keep := true
		for _, b := range checked {
			if !rec.HasBadge(b) {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, rec)
		}
	}
	return out
}
