package domain

// Join inner-joins tables on region code. A region is kept only when every
// table has a value for it. The result is sorted by region code, so the
// order of tables does not matter.
func Join(tables ...RegionTable) []JoinedRecord {
	if len(tables) == 0 {
		return nil
	}

	var codes []RegionCode
	for code := range tables[0].Values {
		if inAll(code, tables[1:]) {
			codes = append(codes, code)
		}
	}
	sortCodes(codes)

	records := make([]JoinedRecord, 0, len(codes))
	for _, code := range codes {
		values := make(map[Metric]float64, len(tables))
		for _, t := range tables {
			values[t.Metric] = t.Values[code]
		}
		records = append(records, JoinedRecord{Region: code, Values: values})
	}
	return records
}

// JoinGaps lists regions present in at least one table but not in all of
// them, sorted by code.
func JoinGaps(tables ...RegionTable) []RegionCode {
	seen := make(map[RegionCode]bool)
	var gaps []RegionCode
	for _, t := range tables {
		for code := range t.Values {
			if seen[code] {
				continue
			}
			seen[code] = true
			if !inAll(code, tables) {
				gaps = append(gaps, code)
			}
		}
	}
	sortCodes(gaps)
	return gaps
}

func inAll(code RegionCode, tables []RegionTable) bool {
	for _, t := range tables {
		if _, ok := t.Values[code]; !ok {
			return false
		}
	}
	return true
}
