// Package flatten explodes records with embedded line collections into one
// tabular row per line, the shape BI clients expect.
package flatten

import "unleashed-proxy/internal/unleashed"

// Records flattens each record's line collection into rows: every line yields
// one row merging the parent's fields with the line's own, the line winning
// on key collision. A record with a missing or empty collection still yields
// exactly one row (the parent fields alone). Line entries that are not JSON
// objects are skipped.
func Records(records []unleashed.Record, lineField string) []unleashed.Record {
	rows := make([]unleashed.Record, 0, len(records))
	for _, record := range records {
		header := make(unleashed.Record, len(record))
		for key, value := range record {
			if key != lineField {
				header[key] = value
			}
		}
		lines, _ := record[lineField].([]interface{})
		emitted := false
		for _, entry := range lines {
			line, ok := entry.(map[string]interface{})
			if !ok {
				continue
			}
			row := make(unleashed.Record, len(header)+len(line))
			for key, value := range header {
				row[key] = value
			}
			for key, value := range line {
				row[key] = value
			}
			rows = append(rows, row)
			emitted = true
		}
		if !emitted {
			rows = append(rows, header)
		}
	}
	return rows
}
