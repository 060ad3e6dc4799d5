package export

import "fmt"

// Column describes one sheet column. Width is a relative weight used by the PDF renderer.
type Column struct {
	Key   string
	Label string
	Width float64
}

// Sheet is a titled table rendered by the CSV and PDF exporters.
type Sheet struct {
	Title   string
	Columns []Column
	Rows    []map[string]string
}

func (s Sheet) validate() error {
	if len(s.Columns) == 0 {
		return fmt.Errorf("sheet requires at least one column")
	}
	return nil
}

func (s Sheet) labels() []string {
	labels := make([]string, len(s.Columns))
	for i, col := range s.Columns {
		labels[i] = col.Label
		if labels[i] == "" {
			labels[i] = col.Key
		}
	}
	return labels
}

func (s Sheet) record(row map[string]string) []string {
	record := make([]string, len(s.Columns))
	for i, col := range s.Columns {
		record[i] = row[col.Key]
	}
	return record
}
