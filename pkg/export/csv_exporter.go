package export

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/noah-isme/course-compass/internal/models"
)

// Dataset defines tabular export content.
type Dataset struct {
	Headers []string
	Rows    []map[string]string
}

// EventsDataset flattens a calendar into the shared tabular shape used by
// the CSV and PDF renderers. Rows keep the collection's ordering.
func EventsDataset(events []models.Event) Dataset {
	headers := []string{"Date", "Start", "End", "Title", "Type", "Course"}
	rows := make([]map[string]string, 0, len(events))
	for _, ev := range events {
		start, end := ev.Start.Format("15:04"), ev.End.Format("15:04")
		if ev.AllDay {
			start, end = "all day", ""
		}
		rows = append(rows, map[string]string{
			"Date":   ev.Start.Format("2006-01-02 Mon"),
			"Start":  start,
			"End":    end,
			"Title":  ev.Title,
			"Type":   string(ev.EventType),
			"Course": ev.CourseKey,
		})
	}
	return Dataset{Headers: headers, Rows: rows}
}

// CSVExporter renders Dataset records into CSV bytes.
type CSVExporter struct{}

// NewCSVExporter builds a CSV exporter.
func NewCSVExporter() *CSVExporter {
	return &CSVExporter{}
}

// Render produces CSV encoded bytes for the dataset.
func (e *CSVExporter) Render(data Dataset) ([]byte, error) {
	if len(data.Headers) == 0 {
		return nil, fmt.Errorf("csv requires at least one header")
	}
	buf := &bytes.Buffer{}
	writer := csv.NewWriter(buf)
	if err := writer.Write(data.Headers); err != nil {
		return nil, fmt.Errorf("write csv headers: %w", err)
	}
	for _, row := range data.Rows {
		record := make([]string, len(data.Headers))
		for i, header := range data.Headers {
			record[i] = row[header]
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("write csv row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}
