package timeline

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
)

const (
	timestampColumnConstant       = "timestamp"
	endTimestampColumnConstant    = "end_timestamp"
	recordTypeColumnConstant      = "record_type"
	activityTypeColumnConstant    = "activity_type"
	distanceMetersColumnConstant  = "distance_meters"
	durationSecondsColumnConstant = "duration_seconds"
	recordTypeActivityConstant    = "activity"
	recordTypeVisitConstant       = "visit"
	monthKeyLengthConstant        = 7

	headerReadErrorTemplateConstant = "failed to read timeline header: %w"
	rowReadErrorTemplateConstant    = "failed to read timeline row: %w"
)

// Record is one parsed timeline row.
type Record struct {
	Timestamp       string
	EndTimestamp    string
	RecordType      string
	ActivityType    string
	DistanceMeters  float64
	DurationSeconds float64
}

// MonthlySummary accumulates all records bucketed into one YYYY-MM month.
type MonthlySummary struct {
	Month                string
	Records              []Record
	TotalDistanceMeters  float64
	TotalDurationSeconds float64
	ActivityCounts       map[string]int
	VisitCount           int
}

// AggregateByMonth streams the timeline CSV and groups rows by the YYYY-MM
// prefix of their timestamp. Header order is free and unknown columns are
// ignored. Empty or malformed numeric fields count as zero; rows shorter
// than the header degrade to empty fields.
func AggregateByMonth(csvReader io.Reader) (map[string]*MonthlySummary, error) {
	reader := csv.NewReader(csvReader)
	reader.FieldsPerRecord = -1

	headerRow, headerError := reader.Read()
	if headerError != nil {
		if headerError == io.EOF {
			return map[string]*MonthlySummary{}, nil
		}
		return nil, fmt.Errorf(headerReadErrorTemplateConstant, headerError)
	}

	columnIndexes := make(map[string]int, len(headerRow))
	for columnIndex, columnName := range headerRow {
		columnIndexes[strings.TrimSpace(columnName)] = columnIndex
	}

	summaries := make(map[string]*MonthlySummary)
	for {
		row, rowError := reader.Read()
		if rowError == io.EOF {
			break
		}
		if rowError != nil {
			return nil, fmt.Errorf(rowReadErrorTemplateConstant, rowError)
		}

		record := Record{
			Timestamp:       fieldValue(row, columnIndexes, timestampColumnConstant),
			EndTimestamp:    fieldValue(row, columnIndexes, endTimestampColumnConstant),
			RecordType:      fieldValue(row, columnIndexes, recordTypeColumnConstant),
			ActivityType:    fieldValue(row, columnIndexes, activityTypeColumnConstant),
			DistanceMeters:  numericFieldValue(row, columnIndexes, distanceMetersColumnConstant),
			DurationSeconds: numericFieldValue(row, columnIndexes, durationSecondsColumnConstant),
		}

		monthKey := monthOf(record.Timestamp)
		summary, monthSeen := summaries[monthKey]
		if !monthSeen {
			summary = &MonthlySummary{Month: monthKey, ActivityCounts: make(map[string]int)}
			summaries[monthKey] = summary
		}

		summary.Records = append(summary.Records, record)
		summary.TotalDistanceMeters += record.DistanceMeters
		summary.TotalDurationSeconds += record.DurationSeconds

		switch record.RecordType {
		case recordTypeActivityConstant:
			summary.ActivityCounts[record.ActivityType]++
		case recordTypeVisitConstant:
			summary.VisitCount++
		}
	}

	return summaries, nil
}

// SortedMonths returns the month keys in chronological order.
func SortedMonths(summaries map[string]*MonthlySummary) []string {
	months := make([]string, 0, len(summaries))
	for month := range summaries {
		months = append(months, month)
	}
	sort.Strings(months)
	return months
}

func monthOf(timestamp string) string {
	if len(timestamp) <= monthKeyLengthConstant {
		return timestamp
	}
	return timestamp[:monthKeyLengthConstant]
}

func fieldValue(row []string, columnIndexes map[string]int, columnName string) string {
	columnIndex, columnKnown := columnIndexes[columnName]
	if !columnKnown || columnIndex >= len(row) {
		return ""
	}
	return row[columnIndex]
}

func numericFieldValue(row []string, columnIndexes map[string]int, columnName string) float64 {
	rawValue := strings.TrimSpace(fieldValue(row, columnIndexes, columnName))
	if len(rawValue) == 0 {
		return 0.0
	}
	numericValue, parseError := strconv.ParseFloat(rawValue, 64)
	if parseError != nil {
		return 0.0
	}
	return numericValue
}
