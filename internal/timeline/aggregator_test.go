package timeline_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tvetter/ordnung/internal/timeline"
)

const testTimelineCSVConstant = `timestamp,record_type,activity_type,distance_meters,duration_seconds,end_timestamp
2025-06-15T10:00:00,activity,cycling,12000,3600,2025-06-15T11:00:00
2025-06-20T08:30:00,activity,walking,2500,1800,2025-06-20T09:00:00
2025-06-21T12:00:00,visit,,,,2025-06-21T13:00:00
2025-07-01T07:00:00,activity,cycling,8000,2400,2025-07-01T07:40:00
`

func TestAggregateByMonthBucketsByTimestampPrefix(testInstance *testing.T) {
	summaries, aggregateError := timeline.AggregateByMonth(strings.NewReader(testTimelineCSVConstant))
	require.NoError(testInstance, aggregateError)

	require.Equal(testInstance, []string{"2025-06", "2025-07"}, timeline.SortedMonths(summaries))

	june := summaries["2025-06"]
	require.Len(testInstance, june.Records, 3)
	require.InDelta(testInstance, 14500.0, june.TotalDistanceMeters, 0.001)
	require.InDelta(testInstance, 5400.0, june.TotalDurationSeconds, 0.001)
	require.Equal(testInstance, 1, june.VisitCount)
	require.Equal(testInstance, map[string]int{"cycling": 1, "walking": 1}, june.ActivityCounts)

	july := summaries["2025-07"]
	require.Len(testInstance, july.Records, 1)
	require.Equal(testInstance, map[string]int{"cycling": 1}, july.ActivityCounts)
}

func TestAggregateByMonthToleratesHeaderReordering(testInstance *testing.T) {
	reorderedCSV := "record_type,timestamp,duration_seconds,distance_meters,activity_type,end_timestamp,extra\n" +
		"activity,2025-06-15T10:00:00,3600,12000,cycling,2025-06-15T11:00:00,ignored\n"

	summaries, aggregateError := timeline.AggregateByMonth(strings.NewReader(reorderedCSV))
	require.NoError(testInstance, aggregateError)

	june := summaries["2025-06"]
	require.NotNil(testInstance, june)
	require.InDelta(testInstance, 12000.0, june.TotalDistanceMeters, 0.001)
	require.Equal(testInstance, 1, june.ActivityCounts["cycling"])
}

func TestAggregateByMonthDefaultsMissingNumericsToZero(testInstance *testing.T) {
	sparseCSV := "timestamp,record_type,activity_type,distance_meters,duration_seconds,end_timestamp\n" +
		"2025-06-15T10:00:00,activity,yoga,,,\n" +
		"2025-06-16T10:00:00,activity,yoga,not-a-number,abc,\n" +
		"2025-06-17T10:00:00,activity,yoga\n"

	summaries, aggregateError := timeline.AggregateByMonth(strings.NewReader(sparseCSV))
	require.NoError(testInstance, aggregateError)

	june := summaries["2025-06"]
	require.Len(testInstance, june.Records, 3)
	require.Zero(testInstance, june.TotalDistanceMeters)
	require.Zero(testInstance, june.TotalDurationSeconds)
	require.Equal(testInstance, 3, june.ActivityCounts["yoga"])
}

func TestAggregateByMonthEmptyInput(testInstance *testing.T) {
	summaries, aggregateError := timeline.AggregateByMonth(strings.NewReader(""))
	require.NoError(testInstance, aggregateError)
	require.Empty(testInstance, summaries)
}
