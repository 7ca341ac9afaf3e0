package timeline

import (
	"fmt"
	"io"
	"sort"
	"strings"
)

const (
	summarySeparatorConstant        = "============================================================"
	detailSeparatorConstant         = "================================================================================"
	monthHeaderTemplateConstant     = "MONTH: %s"
	totalActivitiesTemplateConstant = "Total Activities: %d"
	totalDistanceTemplateConstant   = "Total Distance: %.2f km"
	totalDurationTemplateConstant   = "Total Duration: %.2f hours"
	visitsTemplateConstant          = "Visits: %d"
	breakdownHeaderConstant         = "\nActivity Breakdown:"
	breakdownEntryTemplateConstant  = "  - %s: %d"
	detailHeaderTemplateConstant    = "DETAILED ACTIVITIES FOR %s"
	detailSpanTemplateConstant      = "%d. %s - %s"
	detailTypeTemplateConstant      = "   Type: %s | %s"
	detailMetricsTemplateConstant   = "   Distance: %.2f km | Duration: %.1f min"
	unknownMonthTemplateConstant    = "No data found for month: %s\n"
	metersPerKilometerConstant      = 1000.0
	secondsPerHourConstant          = 3600.0
	secondsPerMinuteConstant        = 60.0
)

// RenderMonthlySummary formats the per-month report, chronologically sorted,
// and returns it as a single string.
func RenderMonthlySummary(summaries map[string]*MonthlySummary) string {
	var reportLines []string

	for _, month := range SortedMonths(summaries) {
		summary := summaries[month]

		reportLines = append(reportLines,
			"\n"+summarySeparatorConstant,
			fmt.Sprintf(monthHeaderTemplateConstant, summary.Month),
			summarySeparatorConstant,
			fmt.Sprintf(totalActivitiesTemplateConstant, len(summary.Records)),
			fmt.Sprintf(totalDistanceTemplateConstant, summary.TotalDistanceMeters/metersPerKilometerConstant),
			fmt.Sprintf(totalDurationTemplateConstant, summary.TotalDurationSeconds/secondsPerHourConstant),
			fmt.Sprintf(visitsTemplateConstant, summary.VisitCount),
			breakdownHeaderConstant,
		)

		activityTypes := make([]string, 0, len(summary.ActivityCounts))
		for activityType := range summary.ActivityCounts {
			activityTypes = append(activityTypes, activityType)
		}
		sort.Strings(activityTypes)

		for _, activityType := range activityTypes {
			reportLines = append(reportLines, fmt.Sprintf(breakdownEntryTemplateConstant, activityType, summary.ActivityCounts[activityType]))
		}
	}

	return strings.Join(reportLines, "\n")
}

// RenderMonthDetails formats the per-record listing for one month. The second
// return value reports whether the month had any data.
func RenderMonthDetails(summaries map[string]*MonthlySummary, month string) (string, bool) {
	summary, monthKnown := summaries[month]
	if !monthKnown {
		return "", false
	}

	reportLines := []string{
		"\n" + detailSeparatorConstant,
		fmt.Sprintf(detailHeaderTemplateConstant, month),
		detailSeparatorConstant + "\n",
	}

	for recordIndex, record := range summary.Records {
		reportLines = append(reportLines,
			fmt.Sprintf(detailSpanTemplateConstant, recordIndex+1, record.Timestamp, record.EndTimestamp),
			fmt.Sprintf(detailTypeTemplateConstant, record.RecordType, record.ActivityType),
			fmt.Sprintf(detailMetricsTemplateConstant, record.DistanceMeters/metersPerKilometerConstant, record.DurationSeconds/secondsPerMinuteConstant),
			"",
		)
	}

	return strings.Join(reportLines, "\n"), true
}

// WriteUnknownMonthNotice prints the notice for a month with no data.
func WriteUnknownMonthNotice(writer io.Writer, month string) {
	fmt.Fprintf(writer, unknownMonthTemplateConstant, month)
}
