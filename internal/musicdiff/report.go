package musicdiff

import (
	"fmt"
	"io"
)

const (
	reportSeparatorConstant       = "============================================================"
	sectionSeparatorConstant      = "------------------------------------------------------------"
	comparisonTitleConstant       = "🎵 Music folder comparison"
	folderLabelTemplateConstant   = "Folder %d: %s\n"
	scanningHeaderConstant        = "📂 Scanning folders..."
	scanResultTemplateConstant    = "   ✓ Folder %d: %d files found\n"
	resultHeaderConstant          = "📊 RESULT:"
	onlyInFolderTemplateConstant  = "%s ONLY in folder %d (%d files):\n"
	copyHintTemplateConstant      = "   → Copy these from folder %d to folder %d\n"
	listEntryTemplateConstant     = "   %s\n"
	truncationTemplateConstant    = "   ... and %d more\n"
	inBothTemplateConstant        = "✅ In both folders (%d files)\n"
	summaryHeaderConstant         = "📋 SUMMARY:"
	summaryTotalTemplateConstant  = "   Total in folder %d:  %d\n"
	summaryInBothTemplateConstant = "   In both:            %d\n"
	summaryOnlyInTemplateConstant = "   Only in folder %d:   %d\n"
	firstFolderEmojiConstant      = "💾"
	secondFolderEmojiConstant     = "📱"
	listedEntryLimitConstant      = 20
)

// WriteComparisonHeader prints the banner naming both folders.
func WriteComparisonHeader(writer io.Writer, firstFolder string, secondFolder string) {
	fmt.Fprintln(writer, comparisonTitleConstant)
	fmt.Fprintln(writer, reportSeparatorConstant)
	fmt.Fprintf(writer, folderLabelTemplateConstant, 1, firstFolder)
	fmt.Fprintf(writer, folderLabelTemplateConstant, 2, secondFolder)
	fmt.Fprintln(writer, reportSeparatorConstant)
	fmt.Fprintln(writer)
	fmt.Fprintln(writer, scanningHeaderConstant)
}

// WriteScanResult prints the file count found in one folder.
func WriteScanResult(writer io.Writer, folderOrdinal int, fileCount int) {
	fmt.Fprintf(writer, scanResultTemplateConstant, folderOrdinal, fileCount)
}

// WriteDiffReport prints the three diff sections followed by the summary block.
// Each only-in section lists at most the first twenty entries.
func WriteDiffReport(writer io.Writer, diff FolderDiff, firstFileCount int, secondFileCount int) {
	fmt.Fprintln(writer)
	fmt.Fprintln(writer, resultHeaderConstant)
	fmt.Fprintln(writer, reportSeparatorConstant)
	fmt.Fprintln(writer)

	writeOnlySection(writer, diff.OnlyInFirst, firstFolderEmojiConstant, 1, 2)
	writeOnlySection(writer, diff.OnlyInSecond, secondFolderEmojiConstant, 2, 1)

	if len(diff.InBoth) > 0 {
		fmt.Fprintf(writer, inBothTemplateConstant, len(diff.InBoth))
		fmt.Fprintln(writer)
	}

	fmt.Fprintln(writer, reportSeparatorConstant)
	fmt.Fprintln(writer, summaryHeaderConstant)
	fmt.Fprintf(writer, summaryTotalTemplateConstant, 1, firstFileCount)
	fmt.Fprintf(writer, summaryTotalTemplateConstant, 2, secondFileCount)
	fmt.Fprintf(writer, summaryInBothTemplateConstant, len(diff.InBoth))
	fmt.Fprintf(writer, summaryOnlyInTemplateConstant, 1, len(diff.OnlyInFirst))
	fmt.Fprintf(writer, summaryOnlyInTemplateConstant, 2, len(diff.OnlyInSecond))
	fmt.Fprintln(writer, reportSeparatorConstant)
}

func writeOnlySection(writer io.Writer, entries []string, sectionEmoji string, sourceOrdinal int, targetOrdinal int) {
	if len(entries) == 0 {
		return
	}

	fmt.Fprintf(writer, onlyInFolderTemplateConstant, sectionEmoji, sourceOrdinal, len(entries))
	fmt.Fprintf(writer, copyHintTemplateConstant, sourceOrdinal, targetOrdinal)
	fmt.Fprintln(writer, sectionSeparatorConstant)

	listedEntries := entries
	if len(listedEntries) > listedEntryLimitConstant {
		listedEntries = listedEntries[:listedEntryLimitConstant]
	}
	for _, entry := range listedEntries {
		fmt.Fprintf(writer, listEntryTemplateConstant, entry)
	}
	if len(entries) > listedEntryLimitConstant {
		fmt.Fprintf(writer, truncationTemplateConstant, len(entries)-listedEntryLimitConstant)
	}
	fmt.Fprintln(writer)
}
