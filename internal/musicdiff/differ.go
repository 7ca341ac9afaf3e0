package musicdiff

import "sort"

// FolderDiff partitions the union of two scanned folders into files only in
// the first, only in the second, and present in both. Every slice is sorted.
type FolderDiff struct {
	OnlyInFirst  []string
	OnlyInSecond []string
	InBoth       []string
}

// ComputeDiff compares the relative-path key sets of two scans.
func ComputeDiff(firstFiles map[string]string, secondFiles map[string]string) FolderDiff {
	diff := FolderDiff{}

	for relativePath := range firstFiles {
		if _, inSecond := secondFiles[relativePath]; inSecond {
			diff.InBoth = append(diff.InBoth, relativePath)
		} else {
			diff.OnlyInFirst = append(diff.OnlyInFirst, relativePath)
		}
	}
	for relativePath := range secondFiles {
		if _, inFirst := firstFiles[relativePath]; !inFirst {
			diff.OnlyInSecond = append(diff.OnlyInSecond, relativePath)
		}
	}

	sort.Strings(diff.OnlyInFirst)
	sort.Strings(diff.OnlyInSecond)
	sort.Strings(diff.InBoth)
	return diff
}
