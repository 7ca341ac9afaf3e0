// Package musicdiff compares the music files of two folders and reports
// which files exist only on one side. Device URLs (mtp://, gvfs://, afc://)
// are resolved to their local GVFS mount before scanning.
package musicdiff
