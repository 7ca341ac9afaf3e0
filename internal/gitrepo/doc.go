// Package gitrepo wraps the git plumbing used by the commit message workflow:
// work tree probes, commit enumeration, and history rewriting via filter-branch.
package gitrepo
