// Package commitfix implements the fix-commits workflow: discovering local
// git repositories, spell-checking commit subjects in English and German with
// heuristic capitalization rules, reviewing corrections interactively, and
// rewriting history through a git filter-branch message filter.
package commitfix
