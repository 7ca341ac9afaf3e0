// Package discovery locates git repositories for the commit message workflow.
// A root that is itself a repository is used directly; otherwise its immediate
// non-hidden child directories are probed.
package discovery
