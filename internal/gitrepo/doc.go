// Package gitrepo wraps the git operations the checkpoint pipeline performs
// against the project repository.
package gitrepo
