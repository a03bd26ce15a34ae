// Package git is the version-control executor.
//
// Reads such as branch listing and revision resolution go through go-git.
// Anything that touches the work tree or a remote (switch, rebase, push,
// fetch) shells out to the git binary through CommandRunner.
//
// This package should be the only place where git commands are executed.
package git
