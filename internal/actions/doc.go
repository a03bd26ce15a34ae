// Package actions implements the zyra commands on top of the stack store.
//
// Each action receives a runtime.Context carrying the store, the git
// executor, the prompter and the logger. Actions persist the store at the
// checkpoints their command defines and never keep state between calls.
//
// Stack-wide PR submission lives in the submit subpackage.
package actions
