// Package runtime provides the execution context for zyra commands.
//
// It encapsulates shared dependencies needed by actions: the stack store,
// the git executor, the GitHub client, the prompter and the logger.
package runtime
