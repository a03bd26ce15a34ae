// Package engine manages the state and relationships of stacked branches.
//
// It is the core of zyra, responsible for:
//   - The Stack / StackBranch data model and its tree operations
//   - Cross-stack lookups and name uniqueness (Store)
//   - Persisting the whole store as a single JSON document in the git directory
//   - Normalizing legacy encodings of that document on load
//
// Branches reference their parent by name rather than by pointer. The branch
// list of a stack is a node table; tree traversal is repeated lookup by key,
// which keeps the structure serializable and tolerant of hand-edited state.
package engine
