// Package submit pushes stacked branches and keeps their pull requests in
// line with the local stack: one PR per branch, based on the branch's parent,
// with a generated section listing every branch of the stack.
package submit
