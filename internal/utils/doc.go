// Package utils provides shared utility functions.
//
// These utilities are used across multiple packages and include:
//   - Terminal interactivity detection
//   - Branch name validation
package utils
