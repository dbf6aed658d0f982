// Package ir provides the record and rule types shared by every forgepatch
// package.
//
// This package contains type definitions and small pure helpers only. All
// other internal packages import ir; ir imports nothing internal.
//
// Key design constraints:
//   - Rule payloads are the sealed Value type, parsed once at load time
//   - StableRef is comparable and immutable; NullRef is the only sentinel
//   - Category is a closed enumeration, switch statements over it are exhaustive
//   - Records are plain structs; Clone returns a deep copy for override writes
package ir
