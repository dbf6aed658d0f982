// Package recordstore is the record store the patchers read from and write
// overrides to.
//
// Memory holds the winning records of every loaded data layer plus the
// write path of one run:
//   - Overrides: writable copies of winning records, created on first
//     request and cached per identity, so a second request returns the
//     same copy
//   - Created records: new items and recipes minted in the patch container
//
// SQLite persists records between invocations. A run loads the winning
// records into a Memory, patches it, and commits the overrides and created
// records back together with a run log row.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
package recordstore
