// Package testutil provides helpers for tests that build source and
// destination trees in memory.
//
// Usage guidelines:
//   - use NewTestFS for trees; only filesystem tests touch the real disk
//   - define test data inline with WriteTree
//   - compare destination trees with Snapshot before and after a run
package testutil
