// Package testutil provides helpers for testing deps components.
//
// Key components:
//   - file helpers: create files, directories and links under t.TempDir()
//     and assert on what a sync left behind
//   - GitFixture: a throwaway git repository, built with go-git, that tests
//     clone from and mutate between syncs
//
// All fixtures live under t.TempDir() and are removed with the test.
package testutil
