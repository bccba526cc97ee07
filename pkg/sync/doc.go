// Package sync converges a vendor directory with a manifest.
//
// For every dependency, in key order, the Planner computes the destination,
// then either links a local path or drives a vcs.Backend to clone or
// converge a remote checkout onto the dependency's ref selector. Entries of
// the vendor directory that no dependency claims can be pruned first, and a
// forced run starts from an empty vendor directory.
//
// Everything a run needs is carried by a Session value; the planner keeps no
// state between runs and any error aborts the run where it happened.
package sync
