// Package filesystem provides the filesystem used by deps.
//
// All vendor directory operations go through the FS interface, which is
// backed by an afero.Fs: the OS filesystem in production and a memory
// filesystem in tests that do not need real symlinks. Directory links for
// local dependencies are created through the Linker capability.
package filesystem
