// Package paths provides centralized path handling for deps: the user's home
// directory, the global configuration location, absolute path cleaning and
// the expansion of environment references inside configured key paths.
package paths
