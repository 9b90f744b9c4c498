// Package kernel contains the shared value objects of the tracking domain:
// UUID identifiers and geographic points. Both are immutable, created only
// through their constructors, and validate themselves against zero-value
// construction.
package kernel
