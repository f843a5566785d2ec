// Package paths resolves where keeper keeps its files. Store files live
// under an application-data root in the XDG data home unless overridden by
// flag or environment.
package paths
