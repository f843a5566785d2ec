// Package testutil provides utilities for testing keeper components.
//
// Key components:
//   - TestEnvironment: test orchestrator with isolation and cleanup
//   - EventRecorder: a Notifier that keeps every delivered change event
//   - FailingFS: a filesystem wrapper that refuses chosen writes
//   - NewLogger: a zerolog logger writing into a buffer
//
// Usage guidelines:
//   - Most tests should use EnvMemoryOnly for speed and isolation
//   - Use EnvIsolated when the code under test reads the process
//     environment, the XDG directories or the real disk
//   - All test data should be defined inline, not in external files
package testutil
