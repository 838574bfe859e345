// Package preflight verifies that a batch run can proceed: the directories
// involved must exist and be readable and writable before any file is
// touched.
package preflight
