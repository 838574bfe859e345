// Package testsupport provides shared helpers for tests: temp-dir-backed
// configurations and generated strip payloads.
package testsupport
