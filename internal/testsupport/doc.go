// Package testsupport provides shared helpers for tests: temp-dir backed
// configurations and fixture file creation.
package testsupport
