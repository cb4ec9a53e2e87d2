// Package testsupport provides shared helpers for constructing test
// configurations, seeding media and metadata fixtures, and stubbing the
// external binaries the pipeline invokes.
package testsupport
