// Package services holds shared infrastructure for components that invoke
// external tools: sentinel errors for failure classification and the Wrap
// helper that prefixes failures with stage context.
package services
