// Package services implements the core pipeline logic: row validation,
// directory synthesis, page enumeration and the build orchestrator
// that ties them to the driven ports.
package services
