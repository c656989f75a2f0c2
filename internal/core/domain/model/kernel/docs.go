// Package kernel holds the value objects shared by every aggregate of the
// ledger: package identifiers, caller identities, event identifiers and the
// clock the ledger stamps history with.
package kernel
