// Package version carries the application version, overridden at build time with
// -ldflags "-X github.com/ndewijer/Author-Ledger-Backend/internal/version.Version=...".
package version

var Version = "dev"
