// Package app assembles a runnable host application around the core facade:
// it loads a composition manifest, configures an isolated logger and event
// bus, registers the compiled-in module and extension bodies the manifest
// selects, and drives the init / start / stop lifecycle until shutdown.
package app
