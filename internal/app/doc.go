// Package app contains the core application logic. It defines the main App
// struct, its configuration, and the primary execution lifecycle: loading
// realm description manifests, registering native modules, checking that
// the two agree, and building realms on demand. It is decoupled from any
// specific entrypoint like a CLI or the REPL.
package app
