// Package app contains the core application logic. It defines the main App
// struct, its configuration, and the lifecycle of one address space: load
// the nodesets, serve health and metrics, dispose on shutdown. It is
// decoupled from any specific entrypoint like a CLI.
package app
