// Package cli turns the addrspace command line into an app.Config. It owns
// flag parsing, usage output, input validation and the exit codes reported
// for bad invocations.
package cli
