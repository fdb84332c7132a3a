// Package cli implements the interactive command loop of the taskvault
// client. The session and the derived encryption key live only in process
// memory, so all commands run inside a single resident REPL: authenticate
// once, then work with tasks and notes until logout or exit.
package cli
