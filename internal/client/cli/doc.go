// Package cli provides the interactive gophauth command-line client.
//
// App.Run checks that the server answers, then starts a REPL with the
// commands register, login, whoami, ping, logout and exit. The token
// obtained by register or login lives only in memory.
package cli
