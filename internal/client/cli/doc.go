// Package cli implements the interactive patientauth client.
//
// The REPL accepts:
//
//	register   create an account (prompts for credentials and profile)
//	login      start a session
//	whoami     show the identity behind the current session
//	logout     drop the session
//	help       list commands
//	exit|quit  leave the program
//
// Passwords are read without echo. A background watcher polls the server's
// gRPC health endpoint and shows online/offline in the prompt.
package cli
