package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	noteActivity()
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Scan(ctx context.Context, path string) error
	History(ctx context.Context) error
	Categories() error
	Logout(ctx context.Context) error
}

// runREPL starts a simple read–eval–print loop for the AgroScan CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Every line read counts as user
// activity for the inactivity watchdog. Unknown commands are reported back
// to the user. The loop exits on scanner EOF or when the user types "exit"
// or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Not logged in:
//	  - help           — show available commands
//	  - register       — create an account
//	  - login          — authenticate
//	  - categories     — list recognizable disease categories
//	  - exit | quit    — leave the program
//
//	Logged in:
//	  - help           — show available commands
//	  - scan <path>    — upload an image for classification
//	  - history        — show the scan history
//	  - categories     — list recognizable disease categories
//	  - logout         — log out
//	  - exit | quit    — leave the program
//
// Any errors returned by command handlers are ignored here; handlers surface
// their own alerts. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("agroscan %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		a.noteActivity()

		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: scan <path>, history, categories, logout, exit")
			} else {
				printlnFn("Available commands: register, login, categories, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "scan":
			if len(args) == 0 {
				printlnFn("Usage: scan <path>")
				continue
			}
			_ = a.Scan(ctx, args[0])

		case "history":
			_ = a.History(ctx)

		case "categories":
			_ = a.Categories()

		case "logout":
			_ = a.Logout(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
