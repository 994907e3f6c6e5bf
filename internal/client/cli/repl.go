package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printFn is a test seam for the prompt.
var printFn = fmt.Print

// execIface is the command surface the REPL dispatches to. App implements it;
// tests use a stub.
type execIface interface {
	Load(ctx context.Context) error
	List(ctx context.Context) error
	Toggle(ctx context.Context, args []string) error
	ShowSelected(ctx context.Context) error
	Upload(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Status(ctx context.Context) error
	History(ctx context.Context) error
	Help(ctx context.Context) error
}

// runREPL reads commands from reader until EOF, exit or quit, or until ctx
// is done. Command errors are reported by the handlers themselves. Handlers
// that prompt for more input share reader, so no input is buffered twice.
//
//	load            list recent media from the library
//	list | ls       show the last listing with selection marks
//	toggle <n|id>   select or deselect items by number or id
//	selected        show the selection
//	upload          upload the selection
//	login / logout  store or remove the bearer token
//	status          show session state
//	history         show recent uploads
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		printFn(fmt.Sprintf("photosync %s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			_ = a.Help(ctx)
		case "load":
			_ = a.Load(ctx)
		case "list", "ls":
			_ = a.List(ctx)
		case "toggle", "t":
			_ = a.Toggle(ctx, args)
		case "selected":
			_ = a.ShowSelected(ctx)
		case "upload":
			_ = a.Upload(ctx)
		case "login":
			_ = a.Login(ctx)
		case "logout":
			_ = a.Logout(ctx)
		case "status":
			_ = a.Status(ctx)
		case "history":
			_ = a.History(ctx)
		case "exit", "quit":
			printFn("Bye!\n")
			return
		default:
			printFn(fmt.Sprintf("Unknown command: %s\n", cmd))
		}
	}
}
