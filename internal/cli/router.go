// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Andrei Mekhanov

package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/amekhanov/taskvault/internal/logger"
	"github.com/amekhanov/taskvault/internal/service"
)

// App is the interactive shell over the service layer. It owns only I/O
// plumbing; all state (session, cipher) lives in the services.
type App struct {
	services *service.Services
	in       *bufio.Reader
	out      io.Writer
	logger   *logger.Logger
}

// NewApp constructs the shell around the given service set.
func NewApp(services *service.Services, in io.Reader, out io.Writer, log *logger.Logger) *App {
	return &App{
		services: services,
		in:       bufio.NewReader(in),
		out:      out,
		logger:   log,
	}
}

// Run executes the read-eval-print loop until EOF or an explicit exit.
// Errors from individual commands are reported to the user and logged;
// they never terminate the loop.
//
// Commands are read through the same buffered reader the prompts use, so
// a scripted (piped) session interleaves commands and prompt answers
// correctly.
func (a *App) Run(ctx context.Context) error {
	fmt.Fprintln(a.out, "taskvault interactive shell. Type 'help' for commands.")

	for {
		fmt.Fprintf(a.out, "taskvault%s> ", a.promptSuffix())

		line, err := a.in.ReadString('\n')
		atEOF := errors.Is(err, io.EOF)
		if err != nil && !atEOF {
			return fmt.Errorf("reading command: %w", err)
		}

		tokens := strings.Fields(line)
		if len(tokens) == 0 {
			if atEOF {
				return nil
			}
			continue
		}

		if tokens[0] == "exit" || tokens[0] == "quit" {
			fmt.Fprintln(a.out, "Bye!")
			return nil
		}

		a.dispatch(a.commandContext(ctx), tokens)

		if atEOF {
			return nil
		}
	}
}

// commandContext attaches a per-command trace id to the context so that
// every log line produced while handling one command can be correlated.
func (a *App) commandContext(ctx context.Context) context.Context {
	l := a.logger.GetChildLogger()
	l.UpdateContext(func(c zerolog.Context) zerolog.Context {
		return c.Str("trace_id", uuid.NewString())
	})
	return l.WithContext(ctx)
}

func (a *App) dispatch(ctx context.Context, tokens []string) {
	var err error

	switch tokens[0] {
	case "help":
		a.printHelp()
	case "register":
		err = a.register(ctx)
	case "login":
		err = a.login(ctx)
	case "logout":
		err = a.logout(ctx)
	case "whoami":
		err = a.whoami(ctx)
	case "task":
		err = a.dispatchTask(ctx, tokens[1:])
	case "note":
		err = a.dispatchNote(ctx, tokens[1:])
	default:
		fmt.Fprintf(a.out, "Unknown command: %s\n", tokens[0])
	}

	if err != nil {
		logger.FromContext(ctx).Err(err).Str("command", tokens[0]).Msg("command failed")
		fmt.Fprintf(a.out, "Error: %s\n", userMessage(err))
	}
}

func (a *App) dispatchTask(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: task <add|list|show|edit|done|delete> [id]")
		return nil
	}

	switch args[0] {
	case "add":
		return a.taskAdd(ctx)
	case "list":
		return a.taskList(ctx)
	case "show":
		id, err := parseID(args[1:])
		if err != nil {
			return err
		}
		return a.taskShow(ctx, id)
	case "edit":
		id, err := parseID(args[1:])
		if err != nil {
			return err
		}
		return a.taskEdit(ctx, id)
	case "done":
		id, err := parseID(args[1:])
		if err != nil {
			return err
		}
		return a.taskDone(ctx, id)
	case "delete":
		id, err := parseID(args[1:])
		if err != nil {
			return err
		}
		return a.taskDelete(ctx, id)
	default:
		fmt.Fprintf(a.out, "Unknown task command: %s\n", args[0])
		return nil
	}
}

func (a *App) dispatchNote(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: note <add|list|edit|delete> <id>")
		return nil
	}

	id, err := parseID(args[1:])
	if err != nil {
		return err
	}

	switch args[0] {
	case "add":
		return a.noteAdd(ctx, id)
	case "list":
		return a.noteList(ctx, id)
	case "edit":
		return a.noteEdit(ctx, id)
	case "delete":
		return a.noteDelete(ctx, id)
	default:
		fmt.Fprintf(a.out, "Unknown note command: %s\n", args[0])
		return nil
	}
}

// promptSuffix shows the logged-in username in the prompt, or nothing for
// an anonymous session.
func (a *App) promptSuffix() string {
	user, err := a.services.Auth.CurrentUser()
	if err != nil {
		return ""
	}
	return " [" + user.Username + "]"
}

func (a *App) printHelp() {
	fmt.Fprint(a.out, `Commands:
  register                create an account
  login                   authenticate and unlock your data
  logout                  lock the session
  whoami                  show the authenticated user

  task add                create a task (interactive prompts)
  task list               list your tasks
  task show <id>          show one task with its notes
  task edit <id>          edit task fields (blank keeps, '-' clears)
  task done <id>          mark a task completed
  task delete <id>        delete a task and its notes

  note add <task-id>      attach a note to a task
  note list <task-id>     list the notes of a task
  note edit <note-id>     replace a note's content
  note delete <note-id>   delete a note

  help                    this text
  exit                    leave the shell
`)
}

// parseID extracts the required numeric id argument of a subcommand.
func parseID(args []string) (int64, error) {
	if len(args) == 0 {
		return 0, fmt.Errorf("missing id argument")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", args[0])
	}
	return id, nil
}
