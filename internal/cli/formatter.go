package cli

import (
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/amekhanov/taskvault/internal/service"
	"github.com/amekhanov/taskvault/internal/session"
	"github.com/amekhanov/taskvault/models"
)

const timeLayout = "2006-01-02 15:04"

// printTaskTable renders tasks as an aligned table. Decrypted titles are
// shown as-is; this output goes to the user's own terminal only.
func printTaskTable(w io.Writer, views []models.TaskView) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSTATUS\tPRIORITY\tDUE\tCATEGORY\tTITLE")
	for _, v := range views {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n",
			v.TaskID, v.Status, v.Priority, orDash(v.DueDate), orDash(v.Category), v.Title)
	}
	tw.Flush()
}

func printTaskDetail(w io.Writer, v models.TaskView) {
	fmt.Fprintf(w, "Task %d: %s\n", v.TaskID, v.Title)
	if v.Description != "" {
		fmt.Fprintf(w, "  Description: %s\n", v.Description)
	}
	fmt.Fprintf(w, "  Status: %s  Priority: %s\n", v.Status, v.Priority)
	if v.DueDate != "" {
		fmt.Fprintf(w, "  Due: %s\n", v.DueDate)
	}
	if v.Category != "" {
		fmt.Fprintf(w, "  Category: %s\n", v.Category)
	}
	fmt.Fprintf(w, "  Created: %s  Updated: %s\n",
		v.CreatedAt.Format(timeLayout), v.UpdatedAt.Format(timeLayout))
}

func printNoteList(w io.Writer, views []models.NoteView) {
	for _, v := range views {
		fmt.Fprintf(w, "  [%d] %s  (%s)\n", v.NoteID, v.Content, v.UpdatedAt.Format(timeLayout))
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// userMessage translates well-known service errors into short messages
// suitable for terminal output. Anything unexpected is shown verbatim;
// the structured log carries the full chain.
func userMessage(err error) string {
	switch {
	case errors.Is(err, session.ErrNotAuthenticated):
		return "not logged in, use 'login' first"
	case errors.Is(err, service.ErrInvalidCredentials):
		return "invalid username or password"
	case errors.Is(err, service.ErrUsernameAlreadyTaken):
		return "that username is already taken"
	case errors.Is(err, service.ErrInvalidDataProvided):
		return "invalid input: " + err.Error()
	case errors.Is(err, service.ErrTaskNotFound):
		return "task not found"
	case errors.Is(err, service.ErrNoteNotFound):
		return "note not found"
	case errors.Is(err, service.ErrAccessDenied):
		return "access denied"
	default:
		return err.Error()
	}
}
