package cli

import (
	"context"
	"fmt"

	"github.com/amekhanov/taskvault/internal/service"
	"github.com/amekhanov/taskvault/models"
)

// clearMarker is what the user types in an edit prompt to erase an
// optional field, as opposed to a blank answer which keeps the value.
const clearMarker = "-"

func (a *App) taskAdd(ctx context.Context) error {
	title, err := promptLine(a.in, a.out, "Title")
	if err != nil {
		return err
	}

	description, err := promptLine(a.in, a.out, "Description (optional)")
	if err != nil {
		return err
	}

	priorityInput, err := promptLine(a.in, a.out, "Priority LOW/MEDIUM/HIGH (default MEDIUM)")
	if err != nil {
		return err
	}
	priority := models.PriorityMedium
	if priorityInput != "" {
		priority, err = models.ParsePriority(priorityInput)
		if err != nil {
			return err
		}
	}

	dueDate, err := promptLine(a.in, a.out, "Due date YYYY-MM-DD (optional)")
	if err != nil {
		return err
	}

	category, err := promptLine(a.in, a.out, "Category (optional)")
	if err != nil {
		return err
	}

	view, err := a.services.Tasks.CreateTask(ctx, service.CreateTaskInput{
		Title:       title,
		Description: description,
		Priority:    priority,
		DueDate:     dueDate,
		Category:    category,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Task %d created.\n", view.TaskID)
	return nil
}

func (a *App) taskList(ctx context.Context) error {
	views, err := a.services.Tasks.ListTasks(ctx)
	if err != nil {
		return err
	}

	if len(views) == 0 {
		fmt.Fprintln(a.out, "No tasks yet.")
		return nil
	}

	printTaskTable(a.out, views)
	return nil
}

func (a *App) taskShow(ctx context.Context, taskID int64) error {
	view, err := a.services.Tasks.GetTask(ctx, taskID)
	if err != nil {
		return err
	}

	printTaskDetail(a.out, view)

	notes, err := a.services.Notes.ListNotes(ctx, taskID)
	if err != nil {
		return err
	}
	if len(notes) > 0 {
		fmt.Fprintln(a.out, "Notes:")
		printNoteList(a.out, notes)
	}
	return nil
}

// taskEdit walks the user through every editable field. A blank answer
// keeps the current value; the clear marker erases an optional field.
func (a *App) taskEdit(ctx context.Context, taskID int64) error {
	current, err := a.services.Tasks.GetTask(ctx, taskID)
	if err != nil {
		return err
	}

	var input service.EditTaskInput

	title, err := promptLine(a.in, a.out, fmt.Sprintf("Title [%s]", current.Title))
	if err != nil {
		return err
	}
	if title != "" {
		input.Title = &title
	}

	description, err := promptLine(a.in, a.out, fmt.Sprintf("Description [%s]", current.Description))
	if err != nil {
		return err
	}
	if description != "" {
		if description == clearMarker {
			description = ""
		}
		input.Description = &description
	}

	statusInput, err := promptLine(a.in, a.out, fmt.Sprintf("Status PENDING/COMPLETED [%s]", current.Status))
	if err != nil {
		return err
	}
	if statusInput != "" {
		status, err := models.ParseTaskStatus(statusInput)
		if err != nil {
			return err
		}
		input.Status = &status
	}

	priorityInput, err := promptLine(a.in, a.out, fmt.Sprintf("Priority LOW/MEDIUM/HIGH [%s]", current.Priority))
	if err != nil {
		return err
	}
	if priorityInput != "" {
		priority, err := models.ParsePriority(priorityInput)
		if err != nil {
			return err
		}
		input.Priority = &priority
	}

	dueDate, err := promptLine(a.in, a.out, fmt.Sprintf("Due date [%s]", current.DueDate))
	if err != nil {
		return err
	}
	if dueDate != "" {
		if dueDate == clearMarker {
			dueDate = ""
		}
		input.DueDate = &dueDate
	}

	category, err := promptLine(a.in, a.out, fmt.Sprintf("Category [%s]", current.Category))
	if err != nil {
		return err
	}
	if category != "" {
		if category == clearMarker {
			category = ""
		}
		input.Category = &category
	}

	view, err := a.services.Tasks.EditTask(ctx, taskID, input)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Task %d updated.\n", view.TaskID)
	return nil
}

func (a *App) taskDone(ctx context.Context, taskID int64) error {
	view, err := a.services.Tasks.MarkDone(ctx, taskID)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Task %d marked %s.\n", view.TaskID, view.Status)
	return nil
}

func (a *App) taskDelete(ctx context.Context, taskID int64) error {
	confirm, err := promptLine(a.in, a.out, fmt.Sprintf("Delete task %d and its notes? y/N", taskID))
	if err != nil {
		return err
	}
	if confirm != "y" && confirm != "Y" {
		fmt.Fprintln(a.out, "Cancelled.")
		return nil
	}

	if err := a.services.Tasks.DeleteTask(ctx, taskID); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Task %d deleted.\n", taskID)
	return nil
}
