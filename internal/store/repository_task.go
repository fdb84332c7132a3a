package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/amekhanov/taskvault/internal/logger"
	"github.com/amekhanov/taskvault/models"
)

// taskRepository is the SQL-backed implementation of [TaskRepository].
// Title and description arrive here already encrypted; this layer treats
// them as opaque blobs.
type taskRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewTaskRepository constructs a [TaskRepository] backed by the provided
// database connection and logger.
func NewTaskRepository(db *DB, logger *logger.Logger) TaskRepository {
	logger.Debug().Msg("creating task repository")
	return &taskRepository{
		db:     db,
		logger: logger,
	}
}

const taskColumns = "id, owner_id, title_blob, description_blob, status, priority, due_date, category, created_at, updated_at"

// CreateTask persists a new task and returns it with the server-assigned
// TaskID.
func (r *taskRepository) CreateTask(ctx context.Context, task models.Task) (models.Task, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.builder.
		Insert(task.TableName()).
		Columns("owner_id", "title_blob", "description_blob", "status", "priority", "due_date", "category", "created_at", "updated_at").
		Values(
			task.OwnerID,
			[]byte(task.TitleBlob),
			nullableBlob(task.DescriptionBlob),
			string(task.Status),
			string(task.Priority),
			nullableText(task.DueDate),
			nullableText(task.Category),
			task.CreatedAt,
			task.UpdatedAt,
		).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*taskRepository.CreateTask").Msg("error building insert query")
		return models.Task{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	row := r.db.QueryRowContext(ctx, query, args...)
	if err := row.Scan(&task.TaskID); err != nil {
		log.Err(err).Str("func", "*taskRepository.CreateTask").Msg("error inserting task")
		return models.Task{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return task, nil
}

// FindTaskByID retrieves a single task or [ErrTaskNotFound].
func (r *taskRepository) FindTaskByID(ctx context.Context, taskID int64) (models.Task, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.builder.
		Select(taskColumns).
		From(models.Task{}.TableName()).
		Where(sq.Eq{"id": taskID}).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*taskRepository.FindTaskByID").Msg("error building select query")
		return models.Task{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	task, err := scanTask(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Task{}, ErrTaskNotFound
		}

		log.Err(err).Str("func", "*taskRepository.FindTaskByID").Msg("error scanning task row")
		return models.Task{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return task, nil
}

// FindTasksByOwner retrieves all of the owner's tasks, newest first.
func (r *taskRepository) FindTasksByOwner(ctx context.Context, ownerID int64) ([]models.Task, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.builder.
		Select(taskColumns).
		From(models.Task{}.TableName()).
		Where(sq.Eq{"owner_id": ownerID}).
		OrderBy("created_at DESC", "id DESC").
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*taskRepository.FindTasksByOwner").Msg("error building select query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*taskRepository.FindTasksByOwner").Msg("error executing select query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			log.Err(err).Str("func", "*taskRepository.FindTasksByOwner").Msg("error scanning task rows")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		tasks = append(tasks, task)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return tasks, nil
}

// UpdateTask rewrites all mutable columns of the task row.
// Returns [ErrTaskNotFound] when no row matched the task id.
func (r *taskRepository) UpdateTask(ctx context.Context, task models.Task) (models.Task, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.builder.
		Update(task.TableName()).
		Set("title_blob", []byte(task.TitleBlob)).
		Set("description_blob", nullableBlob(task.DescriptionBlob)).
		Set("status", string(task.Status)).
		Set("priority", string(task.Priority)).
		Set("due_date", nullableText(task.DueDate)).
		Set("category", nullableText(task.Category)).
		Set("updated_at", task.UpdatedAt).
		Where(sq.Eq{"id": task.TaskID}).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*taskRepository.UpdateTask").Msg("error building update query")
		return models.Task{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*taskRepository.UpdateTask").Msg("error executing update")
		return models.Task{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return models.Task{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if affected == 0 {
		return models.Task{}, ErrTaskNotFound
	}

	return task, nil
}

// DeleteTask removes the task row; attached notes are removed by the
// ON DELETE CASCADE constraint. Returns [ErrTaskNotFound] when no row
// matched.
func (r *taskRepository) DeleteTask(ctx context.Context, taskID int64) error {
	log := logger.FromContext(ctx)

	query, args, err := r.db.builder.
		Delete(models.Task{}.TableName()).
		Where(sq.Eq{"id": taskID}).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*taskRepository.DeleteTask").Msg("error building delete query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*taskRepository.DeleteTask").Msg("error executing delete")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if affected == 0 {
		return ErrTaskNotFound
	}

	return nil
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (models.Task, error) {
	var task models.Task
	var description []byte
	var dueDate, category sql.NullString
	var status, priority string

	err := row.Scan(
		&task.TaskID,
		&task.OwnerID,
		(*[]byte)(&task.TitleBlob),
		&description,
		&status,
		&priority,
		&dueDate,
		&category,
		&task.CreatedAt,
		&task.UpdatedAt,
	)
	if err != nil {
		return models.Task{}, err
	}

	task.DescriptionBlob = models.EncryptedField(description)
	task.DueDate = dueDate.String
	task.Category = category.String

	// Stored status/priority strings form a closed set; anything else means
	// the row was written outside the application.
	task.Status, err = models.ParseTaskStatus(status)
	if err != nil {
		return models.Task{}, err
	}
	task.Priority, err = models.ParsePriority(priority)
	if err != nil {
		return models.Task{}, err
	}

	return task, nil
}

// nullableBlob maps an absent encrypted field to SQL NULL.
func nullableBlob(f models.EncryptedField) any {
	if f.IsEmpty() {
		return nil
	}
	return []byte(f)
}

// nullableText maps an empty string to SQL NULL.
func nullableText(s string) any {
	if s == "" {
		return nil
	}
	return s
}
