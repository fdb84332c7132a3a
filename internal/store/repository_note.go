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

// noteRepository is the SQL-backed implementation of [NoteRepository].
// Note content arrives here already encrypted.
type noteRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewNoteRepository constructs a [NoteRepository] backed by the provided
// database connection and logger.
func NewNoteRepository(db *DB, logger *logger.Logger) NoteRepository {
	logger.Debug().Msg("creating note repository")
	return &noteRepository{
		db:     db,
		logger: logger,
	}
}

const noteColumns = "id, task_id, content_blob, created_at, updated_at"

// CreateNote persists a new note and returns it with the server-assigned
// NoteID.
func (r *noteRepository) CreateNote(ctx context.Context, note models.TaskNote) (models.TaskNote, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.builder.
		Insert(note.TableName()).
		Columns("task_id", "content_blob", "created_at", "updated_at").
		Values(note.TaskID, []byte(note.ContentBlob), note.CreatedAt, note.UpdatedAt).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*noteRepository.CreateNote").Msg("error building insert query")
		return models.TaskNote{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	row := r.db.QueryRowContext(ctx, query, args...)
	if err := row.Scan(&note.NoteID); err != nil {
		log.Err(err).Str("func", "*noteRepository.CreateNote").Msg("error inserting note")
		return models.TaskNote{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return note, nil
}

// FindNoteByID retrieves a single note or [ErrNoteNotFound].
func (r *noteRepository) FindNoteByID(ctx context.Context, noteID int64) (models.TaskNote, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.builder.
		Select(noteColumns).
		From(models.TaskNote{}.TableName()).
		Where(sq.Eq{"id": noteID}).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*noteRepository.FindNoteByID").Msg("error building select query")
		return models.TaskNote{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var note models.TaskNote
	row := r.db.QueryRowContext(ctx, query, args...)
	if err := row.Scan(&note.NoteID, &note.TaskID, (*[]byte)(&note.ContentBlob), &note.CreatedAt, &note.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.TaskNote{}, ErrNoteNotFound
		}

		log.Err(err).Str("func", "*noteRepository.FindNoteByID").Msg("error scanning note row")
		return models.TaskNote{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return note, nil
}

// FindNotesByTask retrieves all notes attached to the task, oldest first.
func (r *noteRepository) FindNotesByTask(ctx context.Context, taskID int64) ([]models.TaskNote, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.builder.
		Select(noteColumns).
		From(models.TaskNote{}.TableName()).
		Where(sq.Eq{"task_id": taskID}).
		OrderBy("created_at ASC", "id ASC").
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*noteRepository.FindNotesByTask").Msg("error building select query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*noteRepository.FindNotesByTask").Msg("error executing select query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var notes []models.TaskNote
	for rows.Next() {
		var note models.TaskNote
		if err := rows.Scan(&note.NoteID, &note.TaskID, (*[]byte)(&note.ContentBlob), &note.CreatedAt, &note.UpdatedAt); err != nil {
			log.Err(err).Str("func", "*noteRepository.FindNotesByTask").Msg("error scanning note rows")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		notes = append(notes, note)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return notes, nil
}

// UpdateNote rewrites the note's content blob and update timestamp.
// Returns [ErrNoteNotFound] when no row matched the note id.
func (r *noteRepository) UpdateNote(ctx context.Context, note models.TaskNote) (models.TaskNote, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.builder.
		Update(note.TableName()).
		Set("content_blob", []byte(note.ContentBlob)).
		Set("updated_at", note.UpdatedAt).
		Where(sq.Eq{"id": note.NoteID}).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*noteRepository.UpdateNote").Msg("error building update query")
		return models.TaskNote{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*noteRepository.UpdateNote").Msg("error executing update")
		return models.TaskNote{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return models.TaskNote{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if affected == 0 {
		return models.TaskNote{}, ErrNoteNotFound
	}

	return note, nil
}

// DeleteNote removes the note row. Returns [ErrNoteNotFound] when no row
// matched.
func (r *noteRepository) DeleteNote(ctx context.Context, noteID int64) error {
	log := logger.FromContext(ctx)

	query, args, err := r.db.builder.
		Delete(models.TaskNote{}.TableName()).
		Where(sq.Eq{"id": noteID}).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*noteRepository.DeleteNote").Msg("error building delete query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*noteRepository.DeleteNote").Msg("error executing delete")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if affected == 0 {
		return ErrNoteNotFound
	}

	return nil
}
