package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/gotodo/webapp/types"
)

// TodoRepository handles persistence for to-do items.
type TodoRepository struct {
	db *sql.DB
}

func NewTodoRepository(db *sql.DB) *TodoRepository {
	return &TodoRepository{db: db}
}

// List returns every item across all users, ordered by id.
func (r *TodoRepository) List(ctx context.Context) ([]types.TodoItem, error) {
	const query = `
		SELECT id, name, due_date, user_id, created_at
		FROM lists
		ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]types.TodoItem, 0)
	for rows.Next() {
		var item types.TodoItem
		var dueDate sql.NullString
		if err := rows.Scan(
			&item.ID,
			&item.Name,
			&dueDate,
			&item.OwnerID,
			&item.CreatedAt,
		); err != nil {
			return nil, err
		}
		item.DueDate = dueDate.String
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

func (r *TodoRepository) Create(ctx context.Context, item types.TodoItem) (types.TodoItem, error) {
	item.CreatedAt = time.Now()

	dueDate := sql.NullString{String: item.DueDate, Valid: item.DueDate != ""}

	const query = `
		INSERT INTO lists (name, due_date, user_id, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id`
	if err := r.db.QueryRowContext(
		ctx,
		query,
		item.Name,
		dueDate,
		item.OwnerID,
		item.CreatedAt,
	).Scan(&item.ID); err != nil {
		return types.TodoItem{}, err
	}
	return item, nil
}

// Delete removes the item with the given id if it is owned by ownerID.
func (r *TodoRepository) Delete(ctx context.Context, id, ownerID int) error {
	const query = `DELETE FROM lists WHERE id = $1 AND user_id = $2`
	result, err := r.db.ExecContext(ctx, query, id, ownerID)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
