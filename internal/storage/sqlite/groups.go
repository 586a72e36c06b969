package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/allocash/internal/models"
)

// CreateGroup persists a new group and its members.
func (s *SQLiteStore) CreateGroup(ctx context.Context, group *models.Group) error {
	if group.ID == "" {
		group.ID = uuid.New().String()
	}
	if group.CreatedAt == 0 {
		group.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return storageErr("begin transaction", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO groups (id, user_id, name, created_at) VALUES (?, ?, ?, ?)",
		group.ID, group.UserID, group.Name, group.CreatedAt,
	)
	if err != nil {
		return storageErr("insert group", err)
	}

	if err := insertMembers(ctx, tx, group.ID, group.Members); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return storageErr("commit transaction", err)
	}
	return nil
}

// GetGroup retrieves one of the user's groups, including members.
func (s *SQLiteStore) GetGroup(ctx context.Context, userID, groupID string) (*models.Group, error) {
	group := &models.Group{}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, user_id, name, created_at FROM groups WHERE id = ? AND user_id = ?",
		groupID, userID,
	).Scan(&group.ID, &group.UserID, &group.Name, &group.CreatedAt)
	if isNoRows(err) {
		return nil, notFound("group", groupID)
	}
	if err != nil {
		return nil, storageErr("get group", err)
	}

	group.Members, err = s.loadMembers(ctx, group.ID)
	if err != nil {
		return nil, err
	}
	return group, nil
}

// ListGroups retrieves the user's groups ordered by name.
func (s *SQLiteStore) ListGroups(ctx context.Context, userID string) ([]*models.Group, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, user_id, name, created_at FROM groups WHERE user_id = ? ORDER BY name, created_at",
		userID,
	)
	if err != nil {
		return nil, storageErr("list groups", err)
	}

	var groups []*models.Group
	for rows.Next() {
		group := &models.Group{}
		if err := rows.Scan(&group.ID, &group.UserID, &group.Name, &group.CreatedAt); err != nil {
			rows.Close()
			return nil, storageErr("scan group", err)
		}
		groups = append(groups, group)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, storageErr("iterate groups", err)
	}

	for _, group := range groups {
		group.Members, err = s.loadMembers(ctx, group.ID)
		if err != nil {
			return nil, err
		}
	}
	return groups, nil
}

// UpdateGroup replaces the name and the full member list of a group.
func (s *SQLiteStore) UpdateGroup(ctx context.Context, group *models.Group) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return storageErr("begin transaction", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		"UPDATE groups SET name = ? WHERE id = ? AND user_id = ?",
		group.Name, group.ID, group.UserID,
	)
	if err != nil {
		return storageErr("update group", err)
	}
	if err := checkAffected(res, "group", group.ID); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM group_members WHERE group_id = ?", group.ID); err != nil {
		return storageErr("clear group members", err)
	}
	if err := insertMembers(ctx, tx, group.ID, group.Members); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return storageErr("commit transaction", err)
	}
	return nil
}

// DeleteGroup removes a group and unlinks its transactions.
func (s *SQLiteStore) DeleteGroup(ctx context.Context, userID, groupID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return storageErr("begin transaction", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		"UPDATE transactions SET group_id = NULL, updated_at = ? WHERE group_id = ? AND user_id = ?",
		time.Now().Unix(), groupID, userID,
	); err != nil {
		return storageErr("unlink group transactions", err)
	}

	res, err := tx.ExecContext(ctx, "DELETE FROM groups WHERE id = ? AND user_id = ?", groupID, userID)
	if err != nil {
		return storageErr("delete group", err)
	}
	if err := checkAffected(res, "group", groupID); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return storageErr("commit transaction", err)
	}
	return nil
}

func insertMembers(ctx context.Context, tx *sql.Tx, groupID string, members []string) error {
	for _, name := range members {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO group_members (group_id, name) VALUES (?, ?)",
			groupID, name,
		); err != nil {
			return storageErr("insert group member", err)
		}
	}
	return nil
}

func (s *SQLiteStore) loadMembers(ctx context.Context, groupID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT name FROM group_members WHERE group_id = ? ORDER BY name",
		groupID,
	)
	if err != nil {
		return nil, storageErr("get group members", err)
	}
	defer rows.Close()

	members := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, storageErr("scan group member", err)
		}
		members = append(members, name)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("iterate group members", err)
	}
	return members, nil
}
