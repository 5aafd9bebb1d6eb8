package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/sharetab/sharetab/internal/identity"
	"github.com/sharetab/sharetab/internal/models"
)

// GetGroup retrieves a group and its ordered member list, or nil if absent.
func (t *tx) GetGroup(id uint64) (*models.Group, error) {
	group := &models.Group{}
	err := t.tx.QueryRowContext(t.ctx,
		"SELECT id, name, creator, created_at FROM groups WHERE id = ?", id,
	).Scan(&group.ID, &group.Name, &group.Creator, &group.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get group: %w", err)
	}

	rows, err := t.tx.QueryContext(t.ctx,
		"SELECT party FROM group_members WHERE group_id = ? ORDER BY position", id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get group members: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var member identity.PartyID
		if err := rows.Scan(&member); err != nil {
			return nil, fmt.Errorf("failed to scan group member: %w", err)
		}
		group.Members = append(group.Members, member)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate group members: %w", err)
	}

	return group, nil
}

// PutGroup inserts or replaces the group row and rewrites its member list.
func (t *tx) PutGroup(g *models.Group) error {
	// An upsert, not INSERT OR REPLACE: REPLACE deletes the old row first,
	// which would cascade-delete the group's debts.
	_, err := t.tx.ExecContext(t.ctx,
		`INSERT INTO groups (id, name, creator, created_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET name = excluded.name, creator = excluded.creator, created_at = excluded.created_at`,
		g.ID, g.Name, g.Creator, g.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert group: %w", err)
	}

	if _, err := t.tx.ExecContext(t.ctx,
		"DELETE FROM group_members WHERE group_id = ?", g.ID,
	); err != nil {
		return fmt.Errorf("failed to clear group members: %w", err)
	}

	for i, member := range g.Members {
		_, err := t.tx.ExecContext(t.ctx,
			"INSERT INTO group_members (group_id, position, party) VALUES (?, ?, ?)",
			g.ID, i, member,
		)
		if err != nil {
			return fmt.Errorf("failed to insert group member: %w", err)
		}
	}

	return nil
}

// DeleteGroup removes the group; members and debts go with it via cascade.
func (t *tx) DeleteGroup(id uint64) error {
	if _, err := t.tx.ExecContext(t.ctx, "DELETE FROM groups WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete group: %w", err)
	}
	return nil
}

// GroupIDsForParty returns the IDs of every group p belongs to. This is a
// computed query over group_members rather than a separately maintained
// index, so it can never drift from the membership rows.
func (t *tx) GroupIDsForParty(p identity.PartyID) ([]uint64, error) {
	rows, err := t.tx.QueryContext(t.ctx,
		"SELECT group_id FROM group_members WHERE party = ?", p,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get groups for party: %w", err)
	}
	defer rows.Close()

	var ids []uint64
	for rows.Next() {
		var id uint64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan group id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate group ids: %w", err)
	}
	return ids, nil
}
