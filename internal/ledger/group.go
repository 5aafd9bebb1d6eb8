package ledger

import (
	"context"
	"log/slog"
	"strings"

	"github.com/sharetab/sharetab/internal/identity"
	"github.com/sharetab/sharetab/internal/models"
	"github.com/sharetab/sharetab/internal/storage"
)

// CreateGroup creates a group owned by caller and returns it. The caller is
// always the first member, even when the supplied list spells the caller's
// identifier differently; duplicates collapse silently. At most
// maxGroupMembers identifiers may be supplied beyond the implicit caller.
func (l *Ledger) CreateGroup(ctx context.Context, caller identity.PartyID, name string, members []string) (*models.Group, error) {
	if strings.TrimSpace(name) == "" {
		return nil, &InvalidGroupNameError{Reason: "group name cannot be empty"}
	}
	if len(name) > maxGroupNameLength {
		return nil, &InvalidGroupNameError{Reason: "group name exceeds maximum length of 64"}
	}
	if len(members) > maxGroupMembers {
		return nil, ErrTooManyMembers
	}

	parsed, err := identity.ParseAll(members)
	if err != nil {
		return nil, err
	}
	validated := []identity.PartyID{caller}
	for _, p := range parsed {
		if !containsParty(validated, p) {
			validated = append(validated, p)
		}
	}

	var group *models.Group
	err = l.store.RunInTx(ctx, func(tx storage.Tx) error {
		id, err := tx.NextGroupID()
		if err != nil {
			return err
		}
		group = &models.Group{
			ID:        id,
			Name:      name,
			Creator:   caller,
			Members:   validated,
			CreatedAt: l.now().Unix(),
		}
		return tx.PutGroup(group)
	})
	if err != nil {
		return nil, err
	}

	slog.Info("group created", "group_id", group.ID, "creator", caller, "members", len(group.Members))
	return group, nil
}

// JoinGroup appends caller to the group's member list.
func (l *Ledger) JoinGroup(ctx context.Context, caller identity.PartyID, groupID uint64) error {
	err := l.store.RunInTx(ctx, func(tx storage.Tx) error {
		group, err := tx.GetGroup(groupID)
		if err != nil {
			return err
		}
		if group == nil {
			return ErrGroupNotFound
		}
		if group.HasMember(caller) {
			return ErrUserAlreadyInGroup
		}

		group.Members = append(group.Members, caller)
		return tx.PutGroup(group)
	})
	if err != nil {
		return err
	}

	slog.Info("group joined", "group_id", groupID, "user", caller)
	return nil
}

// LeaveGroup removes caller from the group. It refuses while any debt exists
// between the caller and another member, in either direction. When the last
// member leaves, the group is deleted entirely.
func (l *Ledger) LeaveGroup(ctx context.Context, caller identity.PartyID, groupID uint64) error {
	var deleted bool
	err := l.store.RunInTx(ctx, func(tx storage.Tx) error {
		group, err := tx.GetGroup(groupID)
		if err != nil {
			return err
		}
		if group == nil {
			return ErrGroupNotFound
		}
		if !group.HasMember(caller) {
			return ErrUserNotInGroup
		}

		for _, member := range group.Members {
			if member == caller {
				continue
			}
			for _, pair := range [][2]identity.PartyID{{caller, member}, {member, caller}} {
				amount, exists, err := tx.GetDebt(groupID, pair[0], pair[1])
				if err != nil {
					return err
				}
				if exists && !amount.IsZero() {
					return ErrUnsettledDebts
				}
			}
		}

		remaining := group.Members[:0:0]
		for _, member := range group.Members {
			if member != caller {
				remaining = append(remaining, member)
			}
		}
		group.Members = remaining

		if len(group.Members) == 0 {
			deleted = true
			return tx.DeleteGroup(groupID)
		}
		return tx.PutGroup(group)
	})
	if err != nil {
		return err
	}

	slog.Info("group left", "group_id", groupID, "user", caller, "group_deleted", deleted)
	return nil
}

func containsParty(ps []identity.PartyID, p identity.PartyID) bool {
	for _, q := range ps {
		if q == p {
			return true
		}
	}
	return false
}
