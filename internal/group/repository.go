package group

import (
	"context"
	"database/sql"
	"fmt"
)

// Repository handles trip group data persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new group repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new group into the database
func (r *Repository) Create(ctx context.Context, req *CreateGroupRequest) (*Group, error) {
	query := `
		INSERT INTO groups (name, description, destination, currency, start_date, end_date)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, name, description, destination, currency, start_date, end_date, created_at
	`

	g := &Group{}
	err := r.db.QueryRowContext(ctx, query,
		req.Name, req.Description, req.Destination, req.Currency, req.StartDate, req.EndDate,
	).Scan(
		&g.ID, &g.Name, &g.Description, &g.Destination, &g.Currency,
		&g.StartDate, &g.EndDate, &g.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create group: %w", err)
	}

	return g, nil
}

// GetByID retrieves a group by its ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*Group, error) {
	query := `
		SELECT id, name, description, destination, currency, start_date, end_date, created_at
		FROM groups
		WHERE id = $1
	`

	g := &Group{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&g.ID, &g.Name, &g.Description, &g.Destination, &g.Currency,
		&g.StartDate, &g.EndDate, &g.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get group: %w", err)
	}

	return g, nil
}

// ListByMemberID retrieves all groups for a member
func (r *Repository) ListByMemberID(ctx context.Context, memberID int64, limit, offset int) ([]*Group, int, error) {
	var total int
	countQuery := `
		SELECT COUNT(DISTINCT g.id)
		FROM groups g
		JOIN group_members gm ON g.id = gm.group_id
		WHERE gm.member_id = $1
	`
	if err := r.db.QueryRowContext(ctx, countQuery, memberID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count groups: %w", err)
	}

	query := `
		SELECT g.id, g.name, g.description, g.destination, g.currency, g.start_date, g.end_date, g.created_at
		FROM groups g
		JOIN group_members gm ON g.id = gm.group_id
		WHERE gm.member_id = $1
		ORDER BY g.created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.QueryContext(ctx, query, memberID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list groups: %w", err)
	}
	defer rows.Close()

	var groups []*Group
	for rows.Next() {
		g := &Group{}
		if err := rows.Scan(
			&g.ID, &g.Name, &g.Description, &g.Destination, &g.Currency,
			&g.StartDate, &g.EndDate, &g.CreatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan group: %w", err)
		}
		groups = append(groups, g)
	}

	return groups, total, nil
}

// Update modifies an existing group
func (r *Repository) Update(ctx context.Context, id int64, req *UpdateGroupRequest) (*Group, error) {
	query := `
		UPDATE groups
		SET name = COALESCE($2, name),
		    description = COALESCE($3, description),
		    destination = COALESCE($4, destination),
		    start_date = COALESCE($5, start_date),
		    end_date = COALESCE($6, end_date)
		WHERE id = $1
		RETURNING id, name, description, destination, currency, start_date, end_date, created_at
	`

	g := &Group{}
	err := r.db.QueryRowContext(ctx, query,
		id, req.Name, req.Description, req.Destination, req.StartDate, req.EndDate,
	).Scan(
		&g.ID, &g.Name, &g.Description, &g.Destination, &g.Currency,
		&g.StartDate, &g.EndDate, &g.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update group: %w", err)
	}

	return g, nil
}

// Delete removes a group
func (r *Repository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM groups WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete group: %w", err)
	}
	return nil
}

// AddMember inserts a membership row
func (r *Repository) AddMember(ctx context.Context, groupID, memberID int64, role MemberRole, status MemberStatus) (*GroupMember, error) {
	query := `
		INSERT INTO group_members (group_id, member_id, role, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, group_id, member_id, status, role, joined_at
	`

	gm := &GroupMember{}
	err := r.db.QueryRowContext(ctx, query, groupID, memberID, role, status).Scan(
		&gm.ID, &gm.GroupID, &gm.MemberID, &gm.Status, &gm.Role, &gm.JoinedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to add member: %w", err)
	}

	return gm, nil
}

// GetMember retrieves one membership
func (r *Repository) GetMember(ctx context.Context, groupID, memberID int64) (*GroupMember, error) {
	query := `
		SELECT gm.id, gm.group_id, gm.member_id, gm.status, gm.role, gm.joined_at, m.username, m.email
		FROM group_members gm
		JOIN members m ON gm.member_id = m.id
		WHERE gm.group_id = $1 AND gm.member_id = $2
	`

	gm := &GroupMember{}
	err := r.db.QueryRowContext(ctx, query, groupID, memberID).Scan(
		&gm.ID, &gm.GroupID, &gm.MemberID, &gm.Status, &gm.Role, &gm.JoinedAt,
		&gm.Username, &gm.Email,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get member: %w", err)
	}

	return gm, nil
}

// GetMembers retrieves all memberships of a group
func (r *Repository) GetMembers(ctx context.Context, groupID int64) ([]*GroupMember, error) {
	query := `
		SELECT gm.id, gm.group_id, gm.member_id, gm.status, gm.role, gm.joined_at, m.username, m.email
		FROM group_members gm
		JOIN members m ON gm.member_id = m.id
		WHERE gm.group_id = $1
		ORDER BY gm.id
	`

	rows, err := r.db.QueryContext(ctx, query, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to get members: %w", err)
	}
	defer rows.Close()

	var members []*GroupMember
	for rows.Next() {
		gm := &GroupMember{}
		if err := rows.Scan(
			&gm.ID, &gm.GroupID, &gm.MemberID, &gm.Status, &gm.Role, &gm.JoinedAt,
			&gm.Username, &gm.Email,
		); err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		members = append(members, gm)
	}

	return members, nil
}

// UpdateMember updates a membership's status or role
func (r *Repository) UpdateMember(ctx context.Context, groupID, memberID int64, req *UpdateMemberRequest) (*GroupMember, error) {
	query := `
		UPDATE group_members
		SET status = COALESCE($3, status),
		    role = COALESCE($4, role)
		WHERE group_id = $1 AND member_id = $2
		RETURNING id, group_id, member_id, status, role, joined_at
	`

	gm := &GroupMember{}
	err := r.db.QueryRowContext(ctx, query, groupID, memberID, req.Status, req.Role).Scan(
		&gm.ID, &gm.GroupID, &gm.MemberID, &gm.Status, &gm.Role, &gm.JoinedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update member: %w", err)
	}

	return gm, nil
}

// RemoveMember deletes a membership row
func (r *Repository) RemoveMember(ctx context.Context, groupID, memberID int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM group_members WHERE group_id = $1 AND member_id = $2`, groupID, memberID)
	if err != nil {
		return fmt.Errorf("failed to remove member: %w", err)
	}
	return nil
}
