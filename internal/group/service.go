package group

import (
	"context"
	"errors"

	"github.com/tripcrew/tripcrew/internal/writecoord"
)

// Common errors
var (
	ErrGroupNotFound       = errors.New("group not found")
	ErrMemberNotFound      = errors.New("member not found")
	ErrMemberAlreadyExists = errors.New("member is already part of this group")
)

// Notifier lets the group feature raise notifications without depending on
// the notification package directly.
type Notifier interface {
	GroupInvite(ctx context.Context, recipientID int64, groupName string, groupID int64)
}

// Service handles trip group business logic
type Service struct {
	repo     *Repository
	coord    *writecoord.Coordinator
	notifier Notifier
}

// NewService creates a new group service
func NewService(repo *Repository, coord *writecoord.Coordinator, notifier Notifier) *Service {
	return &Service{repo: repo, coord: coord, notifier: notifier}
}

// Create creates a trip group and its creator's admin membership as one
// coordinated write: a group without at least one admin is never observable.
func (s *Service) Create(ctx context.Context, creatorID int64, req *CreateGroupRequest) (*Group, error) {
	if req.Currency == "" {
		req.Currency = "USD"
	}

	var created *Group
	err := s.coord.Execute(ctx, "group.create",
		writecoord.Step{
			Name: "insert group",
			Run: func(ctx context.Context) error {
				g, err := s.repo.Create(ctx, req)
				if err != nil {
					return err
				}
				created = g
				return nil
			},
			Compensate: func(ctx context.Context) error {
				return s.repo.Delete(ctx, created.ID)
			},
		},
		writecoord.Step{
			Name: "insert admin membership",
			Run: func(ctx context.Context) error {
				_, err := s.repo.AddMember(ctx, created.ID, creatorID, MemberRoleAdmin, MemberStatusJoined)
				return err
			},
		},
	)
	if err != nil {
		return nil, err
	}

	return created, nil
}

// GetByID retrieves a group by its ID
func (s *Service) GetByID(ctx context.Context, id int64) (*Group, error) {
	g, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, ErrGroupNotFound
	}
	return g, nil
}

// GetByIDWithMembers retrieves a group with all its members
func (s *Service) GetByIDWithMembers(ctx context.Context, id int64) (*Group, []*GroupMember, error) {
	g, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	members, err := s.repo.GetMembers(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	return g, members, nil
}

// ListByMemberID retrieves all groups a member belongs to
func (s *Service) ListByMemberID(ctx context.Context, memberID int64, page, perPage int) ([]*Group, int, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	offset := (page - 1) * perPage
	return s.repo.ListByMemberID(ctx, memberID, perPage, offset)
}

// Update modifies an existing group
func (s *Service) Update(ctx context.Context, id int64, req *UpdateGroupRequest) (*Group, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrGroupNotFound
	}

	return s.repo.Update(ctx, id, req)
}

// Delete removes a group
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// AddMember invites a member to a group
func (s *Service) AddMember(ctx context.Context, groupID int64, req *AddMemberRequest) (*GroupMember, error) {
	g, err := s.repo.GetByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, ErrGroupNotFound
	}

	existing, err := s.repo.GetMember(ctx, groupID, req.MemberID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrMemberAlreadyExists
	}

	role := req.Role
	if role == "" {
		role = MemberRoleMember
	}

	gm, err := s.repo.AddMember(ctx, groupID, req.MemberID, role, MemberStatusInvited)
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.GroupInvite(ctx, req.MemberID, g.Name, groupID)
	}

	return gm, nil
}

// GetMembers retrieves all members of a group
func (s *Service) GetMembers(ctx context.Context, groupID int64) ([]*GroupMember, error) {
	g, err := s.repo.GetByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, ErrGroupNotFound
	}

	return s.repo.GetMembers(ctx, groupID)
}

// MemberIDs returns the ids of every member of a group
func (s *Service) MemberIDs(ctx context.Context, groupID int64) ([]int64, error) {
	members, err := s.GetMembers(ctx, groupID)
	if err != nil {
		return nil, err
	}

	ids := make([]int64, len(members))
	for i, m := range members {
		ids[i] = m.MemberID
	}
	return ids, nil
}

// UpdateMember updates a membership's status or role
func (s *Service) UpdateMember(ctx context.Context, groupID, memberID int64, req *UpdateMemberRequest) (*GroupMember, error) {
	gm, err := s.repo.UpdateMember(ctx, groupID, memberID, req)
	if err != nil {
		return nil, err
	}
	if gm == nil {
		return nil, ErrMemberNotFound
	}
	return gm, nil
}

// RemoveMember removes a member from a group
func (s *Service) RemoveMember(ctx context.Context, groupID, memberID int64) error {
	return s.repo.RemoveMember(ctx, groupID, memberID)
}

// AcceptInvitation flips an INVITED membership to JOINED
func (s *Service) AcceptInvitation(ctx context.Context, groupID, memberID int64) (*GroupMember, error) {
	gm, err := s.repo.GetMember(ctx, groupID, memberID)
	if err != nil {
		return nil, err
	}
	if gm == nil {
		return nil, ErrMemberNotFound
	}
	if gm.Status != MemberStatusInvited {
		return gm, nil // Already joined
	}

	status := MemberStatusJoined
	return s.repo.UpdateMember(ctx, groupID, memberID, &UpdateMemberRequest{Status: &status})
}
