package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"leaguehq-backend/internal/domain"
	"leaguehq-backend/internal/logger"
	"leaguehq-backend/internal/repository"
	"leaguehq-backend/internal/service"
)

type invitationFixture struct {
	leagueRepo   *MockLeagueRepo
	memberRepo   *MockMemberRepo
	inviteRepo   *MockInvitationRepo
	userRepo     *MockUserRepo
	overrideRepo *MockOverrideRepo
	emailSvc     *MockEmailService
	svc          service.InvitationService
}

func newInvitationFixture() *invitationFixture {
	f := &invitationFixture{
		leagueRepo:   new(MockLeagueRepo),
		memberRepo:   new(MockMemberRepo),
		inviteRepo:   new(MockInvitationRepo),
		userRepo:     new(MockUserRepo),
		overrideRepo: new(MockOverrideRepo),
		emailSvc:     new(MockEmailService),
	}
	tx := &stubTransactor{reg: repository.Registry{
		Leagues:     f.leagueRepo,
		Members:     f.memberRepo,
		Invitations: f.inviteRepo,
		Users:       f.userRepo,
		Overrides:   f.overrideRepo,
	}}
	f.svc = service.NewInvitationService(
		tx, f.leagueRepo, f.memberRepo, f.inviteRepo, f.userRepo, f.overrideRepo,
		f.emailSvc, logger.Get(),
	)
	return f
}

func TestInviteUser(t *testing.T) {
	ctx := context.Background()
	league := &domain.League{ID: 10, Name: "Tuesday Pool", Visibility: domain.LeagueVisibilityPrivate}
	invitee := &domain.User{ID: 2, Email: "casey@example.com", Name: "Casey"}
	inviter := &domain.User{ID: 1, Email: "robin@example.com", Name: "Robin"}

	t.Run("a manager invites a registered user", func(t *testing.T) {
		f := newInvitationFixture()
		f.leagueRepo.On("GetByID", ctx, int32(10)).Return(league, nil)
		f.memberRepo.On("Get", ctx, int32(1), int32(10)).Return(member(1, 10, domain.LeagueRoleManager), nil)
		f.userRepo.On("GetByEmail", ctx, "casey@example.com").Return(invitee, nil)
		f.memberRepo.On("Get", ctx, int32(2), int32(10)).Return(nil, repository.ErrNotFound)
		f.inviteRepo.On("GetPendingDirect", ctx, int32(10), int32(2)).Return(nil, repository.ErrNotFound)
		f.overrideRepo.On("GetForLeague", ctx, int32(10), domain.LimitTypeMembersPerLeague).Return(nil, repository.ErrNotFound)
		f.memberRepo.On("CountByLeague", ctx, int32(10)).Return(int32(5), nil)
		f.inviteRepo.On("Create", ctx, mock.AnythingOfType("*domain.Invitation")).Return(nil)
		f.userRepo.On("GetByID", ctx, int32(1)).Return(inviter, nil)
		f.emailSvc.On("SendInvitationNotice", ctx, "casey@example.com", "Casey", "Tuesday Pool", "Robin").Return(nil)

		inv, err := f.svc.InviteUser(ctx, 1, 10, "casey@example.com", domain.LeagueRoleMember)
		assert.NoError(t, err)
		assert.Equal(t, domain.InvitationStatusPending, inv.Status)
		assert.Equal(t, int32(2), *inv.InviteeUserID)
		assert.NotNil(t, inv.ExpiresOn)
		f.emailSvc.AssertExpectations(t)
	})

	t.Run("a failed email does not fail the invitation", func(t *testing.T) {
		f := newInvitationFixture()
		f.leagueRepo.On("GetByID", ctx, int32(10)).Return(league, nil)
		f.memberRepo.On("Get", ctx, int32(1), int32(10)).Return(member(1, 10, domain.LeagueRoleManager), nil)
		f.userRepo.On("GetByEmail", ctx, "casey@example.com").Return(invitee, nil)
		f.memberRepo.On("Get", ctx, int32(2), int32(10)).Return(nil, repository.ErrNotFound)
		f.inviteRepo.On("GetPendingDirect", ctx, int32(10), int32(2)).Return(nil, repository.ErrNotFound)
		f.overrideRepo.On("GetForLeague", ctx, int32(10), domain.LimitTypeMembersPerLeague).Return(nil, repository.ErrNotFound)
		f.memberRepo.On("CountByLeague", ctx, int32(10)).Return(int32(5), nil)
		f.inviteRepo.On("Create", ctx, mock.AnythingOfType("*domain.Invitation")).Return(nil)
		f.userRepo.On("GetByID", ctx, int32(1)).Return(inviter, nil)
		f.emailSvc.On("SendInvitationNotice", ctx, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(assert.AnError)

		_, err := f.svc.InviteUser(ctx, 1, 10, "casey@example.com", domain.LeagueRoleMember)
		assert.NoError(t, err)
	})

	t.Run("a plain member cannot invite", func(t *testing.T) {
		f := newInvitationFixture()
		f.leagueRepo.On("GetByID", ctx, int32(10)).Return(league, nil)
		f.memberRepo.On("Get", ctx, int32(3), int32(10)).Return(member(3, 10, domain.LeagueRoleMember), nil)

		_, err := f.svc.InviteUser(ctx, 3, 10, "casey@example.com", domain.LeagueRoleMember)
		assert.Equal(t, service.KindPermission, errKind(t, err))
	})

	t.Run("a manager cannot invite at executive", func(t *testing.T) {
		f := newInvitationFixture()
		f.leagueRepo.On("GetByID", ctx, int32(10)).Return(league, nil)
		f.memberRepo.On("Get", ctx, int32(1), int32(10)).Return(member(1, 10, domain.LeagueRoleManager), nil)

		_, err := f.svc.InviteUser(ctx, 1, 10, "casey@example.com", domain.LeagueRoleExecutive)
		assert.Equal(t, service.KindPermission, errKind(t, err))
	})

	t.Run("an unregistered email is not found", func(t *testing.T) {
		f := newInvitationFixture()
		f.leagueRepo.On("GetByID", ctx, int32(10)).Return(league, nil)
		f.memberRepo.On("Get", ctx, int32(1), int32(10)).Return(member(1, 10, domain.LeagueRoleManager), nil)
		f.userRepo.On("GetByEmail", ctx, "nobody@example.com").Return(nil, repository.ErrNotFound)

		_, err := f.svc.InviteUser(ctx, 1, 10, "nobody@example.com", domain.LeagueRoleMember)
		assert.Equal(t, service.KindNotFound, errKind(t, err))
	})

	t.Run("inviting an existing member is a conflict", func(t *testing.T) {
		f := newInvitationFixture()
		f.leagueRepo.On("GetByID", ctx, int32(10)).Return(league, nil)
		f.memberRepo.On("Get", ctx, int32(1), int32(10)).Return(member(1, 10, domain.LeagueRoleManager), nil)
		f.userRepo.On("GetByEmail", ctx, "casey@example.com").Return(invitee, nil)
		f.memberRepo.On("Get", ctx, int32(2), int32(10)).Return(member(2, 10, domain.LeagueRoleMember), nil)

		_, err := f.svc.InviteUser(ctx, 1, 10, "casey@example.com", domain.LeagueRoleMember)
		assert.Equal(t, service.KindConflict, errKind(t, err))
	})

	t.Run("a live pending invitation blocks a duplicate", func(t *testing.T) {
		f := newInvitationFixture()
		future := time.Now().Add(24 * time.Hour)
		pending := &domain.Invitation{ID: 70, LeagueID: 10, InviteeUserID: &invitee.ID, Status: domain.InvitationStatusPending, ExpiresOn: &future}
		f.leagueRepo.On("GetByID", ctx, int32(10)).Return(league, nil)
		f.memberRepo.On("Get", ctx, int32(1), int32(10)).Return(member(1, 10, domain.LeagueRoleManager), nil)
		f.userRepo.On("GetByEmail", ctx, "casey@example.com").Return(invitee, nil)
		f.memberRepo.On("Get", ctx, int32(2), int32(10)).Return(nil, repository.ErrNotFound)
		f.inviteRepo.On("GetPendingDirect", ctx, int32(10), int32(2)).Return(pending, nil)

		_, err := f.svc.InviteUser(ctx, 1, 10, "casey@example.com", domain.LeagueRoleMember)
		assert.Equal(t, service.KindConflict, errKind(t, err))
	})

	t.Run("a stale pending invitation is expired and replaced", func(t *testing.T) {
		f := newInvitationFixture()
		past := time.Now().Add(-24 * time.Hour)
		stale := &domain.Invitation{ID: 71, LeagueID: 10, InviteeUserID: &invitee.ID, Status: domain.InvitationStatusPending, ExpiresOn: &past}
		f.leagueRepo.On("GetByID", ctx, int32(10)).Return(league, nil)
		f.memberRepo.On("Get", ctx, int32(1), int32(10)).Return(member(1, 10, domain.LeagueRoleManager), nil)
		f.userRepo.On("GetByEmail", ctx, "casey@example.com").Return(invitee, nil)
		f.memberRepo.On("Get", ctx, int32(2), int32(10)).Return(nil, repository.ErrNotFound)
		f.inviteRepo.On("GetPendingDirect", ctx, int32(10), int32(2)).Return(stale, nil)
		f.inviteRepo.On("Update", ctx, mock.MatchedBy(func(inv *domain.Invitation) bool {
			return inv.ID == 71 && inv.Status == domain.InvitationStatusExpired
		})).Return(nil)
		f.overrideRepo.On("GetForLeague", ctx, int32(10), domain.LimitTypeMembersPerLeague).Return(nil, repository.ErrNotFound)
		f.memberRepo.On("CountByLeague", ctx, int32(10)).Return(int32(5), nil)
		f.inviteRepo.On("Create", ctx, mock.AnythingOfType("*domain.Invitation")).Return(nil)
		f.userRepo.On("GetByID", ctx, int32(1)).Return(inviter, nil)
		f.emailSvc.On("SendInvitationNotice", ctx, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

		inv, err := f.svc.InviteUser(ctx, 1, 10, "casey@example.com", domain.LeagueRoleMember)
		assert.NoError(t, err)
		assert.Equal(t, domain.InvitationStatusPending, inv.Status)
		f.inviteRepo.AssertExpectations(t)
	})

	t.Run("a full league cannot be invited into", func(t *testing.T) {
		f := newInvitationFixture()
		f.leagueRepo.On("GetByID", ctx, int32(10)).Return(league, nil)
		f.memberRepo.On("Get", ctx, int32(1), int32(10)).Return(member(1, 10, domain.LeagueRoleManager), nil)
		f.userRepo.On("GetByEmail", ctx, "casey@example.com").Return(invitee, nil)
		f.memberRepo.On("Get", ctx, int32(2), int32(10)).Return(nil, repository.ErrNotFound)
		f.inviteRepo.On("GetPendingDirect", ctx, int32(10), int32(2)).Return(nil, repository.ErrNotFound)
		f.overrideRepo.On("GetForLeague", ctx, int32(10), domain.LimitTypeMembersPerLeague).Return(nil, repository.ErrNotFound)
		f.memberRepo.On("CountByLeague", ctx, int32(10)).Return(service.DefaultMaxMembersPerLeague, nil)

		_, err := f.svc.InviteUser(ctx, 1, 10, "casey@example.com", domain.LeagueRoleMember)
		assert.Equal(t, service.KindLimit, errKind(t, err))
	})
}

func TestAcceptInvitation(t *testing.T) {
	ctx := context.Background()
	invitee := int32(2)

	pendingInvitation := func() *domain.Invitation {
		future := time.Now().Add(24 * time.Hour)
		return &domain.Invitation{
			ID:            70,
			LeagueID:      10,
			InviteeUserID: &invitee,
			Role:          domain.LeagueRoleMember,
			Status:        domain.InvitationStatusPending,
			ExpiresOn:     &future,
		}
	}

	t.Run("accepting joins and marks accepted", func(t *testing.T) {
		f := newInvitationFixture()
		inv := pendingInvitation()
		f.inviteRepo.On("GetByID", ctx, int32(70)).Return(inv, nil)
		f.memberRepo.On("Get", ctx, int32(2), int32(10)).Return(nil, repository.ErrNotFound)
		f.overrideRepo.On("GetForUser", ctx, int32(2), domain.LimitTypeLeaguesPerUser).Return(nil, repository.ErrNotFound)
		f.memberRepo.On("CountLeaguesByUser", ctx, int32(2)).Return(int32(0), nil)
		f.overrideRepo.On("GetForLeague", ctx, int32(10), domain.LimitTypeMembersPerLeague).Return(nil, repository.ErrNotFound)
		f.memberRepo.On("CountByLeague", ctx, int32(10)).Return(int32(5), nil)
		f.memberRepo.On("Add", ctx, mock.AnythingOfType("*domain.LeagueMember")).Return(nil)
		f.inviteRepo.On("GetPendingDirect", ctx, int32(10), int32(2)).Return(inv, nil)
		f.inviteRepo.On("Update", ctx, mock.MatchedBy(func(i *domain.Invitation) bool {
			return i.Status == domain.InvitationStatusAccepted
		})).Return(nil)

		assert.NoError(t, f.svc.AcceptInvitation(ctx, 2, 70))
	})

	t.Run("accepting while already a member still converges", func(t *testing.T) {
		f := newInvitationFixture()
		inv := pendingInvitation()
		f.inviteRepo.On("GetByID", ctx, int32(70)).Return(inv, nil)
		f.memberRepo.On("Get", ctx, int32(2), int32(10)).Return(member(2, 10, domain.LeagueRoleMember), nil)
		f.inviteRepo.On("Update", ctx, mock.MatchedBy(func(i *domain.Invitation) bool {
			return i.Status == domain.InvitationStatusAccepted
		})).Return(nil)

		assert.NoError(t, f.svc.AcceptInvitation(ctx, 2, 70))
		f.memberRepo.AssertNotCalled(t, "Add", ctx, mock.Anything)
	})

	t.Run("someone else's invitation cannot be accepted", func(t *testing.T) {
		f := newInvitationFixture()
		f.inviteRepo.On("GetByID", ctx, int32(70)).Return(pendingInvitation(), nil)

		err := f.svc.AcceptInvitation(ctx, 9, 70)
		assert.Equal(t, service.KindPermission, errKind(t, err))
	})

	t.Run("an expired invitation is settled and rejected", func(t *testing.T) {
		f := newInvitationFixture()
		inv := pendingInvitation()
		past := time.Now().Add(-time.Hour)
		inv.ExpiresOn = &past
		f.inviteRepo.On("GetByID", ctx, int32(70)).Return(inv, nil)
		f.inviteRepo.On("Update", ctx, mock.MatchedBy(func(i *domain.Invitation) bool {
			return i.Status == domain.InvitationStatusExpired
		})).Return(nil)

		err := f.svc.AcceptInvitation(ctx, 2, 70)
		assert.Equal(t, service.KindConflict, errKind(t, err))
		f.inviteRepo.AssertExpectations(t)
	})

	t.Run("a declined invitation cannot be accepted", func(t *testing.T) {
		f := newInvitationFixture()
		inv := pendingInvitation()
		inv.Status = domain.InvitationStatusDeclined
		f.inviteRepo.On("GetByID", ctx, int32(70)).Return(inv, nil)

		err := f.svc.AcceptInvitation(ctx, 2, 70)
		assert.Equal(t, service.KindConflict, errKind(t, err))
	})
}

func TestJoinViaInviteLink(t *testing.T) {
	ctx := context.Background()
	token := "a2f1c8e4-link-token"
	league := &domain.League{ID: 10, Name: "Tuesday Pool", Visibility: domain.LeagueVisibilityPrivate}

	linkInvitation := func() *domain.Invitation {
		future := time.Now().Add(24 * time.Hour)
		maxUses := int32(2)
		tok := token
		return &domain.Invitation{
			ID:        80,
			LeagueID:  10,
			Token:     &tok,
			Role:      domain.LeagueRoleMember,
			Status:    domain.InvitationStatusPending,
			ExpiresOn: &future,
			MaxUses:   &maxUses,
			UseCount:  0,
		}
	}

	t.Run("redeeming joins and consumes one use", func(t *testing.T) {
		f := newInvitationFixture()
		inv := linkInvitation()
		f.inviteRepo.On("GetByToken", ctx, token).Return(inv, nil)
		f.leagueRepo.On("GetByID", ctx, int32(10)).Return(league, nil)
		f.memberRepo.On("Get", ctx, int32(3), int32(10)).Return(nil, repository.ErrNotFound)
		f.overrideRepo.On("GetForUser", ctx, int32(3), domain.LimitTypeLeaguesPerUser).Return(nil, repository.ErrNotFound)
		f.memberRepo.On("CountLeaguesByUser", ctx, int32(3)).Return(int32(0), nil)
		f.overrideRepo.On("GetForLeague", ctx, int32(10), domain.LimitTypeMembersPerLeague).Return(nil, repository.ErrNotFound)
		f.memberRepo.On("CountByLeague", ctx, int32(10)).Return(int32(5), nil)
		f.memberRepo.On("Add", ctx, mock.AnythingOfType("*domain.LeagueMember")).Return(nil)
		f.inviteRepo.On("GetPendingDirect", ctx, int32(10), int32(3)).Return(nil, repository.ErrNotFound)
		f.inviteRepo.On("Update", ctx, mock.MatchedBy(func(i *domain.Invitation) bool {
			return i.ID == 80 && i.UseCount == 1
		})).Return(nil)

		got, err := f.svc.JoinViaInviteLink(ctx, 3, token)
		assert.NoError(t, err)
		assert.Equal(t, domain.LeagueRoleMember, got.Role)
		f.inviteRepo.AssertExpectations(t)
	})

	t.Run("an exhausted link is rejected", func(t *testing.T) {
		f := newInvitationFixture()
		inv := linkInvitation()
		inv.UseCount = *inv.MaxUses
		f.inviteRepo.On("GetByToken", ctx, token).Return(inv, nil)

		_, err := f.svc.JoinViaInviteLink(ctx, 3, token)
		assert.Equal(t, service.KindConflict, errKind(t, err))
	})

	t.Run("an expired link is rejected", func(t *testing.T) {
		f := newInvitationFixture()
		inv := linkInvitation()
		past := time.Now().Add(-time.Hour)
		inv.ExpiresOn = &past
		f.inviteRepo.On("GetByToken", ctx, token).Return(inv, nil)

		_, err := f.svc.JoinViaInviteLink(ctx, 3, token)
		assert.Equal(t, service.KindConflict, errKind(t, err))
	})

	t.Run("redeeming twice does not consume a second use", func(t *testing.T) {
		f := newInvitationFixture()
		inv := linkInvitation()
		inv.UseCount = 1
		f.inviteRepo.On("GetByToken", ctx, token).Return(inv, nil)
		f.leagueRepo.On("GetByID", ctx, int32(10)).Return(league, nil)
		f.memberRepo.On("Get", ctx, int32(3), int32(10)).Return(member(3, 10, domain.LeagueRoleMember), nil)

		_, err := f.svc.JoinViaInviteLink(ctx, 3, token)
		assert.Equal(t, service.KindConflict, errKind(t, err))
		f.inviteRepo.AssertNotCalled(t, "Update", ctx, mock.Anything)
	})

	t.Run("an unknown token is not found", func(t *testing.T) {
		f := newInvitationFixture()
		f.inviteRepo.On("GetByToken", ctx, "bogus").Return(nil, repository.ErrNotFound)

		_, err := f.svc.JoinViaInviteLink(ctx, 3, "bogus")
		assert.Equal(t, service.KindNotFound, errKind(t, err))
	})
}

func TestGetInviteLinkDetails(t *testing.T) {
	ctx := context.Background()
	token := "a2f1c8e4-link-token"

	t.Run("a valid link previews the league", func(t *testing.T) {
		f := newInvitationFixture()
		future := time.Now().Add(24 * time.Hour)
		tok := token
		inv := &domain.Invitation{ID: 80, LeagueID: 10, Token: &tok, Role: domain.LeagueRoleMember, Status: domain.InvitationStatusPending, ExpiresOn: &future}
		f.inviteRepo.On("GetByToken", ctx, token).Return(inv, nil)
		f.leagueRepo.On("GetByID", ctx, int32(10)).Return(&domain.League{ID: 10, Name: "Tuesday Pool"}, nil)

		details, err := f.svc.GetInviteLinkDetails(ctx, token)
		assert.NoError(t, err)
		assert.True(t, details.IsValid)
		assert.Equal(t, "Tuesday Pool", details.LeagueName)
	})

	t.Run("an archived league invalidates the link without mutating it", func(t *testing.T) {
		f := newInvitationFixture()
		future := time.Now().Add(24 * time.Hour)
		tok := token
		inv := &domain.Invitation{ID: 80, LeagueID: 10, Token: &tok, Status: domain.InvitationStatusPending, ExpiresOn: &future}
		f.inviteRepo.On("GetByToken", ctx, token).Return(inv, nil)
		f.leagueRepo.On("GetByID", ctx, int32(10)).Return(&domain.League{ID: 10, Name: "Tuesday Pool", IsArchived: true}, nil)

		details, err := f.svc.GetInviteLinkDetails(ctx, token)
		assert.NoError(t, err)
		assert.False(t, details.IsValid)
		assert.Equal(t, "league is archived", details.Reason)
		f.inviteRepo.AssertNotCalled(t, "Update", ctx, mock.Anything)
	})
}

func TestListMyInvitations(t *testing.T) {
	ctx := context.Background()
	f := newInvitationFixture()

	invitee := int32(2)
	future := time.Now().Add(24 * time.Hour)
	past := time.Now().Add(-time.Hour)
	rows := []domain.Invitation{
		{ID: 1, LeagueID: 10, InviteeUserID: &invitee, Status: domain.InvitationStatusPending, ExpiresOn: &future},
		{ID: 2, LeagueID: 11, InviteeUserID: &invitee, Status: domain.InvitationStatusPending, ExpiresOn: &past},
	}
	f.inviteRepo.On("ListPendingForUser", ctx, int32(2)).Return(rows, nil)

	got, err := f.svc.ListMyInvitations(ctx, 2)
	assert.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t, int32(1), got[0].ID)
}
