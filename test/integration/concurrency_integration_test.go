//go:build integration
// +build integration

package integration

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/avagyan/studgroups/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestConcurrentAcceptanceForLastSeat - два кандидата одновременно претендуют
// на последнее место: один по приглашению, второй по заявке. Блокировка строки
// группы сериализует принятия, место получает ровно один.
func TestConcurrentAcceptanceForLastSeat(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	s := newServices(db)

	group, err := s.groups.CreateGroup(ctx, "plan-1", "u1", "Alpha", "")
	require.NoError(t, err)

	// Доводим группу до трёх участников: остаётся одно место
	for _, userID := range []string{"u2", "u3"} {
		req, err := s.joinRequests.Request(ctx, group.ID, userID, "")
		require.NoError(t, err)
		require.NoError(t, s.acceptance.RespondToJoinRequest(ctx, group.ID, req.ID, "u1", true))
	}

	invitation, err := s.invitations.Invite(ctx, group.ID, "u1", "u10", "")
	require.NoError(t, err)
	request, err := s.joinRequests.Request(ctx, group.ID, "u11", "")
	require.NoError(t, err)

	var wg sync.WaitGroup
	var invErr, reqErr error

	wg.Add(2)
	go func() {
		defer wg.Done()
		invErr = s.acceptance.RespondToInvitation(ctx, invitation.ID, "u10", true)
	}()
	go func() {
		defer wg.Done()
		reqErr = s.acceptance.RespondToJoinRequest(ctx, group.ID, request.ID, "u1", true)
	}()
	wg.Wait()

	// Ровно один из двух ответов прошёл
	succeeded := 0
	for _, err := range []error{invErr, reqErr} {
		if err == nil {
			succeeded++
		} else {
			assert.True(t, errors.Is(err, domain.ErrStateConflict), "проигравший должен получить конфликт, а не %v", err)
		}
	}
	assert.Equal(t, 1, succeeded)

	final, err := s.groups.GetGroup(ctx, group.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.GroupCapacity, final.MemberCount)
	assert.Equal(t, domain.GroupStatusFull, final.Status)

	members, err := s.groups.ListMembers(ctx, group.ID)
	require.NoError(t, err)
	assert.Len(t, members, domain.GroupCapacity)
}

// TestConcurrentAcceptanceAcrossGroups - кандидат одновременно принимает
// приглашения двух групп одного плана. Группы блокируются независимо, но
// участие в плане может возникнуть только одно.
func TestConcurrentAcceptanceAcrossGroups(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	s := newServices(db)

	g1, err := s.groups.CreateGroup(ctx, "plan-1", "u1", "Alpha", "")
	require.NoError(t, err)
	g2, err := s.groups.CreateGroup(ctx, "plan-1", "u2", "Beta", "")
	require.NoError(t, err)

	inv1, err := s.invitations.Invite(ctx, g1.ID, "u1", "u5", "")
	require.NoError(t, err)
	inv2, err := s.invitations.Invite(ctx, g2.ID, "u2", "u5", "")
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make([]error, 2)

	wg.Add(2)
	go func() {
		defer wg.Done()
		errs[0] = s.acceptance.RespondToInvitation(ctx, inv1.ID, "u5", true)
	}()
	go func() {
		defer wg.Done()
		errs[1] = s.acceptance.RespondToInvitation(ctx, inv2.ID, "u5", true)
	}()
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			assert.True(t, errors.Is(err, domain.ErrStateConflict), "проигравший должен получить конфликт, а не %v", err)
		}
	}
	assert.Equal(t, 1, succeeded)

	// Кандидат пристроен ровно в одну из групп
	updated1, err := s.groups.GetGroup(ctx, g1.ID)
	require.NoError(t, err)
	updated2, err := s.groups.GetGroup(ctx, g2.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, updated1.MemberCount+updated2.MemberCount, "одно новое участие на двоих")
}
