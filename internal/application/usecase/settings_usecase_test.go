package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/hotel-warehouse/internal/application/dto"
	"github.com/jhoicas/hotel-warehouse/internal/application/usecase"
	"github.com/jhoicas/hotel-warehouse/internal/domain"
	"github.com/jhoicas/hotel-warehouse/internal/domain/entity"
)

func TestEnsureDefaults_SeedsOnceOnly(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	s, err := f.settings.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, usecase.DefaultZones, s.Zones)
	assert.Equal(t, usecase.DefaultDepartments, s.Departments)

	_, err = f.settings.AddEntry(ctx, usecase.SetCategories, "Linen")
	require.NoError(t, err)
	require.NoError(t, f.settings.EnsureDefaults(ctx))

	s, err = f.settings.Get(ctx)
	require.NoError(t, err)
	assert.Contains(t, s.Categories, "Linen", "existing settings are left alone")

	users, err := f.settings.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, len(usecase.DefaultUsers))
	assert.Equal(t, "Admin User", users[0].Name)
	assert.Equal(t, entity.RoleManager, users[0].Role)
}

func TestAddRemoveEntry(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	s, err := f.settings.AddEntry(ctx, usecase.SetZones, "  Cold Room  ")
	require.NoError(t, err)
	assert.Equal(t, "Cold Room", s.Zones[len(s.Zones)-1], "appended in display order")

	_, err = f.settings.AddEntry(ctx, usecase.SetZones, "cold room")
	assert.ErrorIs(t, err, domain.ErrDuplicate)
	_, err = f.settings.AddEntry(ctx, usecase.SetZones, "All Zones")
	assert.ErrorIs(t, err, domain.ErrInvalidZone)
	_, err = f.settings.AddEntry(ctx, usecase.SetDepartments, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = f.settings.AddEntry(ctx, usecase.SettingSet("colors"), "Red")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.settings.RemoveEntry(ctx, usecase.SetDepartments, "Nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	zones := append([]string{"Cold Room"}, usecase.DefaultZones...)
	for _, z := range zones[:len(zones)-1] {
		_, err = f.settings.RemoveEntry(ctx, usecase.SetZones, z)
		require.NoError(t, err)
	}
	_, err = f.settings.RemoveEntry(ctx, usecase.SetZones, zones[len(zones)-1])
	assert.ErrorIs(t, err, domain.ErrConflict, "the last zone stays")
}

func TestProfiles(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.settings.CreateUser(ctx, dto.CreateUserRequest{Name: " J. Reyes "})
	require.NoError(t, err)
	assert.Equal(t, "J. Reyes", created.Name)
	assert.Equal(t, entity.RoleStaff, created.Role, "role defaults to staff")

	_, err = f.settings.CreateUser(ctx, dto.CreateUserRequest{Name: "X", Role: "Owner"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	actor := dto.Actor{UserID: created.ID, Name: created.Name}
	assert.ErrorIs(t, f.settings.DeleteUser(ctx, actor, created.ID), domain.ErrConflict)
	assert.ErrorIs(t, f.settings.DeleteUser(ctx, actor, "missing"), domain.ErrNotFound)

	users, err := f.settings.ListUsers(ctx)
	require.NoError(t, err)
	for _, u := range users {
		if u.ID != created.ID {
			require.NoError(t, f.settings.DeleteUser(ctx, actor, u.ID))
		}
	}
	remaining, err := f.settings.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, created.ID, remaining[0].ID)
}

func TestPasscode(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	ok, err := f.settings.VerifyPasscode(ctx, "1234")
	require.NoError(t, err)
	assert.True(t, ok)

	err = f.settings.ChangePasscode(ctx, dto.ChangePasscodeRequest{Current: "0000", New: "5678"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	err = f.settings.ChangePasscode(ctx, dto.ChangePasscodeRequest{Current: "1234", New: "12"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	require.NoError(t, f.settings.ChangePasscode(ctx, dto.ChangePasscodeRequest{Current: "1234", New: "5678"}))
	ok, err = f.settings.VerifyPasscode(ctx, "1234")
	require.NoError(t, err)
	assert.False(t, ok)
	ok, err = f.settings.VerifyPasscode(ctx, "5678")
	require.NoError(t, err)
	assert.True(t, ok)
}
