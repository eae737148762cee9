package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Apurer/shareit/internal/domains/users/adapters/memory"
	"github.com/Apurer/shareit/internal/domains/users/domain"
	"github.com/Apurer/shareit/internal/domains/users/ports"
)

func TestCreateUser(t *testing.T) {
	svc := NewService(memory.NewRepository())

	user, err := svc.Create(context.Background(), "alice@example.com", "Alice")
	require.NoError(t, err)
	require.Equal(t, int64(1), user.ID)
	require.Equal(t, "alice@example.com", user.Email)
	require.Equal(t, "Alice", user.Name)
}

func TestCreateUser_InvalidEmail(t *testing.T) {
	svc := NewService(memory.NewRepository())

	_, err := svc.Create(context.Background(), "not-an-email", "Alice")
	require.ErrorIs(t, err, ErrInvalidInput)
	require.ErrorIs(t, err, domain.ErrInvalidEmail)
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	svc := NewService(memory.NewRepository())

	_, err := svc.Create(context.Background(), "alice@example.com", "Alice")
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), "alice@example.com", "Another Alice")
	require.ErrorIs(t, err, ports.ErrEmailTaken)
}

func TestUpdateUser_OwnEmailIsNoConflict(t *testing.T) {
	svc := NewService(memory.NewRepository())

	user, err := svc.Create(context.Background(), "alice@example.com", "Alice")
	require.NoError(t, err)

	email := "alice@example.com"
	updated, err := svc.Update(context.Background(), user.ID, ports.UpdateUser{Email: &email})
	require.NoError(t, err)
	require.Equal(t, email, updated.Email)
}

func TestUpdateUser_EmailTakenByOther(t *testing.T) {
	svc := NewService(memory.NewRepository())

	_, err := svc.Create(context.Background(), "alice@example.com", "Alice")
	require.NoError(t, err)
	bob, err := svc.Create(context.Background(), "bob@example.com", "Bob")
	require.NoError(t, err)

	email := "alice@example.com"
	_, err = svc.Update(context.Background(), bob.ID, ports.UpdateUser{Email: &email})
	require.ErrorIs(t, err, ports.ErrEmailTaken)
}

func TestUpdateUser_PartialPatch(t *testing.T) {
	svc := NewService(memory.NewRepository())

	user, err := svc.Create(context.Background(), "alice@example.com", "Alice")
	require.NoError(t, err)

	name := "Alice Cooper"
	updated, err := svc.Update(context.Background(), user.ID, ports.UpdateUser{Name: &name})
	require.NoError(t, err)
	require.Equal(t, "Alice Cooper", updated.Name)
	require.Equal(t, "alice@example.com", updated.Email)
}

func TestRemoveUser_NotFound(t *testing.T) {
	svc := NewService(memory.NewRepository())

	err := svc.Remove(context.Background(), 42)
	require.ErrorIs(t, err, ports.ErrNotFound)
}
