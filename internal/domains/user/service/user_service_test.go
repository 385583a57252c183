package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalog-backend/internal/domains/user"
	"catalog-backend/pkg/jwt"
)

type fakeUserRepo struct {
	users map[uuid.UUID]*user.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[uuid.UUID]*user.User{}}
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	return f.users[id], nil
}

func (f *fakeUserRepo) GetByPhone(ctx context.Context, phone string) (*user.User, error) {
	for _, u := range f.users {
		if u.Phone == phone {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) List(ctx context.Context) ([]*user.User, error) {
	users := make([]*user.User, 0, len(f.users))
	for _, u := range f.users {
		users = append(users, u)
	}
	return users, nil
}

func (f *fakeUserRepo) Create(ctx context.Context, u *user.User) (*user.User, error) {
	u.ID = uuid.New()
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	f.users[u.ID] = u
	return u, nil
}

func newTestUserService() (user.Service, *fakeUserRepo) {
	repo := newFakeUserRepo()
	return NewUserService(repo, jwt.NewManager("test-secret", time.Hour)), repo
}

func registerRequest() *user.RegisterRequest {
	return &user.RegisterRequest{
		Name:     "Omar",
		Email:    "omar@example.com",
		Phone:    "+970590000001",
		Password: "correct horse battery",
	}
}

func TestRegisterHashesPassword(t *testing.T) {
	svc, repo := newTestUserService()

	result, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)

	stored := repo.users[result.User.ID]
	require.NotNil(t, stored)
	assert.NotEqual(t, "correct horse battery", stored.Password)
	assert.NotEmpty(t, stored.Password)
}

func TestRegisterRejectsDuplicatePhone(t *testing.T) {
	svc, _ := newTestUserService()

	_, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	req := registerRequest()
	req.Email = "other@example.com"
	_, err = svc.Register(context.Background(), req)
	require.Error(t, err)

	status, _, code := user.GetErrorResponse(err)
	assert.Equal(t, 409, status)
	assert.Equal(t, "USER_ALREADY_EXISTS", code)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	svc, _ := newTestUserService()

	_, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	req := registerRequest()
	req.Phone = "+970590000002"
	_, err = svc.Register(context.Background(), req)
	require.Error(t, err)
	assert.True(t, user.IsConflict(err))
}

func TestRegisterRejectsBadEmail(t *testing.T) {
	svc, _ := newTestUserService()

	req := registerRequest()
	req.Email = "not-an-email"
	_, err := svc.Register(context.Background(), req)
	require.Error(t, err)

	status, _, code := user.GetErrorResponse(err)
	assert.Equal(t, 400, status)
	assert.Equal(t, "INVALID_USER_DATA", code)
}

func TestLogin(t *testing.T) {
	svc, _ := newTestUserService()

	_, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	result, err := svc.Login(context.Background(), &user.LoginRequest{
		Phone:    "+970590000001",
		Password: "correct horse battery",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, "omar@example.com", result.User.Email)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newTestUserService()

	_, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), &user.LoginRequest{
		Phone:    "+970590000001",
		Password: "wrong",
	})
	require.Error(t, err)

	status, _, code := user.GetErrorResponse(err)
	assert.Equal(t, 401, status)
	assert.Equal(t, "INVALID_CREDENTIALS", code)
}

func TestLoginUnknownPhone(t *testing.T) {
	svc, _ := newTestUserService()

	_, err := svc.Login(context.Background(), &user.LoginRequest{
		Phone:    "+970590009999",
		Password: "whatever",
	})
	require.Error(t, err)

	// unknown phone and wrong password must be indistinguishable
	status, _, code := user.GetErrorResponse(err)
	assert.Equal(t, 401, status)
	assert.Equal(t, "INVALID_CREDENTIALS", code)
}

func TestCheckTokenRoundtrip(t *testing.T) {
	svc, _ := newTestUserService()

	result, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	u, err := svc.CheckToken(context.Background(), result.Token)
	require.NoError(t, err)
	assert.Equal(t, result.User.ID, u.ID)
}

func TestGetUserRejectsBadID(t *testing.T) {
	svc, _ := newTestUserService()

	_, err := svc.GetUser(context.Background(), "not-a-uuid")
	require.Error(t, err)

	status, _, code := user.GetErrorResponse(err)
	assert.Equal(t, 400, status)
	assert.Equal(t, "INVALID_USER_ID", code)
}

func TestGetUserNotFound(t *testing.T) {
	svc, _ := newTestUserService()

	_, err := svc.GetUser(context.Background(), uuid.NewString())
	require.Error(t, err)

	status, _, code := user.GetErrorResponse(err)
	assert.Equal(t, 404, status)
	assert.Equal(t, "USER_NOT_FOUND", code)
}

func TestListUsers(t *testing.T) {
	svc, _ := newTestUserService()

	_, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	users, err := svc.ListUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "omar@example.com", users[0].Email)
}

func TestCheckTokenRejectsGarbage(t *testing.T) {
	svc, _ := newTestUserService()

	_, err := svc.CheckToken(context.Background(), "not.a.token")
	require.Error(t, err)

	status, _, code := user.GetErrorResponse(err)
	assert.Equal(t, 401, status)
	assert.Equal(t, "INVALID_TOKEN", code)
}
