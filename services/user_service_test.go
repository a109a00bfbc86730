package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func newUserFixture(t *testing.T) *UserService {
	t.Helper()
	svc := NewUserService(newTestDB(t), newTestBus(), testSecret, time.Hour)
	svc.now = func() time.Time { return testNow }
	return svc
}

func TestUserLogin(t *testing.T) {
	svc := newUserFixture(t)

	_, err := svc.Create(testCtx(), CreateUserInput{Username: "maria", Password: "s3cret1"})
	require.NoError(t, err)

	result, err := svc.Login(testCtx(), "maria", "s3cret1")
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	require.NotNil(t, result.User.LastLogin)
	assert.True(t, result.User.LastLogin.Equal(testNow))

	_, err = svc.Login(testCtx(), "maria", "wrong")
	assert.ErrorIs(t, err, ErrUserBadCredentials)

	// unknown account fails identically
	_, err = svc.Login(testCtx(), "nobody", "s3cret1")
	assert.ErrorIs(t, err, ErrUserBadCredentials)
}

func TestUserInactiveCannotLogin(t *testing.T) {
	svc := newUserFixture(t)

	user, err := svc.Create(testCtx(), CreateUserInput{Username: "jose", Password: "s3cret1"})
	require.NoError(t, err)
	_, err = svc.SetActive(testCtx(), user.ID, false)
	require.NoError(t, err)

	_, err = svc.Login(testCtx(), "jose", "s3cret1")
	assert.ErrorIs(t, err, ErrUserInactive)
}

func TestUserChangePassword(t *testing.T) {
	svc := newUserFixture(t)

	user, err := svc.Create(testCtx(), CreateUserInput{Username: "ana", Password: "oldpass"})
	require.NoError(t, err)

	err = svc.ChangePassword(testCtx(), user.ID, "wrongpass", "newpass1")
	assert.ErrorIs(t, err, ErrUserWrongPassword)

	err = svc.ChangePassword(testCtx(), user.ID, "oldpass", "short")
	assert.ErrorIs(t, err, ErrUserPasswordTooShort)

	require.NoError(t, svc.ChangePassword(testCtx(), user.ID, "oldpass", "newpass1"))

	_, err = svc.Login(testCtx(), "ana", "newpass1")
	assert.NoError(t, err)
}

func TestUserUniqueUsername(t *testing.T) {
	svc := newUserFixture(t)

	_, err := svc.Create(testCtx(), CreateUserInput{Username: "dup", Password: "s3cret1"})
	require.NoError(t, err)
	_, err = svc.Create(testCtx(), CreateUserInput{Username: "dup", Password: "s3cret2"})
	assert.ErrorIs(t, err, ErrUserUsernameTaken)
}

func TestUserStats(t *testing.T) {
	svc := newUserFixture(t)

	_, err := svc.Create(testCtx(), CreateUserInput{Username: "u1", Password: "s3cret1"})
	require.NoError(t, err)
	u2, err := svc.Create(testCtx(), CreateUserInput{Username: "u2", Password: "s3cret1"})
	require.NoError(t, err)
	_, err = svc.SetActive(testCtx(), u2.ID, false)
	require.NoError(t, err)

	stats, err := svc.Stats(testCtx())
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.Total)
	assert.Equal(t, int64(1), stats.Active)
	assert.Equal(t, int64(1), stats.Inactive)
}
