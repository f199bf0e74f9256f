package service

import (
	"context"
	"testing"

	"clipstream/internal/model"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newUserServiceForTest() (UserService, *fakeUserRepo, *fakeSubscriptionRepo, *fakeAssetStore) {
	userRepo := newFakeUserRepo()
	subRepo := newFakeSubscriptionRepo()
	assets := &fakeAssetStore{}
	return NewUserService(userRepo, subRepo, assets), userRepo, subRepo, assets
}

func validRegisterInput() RegisterInput {
	return RegisterInput{
		Username: "Alice",
		Email:    "Alice@Example.com",
		FullName: "Alice Doe",
		Password: "secret123",
		Avatar:   fileHeader("avatar.png"),
	}
}

func TestRegisterHashesPasswordAndNormalizesIdentity(t *testing.T) {
	svc, _, _, _ := newUserServiceForTest()

	user, err := svc.Register(context.Background(), validRegisterInput())
	require.NoError(t, err)

	require.Equal(t, "alice", user.Username)
	require.Equal(t, "alice@example.com", user.Email)
	require.NotEqual(t, "secret123", user.Password)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("secret123")))
	require.NotEmpty(t, user.Avatar)
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	svc, _, _, _ := newUserServiceForTest()

	_, err := svc.Register(context.Background(), validRegisterInput())
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), validRegisterInput())
	require.ErrorIs(t, err, ErrConflict)
}

func TestRegisterRequiresAvatar(t *testing.T) {
	svc, _, _, _ := newUserServiceForTest()

	input := validRegisterInput()
	input.Avatar = nil
	_, err := svc.Register(context.Background(), input)
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestRegisterRequiresValidEmailAndPassword(t *testing.T) {
	svc, _, _, _ := newUserServiceForTest()

	input := validRegisterInput()
	input.Email = "not-an-email"
	_, err := svc.Register(context.Background(), input)
	require.ErrorIs(t, err, ErrInvalidArgument)

	input = validRegisterInput()
	input.Password = "short"
	_, err = svc.Register(context.Background(), input)
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestLoginByUsernameAndEmail(t *testing.T) {
	t.Setenv("JWT_ACCESS_SECRET", "access-secret")
	t.Setenv("JWT_REFRESH_SECRET", "refresh-secret")

	svc, userRepo, _, _ := newUserServiceForTest()
	_, err := svc.Register(context.Background(), validRegisterInput())
	require.NoError(t, err)

	user, pair, err := svc.Login("alice", "secret123")
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)

	// The refresh token is persisted for later rotation.
	stored, err := userRepo.FindByID(user.ID)
	require.NoError(t, err)
	require.Equal(t, pair.RefreshToken, stored.RefreshToken)

	_, _, err = svc.Login("alice@example.com", "secret123")
	require.NoError(t, err)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	t.Setenv("JWT_ACCESS_SECRET", "access-secret")
	t.Setenv("JWT_REFRESH_SECRET", "refresh-secret")

	svc, _, _, _ := newUserServiceForTest()
	_, err := svc.Register(context.Background(), validRegisterInput())
	require.NoError(t, err)

	_, _, err = svc.Login("alice", "wrong-password")
	require.ErrorIs(t, err, ErrUnauthorized)

	_, _, err = svc.Login("nobody", "secret123")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestRefreshTokensRequiresStoredMatch(t *testing.T) {
	t.Setenv("JWT_ACCESS_SECRET", "access-secret")
	t.Setenv("JWT_REFRESH_SECRET", "refresh-secret")

	svc, userRepo, _, _ := newUserServiceForTest()
	_, err := svc.Register(context.Background(), validRegisterInput())
	require.NoError(t, err)

	user, pair, err := svc.Login("alice", "secret123")
	require.NoError(t, err)

	rotated, err := svc.RefreshTokens(pair.RefreshToken)
	require.NoError(t, err)
	require.NotEmpty(t, rotated.AccessToken)

	// A token that no longer matches the stored one is rejected.
	require.NoError(t, userRepo.UpdateRefreshToken(user.ID, "something-else"))
	_, err = svc.RefreshTokens(pair.RefreshToken)
	require.ErrorIs(t, err, ErrUnauthorized)

	_, err = svc.RefreshTokens("garbage")
	require.ErrorIs(t, err, ErrUnauthorized)
}

func TestLogoutClearsRefreshToken(t *testing.T) {
	t.Setenv("JWT_ACCESS_SECRET", "access-secret")
	t.Setenv("JWT_REFRESH_SECRET", "refresh-secret")

	svc, userRepo, _, _ := newUserServiceForTest()
	_, err := svc.Register(context.Background(), validRegisterInput())
	require.NoError(t, err)
	user, _, err := svc.Login("alice", "secret123")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(user.ID))
	stored, err := userRepo.FindByID(user.ID)
	require.NoError(t, err)
	require.Empty(t, stored.RefreshToken)
}

func TestChangePasswordVerifiesOldPassword(t *testing.T) {
	svc, _, _, _ := newUserServiceForTest()
	user, err := svc.Register(context.Background(), validRegisterInput())
	require.NoError(t, err)

	err = svc.ChangePassword(user.ID, "wrong", "newsecret")
	require.ErrorIs(t, err, ErrUnauthorized)

	err = svc.ChangePassword(user.ID, "secret123", "short")
	require.ErrorIs(t, err, ErrInvalidArgument)

	require.NoError(t, svc.ChangePassword(user.ID, "secret123", "newsecret"))
}

func TestUpdateAvatarDeletesReplacedAsset(t *testing.T) {
	svc, _, _, assets := newUserServiceForTest()
	user, err := svc.Register(context.Background(), validRegisterInput())
	require.NoError(t, err)
	oldAvatar := user.Avatar

	updated, err := svc.UpdateAvatar(context.Background(), user.ID, fileHeader("new.png"))
	require.NoError(t, err)
	require.NotEqual(t, oldAvatar, updated.Avatar)
	require.Contains(t, assets.deleted, oldAvatar)
}

func TestGetChannelProfileAggregatesSubscriptions(t *testing.T) {
	svc, userRepo, subRepo, _ := newUserServiceForTest()

	channel := &model.User{Username: "channel", Email: "channel@example.com", FullName: "Channel"}
	require.NoError(t, userRepo.Create(channel))
	viewer := &model.User{Username: "viewer", Email: "viewer@example.com", FullName: "Viewer"}
	require.NoError(t, userRepo.Create(viewer))

	require.NoError(t, subRepo.Create(&model.Subscription{SubscriberID: viewer.ID, ChannelID: channel.ID}))
	require.NoError(t, subRepo.Create(&model.Subscription{SubscriberID: channel.ID, ChannelID: viewer.ID}))

	profile, err := svc.GetChannelProfile("channel", viewer.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), profile.SubscribersCount)
	require.Equal(t, int64(1), profile.ChannelsSubscribedToCount)
	require.True(t, profile.IsSubscribed)

	// Anonymous callers never show as subscribed.
	profile, err = svc.GetChannelProfile("channel", 0)
	require.NoError(t, err)
	require.False(t, profile.IsSubscribed)

	_, err = svc.GetChannelProfile("ghost", viewer.ID)
	require.ErrorIs(t, err, ErrNotFound)
}
