package service

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTweetCreateRequiresContent(t *testing.T) {
	svc := NewTweetService(newFakeTweetRepo())

	_, err := svc.Create(1, "  ")
	require.ErrorIs(t, err, ErrInvalidArgument)

	tweet, err := svc.Create(1, "hello world")
	require.NoError(t, err)
	require.Equal(t, uint64(1), tweet.OwnerID)
	require.Equal(t, "hello world", tweet.Content)
}

func TestGetUserTweetsIsOwnerOnly(t *testing.T) {
	repo := newFakeTweetRepo()
	svc := NewTweetService(repo)

	_, err := svc.Create(1, "first")
	require.NoError(t, err)
	_, err = svc.Create(1, "second")
	require.NoError(t, err)
	_, err = svc.Create(2, "other")
	require.NoError(t, err)

	tweets, err := svc.GetUserTweets(1, 1)
	require.NoError(t, err)
	require.Len(t, tweets, 2)
	// Newest first.
	require.Equal(t, "second", tweets[0].Content)

	_, err = svc.GetUserTweets(1, 2)
	require.ErrorIs(t, err, ErrPermissionDenied)
}

func TestTweetUpdateEnforcesOwnership(t *testing.T) {
	svc := NewTweetService(newFakeTweetRepo())
	tweet, err := svc.Create(1, "original")
	require.NoError(t, err)

	_, err = svc.Update(tweet.ID, 2, "hijacked")
	require.ErrorIs(t, err, ErrPermissionDenied)

	updated, err := svc.Update(tweet.ID, 1, "edited")
	require.NoError(t, err)
	require.Equal(t, "edited", updated.Content)

	_, err = svc.Update(404, 1, "edited")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestTweetDeleteEnforcesOwnership(t *testing.T) {
	svc := NewTweetService(newFakeTweetRepo())
	tweet, err := svc.Create(1, "to be removed")
	require.NoError(t, err)

	_, err = svc.Delete(tweet.ID, 2)
	require.ErrorIs(t, err, ErrPermissionDenied)

	deleted, err := svc.Delete(tweet.ID, 1)
	require.NoError(t, err)
	require.Equal(t, tweet.ID, deleted.ID)

	_, err = svc.Delete(tweet.ID, 1)
	require.ErrorIs(t, err, ErrNotFound)
}
