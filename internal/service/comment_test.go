package service

import (
	"fmt"
	"testing"

	"clipstream/internal/model"

	"github.com/stretchr/testify/require"
)

func newCommentServiceForTest(t *testing.T) (CommentService, *fakeCommentRepo, *fakeVideoRepo) {
	t.Helper()
	videoRepo := newFakeVideoRepo()
	commentRepo := newFakeCommentRepo()
	require.NoError(t, videoRepo.Create(&model.Video{OwnerID: 1, Title: "a video"}))
	return NewCommentService(commentRepo, videoRepo), commentRepo, videoRepo
}

func TestCommentCreateRequiresVideoAndContent(t *testing.T) {
	svc, _, _ := newCommentServiceForTest(t)

	_, err := svc.Create(5, 1, "   ")
	require.ErrorIs(t, err, ErrInvalidArgument)

	_, err = svc.Create(5, 404, "hello")
	require.ErrorIs(t, err, ErrNotFound)

	comment, err := svc.Create(5, 1, "hello")
	require.NoError(t, err)
	require.Equal(t, uint64(5), comment.OwnerID)
	require.Equal(t, "hello", comment.Content)
}

func TestCommentListZeroCommentsIsNotFound(t *testing.T) {
	svc, _, _ := newCommentServiceForTest(t)

	_, _, err := svc.List(1, 1, 10)
	require.ErrorIs(t, err, ErrNotFound)

	_, _, err = svc.List(404, 1, 10)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestCommentListPaginates(t *testing.T) {
	svc, commentRepo, _ := newCommentServiceForTest(t)
	for i := 0; i < 12; i++ {
		require.NoError(t, commentRepo.Create(&model.Comment{
			VideoID: 1, OwnerID: 5, Content: fmt.Sprintf("comment %d", i),
		}))
	}

	comments, total, err := svc.List(1, 1, 10)
	require.NoError(t, err)
	require.Equal(t, int64(12), total)
	require.Len(t, comments, 10)

	comments, total, err = svc.List(1, 2, 10)
	require.NoError(t, err)
	require.Equal(t, int64(12), total)
	require.Len(t, comments, 2)
}

func TestCommentUpdateAndDelete(t *testing.T) {
	svc, _, _ := newCommentServiceForTest(t)
	comment, err := svc.Create(5, 1, "original")
	require.NoError(t, err)

	updated, err := svc.Update(comment.ID, "edited")
	require.NoError(t, err)
	require.Equal(t, "edited", updated.Content)

	_, err = svc.Update(404, "edited")
	require.ErrorIs(t, err, ErrNotFound)

	deleted, err := svc.Delete(comment.ID)
	require.NoError(t, err)
	require.Equal(t, comment.ID, deleted.ID)

	_, err = svc.Delete(comment.ID)
	require.ErrorIs(t, err, ErrNotFound)
}
