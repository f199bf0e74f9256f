package service

import (
	"context"
	"fmt"
	"mime/multipart"
	"sort"
	"strings"

	"clipstream/internal/model"
	"clipstream/internal/repository"
	"clipstream/pkg/storage"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

// duplicateKeyErr mimics what the MySQL driver returns when a unique index
// rejects an insert.
func duplicateKeyErr() error {
	return &mysql.MySQLError{Number: 1062, Message: "Duplicate entry"}
}

// ---- users ----

type fakeUserRepo struct {
	nextID  uint64
	users   map[uint64]*model.User
	history []model.WatchEntry
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[uint64]*model.User{}}
}

func (f *fakeUserRepo) Create(user *model.User) error {
	for _, u := range f.users {
		if u.Username == user.Username || u.Email == user.Email {
			return duplicateKeyErr()
		}
	}
	f.nextID++
	user.ID = f.nextID
	cp := *user
	f.users[user.ID] = &cp
	return nil
}

func (f *fakeUserRepo) FindByID(userID uint64) (*model.User, error) {
	u, ok := f.users[userID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) FindByUsername(username string) (*model.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) FindByEmail(email string) (*model.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) Update(userID uint64, fields map[string]interface{}) (int64, error) {
	u, ok := f.users[userID]
	if !ok {
		return 0, nil
	}
	if v, ok := fields["username"]; ok {
		username := v.(string)
		for id, other := range f.users {
			if id != userID && other.Username == username {
				return 0, duplicateKeyErr()
			}
		}
		u.Username = username
	}
	if v, ok := fields["email"]; ok {
		email := v.(string)
		for id, other := range f.users {
			if id != userID && other.Email == email {
				return 0, duplicateKeyErr()
			}
		}
		u.Email = email
	}
	if v, ok := fields["full_name"]; ok {
		u.FullName = v.(string)
	}
	if v, ok := fields["password"]; ok {
		u.Password = v.(string)
	}
	if v, ok := fields["avatar"]; ok {
		u.Avatar = v.(string)
	}
	if v, ok := fields["cover_image"]; ok {
		u.CoverImage = v.(string)
	}
	return 1, nil
}

func (f *fakeUserRepo) UpdateRefreshToken(userID uint64, token string) error {
	u, ok := f.users[userID]
	if !ok {
		return nil
	}
	u.RefreshToken = token
	return nil
}

func (f *fakeUserRepo) AddWatchEntry(userID, videoID uint64) error {
	f.history = append(f.history, model.WatchEntry{UserID: userID, VideoID: videoID})
	return nil
}

func (f *fakeUserRepo) GetWatchHistory(userID uint64) ([]model.WatchEntry, error) {
	var out []model.WatchEntry
	// Newest first.
	for i := len(f.history) - 1; i >= 0; i-- {
		if f.history[i].UserID == userID {
			out = append(out, f.history[i])
		}
	}
	return out, nil
}

func (f *fakeUserRepo) WithTx(tx *gorm.DB) repository.UserRepository { return f }

// ---- videos ----

type fakeVideoRepo struct {
	nextID uint64
	videos map[uint64]*model.Video
	order  []uint64
}

func newFakeVideoRepo() *fakeVideoRepo {
	return &fakeVideoRepo{videos: map[uint64]*model.Video{}}
}

func (f *fakeVideoRepo) Create(video *model.Video) error {
	f.nextID++
	video.ID = f.nextID
	cp := *video
	f.videos[video.ID] = &cp
	f.order = append(f.order, video.ID)
	return nil
}

func (f *fakeVideoRepo) FindByID(videoID uint64) (*model.Video, error) {
	v, ok := f.videos[videoID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *v
	return &cp, nil
}

func (f *fakeVideoRepo) List(params repository.ListVideosParams) ([]model.Video, int64, error) {
	var matched []model.Video
	for _, id := range f.order {
		v := f.videos[id]
		if params.Query != "" &&
			!strings.Contains(v.Title, params.Query) &&
			!strings.Contains(v.Description, params.Query) {
			continue
		}
		if params.OwnerID != 0 && v.OwnerID != params.OwnerID {
			continue
		}
		matched = append(matched, *v)
	}
	if params.SortDesc {
		sort.SliceStable(matched, func(i, j int) bool { return matched[i].ID > matched[j].ID })
	}
	total := int64(len(matched))
	if params.Offset >= len(matched) {
		return nil, total, nil
	}
	end := params.Offset + params.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[params.Offset:end], total, nil
}

func (f *fakeVideoRepo) Update(videoID uint64, fields map[string]interface{}) (int64, error) {
	v, ok := f.videos[videoID]
	if !ok {
		return 0, nil
	}
	if t, ok := fields["title"]; ok {
		v.Title = t.(string)
	}
	if d, ok := fields["description"]; ok {
		v.Description = d.(string)
	}
	if t, ok := fields["thumbnail"]; ok {
		v.Thumbnail = t.(string)
	}
	return 1, nil
}

func (f *fakeVideoRepo) Delete(videoID uint64) (int64, error) {
	if _, ok := f.videos[videoID]; !ok {
		return 0, nil
	}
	delete(f.videos, videoID)
	for i, id := range f.order {
		if id == videoID {
			f.order = append(f.order[:i], f.order[i+1:]...)
			break
		}
	}
	return 1, nil
}

func (f *fakeVideoRepo) TogglePublish(videoID uint64) (int64, error) {
	v, ok := f.videos[videoID]
	if !ok {
		return 0, nil
	}
	v.IsPublished = !v.IsPublished
	return 1, nil
}

func (f *fakeVideoRepo) IncrementViews(videoID uint64) error {
	v, ok := f.videos[videoID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	v.Views++
	return nil
}

func (f *fakeVideoRepo) GetVideoCache(videoID uint64) (*model.Video, error) { return nil, nil }
func (f *fakeVideoRepo) SetVideoCache(video *model.Video) error             { return nil }
func (f *fakeVideoRepo) InvalidateCache(videoID uint64) error               { return nil }
func (f *fakeVideoRepo) WithTx(tx *gorm.DB) repository.VideoRepository     { return f }

// ---- comments ----

type fakeCommentRepo struct {
	nextID   uint64
	comments map[uint64]*model.Comment
	order    []uint64
}

func newFakeCommentRepo() *fakeCommentRepo {
	return &fakeCommentRepo{comments: map[uint64]*model.Comment{}}
}

func (f *fakeCommentRepo) Create(comment *model.Comment) error {
	f.nextID++
	comment.ID = f.nextID
	cp := *comment
	f.comments[comment.ID] = &cp
	f.order = append(f.order, comment.ID)
	return nil
}

func (f *fakeCommentRepo) FindByID(commentID uint64) (*model.Comment, error) {
	c, ok := f.comments[commentID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *c
	return &cp, nil
}

func (f *fakeCommentRepo) ListByVideo(videoID uint64, offset, limit int) ([]model.Comment, int64, error) {
	var matched []model.Comment
	for _, id := range f.order {
		c := f.comments[id]
		if c.VideoID == videoID {
			matched = append(matched, *c)
		}
	}
	total := int64(len(matched))
	if offset >= len(matched) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

func (f *fakeCommentRepo) Update(commentID uint64, content string) (int64, error) {
	c, ok := f.comments[commentID]
	if !ok {
		return 0, nil
	}
	c.Content = content
	return 1, nil
}

func (f *fakeCommentRepo) Delete(commentID uint64) (int64, error) {
	if _, ok := f.comments[commentID]; !ok {
		return 0, nil
	}
	delete(f.comments, commentID)
	return 1, nil
}

// ---- likes ----

type fakeLikeRepo struct {
	nextID uint64
	likes  map[uint64]*model.Like
	videos *fakeVideoRepo

	// hideFromFind simulates the window where a racing insert has landed but
	// the preceding Find saw nothing.
	hideFromFind bool
}

func newFakeLikeRepo(videos *fakeVideoRepo) *fakeLikeRepo {
	return &fakeLikeRepo{likes: map[uint64]*model.Like{}, videos: videos}
}

func (f *fakeLikeRepo) Create(like *model.Like) error {
	for _, l := range f.likes {
		if l.LikeByID == like.LikeByID && l.TargetKind == like.TargetKind && l.TargetID == like.TargetID {
			return duplicateKeyErr()
		}
	}
	f.nextID++
	like.ID = f.nextID
	cp := *like
	f.likes[like.ID] = &cp
	return nil
}

func (f *fakeLikeRepo) Find(likeByID uint64, targetKind string, targetID uint64) (*model.Like, error) {
	if f.hideFromFind {
		return nil, gorm.ErrRecordNotFound
	}
	for _, l := range f.likes {
		if l.LikeByID == likeByID && l.TargetKind == targetKind && l.TargetID == targetID {
			cp := *l
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

// DeleteByID drops the row entirely, like the repository's raw DELETE; a
// lingering tombstone would make Create report a duplicate forever.
func (f *fakeLikeRepo) DeleteByID(likeID uint64) (int64, error) {
	if _, ok := f.likes[likeID]; !ok {
		return 0, nil
	}
	delete(f.likes, likeID)
	return 1, nil
}

func (f *fakeLikeRepo) CountFor(targetKind string, targetID uint64) (int64, error) {
	var count int64
	for _, l := range f.likes {
		if l.TargetKind == targetKind && l.TargetID == targetID {
			count++
		}
	}
	return count, nil
}

func (f *fakeLikeRepo) Exists(likeByID uint64, targetKind string, targetID uint64) (bool, error) {
	for _, l := range f.likes {
		if l.LikeByID == likeByID && l.TargetKind == targetKind && l.TargetID == targetID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeLikeRepo) ListVideosLikedBy(userID uint64) ([]model.Video, error) {
	var out []model.Video
	for _, l := range f.likes {
		if l.LikeByID != userID || l.TargetKind != model.LikeTargetVideo {
			continue
		}
		if v, ok := f.videos.videos[l.TargetID]; ok {
			out = append(out, *v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// ---- tweets ----

type fakeTweetRepo struct {
	nextID uint64
	tweets map[uint64]*model.Tweet
	order  []uint64
}

func newFakeTweetRepo() *fakeTweetRepo {
	return &fakeTweetRepo{tweets: map[uint64]*model.Tweet{}}
}

func (f *fakeTweetRepo) Create(tweet *model.Tweet) error {
	f.nextID++
	tweet.ID = f.nextID
	cp := *tweet
	f.tweets[tweet.ID] = &cp
	f.order = append(f.order, tweet.ID)
	return nil
}

func (f *fakeTweetRepo) FindByID(tweetID uint64) (*model.Tweet, error) {
	t, ok := f.tweets[tweetID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *t
	return &cp, nil
}

func (f *fakeTweetRepo) ListByOwner(ownerID uint64) ([]model.Tweet, error) {
	var out []model.Tweet
	for i := len(f.order) - 1; i >= 0; i-- {
		t := f.tweets[f.order[i]]
		if t != nil && t.OwnerID == ownerID {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (f *fakeTweetRepo) Update(tweetID uint64, content string) (int64, error) {
	t, ok := f.tweets[tweetID]
	if !ok {
		return 0, nil
	}
	t.Content = content
	return 1, nil
}

func (f *fakeTweetRepo) Delete(tweetID uint64) (int64, error) {
	if _, ok := f.tweets[tweetID]; !ok {
		return 0, nil
	}
	delete(f.tweets, tweetID)
	return 1, nil
}

// ---- playlists ----

type fakePlaylistRepo struct {
	nextID    uint64
	playlists map[uint64]*model.Playlist
	entries   []model.PlaylistVideo
	entryID   uint64
}

func newFakePlaylistRepo() *fakePlaylistRepo {
	return &fakePlaylistRepo{playlists: map[uint64]*model.Playlist{}}
}

func (f *fakePlaylistRepo) Create(playlist *model.Playlist) error {
	f.nextID++
	playlist.ID = f.nextID
	cp := *playlist
	f.playlists[playlist.ID] = &cp
	return nil
}

func (f *fakePlaylistRepo) FindByID(playlistID uint64) (*model.Playlist, error) {
	p, ok := f.playlists[playlistID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakePlaylistRepo) ListByOwner(ownerID uint64) ([]model.Playlist, error) {
	var out []model.Playlist
	for _, p := range f.playlists {
		if p.OwnerID == ownerID {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakePlaylistRepo) Update(playlistID uint64, fields map[string]interface{}) (int64, error) {
	p, ok := f.playlists[playlistID]
	if !ok {
		return 0, nil
	}
	if v, ok := fields["name"]; ok {
		p.Name = v.(string)
	}
	if v, ok := fields["description"]; ok {
		p.Description = v.(string)
	}
	return 1, nil
}

func (f *fakePlaylistRepo) Delete(playlistID uint64) (int64, error) {
	if _, ok := f.playlists[playlistID]; !ok {
		return 0, nil
	}
	delete(f.playlists, playlistID)
	return 1, nil
}

func (f *fakePlaylistRepo) ListVideos(playlistID uint64) ([]model.PlaylistVideo, error) {
	var out []model.PlaylistVideo
	for _, e := range f.entries {
		if e.PlaylistID == playlistID {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}

func (f *fakePlaylistRepo) HasVideo(playlistID, videoID uint64) (bool, error) {
	for _, e := range f.entries {
		if e.PlaylistID == playlistID && e.VideoID == videoID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakePlaylistRepo) AddVideo(playlistID, videoID uint64) error {
	maxPos := 0
	for _, e := range f.entries {
		if e.PlaylistID == playlistID {
			if e.VideoID == videoID {
				return duplicateKeyErr()
			}
			if e.Position > maxPos {
				maxPos = e.Position
			}
		}
	}
	f.entryID++
	entry := model.PlaylistVideo{
		PlaylistID: playlistID,
		VideoID:    videoID,
		Position:   maxPos + 1,
	}
	entry.ID = f.entryID
	f.entries = append(f.entries, entry)
	return nil
}

func (f *fakePlaylistRepo) RemoveVideo(playlistID, videoID uint64) (int64, error) {
	for i, e := range f.entries {
		if e.PlaylistID == playlistID && e.VideoID == videoID {
			f.entries = append(f.entries[:i], f.entries[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

// ---- subscriptions ----

type fakeSubscriptionRepo struct {
	nextID uint64
	subs   map[uint64]*model.Subscription

	// vanishOnDelete simulates a concurrent toggle winning the delete first.
	vanishOnDelete bool
}

func newFakeSubscriptionRepo() *fakeSubscriptionRepo {
	return &fakeSubscriptionRepo{subs: map[uint64]*model.Subscription{}}
}

func (f *fakeSubscriptionRepo) Create(sub *model.Subscription) error {
	for _, s := range f.subs {
		if s.SubscriberID == sub.SubscriberID && s.ChannelID == sub.ChannelID {
			return duplicateKeyErr()
		}
	}
	f.nextID++
	sub.ID = f.nextID
	cp := *sub
	f.subs[sub.ID] = &cp
	return nil
}

func (f *fakeSubscriptionRepo) Find(subscriberID, channelID uint64) (*model.Subscription, error) {
	for _, s := range f.subs {
		if s.SubscriberID == subscriberID && s.ChannelID == channelID {
			cp := *s
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeSubscriptionRepo) DeleteByID(subID uint64) (int64, error) {
	if f.vanishOnDelete {
		delete(f.subs, subID)
		return 0, nil
	}
	if _, ok := f.subs[subID]; !ok {
		return 0, nil
	}
	delete(f.subs, subID)
	return 1, nil
}

func (f *fakeSubscriptionRepo) Exists(subscriberID, channelID uint64) (bool, error) {
	_, err := f.Find(subscriberID, channelID)
	if err != nil {
		return false, nil
	}
	return true, nil
}

func (f *fakeSubscriptionRepo) CountByChannel(channelID uint64) (int64, error) {
	var count int64
	for _, s := range f.subs {
		if s.ChannelID == channelID {
			count++
		}
	}
	return count, nil
}

func (f *fakeSubscriptionRepo) CountBySubscriber(subscriberID uint64) (int64, error) {
	var count int64
	for _, s := range f.subs {
		if s.SubscriberID == subscriberID {
			count++
		}
	}
	return count, nil
}

func (f *fakeSubscriptionRepo) ListSubscribers(channelID uint64) ([]model.Subscription, error) {
	var out []model.Subscription
	for _, s := range f.subs {
		if s.ChannelID == channelID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (f *fakeSubscriptionRepo) ListChannels(subscriberID uint64) ([]model.Subscription, error) {
	var out []model.Subscription
	for _, s := range f.subs {
		if s.SubscriberID == subscriberID {
			out = append(out, *s)
		}
	}
	return out, nil
}

// ---- asset store ----

type fakeAssetStore struct {
	uploads int
	deleted []string
	failUp  bool
}

func (f *fakeAssetStore) Upload(ctx context.Context, file *multipart.FileHeader) (*storage.UploadResult, error) {
	if f.failUp {
		return nil, fmt.Errorf("upstream unavailable")
	}
	f.uploads++
	return &storage.UploadResult{
		URL: fmt.Sprintf("https://assets.test/bucket/%d-%s", f.uploads, file.Filename),
	}, nil
}

func (f *fakeAssetStore) Delete(ctx context.Context, assetURL string) error {
	f.deleted = append(f.deleted, assetURL)
	return nil
}

// ---- view publisher ----

type fakeViewPublisher struct {
	published []ViewMessage
}

func (f *fakeViewPublisher) PublishView(msg ViewMessage) error {
	f.published = append(f.published, msg)
	return nil
}

func fileHeader(name string) *multipart.FileHeader {
	return &multipart.FileHeader{Filename: name}
}
