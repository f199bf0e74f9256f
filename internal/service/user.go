package service

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"os"
	"strings"
	"time"

	"clipstream/internal/model"
	"clipstream/internal/repository"
	"clipstream/pkg/logger"
	"clipstream/pkg/storage"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	accessTokenTTL  = 24 * time.Hour
	refreshTokenTTL = 10 * 24 * time.Hour
)

// RegisterInput carries the multipart registration payload. Avatar is
// required, cover image optional.
type RegisterInput struct {
	Username   string
	Email      string
	FullName   string
	Password   string
	Avatar     *multipart.FileHeader
	CoverImage *multipart.FileHeader
}

// TokenPair is the session credential pair returned by login and refresh.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// ChannelProfile is the public channel projection with subscription counts
// relative to the caller.
type ChannelProfile struct {
	User                      *model.User
	SubscribersCount          int64
	ChannelsSubscribedToCount int64
	IsSubscribed              bool
}

type UserService interface {
	Register(ctx context.Context, input RegisterInput) (*model.User, error)
	Login(identifier, password string) (*model.User, *TokenPair, error)
	Logout(userID uint64) error
	RefreshTokens(refreshToken string) (*TokenPair, error)
	ChangePassword(userID uint64, oldPassword, newPassword string) error
	GetByID(userID uint64) (*model.User, error)
	UpdateAccount(userID uint64, fullName, username, email string) (*model.User, error)
	UpdateAvatar(ctx context.Context, userID uint64, file *multipart.FileHeader) (*model.User, error)
	UpdateCoverImage(ctx context.Context, userID uint64, file *multipart.FileHeader) (*model.User, error)
	GetChannelProfile(username string, callerID uint64) (*ChannelProfile, error)
	GetWatchHistory(userID uint64) ([]model.WatchEntry, error)
}

type userService struct {
	userRepo repository.UserRepository
	subRepo  repository.SubscriptionRepository
	assets   storage.AssetStore
}

func NewUserService(userRepo repository.UserRepository, subRepo repository.SubscriptionRepository, assets storage.AssetStore) UserService {
	return &userService{
		userRepo: userRepo,
		subRepo:  subRepo,
		assets:   assets,
	}
}

// Register validates input, uploads the avatar (and cover, if any), then
// creates the user. The unique indexes on username/email are the final word
// on duplicates; the pre-check only exists for a friendlier error.
func (s *userService) Register(ctx context.Context, input RegisterInput) (*model.User, error) {
	username := strings.ToLower(strings.TrimSpace(input.Username))
	email := strings.ToLower(strings.TrimSpace(input.Email))
	fullName := strings.TrimSpace(input.FullName)

	if username == "" || email == "" || fullName == "" {
		return nil, fmt.Errorf("%w: all fields are required", ErrInvalidArgument)
	}
	if !strings.Contains(email, "@") {
		return nil, fmt.Errorf("%w: invalid email format", ErrInvalidArgument)
	}
	if len(input.Password) < 6 {
		return nil, fmt.Errorf("%w: password must be at least 6 characters", ErrInvalidArgument)
	}
	if input.Avatar == nil {
		return nil, fmt.Errorf("%w: avatar file is required", ErrInvalidArgument)
	}

	if _, err := s.userRepo.FindByUsername(username); err == nil {
		return nil, fmt.Errorf("%w: user with email or username already exists", ErrConflict)
	}
	if _, err := s.userRepo.FindByEmail(email); err == nil {
		return nil, fmt.Errorf("%w: user with email or username already exists", ErrConflict)
	}

	avatar, err := s.assets.Upload(ctx, input.Avatar)
	if err != nil {
		return nil, fmt.Errorf("%w: avatar", ErrUploadFailed)
	}
	var coverURL string
	if input.CoverImage != nil {
		cover, err := s.assets.Upload(ctx, input.CoverImage)
		if err != nil {
			return nil, fmt.Errorf("%w: cover image", ErrUploadFailed)
		}
		coverURL = cover.URL
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username:   username,
		Email:      email,
		FullName:   fullName,
		Password:   string(hashed),
		Avatar:     avatar.URL,
		CoverImage: coverURL,
	}
	if err := s.userRepo.Create(user); err != nil {
		if isDuplicateKey(err) {
			return nil, fmt.Errorf("%w: user with email or username already exists", ErrConflict)
		}
		return nil, err
	}
	return user, nil
}

// Login accepts a username or an email as identifier.
func (s *userService) Login(identifier, password string) (*model.User, *TokenPair, error) {
	identifier = strings.ToLower(strings.TrimSpace(identifier))
	if identifier == "" || password == "" {
		return nil, nil, fmt.Errorf("%w: identifier and password are required", ErrInvalidArgument)
	}

	var user *model.User
	var err error
	if strings.Contains(identifier, "@") {
		user, err = s.userRepo.FindByEmail(identifier)
	} else {
		user, err = s.userRepo.FindByUsername(identifier)
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, fmt.Errorf("%w: user does not exist", ErrNotFound)
		}
		return nil, nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, nil, fmt.Errorf("%w: invalid user credentials", ErrUnauthorized)
	}

	pair, err := s.issueTokens(user)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

func (s *userService) Logout(userID uint64) error {
	return s.userRepo.UpdateRefreshToken(userID, "")
}

// RefreshTokens rotates the pair: the incoming refresh token must match the
// one persisted on the user row, and a new one replaces it.
func (s *userService) RefreshTokens(refreshToken string) (*TokenPair, error) {
	if refreshToken == "" {
		return nil, fmt.Errorf("%w: refresh token is required", ErrUnauthorized)
	}

	token, err := jwt.Parse(refreshToken, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return refreshSecret(), nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("%w: invalid refresh token", ErrUnauthorized)
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("%w: invalid refresh token", ErrUnauthorized)
	}
	userIDFloat, ok := claims["user_id"].(float64)
	if !ok {
		return nil, fmt.Errorf("%w: invalid refresh token", ErrUnauthorized)
	}

	user, err := s.userRepo.FindByID(uint64(userIDFloat))
	if err != nil {
		return nil, fmt.Errorf("%w: invalid refresh token", ErrUnauthorized)
	}
	if user.RefreshToken != refreshToken {
		return nil, fmt.Errorf("%w: refresh token is expired or used", ErrUnauthorized)
	}

	return s.issueTokens(user)
}

func (s *userService) ChangePassword(userID uint64, oldPassword, newPassword string) error {
	if len(newPassword) < 6 {
		return fmt.Errorf("%w: password must be at least 6 characters", ErrInvalidArgument)
	}
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return fmt.Errorf("%w: user does not exist", ErrNotFound)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(oldPassword)); err != nil {
		return fmt.Errorf("%w: invalid old password", ErrUnauthorized)
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	_, err = s.userRepo.Update(userID, map[string]interface{}{"password": string(hashed)})
	return err
}

func (s *userService) GetByID(userID uint64) (*model.User, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: user does not exist", ErrNotFound)
	}
	return user, nil
}

func (s *userService) UpdateAccount(userID uint64, fullName, username, email string) (*model.User, error) {
	fullName = strings.TrimSpace(fullName)
	username = strings.ToLower(strings.TrimSpace(username))
	email = strings.ToLower(strings.TrimSpace(email))
	if fullName == "" || username == "" || email == "" {
		return nil, fmt.Errorf("%w: all fields are required", ErrInvalidArgument)
	}

	rows, err := s.userRepo.Update(userID, map[string]interface{}{
		"full_name": fullName,
		"username":  username,
		"email":     email,
	})
	if err != nil {
		if isDuplicateKey(err) {
			return nil, fmt.Errorf("%w: username or email already taken", ErrConflict)
		}
		return nil, err
	}
	if rows == 0 {
		// Updates with identical values also report zero rows; reload to
		// distinguish a missing user from a no-op.
		if _, err := s.userRepo.FindByID(userID); err != nil {
			return nil, fmt.Errorf("%w: user does not exist", ErrNotFound)
		}
	}
	return s.userRepo.FindByID(userID)
}

// UpdateAvatar uploads the replacement first, persists the new URL, and only
// then deletes the previous asset so a failure cannot lose both.
func (s *userService) UpdateAvatar(ctx context.Context, userID uint64, file *multipart.FileHeader) (*model.User, error) {
	return s.replaceAsset(ctx, userID, file, "avatar")
}

func (s *userService) UpdateCoverImage(ctx context.Context, userID uint64, file *multipart.FileHeader) (*model.User, error) {
	return s.replaceAsset(ctx, userID, file, "cover_image")
}

func (s *userService) replaceAsset(ctx context.Context, userID uint64, file *multipart.FileHeader, column string) (*model.User, error) {
	if file == nil {
		return nil, fmt.Errorf("%w: file is missing", ErrInvalidArgument)
	}
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: user does not exist", ErrNotFound)
	}

	uploaded, err := s.assets.Upload(ctx, file)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUploadFailed, column)
	}

	oldURL := user.Avatar
	if column == "cover_image" {
		oldURL = user.CoverImage
	}

	if _, err := s.userRepo.Update(userID, map[string]interface{}{column: uploaded.URL}); err != nil {
		return nil, err
	}

	// Old asset goes away only after the new reference is durable.
	if oldURL != "" {
		if err := s.assets.Delete(ctx, oldURL); err != nil {
			logger.Log.WithError(err).WithField("url", oldURL).Warn("failed to delete replaced asset")
		}
	}

	return s.userRepo.FindByID(userID)
}

func (s *userService) GetChannelProfile(username string, callerID uint64) (*ChannelProfile, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	if username == "" {
		return nil, fmt.Errorf("%w: username is missing", ErrInvalidArgument)
	}
	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		return nil, fmt.Errorf("%w: channel does not exist", ErrNotFound)
	}

	subscribers, err := s.subRepo.CountByChannel(user.ID)
	if err != nil {
		return nil, err
	}
	subscribedTo, err := s.subRepo.CountBySubscriber(user.ID)
	if err != nil {
		return nil, err
	}
	isSubscribed := false
	if callerID != 0 {
		isSubscribed, err = s.subRepo.Exists(callerID, user.ID)
		if err != nil {
			return nil, err
		}
	}

	return &ChannelProfile{
		User:                      user,
		SubscribersCount:          subscribers,
		ChannelsSubscribedToCount: subscribedTo,
		IsSubscribed:              isSubscribed,
	}, nil
}

func (s *userService) GetWatchHistory(userID uint64) ([]model.WatchEntry, error) {
	return s.userRepo.GetWatchHistory(userID)
}

func (s *userService) issueTokens(user *model.User) (*TokenPair, error) {
	now := time.Now()

	accessClaims := jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"exp":      now.Add(accessTokenTTL).Unix(),
		"iat":      now.Unix(),
	}
	access, err := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims).SignedString(accessSecret())
	if err != nil {
		return nil, err
	}

	refreshClaims := jwt.MapClaims{
		"user_id": user.ID,
		"exp":     now.Add(refreshTokenTTL).Unix(),
		"iat":     now.Unix(),
	}
	refresh, err := jwt.NewWithClaims(jwt.SigningMethodHS256, refreshClaims).SignedString(refreshSecret())
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.UpdateRefreshToken(user.ID, refresh); err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func accessSecret() []byte {
	return []byte(os.Getenv("JWT_ACCESS_SECRET"))
}

func refreshSecret() []byte {
	return []byte(os.Getenv("JWT_REFRESH_SECRET"))
}

