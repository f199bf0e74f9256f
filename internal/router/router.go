package router

import (
	"net/http"

	"clipstream/internal/handler"
	"clipstream/internal/middleware"

	"github.com/gin-gonic/gin"
)

// Handlers bundles every resource handler the router mounts.
type Handlers struct {
	User         handler.UserHandler
	Video        handler.VideoHandler
	Comment      handler.CommentHandler
	Like         handler.LikeHandler
	Tweet        handler.TweetHandler
	Playlist     handler.PlaylistHandler
	Subscription handler.SubscriptionHandler
}

func SetupRouter(h Handlers) *gin.Engine {
	r := gin.Default()

	api := r.Group("/api/v1")

	api.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	// Public endpoints.
	api.POST("/users/register", h.User.Register)
	api.POST("/users/login", h.User.Login)
	api.POST("/users/refresh-token", h.User.RefreshToken)

	auth := api.Group("")
	auth.Use(middleware.AuthMiddleware())
	{
		auth.POST("/users/logout", h.User.Logout)
		auth.POST("/users/change-password", h.User.ChangePassword)
		auth.GET("/users/me", h.User.GetCurrentUser)
		auth.PATCH("/users/me", h.User.UpdateAccount)
		auth.PATCH("/users/me/avatar", h.User.UpdateAvatar)
		auth.PATCH("/users/me/cover", h.User.UpdateCoverImage)
		auth.GET("/users/c/:username", h.User.GetChannelProfile)
		auth.GET("/users/history", h.User.GetWatchHistory)

		auth.GET("/videos", h.Video.List)
		auth.POST("/videos", h.Video.Publish)
		auth.GET("/videos/:videoId", h.Video.GetByID)
		auth.PATCH("/videos/:videoId", h.Video.Update)
		auth.DELETE("/videos/:videoId", h.Video.Delete)
		auth.PATCH("/videos/:videoId/toggle-publish", h.Video.TogglePublish)

		auth.GET("/comments/:videoId", h.Comment.List)
		auth.POST("/comments/:videoId", h.Comment.Create)
		auth.PATCH("/comments/c/:commentId", h.Comment.Update)
		auth.DELETE("/comments/c/:commentId", h.Comment.Delete)

		auth.POST("/like/video/:videoId", h.Like.ToggleVideoLike)
		auth.POST("/like/comment/:commentId", h.Like.ToggleCommentLike)
		auth.POST("/like/tweet/:tweetId", h.Like.ToggleTweetLike)
		auth.GET("/like/videos", h.Like.ListLikedVideos)

		// gin's routing tree rejects a literal segment next to a parameter at
		// the same position, so /playlist/user/... and /playlist/add|remove/...
		// are matched through the wildcard and dispatched by hand.
		auth.POST("/playlist", h.Playlist.Create)
		auth.GET("/playlist/:playlistId", h.Playlist.GetByID)
		auth.PATCH("/playlist/:playlistId", h.Playlist.Update)
		auth.DELETE("/playlist/:playlistId", h.Playlist.Delete)
		auth.GET("/playlist/:playlistId/:userId", func(c *gin.Context) {
			if c.Param("playlistId") != "user" {
				c.AbortWithStatus(http.StatusNotFound)
				return
			}
			h.Playlist.GetUserPlaylists(c)
		})
		auth.PATCH("/playlist/:playlistId/:videoId/:targetId", func(c *gin.Context) {
			action := c.Param("playlistId")
			c.Params = gin.Params{
				{Key: "videoId", Value: c.Param("videoId")},
				{Key: "playlistId", Value: c.Param("targetId")},
			}
			switch action {
			case "add":
				h.Playlist.AddVideo(c)
			case "remove":
				h.Playlist.RemoveVideo(c)
			default:
				c.AbortWithStatus(http.StatusNotFound)
			}
		})

		auth.POST("/subscription/:channelId", h.Subscription.Toggle)
		auth.GET("/subscription/channel/:channelId/subscribers", h.Subscription.ListSubscribers)
		auth.GET("/subscription/user/:subscriberId/channels", h.Subscription.ListChannels)

		auth.POST("/tweets", h.Tweet.Create)
		auth.GET("/tweets/user/:userId", h.Tweet.GetUserTweets)
		auth.PATCH("/tweets/:tweetId", h.Tweet.Update)
		auth.DELETE("/tweets/:tweetId", h.Tweet.Delete)
	}

	return r
}
