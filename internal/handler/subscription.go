package handler

import (
	"net/http"
	"strconv"

	"clipstream/internal/dto"
	"clipstream/internal/service"

	"github.com/gin-gonic/gin"
)

type SubscriptionHandler interface {
	Toggle(c *gin.Context)
	ListSubscribers(c *gin.Context)
	ListChannels(c *gin.Context)
}

type subscriptionHandler struct {
	SubscriptionService service.SubscriptionService
}

func NewSubscriptionHandler(subscriptionService service.SubscriptionService) SubscriptionHandler {
	return &subscriptionHandler{SubscriptionService: subscriptionService}
}

func (h *subscriptionHandler) Toggle(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		sendErrorResponse(c, http.StatusUnauthorized, "user not authenticated")
		return
	}
	channelID, err := strconv.ParseUint(c.Param("channelId"), 10, 64)
	if err != nil {
		sendErrorResponse(c, http.StatusBadRequest, "invalid channel id")
		return
	}

	subscribed, err := h.SubscriptionService.Toggle(userID, channelID)
	if err != nil {
		sendServiceError(c, err)
		return
	}

	message := "Unsubscribed successfully"
	if subscribed {
		message = "Subscribed successfully"
	}
	sendSuccess(c, http.StatusOK, gin.H{"isSubscribed": subscribed}, message)
}

func (h *subscriptionHandler) ListSubscribers(c *gin.Context) {
	channelID, err := strconv.ParseUint(c.Param("channelId"), 10, 64)
	if err != nil {
		sendErrorResponse(c, http.StatusBadRequest, "invalid channel id")
		return
	}

	subs, err := h.SubscriptionService.ListSubscribers(channelID)
	if err != nil {
		sendServiceError(c, err)
		return
	}
	sendSuccess(c, http.StatusOK, dto.ToSubscriberList(subs), "Subscribers fetched successfully")
}

func (h *subscriptionHandler) ListChannels(c *gin.Context) {
	subscriberID, err := strconv.ParseUint(c.Param("subscriberId"), 10, 64)
	if err != nil {
		sendErrorResponse(c, http.StatusBadRequest, "invalid subscriber id")
		return
	}

	subs, err := h.SubscriptionService.ListChannels(subscriberID)
	if err != nil {
		sendServiceError(c, err)
		return
	}
	sendSuccess(c, http.StatusOK, dto.ToChannelList(subs), "Subscribed channels fetched successfully")
}
