package dto

import "clipstream/internal/model"

// SubscriberList uses the labels this endpoint historically exposed.
type SubscriberList struct {
	Subscribers      []OwnerInfo `json:"subscribers"`
	TotalSubscribers int         `json:"totalSubscribers"`
}

func ToSubscriberList(subs []model.Subscription) SubscriberList {
	list := make([]OwnerInfo, 0, len(subs))
	for i := range subs {
		list = append(list, ToOwnerInfo(&subs[i].Subscriber))
	}
	return SubscriberList{
		Subscribers:      list,
		TotalSubscribers: len(list),
	}
}

type ChannelList struct {
	Channels      []OwnerInfo `json:"channels"`
	TotalChannels int         `json:"totalChannels"`
}

func ToChannelList(subs []model.Subscription) ChannelList {
	list := make([]OwnerInfo, 0, len(subs))
	for i := range subs {
		list = append(list, ToOwnerInfo(&subs[i].Channel))
	}
	return ChannelList{
		Channels:      list,
		TotalChannels: len(list),
	}
}
