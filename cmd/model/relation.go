package model

import "time"

// Subscription: SubscriberId follows the channel ChannelId.
type Subscription struct {
	SubscriptionId string    `gorm:"primaryKey;size:36" json:"id"`
	SubscriberId   string    `gorm:"size:36;not null;uniqueIndex:idx_subscription_pair,priority:1" json:"subscriber"`
	ChannelId      string    `gorm:"size:36;not null;uniqueIndex:idx_subscription_pair,priority:2;index" json:"channel"`
	CreatedAt      time.Time `json:"createdAt"`
}

func (*Subscription) Kind() Kind        { return KindSubscription }
func (s *Subscription) GetID() string   { return s.SubscriptionId }
func (s *Subscription) SetID(id string) { s.SubscriptionId = id }
func (s *Subscription) OwnerID() string { return s.SubscriberId }
func (*Subscription) TableName() string { return KindSubscription.Table() }
