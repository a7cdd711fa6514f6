package models

import "time"

// Review is a rating plus optional comment authored by one deal
// participant about the other. At most one review per (deal, reviewer).
type Review struct {
	ID         string    `bson:"id" json:"id"`
	DealID     string    `bson:"dealId" json:"dealId"`
	ReviewerID string    `bson:"reviewerId" json:"reviewerId"`
	RevieweeID string    `bson:"revieweeId" json:"revieweeId"`
	Rating     int       `bson:"rating" json:"rating"` // 1..5
	Comment    string    `bson:"comment,omitempty" json:"comment,omitempty"`
	CreatedAt  time.Time `bson:"createdAt" json:"createdAt"`
}
