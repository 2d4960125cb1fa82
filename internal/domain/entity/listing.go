package entity

import (
	"time"
)

type Condition string

const (
	ConditionLikeNew  Condition = "like_new"
	ConditionGood     Condition = "good"
	ConditionFair     Condition = "fair"
	ConditionPoor     Condition = "poor"
	ConditionDonation Condition = "donation"
)

func (c Condition) Valid() bool {
	switch c {
	case ConditionLikeNew, ConditionGood, ConditionFair, ConditionPoor, ConditionDonation:
		return true
	}
	return false
}

type Listing struct {
	ID           string       `json:"id" firestore:"id"`
	Title        string       `json:"title" firestore:"title"`
	Author       string       `json:"author" firestore:"author"`
	Subject      string       `json:"subject" firestore:"subject"`
	Condition    Condition    `json:"condition" firestore:"condition"`
	Price        int64        `json:"price" firestore:"price"`
	ContactPhone string       `json:"contact_phone" firestore:"contactPhone"`
	Description  string       `json:"description" firestore:"description"`
	SellerID     string       `json:"seller_id" firestore:"sellerId"`
	SellerName   string       `json:"seller_name" firestore:"sellerName"`
	Location     LocationInfo `json:"location" firestore:"location"`
	ImageURL     string       `json:"image_url,omitempty" firestore:"imageUrl,omitempty"`
	CreatedAt    time.Time    `json:"created_at" firestore:"createdAt"`
	UpdatedAt    time.Time    `json:"updated_at" firestore:"updatedAt"`
}

// EffectivePrice is the only read path for a listing's price. Donation
// listings are free no matter what stale number the stored record carries.
func (l *Listing) EffectivePrice() int64 {
	if l.Condition == ConditionDonation {
		return 0
	}
	return l.Price
}

func (l *Listing) IsFree() bool {
	return l.EffectivePrice() == 0
}
