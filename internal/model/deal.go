package model

import "time"

// Deal represents a merchant deal offered to users.
type Deal struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Category    string    `json:"category,omitempty"`
	Merchant    string    `json:"merchant,omitempty"`
	Discount    string    `json:"discount,omitempty"`
	Location    string    `json:"location,omitempty"`
	Latitude    float64   `json:"latitude,omitempty"`
	Longitude   float64   `json:"longitude,omitempty"`
	Active      bool      `json:"active"`
	ExpiresAt   time.Time `json:"expires_at,omitempty"`
}

// Redemption represents a recorded redemption of a deal by the current user.
type Redemption struct {
	ID         string    `json:"id"`
	DealID     string    `json:"deal_id"`
	UserID     string    `json:"user_id,omitempty"`
	Code       string    `json:"code,omitempty"`
	Points     int       `json:"points,omitempty"`
	RedeemedAt time.Time `json:"redeemed_at,omitempty"`
}

// RedemptionResult is the payload produced by a successful redeem operation.
// DealID always echoes the identifier the caller redeemed, overwriting any
// deal id the backend returned alongside the redemption data.
type RedemptionResult struct {
	DealID     string    `json:"deal_id"`
	ID         string    `json:"id,omitempty"`
	Code       string    `json:"code,omitempty"`
	Points     int       `json:"points,omitempty"`
	RedeemedAt time.Time `json:"redeemed_at,omitempty"`
}

// DealsQuery holds optional filters for listing deals.
// A nil *DealsQuery means no filters at all.
type DealsQuery struct {
	Category string `json:"category,omitempty"`
	Location string `json:"location,omitempty"`
	Limit    int    `json:"limit,omitempty"`
	Offset   int    `json:"offset,omitempty"`
}

// NearbyQuery holds coordinates for the nearby-deals lookup.
// Latitude and longitude are required; Radius of 0 means backend default.
type NearbyQuery struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Radius    float64 `json:"radius,omitempty"`
}

// NearbyDealsRequest is the DTO for GET /api/deals/nearby query parameters.
// Pointer fields distinguish "absent" from a legitimate zero coordinate.
type NearbyDealsRequest struct {
	Latitude  *float64 `query:"latitude" validate:"required,latitude"`
	Longitude *float64 `query:"longitude" validate:"required,longitude"`
	Radius    *float64 `query:"radius" validate:"omitempty,gte=0"`
}

// ListDealsRequest is the DTO for GET /api/deals query parameters.
type ListDealsRequest struct {
	Category string `query:"category" validate:"omitempty,notblank,max=255"`
	Location string `query:"location" validate:"omitempty,notblank,max=255"`
	Limit    int    `query:"limit" validate:"omitempty,gte=1,lte=100"`
	Offset   int    `query:"offset" validate:"omitempty,gte=0"`
}
