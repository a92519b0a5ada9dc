package models

import "time"

// Recommendation is one card shown to the user.
type Recommendation struct {
	Title        string  `bson:"title"              json:"title"`
	VideoID      *string `bson:"video_id,omitempty" json:"video_id"` // nil when enrichment is off or the lookup failed
	Unrecognized bool    `bson:"unrecognized"       json:"unrecognized,omitempty"`
}

// RecommendationSet is the full answer for one seed title. A new search
// replaces the previous set; sets are never merged.
type RecommendationSet struct {
	ID              string           `bson:"_id,omitempty"   json:"id,omitempty"`
	Seed            string           `bson:"seed"            json:"seed"`
	Recommendations []Recommendation `bson:"recommendations" json:"recommendations"`
	Enriched        bool             `bson:"enriched"        json:"enriched"`
	GeneratedAt     time.Time        `bson:"generated_at"    json:"generated_at"`
}

// RecommendRequest is the payload for POST /recommendations.
type RecommendRequest struct {
	Seed      string `json:"seed"       validate:"required,max=200"`
	SessionID string `json:"session_id" validate:"omitempty,uuid4"` // groups requests from one browser tab
}

// RecommendResponse wraps a set with the generation it was produced for.
type RecommendResponse struct {
	RecommendationSet
	Generation uint64 `json:"generation,omitempty"`
}

// HistoryRequest is the query for GET /recommendations/history.
type HistoryRequest struct {
	Limit int `query:"limit" validate:"min=0,max=100"`
}
