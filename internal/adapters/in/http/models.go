package http

import (
	"time"

	"fifo/internal/core/application/usecases/queries"
	"fifo/internal/core/domain/model/parcel"
)

type ServerTime struct {
	ServerTime time.Time `json:"serverTime"`
	Timezone   string    `json:"timezone"`
}

type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type GenerateTrackingIDsRequest struct {
	Quantity int `json:"quantity"`
}

type GenerateTrackingIDsResponse struct {
	Requested   int      `json:"requested"`
	TrackingIDs []string `json:"trackingIds"`
}

type ConfirmTrackingIDsRequest struct {
	TrackingIDs []string `json:"trackingIds"`
}

type TrackingIDResponse struct {
	TrackingID string `json:"trackingId"`
}

type EnterParcelRequest struct {
	TrackingID string `json:"trackingId"`
	Buffer     string `json:"buffer"`
	Lane       string `json:"lane"`
	Profile    string `json:"profile"`
}

type ExitParcelRequest struct {
	TrackingID string `json:"trackingId"`
}

type MoveParcelRequest struct {
	Lane string `json:"lane"`
}

type RecordAuditEntryRequest struct {
	Action  string `json:"action"`
	Details string `json:"details"`
}

type Parcel struct {
	ID             string     `json:"id"`
	TrackingID     string     `json:"trackingId"`
	Buffer         string     `json:"buffer"`
	Lane           string     `json:"lane"`
	Profile        string     `json:"profile"`
	ProfileValue   int        `json:"value"`
	EntryTimestamp *time.Time `json:"entryTimestamp"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

type DashboardMetrics struct {
	BacklogCount   int                `json:"backlogCount"`
	BacklogValue   int                `json:"backlogValue"`
	Counts         map[string]int     `json:"counts"`
	Values         map[string]int     `json:"values"`
	AvgWaitSeconds map[string]float64 `json:"avgWaitSeconds"`
}

type AuditEntry struct {
	ID              string    `json:"id"`
	Username        string    `json:"username"`
	UserDisplayName string    `json:"userDisplayName"`
	Action          string    `json:"action"`
	Details         string    `json:"details"`
	CreatedAt       time.Time `json:"createdAt"`
}

func parcelFromDomain(p *parcel.Parcel) Parcel {
	return Parcel{
		ID:             p.ID().String(),
		TrackingID:     p.TrackingID().String(),
		Buffer:         p.Buffer().String(),
		Lane:           p.Lane(),
		Profile:        p.Profile().String(),
		ProfileValue:   p.ProfileValue(),
		EntryTimestamp: p.EntryTimestamp(),
		CreatedAt:      p.CreatedAt(),
		UpdatedAt:      p.UpdatedAt(),
	}
}

func parcelFromQuery(item queries.ActiveParcelResponse) Parcel {
	return Parcel{
		ID:             item.ID.String(),
		TrackingID:     item.TrackingID,
		Buffer:         item.Buffer,
		Lane:           item.Lane,
		Profile:        item.Profile,
		ProfileValue:   item.ProfileValue,
		EntryTimestamp: item.EntryTimestamp,
		CreatedAt:      item.CreatedAt,
		UpdatedAt:      item.UpdatedAt,
	}
}
