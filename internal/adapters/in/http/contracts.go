package http

import "time"

// GeoPointBody is the wire form of a geographic coordinate.
type GeoPointBody struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// CreateRequestBody is the payload for opening a service request.
type CreateRequestBody struct {
	RequesterID     string       `json:"requester_id"`
	VehicleCategory string       `json:"vehicle_category"`
	ServiceCategory string       `json:"service_category"`
	Description     string       `json:"description"`
	Location        GeoPointBody `json:"location"`
}

// CreateRequestResponse returns the id of the newly opened request.
type CreateRequestResponse struct {
	RequestID string `json:"request_id"`
}

// AcceptRequestBody identifies the provider taking the request.
type AcceptRequestBody struct {
	ProviderID string `json:"provider_id"`
}

// AcceptRequestResponse returns the verification code the provider reads
// back to the requester on arrival.
type AcceptRequestResponse struct {
	VerificationCode string `json:"verification_code"`
}

// VerifyStartBody carries the verification code shown by the requester.
type VerifyStartBody struct {
	Code string `json:"code"`
}

// CallerBody identifies the requester performing a complete or cancel.
type CallerBody struct {
	RequesterID string `json:"requester_id"`
}

// SubmitFeedbackBody carries the rating and optional feedback text.
type SubmitFeedbackBody struct {
	Rating   int    `json:"rating"`
	Feedback string `json:"feedback"`
}

// SetAvailabilityBody toggles a provider online or offline. Location is
// required when going online.
type SetAvailabilityBody struct {
	Available bool          `json:"available"`
	Location  *GeoPointBody `json:"location,omitempty"`
}

// RequestStatusResponse is the live view of a request, including the
// actions the requester may take in the current status.
type RequestStatusResponse struct {
	RequestID          string        `json:"request_id"`
	Status             string        `json:"status"`
	SearchRadiusKm     float64       `json:"search_radius_km"`
	RadiusExpansions   int           `json:"radius_expansions"`
	EscalationDeadline time.Time     `json:"escalation_deadline"`
	ProviderID         *string       `json:"provider_id,omitempty"`
	ProviderLocation   *GeoPointBody `json:"provider_location,omitempty"`
	CodeVerified       bool          `json:"code_verified"`
	VerificationCode   *string       `json:"verification_code,omitempty"`
	Rating             *int          `json:"rating,omitempty"`
	Feedback           *string       `json:"feedback,omitempty"`
	AllowVerify        bool          `json:"allow_verify"`
	CanCancel          bool          `json:"can_cancel"`
	CanComplete        bool          `json:"can_complete"`
	CreatedAt          time.Time     `json:"created_at"`
}

// MatchResponse is one SEARCHING request a provider can serve.
type MatchResponse struct {
	RequestID       string       `json:"request_id"`
	VehicleCategory string       `json:"vehicle_category"`
	ServiceCategory string       `json:"service_category"`
	Description     string       `json:"description"`
	Location        GeoPointBody `json:"location"`
	DistanceKm      float64      `json:"distance_km"`
}

// RequesterHistoryEntry is one request in a requester's history.
type RequesterHistoryEntry struct {
	RequestID       string     `json:"request_id"`
	Status          string     `json:"status"`
	VehicleCategory string     `json:"vehicle_category"`
	ServiceCategory string     `json:"service_category"`
	Description     string     `json:"description"`
	Rating          *int       `json:"rating,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	CompletedAt     *time.Time `json:"completed_at,omitempty"`
}

// ProviderHistoryEntry is one request in a provider's work history.
type ProviderHistoryEntry struct {
	RequestID       string     `json:"request_id"`
	Status          string     `json:"status"`
	VehicleCategory string     `json:"vehicle_category"`
	ServiceCategory string     `json:"service_category"`
	Rating          *int       `json:"rating,omitempty"`
	Feedback        *string    `json:"feedback,omitempty"`
	AcceptedAt      *time.Time `json:"accepted_at,omitempty"`
	CompletedAt     *time.Time `json:"completed_at,omitempty"`
}

// ErrorResponse is the error body returned by every handler.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
