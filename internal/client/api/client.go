// Package api implements the HTTP client for the AgroScan backend:
// authentication, scan history retrieval, and image classification upload.
package api

import "context"

// Client is the transport surface consumed by the application services.
type Client interface {
	// Login exchanges credentials for a session token.
	Login(ctx context.Context, email, password string) (*LoginResult, error)

	// Register creates a new account. Registration does not log in.
	Register(ctx context.Context, username, email, password string) error

	// FetchScans returns the server-side scan history for the given email.
	FetchScans(ctx context.Context, email string) ([]ScanEntry, error)

	// Predict uploads an image for classification.
	Predict(ctx context.Context, email, filename string, image []byte) (*PredictResult, error)

	// SetToken installs (or clears, with "") the bearer token carried on
	// authenticated calls.
	SetToken(token string)
}

// LoginResult is the normalized success payload of Login.
type LoginResult struct {
	UserID string
	Email  string
	Token  string
}

// ScanEntry is one record of the server-side history.
type ScanEntry struct {
	ScanID                  string
	Prediction              string
	Confidence              float64
	Date                    string
	TreatmentRecommendation string
	ImageLink               string
	Message                 string
	Status                  string
}

// PredictResult is the classification response for an uploaded image.
type PredictResult struct {
	Prediction     string
	Confidence     float64
	Status         string
	Message        string
	Recommendation string
	SaveStatus     string
	ScanID         string
}
