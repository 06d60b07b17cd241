package models

import "fmt"

// DiseaseCategories lists the labels the classification model can produce.
var DiseaseCategories = []string{
	"Algal Leaf", "Anthracnose", "Bird Eye Spot",
	"Brown Blight", "Gray Light", "Red Leaf Spot",
	"White Spot", "Healthy", "Other Non-Tea Leaf",
}

// ScanRecord is one classification event, either built locally right after
// an upload (optimistic, no ScanID yet) or hydrated from the server history.
// Records are immutable once created.
type ScanRecord struct {
	// LocalID is a client-generated identifier so optimistic records can be
	// addressed before the server assigns a scan id.
	LocalID string

	// ScanID is set only if the server persisted the scan.
	ScanID string

	Filename       string
	Prediction     string
	Confidence     float64
	Timestamp      string
	Recommendation string
	Message        string
	Status         string
	ImageLink      string
}

// Saved reports whether the record has a server-assigned identity.
func (r ScanRecord) Saved() bool {
	return r.ScanID != ""
}

// HistoryLabel builds the display label for a record fetched from the
// server, which carries no original filename.
func HistoryLabel(scanID string) string {
	if scanID == "" {
		scanID = "N/A"
	}
	return fmt.Sprintf("Scan ID: %s", scanID)
}
