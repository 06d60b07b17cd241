package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/agroscanai/agroscan-cli/internal/client/alerts"
	"github.com/agroscanai/agroscan-cli/internal/client/api"
	"github.com/agroscanai/agroscan-cli/internal/client/models"
	"github.com/agroscanai/agroscan-cli/internal/common"
	"github.com/agroscanai/agroscan-cli/internal/logging"
	"github.com/google/uuid"
)

const (
	MsgSelectImage  = "Please select an image."
	MsgNetworkError = "Network error. Check backend connection."
	MsgScanSaved    = "Scan saved to history."

	defaultPrediction     = "Unknown"
	defaultRecommendation = "No recommendation provided."
	dateUnavailable       = "Date Unavailable"

	displayTimeLayout = "2006-01-02 15:04:05"
)

// ErrNoFileSelected is returned when Submit is called without a selection.
var ErrNoFileSelected = errors.New("no file selected")

// sessionHolder is the slice of the session manager the synchronizer needs:
// the current identity, and the forced-logout path for authorization
// failures.
type sessionHolder interface {
	Current() models.Session
	Logout(ctx context.Context, reason string)
}

// ScanService uploads images for classification and keeps the visible
// history reconciled with the server: optimistic records are prepended
// between fetches, and every fetch replaces the list wholesale.
type ScanService interface {
	// FetchHistory loads the server-side history for email and replaces the
	// in-memory list. Failures degrade to an empty list; they are never
	// surfaced as errors.
	FetchHistory(ctx context.Context, email string) []models.ScanRecord

	// Select stages a file for the next Submit call.
	Select(filename string, data []byte)

	// HasSelection reports whether a file is staged.
	HasSelection() bool

	// Submit uploads the staged file. The selection is always cleared
	// afterwards, success or failure, so the form is submittable again.
	Submit(ctx context.Context) (*models.ScanRecord, error)

	// Records returns the current in-memory history, newest first.
	Records() []models.ScanRecord
}

type scanService struct {
	client  api.Client
	session sessionHolder
	alerts  *alerts.Center
	logger  logging.Logger
	now     func() time.Time

	mu          sync.Mutex
	records     []models.ScanRecord
	pendingName string
	pendingData []byte
	previewPath string
}

func NewScanService(client api.Client, session sessionHolder, center *alerts.Center, logger logging.Logger) ScanService {
	return &scanService{client: client, session: session, alerts: center, logger: logger, now: time.Now}
}

func (s *scanService) FetchHistory(ctx context.Context, email string) []models.ScanRecord {
	if email == "" {
		return s.replaceRecords(nil)
	}

	entries, err := s.client.FetchScans(ctx, email)
	if err != nil {
		// History loading is non-fatal: degrade to an empty list. An
		// authorization failure additionally ends the session.
		s.logger.Warn(ctx, "failed to fetch scan history", "error", err)
		if errors.Is(err, api.ErrUnauthorized) {
			s.session.Logout(ctx, "")
		}
		return s.replaceRecords(nil)
	}

	records := make([]models.ScanRecord, 0, len(entries))
	for _, e := range entries {
		records = append(records, mapServerEntry(e))
	}
	return s.replaceRecords(records)
}

func (s *scanService) Select(filename string, data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pendingName = filename
	s.pendingData = data
	s.previewPath = filename
}

func (s *scanService) HasSelection() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pendingData) > 0
}

func (s *scanService) Submit(ctx context.Context) (*models.ScanRecord, error) {
	s.mu.Lock()
	name, data := s.pendingName, s.pendingData
	s.mu.Unlock()

	if len(data) == 0 {
		s.alerts.Publish(MsgSelectImage, models.AlertError)
		return nil, ErrNoFileSelected
	}

	// Whatever happens next, the form returns to a submittable state.
	defer s.clearSelection()

	sess := s.session.Current()

	res, err := s.client.Predict(ctx, sess.UserEmail, name, data)
	if err != nil {
		return nil, s.handleSubmitError(ctx, err)
	}

	saved := res.SaveStatus == common.SaveStatusSaved

	record := models.ScanRecord{
		LocalID:        uuid.NewString(),
		Filename:       name,
		Prediction:     res.Prediction,
		Confidence:     res.Confidence,
		Timestamp:      s.now().Format(displayTimeLayout),
		Status:         res.Status,
		Message:        res.Message,
		Recommendation: res.Recommendation,
	}

	if saved {
		record.ScanID = res.ScanID
		s.alerts.Publish(MsgScanSaved, models.AlertSuccess)
		// Reconcile with the authoritative list so the record shows its
		// server identity and canonical ordering.
		s.FetchHistory(ctx, sess.UserEmail)
	} else {
		s.mu.Lock()
		s.records = append([]models.ScanRecord{record}, s.records...)
		s.mu.Unlock()
	}

	return &record, nil
}

func (s *scanService) Records() []models.ScanRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.ScanRecord(nil), s.records...)
}

func (s *scanService) handleSubmitError(ctx context.Context, err error) error {
	var rejected *api.RejectedError
	switch {
	case errors.Is(err, api.ErrUnauthorized):
		// Session-fatal: the token was refused.
		s.session.Logout(ctx, "")
	case errors.Is(err, api.ErrUnavailable):
		s.alerts.Publish(MsgNetworkError, models.AlertError)
	case errors.As(err, &rejected):
		s.alerts.Publish(rejected.Message, models.AlertError)
	default:
		s.logger.Error(ctx, "scan upload failed", "error", err)
		s.alerts.Publish(err.Error(), models.AlertError)
	}
	return err
}

func (s *scanService) clearSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pendingName = ""
	s.pendingData = nil
	s.previewPath = ""
}

func (s *scanService) replaceRecords(records []models.ScanRecord) []models.ScanRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = records
	return append([]models.ScanRecord(nil), records...)
}

func mapServerEntry(e api.ScanEntry) models.ScanRecord {
	prediction := e.Prediction
	if prediction == "" {
		prediction = defaultPrediction
	}
	recommendation := e.TreatmentRecommendation
	if recommendation == "" {
		recommendation = defaultRecommendation
	}

	return models.ScanRecord{
		LocalID:        uuid.NewString(),
		ScanID:         e.ScanID,
		Filename:       models.HistoryLabel(e.ScanID),
		Prediction:     prediction,
		Confidence:     e.Confidence,
		Timestamp:      formatScanDate(e.Date),
		Recommendation: recommendation,
		Message:        e.Message,
		Status:         e.Status,
		ImageLink:      e.ImageLink,
	}
}

// formatScanDate renders a server timestamp for display. Unparseable or
// missing dates degrade to a fixed placeholder.
func formatScanDate(raw string) string {
	if raw == "" {
		return dateUnavailable
	}
	for _, layout := range []string{time.RFC3339, displayTimeLayout, "2006-01-02"} {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts.Local().Format(displayTimeLayout)
		}
	}
	return dateUnavailable
}
