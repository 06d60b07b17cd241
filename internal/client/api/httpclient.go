package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/agroscanai/agroscan-cli/internal/common"
)

const defaultTimeout = 30 * time.Second

// HTTPClient talks JSON (and multipart for uploads) to the AgroScan backend.
// It holds the bearer token installed after login and attaches it to every
// request while present.
type HTTPClient struct {
	baseURL string
	hc      *http.Client

	mu    sync.Mutex
	token string
}

func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &HTTPClient{
		baseURL: baseURL,
		hc:      &http.Client{Timeout: timeout},
	}
}

func (c *HTTPClient) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

func (c *HTTPClient) currentToken() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token
}

// flexID accepts identifiers that the backend serializes either as JSON
// numbers or as strings.
type flexID string

func (f *flexID) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch value := v.(type) {
	case nil:
		*f = ""
	case string:
		*f = flexID(value)
	case float64:
		*f = flexID(strconv.FormatFloat(value, 'f', -1, 64))
	default:
		*f = flexID(fmt.Sprint(value))
	}
	return nil
}

type loginResponse struct {
	UserID flexID `json:"user_id"`
	Email  string `json:"email"`
	Token  string `json:"token"`
}

type scanEntryWire struct {
	ScanID                  flexID  `json:"scan_id"`
	Prediction              string  `json:"prediction"`
	Confidence              float64 `json:"confidence"`
	Date                    string  `json:"date"`
	TreatmentRecommendation string  `json:"treatment_recommendation"`
	ImageLink               string  `json:"image_link"`
	Message                 string  `json:"message"`
	Status                  string  `json:"status"`
}

type predictResponse struct {
	Prediction     string  `json:"prediction"`
	Confidence     float64 `json:"confidence"`
	Status         string  `json:"status"`
	Message        string  `json:"message"`
	Recommendation string  `json:"recommendation"`
	SaveStatus     string  `json:"save_status"`
	ScanID         flexID  `json:"scan_id"`
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	body, err := json.Marshal(map[string]string{"email": email, "password": password})
	if err != nil {
		return nil, err
	}

	resp, raw, err := c.do(ctx, http.MethodPost, c.baseURL+"/login", "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	if err := c.checkStatus(resp, raw, "Login failed. Check your credentials."); err != nil {
		return nil, err
	}

	var lr loginResponse
	if err := json.Unmarshal(raw, &lr); err != nil {
		return nil, fmt.Errorf("failed to decode login response: %w", err)
	}

	result := &LoginResult{UserID: string(lr.UserID), Email: lr.Email, Token: lr.Token}
	if result.UserID == "" {
		result.UserID = "0"
	}
	if result.Email == "" {
		result.Email = email
	}

	c.SetToken(result.Token)
	return result, nil
}

func (c *HTTPClient) Register(ctx context.Context, username, email, password string) error {
	body, err := json.Marshal(map[string]string{
		"username": username,
		"email":    email,
		"password": password,
	})
	if err != nil {
		return err
	}

	resp, raw, err := c.do(ctx, http.MethodPost, c.baseURL+"/register", "application/json", bytes.NewReader(body))
	if err != nil {
		return err
	}

	return c.checkStatus(resp, raw, "Registration failed.")
}

func (c *HTTPClient) FetchScans(ctx context.Context, email string) ([]ScanEntry, error) {
	endpoint := c.baseURL + "/get_scans/" + url.PathEscape(email)

	resp, raw, err := c.do(ctx, http.MethodGet, endpoint, "application/json", nil)
	if err != nil {
		return nil, err
	}

	if err := c.checkStatus(resp, raw, "Failed to load scan history."); err != nil {
		return nil, err
	}

	var payload struct {
		Scans json.RawMessage `json:"scans"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("failed to decode history response: %w", err)
	}
	if payload.Scans == nil {
		return nil, fmt.Errorf("history response has no scan list")
	}

	var wire []scanEntryWire
	if err := json.Unmarshal(payload.Scans, &wire); err != nil {
		return nil, fmt.Errorf("failed to decode scan list: %w", err)
	}

	entries := make([]ScanEntry, 0, len(wire))
	for _, w := range wire {
		entries = append(entries, ScanEntry{
			ScanID:                  string(w.ScanID),
			Prediction:              w.Prediction,
			Confidence:              w.Confidence,
			Date:                    w.Date,
			TreatmentRecommendation: w.TreatmentRecommendation,
			ImageLink:               w.ImageLink,
			Message:                 w.Message,
			Status:                  w.Status,
		})
	}
	return entries, nil
}

func (c *HTTPClient) Predict(ctx context.Context, email, filename string, image []byte) (*PredictResult, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return nil, err
	}
	if _, err := fw.Write(image); err != nil {
		return nil, err
	}
	if err := mw.WriteField("user_email", email); err != nil {
		return nil, err
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	resp, raw, err := c.do(ctx, http.MethodPost, c.baseURL+"/predict", mw.FormDataContentType(), &buf)
	if err != nil {
		return nil, err
	}

	if err := c.checkStatus(resp, raw, "Analysis failed."); err != nil {
		return nil, err
	}

	var pr predictResponse
	if err := json.Unmarshal(raw, &pr); err != nil {
		return nil, fmt.Errorf("failed to decode prediction response: %w", err)
	}

	return &PredictResult{
		Prediction:     pr.Prediction,
		Confidence:     pr.Confidence,
		Status:         pr.Status,
		Message:        pr.Message,
		Recommendation: pr.Recommendation,
		SaveStatus:     pr.SaveStatus,
		ScanID:         string(pr.ScanID),
	}, nil
}

// do issues one request and fully reads the response body. A transport-level
// failure (no response obtainable) maps to ErrUnavailable.
func (c *HTTPClient) do(ctx context.Context, method, endpoint, contentType string, body io.Reader) (*http.Response, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Content-Type", contentType)
	if token := c.currentToken(); token != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return resp, raw, nil
}

// checkStatus maps non-success responses onto the error taxonomy:
// 401/403 to ErrUnauthorized, everything else to a RejectedError carrying
// the normalized payload message.
func (c *HTTPClient) checkStatus(resp *http.Response, raw []byte, fallback string) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return ErrUnauthorized
	}
	return &RejectedError{Message: normalizeErrorBody(raw, fallback)}
}
