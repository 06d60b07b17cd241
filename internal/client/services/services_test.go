package services

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/agroscanai/agroscan-cli/internal/client/alerts"
	"github.com/agroscanai/agroscan-cli/internal/client/api"
	"github.com/agroscanai/agroscan-cli/internal/client/models"
	"github.com/agroscanai/agroscan-cli/internal/logging"
)

// ---- fakes shared by the auth and scan service tests ----

type fakeAPI struct {
	mu sync.Mutex

	loginRes   *api.LoginResult
	loginErr   error
	loginCalls int

	registerErr   error
	registerCalls int
	lastUsername  string
	lastEmail     string

	scans          []api.ScanEntry
	scansErr       error
	fetchCalls     int
	lastFetchEmail string

	predictRes      *api.PredictResult
	predictErr      error
	predictCalls    int
	lastPredictFile string
	lastPredictMail string

	token string
}

func (f *fakeAPI) Login(_ context.Context, email, password string) (*api.LoginResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loginCalls++
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return f.loginRes, nil
}

func (f *fakeAPI) Register(_ context.Context, username, email, password string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.registerCalls++
	f.lastUsername, f.lastEmail = username, email
	return f.registerErr
}

func (f *fakeAPI) FetchScans(_ context.Context, email string) ([]api.ScanEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetchCalls++
	f.lastFetchEmail = email
	if f.scansErr != nil {
		return nil, f.scansErr
	}
	return f.scans, nil
}

func (f *fakeAPI) Predict(_ context.Context, email, filename string, _ []byte) (*api.PredictResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.predictCalls++
	f.lastPredictMail, f.lastPredictFile = email, filename
	if f.predictErr != nil {
		return nil, f.predictErr
	}
	return f.predictRes, nil
}

func (f *fakeAPI) SetToken(token string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.token = token
}

type fakeSessionCtl struct {
	mu            sync.Mutex
	sess          models.Session
	loginUser     string
	loginEmail    string
	loginToken    string
	loginCalls    int
	logoutCalls   int
	logoutReasons []string
}

func (f *fakeSessionCtl) Login(_ context.Context, userID, email, token string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loginCalls++
	f.loginUser, f.loginEmail, f.loginToken = userID, email, token
	f.sess = models.Session{Token: token, UserID: userID, UserEmail: email, LoginInstant: time.Now()}
}

func (f *fakeSessionCtl) Logout(_ context.Context, reason string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logoutCalls++
	f.logoutReasons = append(f.logoutReasons, reason)
	f.sess = models.Session{}
}

func (f *fakeSessionCtl) Current() models.Session {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sess
}

func (f *fakeSessionCtl) logoutCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.logoutCalls
}

func testLogger() logging.Logger {
	return logging.NewTextLogger(io.Discard, slog.LevelError)
}

func testCenter() *alerts.Center {
	return alerts.NewCenter(time.Minute)
}
