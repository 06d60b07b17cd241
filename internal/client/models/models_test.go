package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSession_IsAuthenticated(t *testing.T) {
	tests := []struct {
		name string
		s    Session
		want bool
	}{
		{name: "zero session", s: Session{}, want: false},
		{name: "token only", s: Session{Token: "tok"}, want: false},
		{name: "user id only", s: Session{UserID: "42"}, want: false},
		{name: "token and user id", s: Session{Token: "tok", UserID: "42"}, want: true},
		{name: "full session", s: Session{Token: "tok", UserID: "42", UserEmail: "a@b.com", LoginInstant: time.Now()}, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.s.IsAuthenticated())
		})
	}
}

func TestScanRecord_Saved(t *testing.T) {
	assert.False(t, ScanRecord{}.Saved())
	assert.True(t, ScanRecord{ScanID: "17"}.Saved())
}

func TestHistoryLabel(t *testing.T) {
	assert.Equal(t, "Scan ID: 17", HistoryLabel("17"))
	assert.Equal(t, "Scan ID: N/A", HistoryLabel(""))
}

func TestAlert_Empty(t *testing.T) {
	assert.True(t, Alert{}.Empty())
	assert.False(t, Alert{Text: "hi", Kind: AlertSuccess}.Empty())
}
