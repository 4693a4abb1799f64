package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterContent(t *testing.T) {
	svc := NewModerationService(nil)

	tests := []struct {
		name   string
		text   string
		ok     bool
		reason string
	}{
		{"clean text passes", "公園で一緒に遊びませんか？", true, ""},
		{"empty text passes", "", true, ""},
		{"english profanity", "this is fucking great", false, "inappropriate_language"},
		{"japanese banned word", "死ね", false, "inappropriate_language"},
		{"url rejected", "check https://example.com for details", false, "url_not_allowed"},
		{"www url rejected", "visit www.example.com now", false, "url_not_allowed"},
		{"email rejected", "連絡は mama@example.com まで", false, "contact_info_not_allowed"},
		{"phone number rejected", "090-1234-5678に電話して", false, "contact_info_not_allowed"},
		{"repeated chars rejected", "helppppp!!!!", false, "spam_detected"},
		{"word containing banned substring passes", "classic assessment", true, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, reason := svc.FilterContent(tt.text)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.reason, reason)
		})
	}
}

func TestCheckContent(t *testing.T) {
	svc := NewModerationService(nil)

	assert.NoError(t, svc.CheckContent("今日の夕方、砂場で会いましょう"))

	err := svc.CheckContent("DMはscamじゃないよ")
	var rejected *ErrContentRejected
	assert.ErrorAs(t, err, &rejected)
	assert.Equal(t, "inappropriate_language", rejected.Reason)
}
