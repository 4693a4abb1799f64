package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mamalink/mamalink-backend/internal/dto"
	"github.com/mamalink/mamalink-backend/internal/models"
)

var bannedWords = []string{
	"fuck", "fucking", "fucker", "shit", "shitty", "bullshit",
	"ass", "asshole", "bastard", "bitch", "cunt",
	"nigger", "nigga", "chink", "spic", "kike", "faggot", "fag",
	"retard", "retarded", "tranny",
	"porn", "porno", "nude", "nudes",
	"spam", "scam", "scammer", "phishing", "malware",
	"死ね", "殺す", "キモい", "ブス",
	"出会い系", "パパ活", "援交",
}

// ModerationService screens user-generated text and handles reports
// and blocks.
type ModerationService struct {
	db                  *gorm.DB
	bannedWordRegexps   []*regexp.Regexp
	urlPattern          *regexp.Regexp
	emailPattern        *regexp.Regexp
	phonePattern        *regexp.Regexp
	repeatedCharPattern *regexp.Regexp
}

func NewModerationService(db *gorm.DB) *ModerationService {
	s := &ModerationService{db: db}
	s.compilePatterns()
	return s
}

func (s *ModerationService) compilePatterns() {
	s.bannedWordRegexps = make([]*regexp.Regexp, 0, len(bannedWords))
	for _, word := range bannedWords {
		// \b does not work across Japanese text, so CJK entries match
		// as plain substrings.
		var pattern string
		if regexp.MustCompile(`^[a-zA-Z]+$`).MatchString(word) {
			pattern = `(?i)\b` + regexp.QuoteMeta(word) + `\b`
		} else {
			pattern = regexp.QuoteMeta(word)
		}
		re, err := regexp.Compile(pattern)
		if err == nil {
			s.bannedWordRegexps = append(s.bannedWordRegexps, re)
		}
	}

	s.urlPattern = regexp.MustCompile(`(?i)(https?://\S+|www\.\S+\.\S+)`)
	s.emailPattern = regexp.MustCompile(`(?i)\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Z|a-z]{2,}\b`)
	s.phonePattern = regexp.MustCompile(`0\d{1,4}[-.\s]?\d{1,4}[-.\s]?\d{4}|\(\d{2,4}\)\s*\d{2,4}[-.\s]?\d{4}`)
	s.repeatedCharPattern = regexp.MustCompile(`(?i)(a{4,}|b{4,}|c{4,}|d{4,}|e{4,}|f{4,}|g{4,}|h{4,}|i{4,}|j{4,}|k{4,}|l{4,}|m{4,}|n{4,}|o{4,}|p{4,}|q{4,}|r{4,}|s{4,}|t{4,}|u{4,}|v{4,}|w{4,}|x{4,}|y{4,}|z{4,}|!{4,}|\?{4,}|\.{4,})`)
}

// FilterContent reports whether text passes moderation; when it does
// not, the second value names the reason.
func (s *ModerationService) FilterContent(text string) (bool, string) {
	if text == "" {
		return true, ""
	}
	for _, re := range s.bannedWordRegexps {
		if re.MatchString(text) {
			return false, "inappropriate_language"
		}
	}
	if s.urlPattern.MatchString(text) {
		return false, "url_not_allowed"
	}
	if s.emailPattern.MatchString(text) || s.phonePattern.MatchString(text) {
		return false, "contact_info_not_allowed"
	}
	if s.repeatedCharPattern.MatchString(text) {
		return false, "spam_detected"
	}
	return true, ""
}

// CheckContent wraps FilterContent into an error.
func (s *ModerationService) CheckContent(text string) error {
	if ok, reason := s.FilterContent(text); !ok {
		return &ErrContentRejected{Reason: reason}
	}
	return nil
}

func RejectionMessage(reason string) string {
	messages := map[string]string{
		"inappropriate_language":   "Your content contains inappropriate language.",
		"url_not_allowed":          "URLs and web links are not allowed.",
		"contact_info_not_allowed": "Contact information is not allowed in public posts.",
		"spam_detected":            "Your content appears to be spam.",
	}
	if msg, ok := messages[reason]; ok {
		return msg
	}
	return "Your content does not meet the community guidelines."
}

func (s *ModerationService) CreateReport(ctx context.Context, reporterID uuid.UUID, req *dto.CreateReportRequest) (*models.Report, error) {
	validTypes := map[string]bool{"user": true, "post": true, "chat_message": true}
	if !validTypes[req.ContentType] {
		return nil, NewValidationError("invalid content_type: must be user, post, or chat_message")
	}
	if strings.TrimSpace(req.Reason) == "" {
		return nil, NewValidationError("reason is required")
	}

	report := models.Report{
		ReporterID:  reporterID,
		ContentType: req.ContentType,
		ContentID:   req.ContentID,
		Reason:      req.Reason,
		Status:      "pending",
	}
	if err := s.db.WithContext(ctx).Create(&report).Error; err != nil {
		return nil, fmt.Errorf("failed to create report: %w", err)
	}
	return &report, nil
}

func (s *ModerationService) ListReports(ctx context.Context, status string, limit, offset int) ([]models.Report, int64, error) {
	var reports []models.Report
	var total int64

	query := s.db.WithContext(ctx).Model(&models.Report{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	query.Count(&total)

	if err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&reports).Error; err != nil {
		return nil, 0, err
	}
	return reports, total, nil
}

func (s *ModerationService) ActionReport(ctx context.Context, reportID uuid.UUID, req *dto.ActionReportRequest) error {
	validStatuses := map[string]bool{"reviewed": true, "actioned": true, "dismissed": true}
	if !validStatuses[req.Status] {
		return NewValidationError("invalid status: must be reviewed, actioned, or dismissed")
	}

	result := s.db.WithContext(ctx).Model(&models.Report{}).
		Where("id = ?", reportID).
		Updates(map[string]interface{}{
			"status":     req.Status,
			"admin_note": req.AdminNote,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrReportNotFound
	}
	return nil
}

func (s *ModerationService) BlockUser(ctx context.Context, blockerID, blockedID uuid.UUID) error {
	if blockerID == blockedID {
		return ErrSelfBlock
	}

	block := models.Block{BlockerID: blockerID, BlockedID: blockedID}
	if err := s.db.WithContext(ctx).Create(&block).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrAlreadyBlocked
		}
		return err
	}
	return nil
}

func (s *ModerationService) UnblockUser(ctx context.Context, blockerID, blockedID uuid.UUID) error {
	return s.db.WithContext(ctx).
		Where("blocker_id = ? AND blocked_id = ?", blockerID, blockedID).
		Delete(&models.Block{}).Error
}

func (s *ModerationService) BlockedIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := s.db.WithContext(ctx).Model(&models.Block{}).
		Where("blocker_id = ?", userID).
		Pluck("blocked_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}
