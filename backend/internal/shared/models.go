// ============================================================================
// backend/internal/shared/models.go
// Shared data models and structs for MongoDB documents
// ============================================================================

package shared

import (
	"strconv"
	"time"
)

// ============================================================================
// Account Models
// ============================================================================

// UserAccount represents a registered student account
type UserAccount struct {
	Fullname     string    `bson:"fullname" json:"fullname"`
	Username     string    `bson:"username" json:"username"`
	PasswordHash string    `bson:"password_hash" json:"-"` // Never expose in JSON
	RollNumber   string    `bson:"roll_number" json:"roll_number"`
	Section      string    `bson:"section" json:"section"`
	Year         string    `bson:"year" json:"year"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
}

// ProfileView is the read view of an account returned on login (no hash)
type ProfileView struct {
	Fullname   string `json:"fullname"`
	RollNumber string `json:"roll_number"`
	Section    string `json:"section"`
	Year       string `json:"year"`
}

// Profile returns the read view of an account
func (u *UserAccount) Profile() *ProfileView {
	return &ProfileView{
		Fullname:   u.Fullname,
		RollNumber: u.RollNumber,
		Section:    u.Section,
		Year:       u.Year,
	}
}

// ============================================================================
// Submission Models
// ============================================================================

// SubmissionKey is the composite natural key identifying one submission
// within a subject collection
type SubmissionKey struct {
	Year       string `bson:"year" json:"year"`
	Section    string `bson:"section" json:"section"`
	RollNumber string `bson:"roll_number" json:"roll_number"`
	PaperID    string `bson:"paper_id" json:"paper_id"`
}

// SubmissionRecord holds per-question answer-sheet image references for one
// (year, section, roll_number, paper_id) tuple
type SubmissionRecord struct {
	Year       string            `bson:"year" json:"year"`
	Section    string            `bson:"section" json:"section"`
	RollNumber string            `bson:"roll_number" json:"roll_number"`
	PaperID    string            `bson:"paper_id" json:"paper_id"`
	ImageURLs  map[string]string `bson:"image_urls" json:"image_urls"`
	UpdatedAt  time.Time         `bson:"updated_at" json:"updated_at"`
}

// Key returns the composite key of the record
func (r *SubmissionRecord) Key() SubmissionKey {
	return SubmissionKey{
		Year:       r.Year,
		Section:    r.Section,
		RollNumber: r.RollNumber,
		PaperID:    r.PaperID,
	}
}

// ============================================================================
// Result Models
// ============================================================================

// GradedResult is one graded question produced by the evaluation pipeline
type GradedResult struct {
	PaperID         string  `bson:"paper_id" json:"paper_id"`
	RollNumber      string  `bson:"roll_number" json:"roll_number"`
	QuestionNo      string  `bson:"question_no" json:"question_no"`
	SimilarityScore float64 `bson:"similarity_score" json:"similarity_score"`
}

// ExtractedText is the OCR-extracted student answer for one question
type ExtractedText struct {
	PaperID    string `bson:"paper_id" json:"paper_id"`
	RollNumber string `bson:"roll_number" json:"roll_number"`
	QuestionNo string `bson:"question_no" json:"question_no"`
	Text       string `bson:"text" json:"text"`
}

// IdealAnswer is the reference answer for one question of a paper
type IdealAnswer struct {
	PaperID    string `bson:"paper_id" json:"paper_id"`
	QuestionNo string `bson:"question_no" json:"question_no"`
	Text       string `bson:"text" json:"text"`
}

// ResultEntry is one denormalized row of a student's result report,
// assembled by joining graded, extracted and ideal-answer documents
type ResultEntry struct {
	Subject         string  `json:"subject"`
	QuestionNo      string  `json:"question_no"`
	SimilarityScore float64 `json:"similarity_score"`
	TeacherText     string  `json:"teacher_text"`
	StudentText     string  `json:"student_text"`
}

// SubjectOutcome records how one subject fared during result aggregation.
// A skipped subject does not abort the overall aggregation.
type SubjectOutcome struct {
	Subject string `json:"subject"`
	Entries int    `json:"entries"`
	Skipped bool   `json:"skipped"`
	Reason  string `json:"reason,omitempty"`
}

// ============================================================================
// Constants
// ============================================================================

const (
	// TextNotAvailable substitutes a missing extracted or ideal text in a
	// result entry instead of failing the aggregation
	TextNotAvailable = "Not available"
)

// ============================================================================
// Validation Helpers
// ============================================================================

// NormalizeQuestionNumber validates that q is the string form of a positive
// question index and returns its canonical form ("07" becomes "7")
func NormalizeQuestionNumber(q string) (string, bool) {
	n, err := strconv.Atoi(q)
	if err != nil || n <= 0 {
		return "", false
	}
	return strconv.Itoa(n), true
}
