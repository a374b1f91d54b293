package resumegen

import (
	"time"

	"github.com/google/uuid"
)

// Public request/response types for embedding consumers. These are
// standalone structs with no internal imports; conversion helpers live in
// resumegen.go, the only file that sees both sides of the boundary.

// Experience is one past role in a user's professional history.
type Experience struct {
	Position    string
	Company     string
	StartDate   string
	EndDate     string
	Description string
}

// Education is one education entry.
type Education struct {
	Institution  string
	Degree       string
	FieldOfStudy string
	StartDate    string
	EndDate      string
}

// Profile is the professional history a job is generated from.
type Profile struct {
	Summary        string
	Experiences    []Experience
	Skills         []string
	Education      []Education
	Certifications []string
}

// PersonalInfo is the contact block typeset at the top of the resume.
type PersonalInfo struct {
	Name     string
	Email    string
	Phone    string
	Location string
	LinkedIn string
}

// GenerateRequest submits one generation job.
type GenerateRequest struct {
	UserID         uuid.UUID
	Profile        Profile
	JobDescription string
	SkillHints     []string
	TemplateID     string
}

// Progress is a point-in-time view of a running job.
type Progress struct {
	Status      string
	Progress    int
	CurrentStep string
	ETA         time.Duration
	StartTime   time.Time
	Elapsed     time.Duration
}

// Result is the final artifact of a completed job.
type Result struct {
	JobID        string
	JobTitle     string
	Content      string
	AgentOutputs string
	TotalTokens  int
	TotalCost    float64
	Message      string
}

// RenderPDFRequest converts a job's content into a typeset PDF.
type RenderPDFRequest struct {
	Personal   PersonalInfo
	Content    string
	JobTitle   string
	UserID     string
	TemplateID string
}

// RenderPDFResult carries the PDF path and the single-page overflow flag.
type RenderPDFResult struct {
	PDFPath  string
	Overflow bool
	Message  string
}
