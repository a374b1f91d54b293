// Package model defines the value objects shared across the resume
// optimization pipeline and the rendering engine.
package model

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Experience is one past role in a user's professional history.
type Experience struct {
	Position    string `json:"position"`
	Company     string `json:"company"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Description string `json:"description"`
}

// Education is one education entry in a user's professional history.
type Education struct {
	Institution  string `json:"institution"`
	Degree       string `json:"degree"`
	FieldOfStudy string `json:"field_of_study"`
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
}

// ProfileSnapshot is the profile-derived input to a generation job.
// It is constructed once per job and never mutated afterwards.
type ProfileSnapshot struct {
	ProfessionalSummary string       `json:"professional_summary"`
	PastExperiences     []Experience `json:"past_experiences"`
	Skills              []string     `json:"skills"`
	Education           []Education  `json:"education"`
	Certifications      []string     `json:"certifications"`
}

// FormatExperiences renders past experiences as a bullet list for prompts.
func (p ProfileSnapshot) FormatExperiences() string {
	if len(p.PastExperiences) == 0 {
		return "No previous experience provided"
	}
	var b strings.Builder
	for _, exp := range p.PastExperiences {
		fmt.Fprintf(&b, "- %s at %s (%s - %s): %s\n",
			exp.Position, exp.Company, exp.StartDate, exp.EndDate, exp.Description)
	}
	return strings.TrimRight(b.String(), "\n")
}

// FormatEducation renders education entries as a bullet list for prompts.
func (p ProfileSnapshot) FormatEducation() string {
	if len(p.Education) == 0 {
		return "No education information provided"
	}
	var b strings.Builder
	for _, edu := range p.Education {
		fmt.Fprintf(&b, "- %s in %s, %s (%s - %s)\n",
			edu.Degree, edu.FieldOfStudy, edu.Institution, edu.StartDate, edu.EndDate)
	}
	return strings.TrimRight(b.String(), "\n")
}

// FormatSkills renders skills as a comma-separated list for prompts.
func (p ProfileSnapshot) FormatSkills() string {
	if len(p.Skills) == 0 {
		return "No skills provided"
	}
	return strings.Join(p.Skills, ", ")
}

// FormatCertifications renders certifications as a bullet list for prompts.
func (p ProfileSnapshot) FormatCertifications() string {
	var b strings.Builder
	for _, cert := range p.Certifications {
		fmt.Fprintf(&b, "- %s\n", cert)
	}
	return strings.TrimRight(b.String(), "\n")
}

// PersonalInfo is the contact block rendered at the top of a resume.
// It is not part of the LLM pipeline input; it flows straight to the
// rendering engine.
type PersonalInfo struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
	LinkedIn string `json:"linkedin"`
}

// JobRequest is one invocation of the pipeline for one user and one job
// description. Created at job start and never mutated.
type JobRequest struct {
	JobID          uuid.UUID       `json:"job_id"`
	UserID         uuid.UUID       `json:"user_id"`
	Profile        ProfileSnapshot `json:"profile_snapshot"`
	JobDescription string          `json:"job_description"`
	SkillHints     []string        `json:"skill_hints,omitempty"`
	TemplateID     string          `json:"template_id,omitempty"`
}
