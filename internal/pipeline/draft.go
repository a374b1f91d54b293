package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/RohitSen1235/resumegen/internal/llm"
	"github.com/RohitSen1235/resumegen/internal/model"
	"github.com/RohitSen1235/resumegen/internal/objectstore"
	"github.com/RohitSen1235/resumegen/internal/token"
)

// draft resolves the initial resume content fed to the analyzer stages:
// the user's previously uploaded resume text when one exists, otherwise a
// synthetic draft from one direct LLM call over the profile snapshot.
func (o *Orchestrator) draft(ctx context.Context, acct *token.Accountant, req model.JobRequest) (string, error) {
	uploaded, err := o.store.DownloadText(ctx, objectstore.LatestResumeTextKey(req.UserID.String()))
	if err == nil && strings.TrimSpace(uploaded) != "" {
		o.logger.Debug("pipeline: using uploaded resume as draft", "job_id", req.JobID)
		return uploaded, nil
	}
	if err != nil && !errors.Is(err, objectstore.ErrNotFound) {
		return "", fmt.Errorf("pipeline: fetch uploaded resume: %w", err)
	}

	prompt := bootstrapPrompt(req)
	resp, err := o.llm.ChatCompletion(ctx, llm.Request{
		Model: o.opts.LLMModel,
		Messages: []llm.Message{
			{Role: "system", Content: bootstrapSystemPrompt},
			{Role: "user", Content: prompt},
		},
		Temperature: 0.7,
		MaxTokens:   2000,
	})
	if err != nil {
		return "", fmt.Errorf("pipeline: generate draft: %w", err)
	}

	acct.RecordLLMCall(prompt, resp.Content)
	return resp.Content, nil
}

const bootstrapSystemPrompt = "You are an expert resume writer who specializes in creating targeted " +
	"resumes that align with specific job descriptions. Always format your response exactly as " +
	"requested, maintaining section headers and markers."

// bootstrapPrompt interpolates the profile snapshot and job description
// into the draft-generation prompt.
func bootstrapPrompt(req model.JobRequest) string {
	p := req.Profile

	summary := p.ProfessionalSummary
	if summary == "" {
		summary = "Not provided"
	}

	var b strings.Builder
	b.WriteString("As an expert resume writer, optimize the following professional information for the job description provided.\n")
	b.WriteString("Focus on relevant experience and skills, and create a compelling professional summary.\n\n")
	b.WriteString("Original Professional Information:\n\n")
	fmt.Fprintf(&b, "Current Summary:\n%s\n\n", summary)
	fmt.Fprintf(&b, "Experience:\n%s\n\n", p.FormatExperiences())
	fmt.Fprintf(&b, "Education:\n%s\n\n", p.FormatEducation())
	fmt.Fprintf(&b, "Skills:\n%s\n\n", p.FormatSkills())
	fmt.Fprintf(&b, "Certifications:\n%s\n\n", p.FormatCertifications())
	if len(req.SkillHints) > 0 {
		fmt.Fprintf(&b, "Additional skills to emphasize:\n%s\n\n", strings.Join(req.SkillHints, ", "))
	}
	fmt.Fprintf(&b, "Job Description:\n%s\n", req.JobDescription)
	return b.String()
}
