// Command resumegen runs one resume generation job end to end: pipeline,
// credit debit, and optionally the typeset PDF. It reads a job request
// from a JSON file and prints the result record to stdout.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"

	"github.com/RohitSen1235/resumegen"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	os.Exit(run0())
}

func run0() int {
	level := slog.LevelInfo
	if os.Getenv("RESUMEGEN_LOG_LEVEL") == "debug" {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, logger); err != nil {
		slog.Error("fatal error", "error", err)
		return 1
	}
	return 0
}

// requestFile is the on-disk job request. Personal info is only needed
// when -pdf is set; the pipeline itself never sees it.
type requestFile struct {
	UserID         string                 `json:"user_id"`
	Personal       resumegen.PersonalInfo `json:"personal_info"`
	Profile        profileFile            `json:"profile"`
	JobDescription string                 `json:"job_description"`
	SkillHints     []string               `json:"skill_hints"`
}

type profileFile struct {
	Summary        string                 `json:"professional_summary"`
	Experiences    []resumegen.Experience `json:"past_experiences"`
	Skills         []string               `json:"skills"`
	Education      []resumegen.Education  `json:"education"`
	Certifications []string               `json:"certifications"`
}

func run(ctx context.Context, logger *slog.Logger) error {
	var (
		requestPath = flag.String("request", "", "path to the job request JSON file (required)")
		templateID  = flag.String("template", "", "resume template ID (empty selects the default)")
		renderPDF   = flag.Bool("pdf", false, "also compile the generated resume to PDF")
		memory      = flag.Bool("memory-progress", false, "use the in-process progress channel instead of Redis")
	)
	flag.Parse()

	if *requestPath == "" {
		flag.Usage()
		return fmt.Errorf("-request is required")
	}

	req, personal, err := loadRequest(*requestPath, *templateID)
	if err != nil {
		return err
	}

	opts := []resumegen.Option{
		resumegen.WithLogger(logger),
		resumegen.WithVersion(version),
	}
	if *memory {
		opts = append(opts, resumegen.WithMemoryProgress())
	}

	app, err := resumegen.New(opts...)
	if err != nil {
		return err
	}
	defer app.Close(context.Background())

	result, err := app.Generate(ctx, req)
	if err != nil {
		return fmt.Errorf("generate: %w", err)
	}

	out := map[string]any{
		"job_id":       result.JobID,
		"job_title":    result.JobTitle,
		"content":      result.Content,
		"total_tokens": result.TotalTokens,
		"total_cost":   result.TotalCost,
		"message":      result.Message,
	}

	if *renderPDF {
		pdf, err := app.RenderPDF(ctx, resumegen.RenderPDFRequest{
			Personal:   personal,
			Content:    result.Content,
			JobTitle:   result.JobTitle,
			UserID:     req.UserID.String(),
			TemplateID: *templateID,
		})
		if err != nil {
			return fmt.Errorf("render pdf: %w", err)
		}
		out["pdf_path"] = pdf.PDFPath
		out["pdf_overflow"] = pdf.Overflow
		if pdf.Overflow {
			logger.Warn("rendered resume overflows one page", "path", pdf.PDFPath)
		}
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func loadRequest(path, templateID string) (resumegen.GenerateRequest, resumegen.PersonalInfo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return resumegen.GenerateRequest{}, resumegen.PersonalInfo{}, fmt.Errorf("read request file: %w", err)
	}

	var rf requestFile
	if err := json.Unmarshal(data, &rf); err != nil {
		return resumegen.GenerateRequest{}, resumegen.PersonalInfo{}, fmt.Errorf("parse request file: %w", err)
	}

	userID, err := uuid.Parse(rf.UserID)
	if err != nil {
		return resumegen.GenerateRequest{}, resumegen.PersonalInfo{}, fmt.Errorf("parse user_id: %w", err)
	}

	req := resumegen.GenerateRequest{
		UserID: userID,
		Profile: resumegen.Profile{
			Summary:        rf.Profile.Summary,
			Experiences:    rf.Profile.Experiences,
			Skills:         rf.Profile.Skills,
			Education:      rf.Profile.Education,
			Certifications: rf.Profile.Certifications,
		},
		JobDescription: rf.JobDescription,
		SkillHints:     rf.SkillHints,
		TemplateID:     templateID,
	}
	return req, rf.Personal, nil
}
