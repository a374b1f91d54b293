package latex

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/RohitSen1235/resumegen/internal/model"
	"github.com/RohitSen1235/resumegen/internal/objectstore"
)

// RenderRequest asks the engine for one typeset PDF.
type RenderRequest struct {
	Personal   model.PersonalInfo
	Content    string // Constructor output in the section grammar.
	JobTitle   string
	UserID     string
	TemplateID string // Empty selects the default template.
}

// RenderResult is the engine's output. Overflow reports that a single-page
// template produced more than one page; the PDF is still written.
type RenderResult struct {
	PDFPath  string
	Overflow bool
	Message  string
}

// Engine is the LaTeX rendering engine: template loading, model coercion,
// interpolation, and two-pass compilation.
type Engine struct {
	store     objectstore.Store
	registry  *Registry
	compiler  *Compiler
	outputDir string
	logger    *slog.Logger
	now       func() time.Time
	pages     func(path string) (int, error)
}

// NewEngine wires the engine. outputDir is created on first use.
func NewEngine(store objectstore.Store, registry *Registry, compiler *Compiler, outputDir string, logger *slog.Logger) *Engine {
	return &Engine{
		store:     store,
		registry:  registry,
		compiler:  compiler,
		outputDir: outputDir,
		logger:    logger,
		now:       time.Now,
		pages:     PageCount,
	}
}

// Render produces the PDF for a completed job's content.
func (e *Engine) Render(ctx context.Context, req RenderRequest) (RenderResult, error) {
	descriptor, err := e.registry.Get(req.TemplateID)
	if err != nil {
		return RenderResult{}, err
	}

	body, err := e.registry.LoadBody(ctx, e.store, descriptor)
	if err != nil {
		return RenderResult{}, err
	}

	rm, err := BuildModel(req.Personal, req.Content, req.JobTitle)
	if err != nil {
		return RenderResult{}, err
	}
	if descriptor.SinglePage {
		rm = trimForSinglePage(rm)
	}

	source, err := RenderTemplate(descriptor.ID, body, rm)
	if err != nil {
		return RenderResult{}, err
	}

	pdfPath, cleanup, err := e.compiler.Compile(ctx, source, descriptor.Engine)
	if err != nil {
		return RenderResult{}, err
	}
	defer cleanup()

	outPath, err := e.persist(pdfPath, req.UserID, req.JobTitle, descriptor.ID)
	if err != nil {
		return RenderResult{}, err
	}

	result := RenderResult{PDFPath: outPath, Message: "Resume PDF generated"}
	if descriptor.SinglePage {
		pages, err := e.pages(outPath)
		if err != nil {
			e.logger.Warn("latex: page count failed", "path", outPath, "error", err)
		} else if pages > 1 {
			result.Overflow = true
			result.Message = fmt.Sprintf("Resume exceeds one page (%d pages); consider trimming content", pages)
		}
	}

	e.logger.Info("latex: rendered resume",
		"template", descriptor.ID, "path", outPath, "overflow", result.Overflow)
	return result, nil
}

// persist copies the compiled PDF out of the temp dir under a deterministic
// name: <user>_<job_title>_<template>_resume_<timestamp>.pdf.
func (e *Engine) persist(pdfPath, userID, jobTitle, templateID string) (string, error) {
	if err := os.MkdirAll(e.outputDir, 0o755); err != nil {
		return "", fmt.Errorf("latex: create output dir: %w", err)
	}

	name := fmt.Sprintf("%s_%s_%s_resume_%d.pdf",
		sanitizeName(userID), sanitizeName(jobTitle), sanitizeName(templateID), e.now().Unix())
	outPath := filepath.Join(e.outputDir, name)

	src, err := os.Open(pdfPath)
	if err != nil {
		return "", fmt.Errorf("latex: open compiled pdf: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(outPath)
	if err != nil {
		return "", fmt.Errorf("latex: create output pdf: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("latex: copy pdf: %w", err)
	}
	return outPath, nil
}

// sanitizeName keeps output file names shell- and URL-safe.
func sanitizeName(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	if b.Len() == 0 {
		return "resume"
	}
	return b.String()
}
