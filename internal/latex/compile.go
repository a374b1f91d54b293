package latex

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/RohitSen1235/resumegen/internal/model"
)

var (
	// ErrCompileFailed is returned when a typesetter pass exits non-zero.
	ErrCompileFailed = errors.New("latex: compilation failed")
	// ErrOutputMissing is returned when both passes succeed but no PDF
	// appears in the working directory.
	ErrOutputMissing = errors.New("latex: output file missing")
	// ErrMissingPackages is returned by the pre-flight package check.
	ErrMissingPackages = errors.New("latex: required packages missing")
)

// Runner lets tests stub external commands.
type Runner interface {
	Run(ctx context.Context, dir, name string, args ...string) (stdout, stderr []byte, err error)
}

type execRunner struct{}

func (execRunner) Run(ctx context.Context, dir, name string, args ...string) ([]byte, []byte, error) {
	start := time.Now()

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	var out, errb bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errb

	err := cmd.Run()
	dur := time.Since(start)

	if err != nil {
		slog.Error("latex: exec failed",
			"cmd", name,
			"args", strings.Join(args, " "),
			"duration_ms", dur.Milliseconds(),
			"error", err,
		)
	} else {
		slog.Debug("latex: exec ok",
			"cmd", name,
			"args", strings.Join(args, " "),
			"duration_ms", dur.Milliseconds(),
		)
	}

	return out.Bytes(), errb.Bytes(), err
}

// requiredPackages are verified via kpsewhich when the check is enabled.
var requiredPackages = []string{"geometry.sty", "enumitem.sty", "hyperref.sty", "titlesec.sty"}

// Compiler drives the external typesetter: two non-interactive passes in a
// fresh temporary working directory, with per-pass logs kept on failure.
type Compiler struct {
	runner       Runner
	pdflatexBin  string
	xelatexBin   string
	kpsewhichBin string // Empty disables the package pre-check.
	logger       *slog.Logger
}

// NewCompiler builds a compiler around the configured typesetter binaries.
func NewCompiler(pdflatexBin, xelatexBin, kpsewhichBin string, logger *slog.Logger) *Compiler {
	if pdflatexBin == "" {
		pdflatexBin = "pdflatex"
	}
	if xelatexBin == "" {
		xelatexBin = "xelatex"
	}
	return &Compiler{
		runner:       execRunner{},
		pdflatexBin:  pdflatexBin,
		xelatexBin:   xelatexBin,
		kpsewhichBin: kpsewhichBin,
		logger:       logger,
	}
}

func (c *Compiler) binFor(engine model.TemplateEngine) string {
	if engine == model.EngineXeLaTeX {
		return c.xelatexBin
	}
	return c.pdflatexBin
}

// checkPackages verifies required typesetter packages are installed.
func (c *Compiler) checkPackages(ctx context.Context, dir string) error {
	if c.kpsewhichBin == "" {
		return nil
	}
	var missing []string
	for _, pkg := range requiredPackages {
		if _, _, err := c.runner.Run(ctx, dir, c.kpsewhichBin, pkg); err != nil {
			missing = append(missing, pkg)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingPackages, strings.Join(missing, ", "))
	}
	return nil
}

// Compile typesets source into a PDF and returns the path of the PDF inside
// the temporary working directory plus the directory itself. The caller
// copies the PDF out; the directory is removed by the returned cleanup.
//
// Two passes are unconditional: the second resolves cross-references. Both
// must exit zero.
func (c *Compiler) Compile(ctx context.Context, source string, engine model.TemplateEngine) (pdfPath string, cleanup func(), err error) {
	dir, err := os.MkdirTemp("", "resumegen-latex-*")
	if err != nil {
		return "", nil, fmt.Errorf("latex: create temp dir: %w", err)
	}
	cleanup = func() { _ = os.RemoveAll(dir) }
	defer func() {
		if err != nil {
			cleanup()
			cleanup = nil
		}
	}()

	const texName = "resume.tex"
	if err = os.WriteFile(filepath.Join(dir, texName), []byte(source), 0o644); err != nil {
		return "", nil, fmt.Errorf("latex: write tex source: %w", err)
	}

	if err = c.checkPackages(ctx, dir); err != nil {
		return "", nil, err
	}

	bin := c.binFor(engine)
	for pass := 1; pass <= 2; pass++ {
		stdout, stderr, runErr := c.runner.Run(ctx, dir, bin, "-interaction=nonstopmode", texName)

		logPath := filepath.Join(dir, fmt.Sprintf("compile-pass%d.log", pass))
		_ = os.WriteFile(logPath, append(stdout, stderr...), 0o644)

		if runErr != nil {
			// The work dir is removed on the error path, so the log the
			// message cites must be copied out of it first.
			return "", nil, fmt.Errorf("%w: pass %d (%s): %v (log: %s)",
				ErrCompileFailed, pass, bin, runErr, c.preserveLog(logPath, pass))
		}
	}

	pdfPath = filepath.Join(dir, "resume.pdf")
	if _, statErr := os.Stat(pdfPath); statErr != nil {
		return "", nil, fmt.Errorf("%w: expected %s", ErrOutputMissing, pdfPath)
	}
	return pdfPath, cleanup, nil
}

// preserveLog copies a pass log to a file that outlives the work dir and
// returns its path. Falls back to the original path if the copy fails.
func (c *Compiler) preserveLog(logPath string, pass int) string {
	content, err := os.ReadFile(logPath)
	if err != nil {
		return logPath
	}
	kept, err := os.CreateTemp("", fmt.Sprintf("resumegen-compile-pass%d-*.log", pass))
	if err != nil {
		return logPath
	}
	defer kept.Close()
	if _, err := kept.Write(content); err != nil {
		return logPath
	}
	return kept.Name()
}
