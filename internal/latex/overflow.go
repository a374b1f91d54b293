package latex

import (
	"fmt"

	"github.com/ledongthuc/pdf"
)

// PageCount inspects a compiled PDF and returns its page count. Used for
// single-page overflow detection only; the result never fails a job.
func PageCount(path string) (int, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return 0, fmt.Errorf("latex: open pdf %s: %w", path, err)
	}
	defer f.Close()
	return r.NumPage(), nil
}
