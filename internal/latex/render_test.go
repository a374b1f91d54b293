package latex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RohitSen1235/resumegen/internal/model"
)

const testTemplate = `\documentclass{article}
[# Header block, interpolated from the rendering model. #]
\begin{document}
\section*{[[.Name]] --- [[.JobTitle]]}
[[.Summary]]
\begin{itemize}
[[range .Skills]]\item [[.]]
[[end]]\end{itemize}
[[range .Experience]]\textbf{[[.Title]]} at [[.Company]] ([[.Duration]])
[[range .Achievements]]\item [[.]]
[[end]][[end]]\end{document}
`

func testRenderingModel() model.RenderingModel {
	return model.RenderingModel{
		Name:     "Jane Smith",
		JobTitle: "backend-engineer",
		Summary:  "Seasoned engineer.",
		Skills:   []string{"Go", "PostgreSQL"},
		Experience: []model.RenderedExperience{
			{Title: "Senior Engineer", Company: "XYZ Corp", Duration: "2020-Present", Achievements: []string{"Led the team"}},
		},
	}
}

func TestRenderTemplate(t *testing.T) {
	out, err := RenderTemplate("test", testTemplate, testRenderingModel())
	require.NoError(t, err)

	assert.Contains(t, out, `\section*{Jane Smith --- backend-engineer}`)
	assert.Contains(t, out, `\item Go`)
	assert.Contains(t, out, `\item PostgreSQL`)
	assert.Contains(t, out, `\textbf{Senior Engineer} at XYZ Corp (2020-Present)`)
	assert.Contains(t, out, `\item Led the team`)
}

func TestRenderTemplateStripsComments(t *testing.T) {
	out, err := RenderTemplate("test", testTemplate, testRenderingModel())
	require.NoError(t, err)
	assert.NotContains(t, out, "Header block")
	assert.NotContains(t, out, "[#")
}

func TestRenderTemplateUnterminatedComment(t *testing.T) {
	out, err := RenderTemplate("test", "before [# never closed", testRenderingModel())
	require.NoError(t, err)
	assert.Equal(t, "before ", out)
}

func TestRenderTemplateLeavesLaTeXAlone(t *testing.T) {
	// Braces, percent signs and backslashes are typesetter syntax and must
	// pass through the interpolation untouched.
	body := `\usepackage{geometry} % 1in margins
[[.Name]]`
	out, err := RenderTemplate("test", body, testRenderingModel())
	require.NoError(t, err)
	assert.Contains(t, out, `\usepackage{geometry} % 1in margins`)
	assert.Contains(t, out, "Jane Smith")
}

func TestRenderTemplateParseError(t *testing.T) {
	_, err := RenderTemplate("bad", "[[.Name", model.RenderingModel{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRenderFailed)
}

func TestRenderTemplateRejectsBlockDelimiters(t *testing.T) {
	// [% %] is not a supported action form; rendering it literally would
	// leak the markers into the typeset output, so it fails loudly instead.
	_, err := RenderTemplate("bad", "[% if .Name %][[.Name]][% end %]", testRenderingModel())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRenderFailed)
	assert.Contains(t, err.Error(), "[%")
}

func TestRenderTemplateUnknownField(t *testing.T) {
	_, err := RenderTemplate("bad", "[[.DoesNotExist]]", model.RenderingModel{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRenderFailed)
}
