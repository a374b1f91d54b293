package latex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RohitSen1235/resumegen/internal/model"
)

var testPersonal = model.PersonalInfo{
	Name:     "Jane Smith",
	Email:    "jane@example.com",
	Phone:    "+1 555 0100",
	Location: "Berlin",
	LinkedIn: "linkedin.com/in/janesmith",
}

func TestBuildModelRequiresNameAndEmail(t *testing.T) {
	_, err := BuildModel(model.PersonalInfo{Email: "a@b.c"}, sampleContent, "engineer")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name")

	_, err = BuildModel(model.PersonalInfo{Name: "Jane"}, sampleContent, "engineer")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "email")
}

func TestBuildModelFullDocument(t *testing.T) {
	rm, err := BuildModel(testPersonal, sampleContent, "backend-engineer")
	require.NoError(t, err)

	assert.Equal(t, "Jane Smith", rm.Name)
	assert.Equal(t, "jane@example.com", rm.Email)
	assert.Equal(t, "backend-engineer", rm.JobTitle)
	assert.Contains(t, rm.Summary, "distributed systems")
	assert.Equal(t, []string{"Go", "PostgreSQL", "Kubernetes"}, rm.Skills)
	require.Len(t, rm.Experience, 2)
	assert.Equal(t, "XYZ Corp", rm.Experience[0].Company)
	require.Len(t, rm.Education, 1)
	assert.Equal(t, "2014", rm.Education[0].Year)
	require.Len(t, rm.Projects, 1)
	assert.Equal(t, []string{"AWS Certified Solutions Architect", "Professional Scrum Master I"}, rm.Certifications)
}

func TestBuildModelEscapesEverything(t *testing.T) {
	content := "# Professional Summary\n===\nExpert in C# & .NET with 100% success_rate\n===\n"
	rm, err := BuildModel(model.PersonalInfo{Name: "A&B", Email: "x_y@example.com"}, content, "c#-developer")
	require.NoError(t, err)

	assert.Equal(t, `A\&B`, rm.Name)
	assert.Equal(t, `x\_y@example.com`, rm.Email)
	assert.Equal(t, `c\#-developer`, rm.JobTitle)
	assert.Equal(t, `Expert in C\# \& .NET with 100\% success\_rate`, rm.Summary)
}

func TestBuildModelSplitCertificationSections(t *testing.T) {
	content := `# Certifications
===
• CKA
===

# Achievements
===
• Speaker at GopherCon
===
`
	rm, err := BuildModel(testPersonal, content, "sre")
	require.NoError(t, err)
	assert.Equal(t, []string{"CKA"}, rm.Certifications)
	assert.Equal(t, []string{"Speaker at GopherCon"}, rm.Achievements)
}

func TestBuildModelCombinedCertificationsTakePriority(t *testing.T) {
	content := `# Certifications & Achievements
===
• Combined entry
===

# Certifications
===
• Split entry
===
`
	rm, err := BuildModel(testPersonal, content, "sre")
	require.NoError(t, err)
	assert.Equal(t, []string{"Combined entry"}, rm.Certifications)
}

func TestBuildModelEmptySections(t *testing.T) {
	content := "# Professional Summary\n===\nShort summary.\n===\n\n# Projects\n===\nNone\n===\n"
	rm, err := BuildModel(testPersonal, content, "engineer")
	require.NoError(t, err)

	assert.Empty(t, rm.Projects)
	assert.Empty(t, rm.Skills)
	assert.Empty(t, rm.Experience)
}

func TestTrimForSinglePage(t *testing.T) {
	rm := model.RenderingModel{
		Experience: []model.RenderedExperience{
			{Title: "1"}, {Title: "2"}, {Title: "3"}, {Title: "4"}, {Title: "5"},
		},
		Projects: []model.RenderedProject{
			{Title: "p1"}, {Title: "p2"}, {Title: "p3"}, {Title: "p4"},
		},
		Skills: []string{"a", "b", "c", "d", "e"},
	}

	trimmed := trimForSinglePage(rm)
	require.Len(t, trimmed.Experience, 3)
	assert.Equal(t, "1", trimmed.Experience[0].Title)
	assert.Equal(t, "3", trimmed.Experience[2].Title)
	require.Len(t, trimmed.Projects, 3)
	// Skills are not trimmed.
	assert.Len(t, trimmed.Skills, 5)
}

func TestTrimForSinglePageNoop(t *testing.T) {
	rm := model.RenderingModel{
		Experience: []model.RenderedExperience{{Title: "only"}},
	}
	trimmed := trimForSinglePage(rm)
	assert.Len(t, trimmed.Experience, 1)
}
