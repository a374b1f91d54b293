package latex

import (
	"fmt"

	"github.com/RohitSen1235/resumegen/internal/model"
)

// BuildModel coerces constructor output plus the personal info block into
// the escaped rendering model the template engine consumes.
func BuildModel(personal model.PersonalInfo, content, jobTitle string) (model.RenderingModel, error) {
	if personal.Name == "" {
		return model.RenderingModel{}, fmt.Errorf("latex: personal info: name is required")
	}
	if personal.Email == "" {
		return model.RenderingModel{}, fmt.Errorf("latex: personal info: email is required")
	}

	doc := ParseDocument(content)

	certs := parseBullets(doc.Get(SectionCertsCombined))
	achievements := parseBullets(doc.Get(SectionAchievements))
	if len(certs) == 0 {
		certs = parseBullets(doc.Get(SectionCerts))
	}

	rm := model.RenderingModel{
		Name:           Escape(personal.Name),
		Email:          Escape(personal.Email),
		Phone:          Escape(personal.Phone),
		Location:       Escape(personal.Location),
		LinkedIn:       Escape(personal.LinkedIn),
		JobTitle:       Escape(jobTitle),
		Summary:        Escape(doc.Get(SectionSummary)),
		Skills:         EscapeAll(parseBullets(doc.Get(SectionSkills))),
		Certifications: EscapeAll(certs),
		Achievements:   EscapeAll(achievements),
		Others:         EscapeAll(parseBullets(doc.Get(SectionOthers))),
	}

	for _, exp := range parseExperience(doc.Get(SectionExperience)) {
		rm.Experience = append(rm.Experience, model.RenderedExperience{
			Title:        Escape(exp.Title),
			Company:      Escape(exp.Company),
			Duration:     Escape(exp.Duration),
			Achievements: EscapeAll(exp.Achievements),
		})
	}
	for _, edu := range parseEducation(doc.Get(SectionEducation)) {
		rm.Education = append(rm.Education, model.RenderedEducation{
			Degree:      Escape(edu.Degree),
			Institution: Escape(edu.Institution),
			Year:        Escape(edu.Year),
		})
	}
	for _, proj := range parseProjects(doc.Get(SectionProjects)) {
		rm.Projects = append(rm.Projects, model.RenderedProject{
			Title:      Escape(proj.Title),
			Highlights: EscapeAll(proj.Highlights),
		})
	}

	return rm, nil
}

// trimForSinglePage bounds the rendering model for single-page templates:
// only the first three experience and project entries are kept.
func trimForSinglePage(rm model.RenderingModel) model.RenderingModel {
	const maxEntries = 3
	if len(rm.Experience) > maxEntries {
		rm.Experience = rm.Experience[:maxEntries]
	}
	if len(rm.Projects) > maxEntries {
		rm.Projects = rm.Projects[:maxEntries]
	}
	return rm
}
