package latex

import (
	"strings"

	"github.com/RohitSen1235/resumegen/internal/model"
)

// Section names in the constructor's document grammar. Some prompts emit
// certifications and achievements combined, others split; the parser
// accepts both.
const (
	SectionSummary       = "Professional Summary"
	SectionSkills        = "Key Skills"
	SectionExperience    = "Professional Experience"
	SectionProjects      = "Projects"
	SectionEducation     = "Education"
	SectionCertsCombined = "Certifications & Achievements"
	SectionCerts         = "Certifications"
	SectionAchievements  = "Achievements"
	SectionOthers        = "Others"
)

// Section is one named block of the constructor output.
type Section struct {
	Name string
	Body string
}

// Document is the ordered list of sections parsed from constructor output.
type Document struct {
	Sections []Section
}

// Get returns the body of the named section, or "".
func (d Document) Get(name string) string {
	for _, s := range d.Sections {
		if s.Name == name {
			return s.Body
		}
	}
	return ""
}

// String re-renders the document into the section grammar. Sections whose
// body is empty are serialized as "None" per the grammar.
func (d Document) String() string {
	var b strings.Builder
	for _, s := range d.Sections {
		body := strings.TrimSpace(s.Body)
		if body == "" {
			body = "None"
		}
		b.WriteString("# " + s.Name + "\n===\n" + body + "\n===\n\n")
	}
	return strings.TrimRight(b.String(), "\n") + "\n"
}

// ParseDocument splits constructor output into sections. Each section is
// introduced by "# <Name>" followed by a line of exactly "===", body lines,
// and a closing "===". Blank lines inside a body are preserved so block
// structure (experience entries, education groups) survives.
func ParseDocument(content string) Document {
	var doc Document
	var current *Section
	var body []string

	flush := func() {
		if current != nil {
			text := strings.TrimSpace(strings.Join(body, "\n"))
			if strings.EqualFold(text, "None") {
				text = ""
			}
			current.Body = text
			doc.Sections = append(doc.Sections, *current)
		}
		current = nil
		body = nil
	}

	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimRight(line, " \t\r")
		switch {
		case strings.HasPrefix(line, "# "):
			flush()
			current = &Section{Name: strings.TrimSpace(line[2:])}
		case strings.TrimSpace(line) == "===":
			// Section fence; body lines are collected between fences.
		default:
			if current != nil {
				body = append(body, line)
			}
		}
	}
	flush()
	return doc
}

// parseBullets extracts one item per line prefixed with "•" or "-".
func parseBullets(body string) []string {
	var items []string
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		var item string
		switch {
		case strings.HasPrefix(line, "•"):
			item = strings.TrimSpace(strings.TrimPrefix(line, "•"))
		case strings.HasPrefix(line, "-"):
			item = strings.TrimSpace(strings.TrimPrefix(line, "-"))
		default:
			continue
		}
		if item != "" && !strings.EqualFold(item, "none") {
			items = append(items, item)
		}
	}
	return items
}

var boldMarker = strings.NewReplacer("**", "")

// parseExperience splits the experience body into role blocks: a header
// line ("Title, Company, Duration" or "Title at Company, Duration",
// optional **bold** markers) followed by achievement bullets.
func parseExperience(body string) []model.RenderedExperience {
	var out []model.RenderedExperience
	var cur *model.RenderedExperience

	flush := func() {
		if cur != nil && (cur.Title != "" || len(cur.Achievements) > 0) {
			out = append(out, *cur)
		}
		cur = nil
	}

	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "•") || strings.HasPrefix(line, "-") {
			if cur != nil {
				item := strings.TrimSpace(strings.TrimLeft(line, "•- "))
				if item != "" {
					cur.Achievements = append(cur.Achievements, item)
				}
			}
			continue
		}

		flush()
		title, company, duration := splitExperienceHeader(boldMarker.Replace(line))
		cur = &model.RenderedExperience{Title: title, Company: company, Duration: duration}
	}
	flush()
	return out
}

func splitExperienceHeader(line string) (title, company, duration string) {
	if before, after, found := strings.Cut(line, " at "); found {
		title = strings.TrimSpace(before)
		company, duration, _ = cutLast(after, ",")
		return title, strings.TrimSpace(company), strings.TrimSpace(duration)
	}
	parts := strings.SplitN(line, ",", 3)
	switch len(parts) {
	case 3:
		return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1]), strings.TrimSpace(parts[2])
	case 2:
		return strings.TrimSpace(parts[0]), "", strings.TrimSpace(parts[1])
	default:
		return strings.TrimSpace(line), "", ""
	}
}

// cutLast splits on the final occurrence of sep.
func cutLast(s, sep string) (before, after string, found bool) {
	i := strings.LastIndex(s, sep)
	if i < 0 {
		return s, "", false
	}
	return s[:i], s[i+len(sep):], true
}

// parseEducation accepts the pipe-separated form "Degree | Institution |
// Year" one entry per line, or plain blocks of up to three consecutive
// lines read as degree, institution, year.
func parseEducation(body string) []model.RenderedEducation {
	var out []model.RenderedEducation

	if strings.Contains(body, "|") {
		for _, line := range strings.Split(body, "\n") {
			line = strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(line), "•- "))
			if line == "" {
				continue
			}
			parts := strings.Split(line, "|")
			entry := model.RenderedEducation{Degree: strings.TrimSpace(parts[0])}
			if len(parts) > 1 {
				entry.Institution = strings.TrimSpace(parts[1])
			}
			if len(parts) > 2 {
				entry.Year = strings.TrimSpace(parts[2])
			}
			out = append(out, entry)
		}
		return out
	}

	for _, block := range splitBlocks(body) {
		for i := 0; i < len(block); i += 3 {
			entry := model.RenderedEducation{Degree: block[i]}
			if i+1 < len(block) {
				entry.Institution = block[i+1]
			}
			if i+2 < len(block) {
				entry.Year = block[i+2]
			}
			out = append(out, entry)
		}
	}
	return out
}

// parseProjects splits the projects body into blocks of a title line
// followed by highlight bullets.
func parseProjects(body string) []model.RenderedProject {
	var out []model.RenderedProject
	var cur *model.RenderedProject

	flush := func() {
		if cur != nil && cur.Title != "" {
			out = append(out, *cur)
		}
		cur = nil
	}

	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "•") || strings.HasPrefix(line, "-") {
			if cur != nil {
				item := strings.TrimSpace(strings.TrimLeft(line, "•- "))
				if item != "" {
					cur.Highlights = append(cur.Highlights, item)
				}
			}
			continue
		}
		flush()
		cur = &model.RenderedProject{Title: boldMarker.Replace(line)}
	}
	flush()
	return out
}

// splitBlocks groups non-empty lines separated by blank lines.
func splitBlocks(body string) [][]string {
	var blocks [][]string
	var cur []string
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			if len(cur) > 0 {
				blocks = append(blocks, cur)
				cur = nil
			}
			continue
		}
		cur = append(cur, line)
	}
	if len(cur) > 0 {
		blocks = append(blocks, cur)
	}
	return blocks
}
