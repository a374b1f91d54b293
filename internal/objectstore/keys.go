package objectstore

import "fmt"

// Key conventions shared with the upload and download surfaces.

// LatestResumeTextKey points at the parsed text of the user's most recent
// upload. The upload surface rewrites it on every successful parse so the
// pipeline can fetch a draft without listing.
func LatestResumeTextKey(userID string) string {
	return fmt.Sprintf("users/%s/uploaded_resumes/latest.txt", userID)
}

// GeneratedContentKey is where the constructor's markdown output for a job
// is persisted.
func GeneratedContentKey(userID, resumeID string) string {
	return fmt.Sprintf("users/%s/generated_resumes/%s/content.md", userID, resumeID)
}

// TemplateKey is where a LaTeX template body lives.
func TemplateKey(templateID string) string {
	return fmt.Sprintf("templates/%s/template.tex", templateID)
}
