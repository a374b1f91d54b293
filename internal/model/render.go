package model

// RenderedExperience is one role block in the rendering model.
type RenderedExperience struct {
	Title        string   `json:"title"`
	Company      string   `json:"company"`
	Duration     string   `json:"duration"`
	Achievements []string `json:"achievements"`
}

// RenderedEducation is one education block in the rendering model.
type RenderedEducation struct {
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	Year        string `json:"year"`
}

// RenderedProject is one project block in the rendering model.
type RenderedProject struct {
	Title      string   `json:"title"`
	Highlights []string `json:"highlights"`
}

// RenderingModel is the structured value object handed to the template
// engine. Every string field has already been escaped for the typesetter;
// the engine interpolates it verbatim.
type RenderingModel struct {
	Name           string               `json:"name"`
	Email          string               `json:"email"`
	Phone          string               `json:"phone"`
	Location       string               `json:"location"`
	LinkedIn       string               `json:"linkedin"`
	JobTitle       string               `json:"job_title"`
	Summary        string               `json:"summary"`
	Skills         []string             `json:"skills"`
	Experience     []RenderedExperience `json:"experience"`
	Education      []RenderedEducation  `json:"education"`
	Certifications []string             `json:"certifications"`
	Achievements   []string             `json:"achievements"`
	Projects       []RenderedProject    `json:"projects"`
	Others         []string             `json:"others"`
}
