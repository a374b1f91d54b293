package agent

// Catalog binds the four pipeline stages to their agents and tasks. The
// analyzer prompts follow the original assessment-agent definitions; the
// constructor prompt pins the exact section grammar the rendering engine
// parses.
type Catalog struct {
	ContentQuality Stage
	Skills         Stage
	Experience     Stage
	Constructor    Stage
}

// Stage pairs an agent with its task.
type Stage struct {
	Agent Agent
	Task  Task
}

// NewCatalog builds the stage catalog. analyzerModel drives the three
// analyzer stages; constructorModel should be a higher-capability model.
func NewCatalog(analyzerModel, constructorModel string) Catalog {
	return Catalog{
		ContentQuality: Stage{
			Agent: Agent{
				Name: "content_quality",
				Role: "Resume Content Quality Analyst",
				Goal: "Assess and improve the quality of resume content",
				Backstory: "You are an expert in resume writing and content analysis. " +
					"You have helped thousands of job seekers craft compelling resumes that " +
					"effectively showcase their skills and experience.",
				Model:       analyzerModel,
				Temperature: 0.7,
				MaxTokens:   2000,
			},
			Task: Task{
				Description: `Analyze the following initial resume content for clarity, impact, and
effectiveness. Provide specific suggestions for improvement.

Initial Content and Job description:
{task.context}

Focus on:
- Using concise, easy-to-understand language
- Incorporating strong action verbs (e.g., 'led', 'developed', 'optimized')
- Quantifying achievements (e.g., 'Increased sales by 25%')
- Creating a compelling narrative

Example of improved content:
Before: 'Managed a team of developers'
After: 'Led a team of 5 developers to deliver 3 major projects 2 weeks ahead of schedule'

Provide a quality score (1-10) based on:
- Clarity (30%)
- Impact (30%)
- Effectiveness (40%)`,
				ExpectedOutput: "A detailed analysis of the resume content quality with specific improvement suggestions and a quality score",
			},
		},
		Skills: Stage{
			Agent: Agent{
				Name: "skills",
				Role: "Skills Matching Expert",
				Goal: "Extract and match skills from resume to job requirements",
				Backstory: "You are a career coach specializing in helping candidates " +
					"align their skills with job descriptions. You have a deep understanding " +
					"of skill taxonomy and matching strategies.",
				Model:       analyzerModel,
				Temperature: 0.7,
				MaxTokens:   2000,
			},
			Task: Task{
				Description: `Extract skills from the following initial resume content and match them to the
provided job description. Identify any gaps and suggest improvements.

Initial Content and Job description:
{task.context}

Analyze:
- Hard skills (e.g., programming languages, tools)
- Soft skills (e.g., communication, leadership)
- Transferable skills

Example of improved skills section:
Before: 'Experienced in Python'
After: '• Python: Developed 3 web applications using Django framework'

Provide a skills match score (1-10) based on:
- Relevance to job description (50%)
- Depth of skill description (30%)
- Transferability (20%)`,
				ExpectedOutput: "A detailed skills analysis showing matched skills, gaps, improvement suggestions, and a skills match score",
			},
		},
		Experience: Stage{
			Agent: Agent{
				Name: "experience",
				Role: "Experience Validator",
				Goal: "Verify and optimize work experience descriptions",
				Backstory: "You are a hiring manager with years of experience reviewing " +
					"resumes. You know exactly what makes work experience descriptions stand " +
					"out and get noticed by recruiters.",
				Model:       analyzerModel,
				Temperature: 0.7,
				MaxTokens:   2000,
			},
			Task: Task{
				Description: `Validate the work experience descriptions in the following initial resume content. Ensure they
are achievement-oriented and quantify results where possible.

Initial Content and Job description:
{task.context}

Apply the STAR method:
- Situation: Context of the task
- Task: Specific responsibilities
- Action: Steps taken
- Result: Quantifiable outcomes

Example of improved experience:
Before: 'Managed social media accounts'
After: 'Increased social media engagement by 40% through targeted content strategy and analytics-driven optimization'

Provide an experience quality score (1-10) based on:
- Achievement orientation (40%)
- Quantification of results (30%)
- STAR method application (30%)`,
				ExpectedOutput: "A detailed analysis of work experience descriptions with specific recommendations for improvement and an experience quality score",
			},
		},
		Constructor: Stage{
			Agent: Agent{
				Name: "constructor",
				Role: "Resume Construction Specialist",
				Goal: "Construct a well-structured resume from optimized content",
				Backstory: "You are an expert in resume construction who takes optimized " +
					"content from various specialists and assembles it into a cohesive, " +
					"professional resume that is ready for PDF generation.",
				Model:       constructorModel,
				Temperature: 0.7,
				MaxTokens:   4000,
			},
			Task: Task{
				Description: constructorDescription,
				ExpectedOutput: "A well-structured resume ready for PDF generation",
			},
		},
	}
}

const constructorDescription = `Construct a final resume from the optimized content provided by the other agents.
Ensure the resume is properly structured and formatted for PDF generation.

Input Content:
{task.context}

Requirements:
- Organize content into standard resume sections
- Maintain consistent formatting
- Ensure all content is properly structured for LaTeX processing
- Remove any redundant or conflicting information
- Verify all section headers and markers are present

Output Format:
Generate an optimized resume with the following sections.
Use the exact format shown below, including the section headers and markers:

# Professional Summary
===
Write 2-3 compelling sentences highlighting most relevant qualifications.
===

# Key Skills
===
List 8-10 most relevant skills, each on a new line starting with •
Example:
• Skill 1
• Skill 2
===

# Professional Experience
===
For each position, format as:
[Title] at [Company], [Duration]
• Achievement 1
• Achievement 2
• Achievement 3

Example:
Senior Software Engineer at XYZ Corp, 2020-Present
• Led development of microservices architecture
• Implemented automated testing pipeline
===

# Projects
===
For each project, format as:
[Project Title]
• Highlight 1
• Highlight 2
===

# Education
===
For each education entry, format as:
[Degree] | [Institution] | [Year]

Example:
Bachelor of Science in Computer Science | University of California, Berkeley | 2014
===

# Certifications & Achievements
===
List relevant certifications and notable achievements, each on a new line starting with •
Example:
• AWS Certified Solutions Architect
• Professional Scrum Master I
===

Important:
1. Keep the exact section headers (# Section Name)
2. Keep the === markers before and after each section's content
3. For Key Skills and Certifications & Achievements, prefix each item with • and put each on a new line
4. Make the content highly relevant to the job description
5. Follow the exact formatting shown in the examples
6. If a section has no content, include the section with 'None' between the === markers`
