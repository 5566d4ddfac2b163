package services

import (
	"fmt"
	"strings"

	"github.com/placementflow/placementflow-backend/internal/models"
)

// Prompt assembly is deliberately pure string work: for fixed inputs
// the output is byte-identical, and every interpolated field is treated
// as untrusted plain text. Timestamps and ids stay out of prompt
// bodies.

const (
	AnswerSystemPrompt = "You are a helpful assistant that creates compelling, professional, and tailored answers for placement applications."

	CoverLetterSystemPrompt = "You are an expert career assistant. Write a personalized and professional cover letter using the provided information."

	// Rendered in place of an empty or unparseable list field.
	noneProvidedSentinel = "None provided"
)

const answerPromptHeader = `You are helping a student answer a placement application question.
Your goal is to create a response that perfectly aligns with:
1. The company and its culture.
2. The job role and description.
3. The student's personal background, skills, and experiences.

Company: %s
Job Title: %s
Job Description: %s

Student's Profile:
- Technical Skills: %s
- Soft Skills: %s
- Extra Curriculars: %s
- Personal Projects: %s

Application Question:
"%s"

`

const answerPromptFooter = `Your response should:
- Be highly relevant to the role and company.
- Demonstrate the student's unique fit using their skills and experience.
- Be structured clearly and professionally, with a natural and authentic tone.`

const coverLetterPromptTemplate = `---
**Individual Information:**
- Full Name: %s
- University: %s
- Year of Study: %s
- Degree: %s

**User Technical Information:**
- Technical Skills: %s
- Soft Skills: %s
- Extra Curriculars: %s
- Personal Projects: %s

**Job Information:**
- Job Title: %s
- Category: %s
- Description: %s

**Company Information:**
- Company Name: %s

---
**Instructions for AI:**
- Analyze the job description and match it with the candidate's background.
- Highlight the most relevant technical skills, soft skills, and projects.
- Structure the cover letter in 3 sections:
  1. Introduction: Why the candidate is excited about the role and company.
  2. Main Body: Candidate's key qualifications and experiences that fit the job.
  3. Conclusion: Closing remarks and call to action.
- Keep the tone professional but engaging.
- Return only the cover letter text with no extra commentary.`

type AnswerPromptInput struct {
	CompanyName    string
	JobTitle       string
	JobDescription string
	Skills         models.SkillsView
	Question       string

	// Optional; an absent value omits the whole clause rather than
	// leaving an empty placeholder behind.
	Comment   string
	WordLimit *int
}

func BuildAnswerPrompt(in AnswerPromptInput) string {
	var b strings.Builder
	fmt.Fprintf(&b, answerPromptHeader,
		in.CompanyName,
		in.JobTitle,
		in.JobDescription,
		in.Skills.TechnicalSkills,
		in.Skills.SoftSkills,
		FormatItemList(in.Skills.ExtraCurriculars),
		FormatItemList(in.Skills.PersonalProjects),
		in.Question,
	)
	if in.Comment != "" {
		fmt.Fprintf(&b, "User has requested this adjustment: %s\n\n", in.Comment)
	}
	if in.WordLimit != nil {
		fmt.Fprintf(&b, "Please keep the answer under %d words.\n\n", *in.WordLimit)
	}
	b.WriteString(answerPromptFooter)
	return b.String()
}

type CoverLetterPromptInput struct {
	Profile     models.Profile
	Skills      models.SkillsView
	JobTitle    string
	Category    string
	Description string
	CompanyName string
}

func BuildCoverLetterPrompt(in CoverLetterPromptInput) string {
	return fmt.Sprintf(coverLetterPromptTemplate,
		in.Profile.FullName,
		in.Profile.University,
		in.Profile.YearOfStudy,
		in.Profile.Degree,
		in.Skills.TechnicalSkills,
		in.Skills.SoftSkills,
		FormatItemList(in.Skills.ExtraCurriculars),
		FormatItemList(in.Skills.PersonalProjects),
		in.JobTitle,
		in.Category,
		in.Description,
		in.CompanyName,
	)
}

// FormatItemList renders a structured list field as bullet text, one
// item per line, preserving order.
func FormatItemList(items []models.ListItem) string {
	if len(items) == 0 {
		return noneProvidedSentinel
	}
	lines := make([]string, 0, len(items))
	for _, item := range items {
		lines = append(lines, fmt.Sprintf("• %s - %s", item.Title, item.Description))
	}
	return strings.Join(lines, "\n")
}
