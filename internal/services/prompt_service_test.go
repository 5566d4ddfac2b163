package services

import (
	"strings"
	"testing"

	"github.com/placementflow/placementflow-backend/internal/models"
)

func TestFormatItemList(t *testing.T) {
	tests := []struct {
		name  string
		items []models.ListItem
		want  string
	}{
		{
			name:  "empty list falls back to sentinel",
			items: nil,
			want:  "None provided",
		},
		{
			name:  "single item",
			items: []models.ListItem{{Title: "Chess Club", Description: "Captain for two years"}},
			want:  "• Chess Club - Captain for two years",
		},
		{
			name: "order preserved",
			items: []models.ListItem{
				{Title: "A", Description: "first"},
				{Title: "B", Description: "second"},
			},
			want: "• A - first\n• B - second",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatItemList(tt.items); got != tt.want {
				t.Fatalf("FormatItemList() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBuildAnswerPromptDeterministic(t *testing.T) {
	limit := 150
	in := AnswerPromptInput{
		CompanyName:    "Acme Corp",
		JobTitle:       "Backend Intern",
		JobDescription: "Build Go services.",
		Skills: models.SkillsView{
			TechnicalSkills: "Go, SQL",
			SoftSkills:      "Communication",
			PersonalProjects: []models.ListItem{
				{Title: "Tracker", Description: "A job tracker"},
			},
		},
		Question:  "Why do you want this role?",
		Comment:   "Make it concise",
		WordLimit: &limit,
	}

	first := BuildAnswerPrompt(in)
	second := BuildAnswerPrompt(in)
	if first != second {
		t.Fatal("identical inputs produced different prompts")
	}

	for _, want := range []string{
		"Company: Acme Corp",
		"Job Title: Backend Intern",
		"- Technical Skills: Go, SQL",
		"- Extra Curriculars: None provided",
		"- Personal Projects: • Tracker - A job tracker",
		"\"Why do you want this role?\"",
		"User has requested this adjustment: Make it concise",
		"Please keep the answer under 150 words.",
	} {
		if !strings.Contains(first, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestBuildAnswerPromptOmitsAbsentClauses(t *testing.T) {
	in := AnswerPromptInput{
		CompanyName: "Acme Corp",
		JobTitle:    "Backend Intern",
		Question:    "Tell us about yourself.",
	}
	prompt := BuildAnswerPrompt(in)

	if strings.Contains(prompt, "User has requested this adjustment") {
		t.Error("comment clause rendered without a comment")
	}
	if strings.Contains(prompt, "Please keep the answer under") {
		t.Error("word limit clause rendered without a limit")
	}
	if !strings.HasSuffix(prompt, "with a natural and authentic tone.") {
		t.Errorf("prompt does not end with the footer: %q", prompt[len(prompt)-60:])
	}
}

func TestBuildCoverLetterPrompt(t *testing.T) {
	in := CoverLetterPromptInput{
		Profile: models.Profile{
			FullName:    "Priya Sharma",
			University:  "IIT Delhi",
			YearOfStudy: "Final",
			Degree:      "B.Tech CSE",
		},
		Skills: models.SkillsView{
			TechnicalSkills: "Go, Postgres",
			SoftSkills:      "Leadership",
		},
		JobTitle:    "SDE-1",
		Category:    "Software",
		Description: "Backend role.",
		CompanyName: "Initech",
	}

	prompt := BuildCoverLetterPrompt(in)
	if BuildCoverLetterPrompt(in) != prompt {
		t.Fatal("identical inputs produced different prompts")
	}

	for _, want := range []string{
		"- Full Name: Priya Sharma",
		"- University: IIT Delhi",
		"- Year of Study: Final",
		"- Technical Skills: Go, Postgres",
		"- Extra Curriculars: None provided",
		"- Personal Projects: None provided",
		"- Job Title: SDE-1",
		"- Company Name: Initech",
		"Return only the cover letter text with no extra commentary.",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}
