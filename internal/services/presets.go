package services

import (
	"sort"

	"alfredoptarigan/resume-insights/internal/models"
)

const (
	PresetResumeInsights = "resume-insights"
	PresetCareerReport   = "career-report"

	DefaultPreset = PresetResumeInsights
)

const SystemPrompt = "You are an AI assistant that helps extract information from resumes (CVs)."

const resumeInsightsTemplate = `Section 1: Extract Information
You are an AI assistant that helps extract information from resumes (CVs).
Keep the language of the CV unchanged.
Use the following schema to structure the extracted information: {schema_string}
Only return valid JSON with the extracted information, without any additional explanations.
List all skills.
List every position held at the same company with its time period, company name, and detailed duties and responsibilities. If the same position was held at different times or in different teams within the same company, include each occurrence as a separate array item with its own time period and team.
Remove special characters so the output is a valid JSON object. Do not wrap it in ` + "```json" + ` and do not include $schema.
Text extracted from the PDF. Keep the language of the CV unchanged:
Analyze file content: {extracted_text}

Section 2: Analyze Candidate Profile
Analyze the candidate's CV data and add insights on the following criteria to the same JSON object:
1. Work Experience Analysis:
   - For each company, summarize the job title, tenure, and level of expertise (beginner, intermediate, or expert) in relevant fields.
   - Organize this information by company.
2. Job Trends and Stability:
   - Evaluate the time spent in each role.
   - Identify patterns such as frequent job changes, promotions, extended tenures, or gaps between roles.
   - Assess the likelihood of long-term stability versus frequent transitions.
3. Suggested Job Titles:
   - Based on skills, years of experience, and education, recommend job titles or career paths that match demonstrated expertise and industry trends.
4. Job Resignation Prediction:
   - Predict whether the candidate is likely to change jobs now (Yes or No) based on time in the current role relative to past roles, alignment of the role with skills and goals, patterns of transitions or gaps, and signs of stagnation.
   - Predict the timeframe (for example "3 months", "12 months" or "2 years") in which the candidate is likely to change jobs.
`

const careerReportTemplate = `You are a career advisor reviewing a candidate's resume.
Write a report in Markdown with the following sections:

## Summary
Two or three sentences describing the candidate's profile.

## Work Experience
For each company, the job title, tenure, and level of expertise (beginner, intermediate, or expert).

## Career Trends
Patterns such as promotions, frequent changes, long tenures, or gaps, and what they suggest about stability.

## Suggested Roles
Job titles or career paths that fit the candidate's skills, experience, and education.

## Resignation Outlook
Whether the candidate is likely to change jobs now (Yes or No) and within what timeframe.

Keep the language of the CV unchanged.

Resume text:
{extracted_text}
`

var presets = map[string]models.PromptPreset{
	PresetResumeInsights: {
		Name:     PresetResumeInsights,
		Title:    "Resume Insights and Career Recommendations",
		Mode:     models.ModeStructured,
		Template: resumeInsightsTemplate,
	},
	PresetCareerReport: {
		Name:     PresetCareerReport,
		Title:    "Career Report (Markdown)",
		Mode:     models.ModeRaw,
		Template: careerReportTemplate,
	},
}

func GetPreset(name string) (models.PromptPreset, bool) {
	p, ok := presets[name]
	return p, ok
}

func ListPresets() []models.PromptPreset {
	out := make([]models.PromptPreset, 0, len(presets))
	for _, p := range presets {
		out = append(out, p)
	}
	// default preset first, the rest by name
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name == DefaultPreset || out[j].Name == DefaultPreset {
			return out[i].Name == DefaultPreset
		}
		return out[i].Name < out[j].Name
	})
	return out
}
