package hyde

import "fmt"

const bulletsPromptTemplate = `You are an expert resume writer. Based on the following job description, generate %d hypothetical resume bullet points that would be PERFECT matches for this role.

Job Description:
%s

Requirements:
1. Each bullet should describe a specific achievement or responsibility
2. Use action verbs and quantify results where possible
3. Include relevant technical skills and tools mentioned in the job description
4. Write in past tense (e.g., "Developed", "Led", "Implemented")
5. Make each bullet 1-2 sentences maximum
6. Focus on different aspects of the role (technical skills, leadership, impact, etc.)

Generate %d distinct, high-quality resume bullets that would make a candidate stand out for this position.

Format your response as a JSON array of strings:
["bullet 1", "bullet 2", "bullet 3", ...]`

const experiencesPromptTemplate = `Based on this job description, generate %d hypothetical work experiences that would make someone a perfect candidate.

Job Description:
%s

For each experience, provide:
- Job title
- Company (can be generic like "Tech Company" or "Financial Services Firm")
- 2-3 bullet points describing key achievements

Format as JSON:
[
    {
        "title": "Job Title",
        "company": "Company Name",
        "bullets": ["Achievement 1", "Achievement 2", "Achievement 3"]
    }
]`

func buildBulletsPrompt(jobDescription string, count int) string {
	return fmt.Sprintf(bulletsPromptTemplate, count, jobDescription, count)
}

func buildExperiencesPrompt(jobDescription string, count int) string {
	return fmt.Sprintf(experiencesPromptTemplate, count, jobDescription)
}
