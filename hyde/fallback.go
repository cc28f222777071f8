package hyde

import "strings"

// keywordFamily maps trigger words in a job description to one canned bullet.
type keywordFamily struct {
	triggers []string
	bullet   string
}

// fallbackFamilies is the rule set behind deterministic expansion. Order is
// fixed so the same job description always yields the same fragments.
var fallbackFamilies = []keywordFamily{
	{
		triggers: []string{"python", "java", "javascript"},
		bullet: "Developed and maintained production applications using modern programming languages, " +
			"improving system performance by 30%",
	},
	{
		triggers: []string{"lead", "manage", "team"},
		bullet: "Led cross-functional team of 5+ engineers to deliver critical projects on time " +
			"and within budget",
	},
	{
		triggers: []string{"data", "analytics", "analysis"},
		bullet: "Analyzed large datasets to identify trends and insights, resulting in data-driven " +
			"decisions that increased revenue by 25%",
	},
	{
		triggers: []string{"aws", "cloud", "azure", "gcp"},
		bullet: "Designed and implemented scalable cloud infrastructure, reducing operational costs " +
			"by 40% while improving system reliability",
	},
	{
		triggers: []string{"test", "quality", "qa"},
		bullet: "Implemented comprehensive testing framework, increasing code coverage from 60% to 95% " +
			"and reducing production bugs by 50%",
	},
}

// genericBullets covers job descriptions that match no family.
var genericBullets = []string{
	"Delivered high-impact projects that improved business outcomes and user satisfaction",
	"Collaborated with stakeholders to define requirements and implement solutions",
	"Applied best practices and modern technologies to solve complex problems",
}

// fallbackBullets derives hypothetical bullets from the job description text
// alone. It is deterministic and never empty.
func fallbackBullets(jobDescription string, count int) []string {
	lower := strings.ToLower(jobDescription)

	var bullets []string
	for _, family := range fallbackFamilies {
		for _, trigger := range family.triggers {
			if strings.Contains(lower, trigger) {
				bullets = append(bullets, family.bullet)
				break
			}
		}
	}

	if len(bullets) == 0 {
		bullets = append(bullets, genericBullets...)
	}
	if count > 0 && len(bullets) > count {
		bullets = bullets[:count]
	}
	return bullets
}

// fallbackExperiences returns a single generic experience record.
func fallbackExperiences() []experience {
	return []experience{
		{
			Title:   "Software Engineer",
			Company: "Technology Company",
			Bullets: []string{
				"Developed features aligned with role requirements",
				"Collaborated with team members on technical solutions",
				"Delivered projects that improved business metrics",
			},
		},
	}
}
