package interview

// QuestionBank is the static fallback used when the question-generation
// collaborator is unavailable or returns a malformed list.
type QuestionBank struct {
	prompts map[string]map[string][]string
}

// Bank defaults applied when an unknown role or level is requested.
const (
	DefaultRole            = "Software Engineer"
	DefaultExperienceLevel = "Fresher"
)

// DefaultBank returns the built-in per-role/level question sets.
func DefaultBank() *QuestionBank {
	return &QuestionBank{prompts: map[string]map[string][]string{
		"Software Engineer": {
			"Fresher": {
				"Tell me about yourself and why you're interested in software engineering.",
				"What programming languages are you most comfortable with and why?",
				"Describe a challenging project you worked on during your studies.",
				"How do you approach debugging when your code isn't working?",
				"Explain the difference between object-oriented and functional programming.",
				"How do you stay updated with new programming technologies?",
				"Describe a time when you had to learn a new technology quickly.",
				"How do you handle version control in your projects?",
				"What are some best practices for writing clean code?",
				"How would you explain APIs to a non-technical person?",
				"What motivates you to pursue a career in software development?",
				"Describe a time when you collaborated on a coding project.",
			},
			"Experienced": {
				"Walk me through your experience with software architecture and design patterns.",
				"How do you handle code reviews and ensure code quality in a team environment?",
				"Describe a time when you had to optimize application performance.",
				"How do you stay updated with new technologies and programming trends?",
				"Tell me about a challenging technical problem you solved recently.",
				"How do you approach breaking a monolith into services?",
				"Describe a production incident you handled and what you changed afterwards.",
				"How do you mentor junior engineers on your team?",
				"What trade-offs do you weigh when choosing a data store?",
				"How would you design a system that must tolerate partial failures?",
			},
		},
		"HR": {
			"Fresher": {
				"Why are you interested in pursuing a career in Human Resources?",
				"How would you handle a conflict between two team members?",
				"What do you think are the most important qualities for an HR professional?",
				"Describe a time when you had to communicate difficult information to someone.",
				"How would you approach recruiting candidates for a technical role?",
				"What would you do if a new hire seemed disengaged in their first month?",
				"How do you keep track of multiple candidates through a hiring pipeline?",
				"Describe a time you had to persuade someone to change their mind.",
				"How would you explain a company policy you personally disagree with?",
				"What does a positive workplace culture mean to you?",
			},
			"Experienced": {
				"How do you develop and implement HR policies that align with business objectives?",
				"Describe your experience with performance management and employee development.",
				"How do you handle sensitive employee relations issues?",
				"What strategies do you use for talent retention and employee engagement?",
				"Tell me about a time you had to manage organizational change.",
				"How do you measure the effectiveness of a hiring process?",
				"Describe a time you coached a manager through a difficult conversation.",
				"How would you handle a grievance raised against a senior leader?",
				"What is your approach to compensation benchmarking?",
				"How do you balance employee advocacy with business needs?",
			},
		},
		"Data Analyst": {
			"Fresher": {
				"What interests you about data analysis and why did you choose this field?",
				"How would you explain a complex data finding to a non-technical stakeholder?",
				"What tools and technologies have you used for data analysis?",
				"Describe a data project you worked on and the insights you discovered.",
				"How do you ensure data quality and accuracy in your analysis?",
				"What steps do you take when you first receive an unfamiliar dataset?",
				"How would you decide which chart type fits a given result?",
				"Describe a time a result surprised you and how you verified it.",
				"What is the difference between correlation and causation?",
				"How do you document your analysis so others can reproduce it?",
			},
			"Experienced": {
				"How do you approach building predictive models and validating their accuracy?",
				"Describe your experience with data visualization and storytelling with data.",
				"How do you handle missing or inconsistent data in large datasets?",
				"Tell me about a time when your analysis influenced a business decision.",
				"What's your process for identifying trends and patterns in complex data?",
				"How do you design metrics that resist being gamed?",
				"Describe a time you pushed back on a stakeholder's interpretation of data.",
				"How do you keep long-running analyses maintainable?",
				"What is your approach to A/B test design and evaluation?",
				"How do you prioritize competing analysis requests?",
			},
		},
	}}
}

// Roles lists the roles the bank covers.
func (b *QuestionBank) Roles() []string {
	return []string{"Software Engineer", "HR", "Data Analyst"}
}

// ExperienceLevels lists the supported experience levels.
func (b *QuestionBank) ExperienceLevels() []string {
	return []string{"Fresher", "Experienced"}
}

// Questions returns exactly n questions for the role and level, cycling
// through the bank when n exceeds the stored set. Unknown roles or levels
// fall back to the defaults.
func (b *QuestionBank) Questions(role, level string, n int) []Question {
	levels, ok := b.prompts[role]
	if !ok {
		role = DefaultRole
		levels = b.prompts[role]
	}
	prompts, ok := levels[level]
	if !ok {
		level = DefaultExperienceLevel
		prompts = levels[level]
	}

	out := make([]Question, 0, n)
	for i := 0; i < n; i++ {
		prompt := prompts[i%len(prompts)]
		category := ClassifyCategory(prompt)
		out = append(out, Question{
			Prompt:              prompt,
			Category:            category,
			Difficulty:          bankDifficulty(level, i),
			ExpectedDurationSec: bankDuration(category),
		})
	}
	return out
}

func bankDifficulty(level string, i int) string {
	if level == "Experienced" {
		if i%2 == 0 {
			return "medium"
		}
		return "hard"
	}
	if i%2 == 0 {
		return "easy"
	}
	return "medium"
}

func bankDuration(category string) int {
	switch category {
	case CategoryTechnical:
		return 60
	case CategorySituational:
		return 75
	default:
		return 90
	}
}
