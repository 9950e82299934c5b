package question

const generatorSystemPrompt = `You are an experienced interviewer preparing realistic practice questions.
Always answer with a raw JSON array and nothing else.`

const generatorUserPrompt = `Generate {count} interview questions for a {level} {role} position.

Requirements:
- Appropriate for {level} level candidates
- Mix of behavioral, technical, and situational questions
- Realistic, commonly asked, clear and concise

Return a JSON array where each element is:
{{"question": "...", "type": "behavioral|technical|situational", "difficulty": "easy|medium|hard", "expected_duration": 60}}

expected_duration is the estimated answer time in seconds (30-120).`
