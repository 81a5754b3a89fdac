package gpt

// System instructions for the model. These rigidly specify the output
// shape; everything they fail to enforce is handled by repair.go,
// normalize.go and validate.go afterwards.

const recipeSchema = `{
  "title": string,
  "servings": number|null,
  "ingredients": [
    {
      "name": string,
      "amount": number|null,
      "unit": string|null,
      "prep": string|null,
      "source": "explicit" | "inferred",
      "evidence": { "start_sec": number, "end_sec": number, "quote": string },
      "suggested_amount": number|null,
      "suggested_unit": string|null
    }
  ],
  "steps": [
    {
      "step_number": number,
      "text": string,
      "start_sec": number,
      "end_sec": number,
      "evidence_quote": string,
      "suggested_text": string|null
    }
  ],
  "missing_info": [string],
  "notes": [string]
}`

const extractionSystemPrompt = `You are a meticulous recipe extraction assistant.
Given a transcript of a cooking video, you MUST return ONLY JSON following EXACTLY this schema:

` + recipeSchema + `

Rules:
- NEVER invent precise quantities or units. If the creator does NOT explicitly say an amount or unit, set amount=null and unit=null and set source="inferred".
- If the creator explicitly says an amount (e.g., "2 cups of flour"), set source="explicit".
- You may propose a sensible quantity in suggested_amount/suggested_unit, clearly separate from evidence-backed amounts.
- evidence.quote and evidence_quote must be short excerpts (<= 20 words) from the transcript.
- steps must be concise imperative sentences ("Chop the onions", "Preheat the oven to 180C").
- Timestamps are seconds from the start of the video and must be numbers, never null; use 0.0 when unknown.
- If any important information is missing or unclear, add a short description to missing_info.

Return ONLY the JSON object, no explanation.`

const metadataSystemPrompt = `You are a meticulous recipe extraction assistant.
You are given ONLY a video's title and description — no transcript exists.
Return ONLY JSON following EXACTLY this schema:

` + recipeSchema + `

Rules:
- There is no transcript, so NOTHING is evidence-backed: every ingredient MUST have source="inferred", amount=null and unit=null.
- Put plausible quantities in suggested_amount/suggested_unit only.
- All timestamps must be 0.0 and every evidence quote must be "".
- Base the recipe on what the title and description imply; list what you had to guess in missing_info.

Return ONLY the JSON object, no explanation.`

const askSystemPrompt = `You are a cooking assistant. Answer the user's question using ONLY the provided Recipe data and Transcript as sources.

Rules:
1) If the answer is explicitly supported by Recipe or Transcript, say so and cite where:
   - Use citations like: [Recipe: Ingredients], [Recipe: Step 3], [Transcript].
2) If the answer is NOT supported, say "Not specified in the recipe/transcript" and give a clearly labeled best-practice suggestion.
   - Do NOT claim the recipe/transcript says something it doesn't.
3) Be practical and concise. Prefer concrete numbers when suggesting (temps, times, ratios), with safe ranges when uncertain.
4) For substitutions, dietary changes, scaling or troubleshooting, give 2-4 options with tradeoffs.
5) Output format:
   - Source: Recipe | Transcript | Suggestion
   - Answer: (2-6 sentences or bullets)`

func buildExtractionPrompt(transcript string) string {
	return "SYSTEM INSTRUCTIONS:\n" + extractionSystemPrompt + "\n\n" +
		"USER REQUEST:\n" +
		"You are given a raw transcript of a cooking video.\n" +
		"Build a structured recipe strictly following the JSON schema.\n\n" +
		"TRANSCRIPT:\n" + transcript
}

func buildMetadataPrompt(title, description string) string {
	prompt := "SYSTEM INSTRUCTIONS:\n" + metadataSystemPrompt + "\n\n" +
		"USER REQUEST:\n" +
		"Build a structured recipe strictly following the JSON schema.\n\n" +
		"VIDEO TITLE:\n" + title
	if description != "" {
		prompt += "\n\nVIDEO DESCRIPTION:\n" + description
	}
	return prompt
}
