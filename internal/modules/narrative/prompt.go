package narrative

import (
	"encoding/json"
	"fmt"

	"github.com/aristath/fundadvisor/internal/domain"
)

const systemPrompt = "You are a professional mutual fund advisor. You reply with a single valid JSON object and nothing else."

const promptTemplate = `User info: %s

Recommendations: %s

Respond in valid JSON ONLY with:
{
  "summary": "...",
  "key_insights": ["...", "...", "..."],
  "suggested_allocations": {
     "category": {
       "percentage": int,
       "amount": float,
       "note": "..."
     }
  },
  "sections": {
    "investment_thesis": "...",
    "risk_analysis": "...",
    "implementation_steps": "...",
    "tax_notes": "..."
  }
}

Rules:
- Keep percentages and amounts consistent with provided data.
- Keep tone professional.
- Include disclaimer in "tax_notes".
`

// BuildPrompt renders the user prompt for a profile and its recommendation.
func BuildPrompt(profile domain.UserProfile, result domain.RecommendationResult) (string, error) {
	user, err := json.MarshalIndent(profile, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode profile: %w", err)
	}
	recs, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode recommendation: %w", err)
	}
	return fmt.Sprintf(promptTemplate, user, recs), nil
}
