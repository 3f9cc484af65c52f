package sentiment

import (
	"encoding/json"
	"fmt"
	"strings"
)

const classifierSystemPrompt = "You are a sentiment classifier for a campus help desk chat. Read the user's message and classify its overall sentiment.\nOutput requirements: return exactly one JSON object with a single field \"sentiment\" whose value is one of positive, neutral, negative. Do not output any other text."

const classifierUserPrompt = "User message:\n{text}\n\nReturn the JSON now."

type classifierPayload struct {
	Sentiment string `json:"sentiment"`
}

// parseClassifierOutput 解析大模型返回的 JSON，容忍前后多余文本。
func parseClassifierOutput(content string) (string, error) {
	trimmed := strings.TrimSpace(content)
	start := strings.Index(trimmed, "{")
	end := strings.LastIndex(trimmed, "}")
	if start == -1 || end == -1 || end <= start {
		return "", fmt.Errorf("missing json object")
	}

	payload := &classifierPayload{}
	if err := json.Unmarshal([]byte(trimmed[start:end+1]), payload); err != nil {
		return "", err
	}
	if strings.TrimSpace(payload.Sentiment) == "" {
		return "", fmt.Errorf("missing sentiment field")
	}
	return payload.Sentiment, nil
}
