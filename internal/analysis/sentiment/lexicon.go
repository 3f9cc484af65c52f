package sentiment

import "strings"

var keywordBuckets = map[Label][]string{
	Positive: {
		"love", "great", "awesome", "amazing", "thanks", "thank you", "happy", "glad", "excellent",
		"helpful", "nice", "good", "perfect", "excited", "wonderful", "fantastic", "enjoy",
	},
	Negative: {
		"hate", "terrible", "awful", "bad", "sad", "angry", "upset", "frustrated", "frustrating",
		"struggling", "struggle", "stressed", "confused", "worried", "annoyed", "hard", "fail",
		"failing", "lost", "overwhelmed", "anxious", "tired",
	},
}

// negations flip the polarity of a keyword found right after them.
var negations = []string{"not ", "don't ", "dont ", "never ", "no "}

// Analyze scores text against the keyword buckets and returns the
// dominant label. Ties and texts without any keyword are neutral.
func Analyze(text string) Label {
	normalized := strings.TrimSpace(strings.ToLower(text))
	if normalized == "" {
		return Neutral
	}

	scores := make(map[Label]int)
	for label, keywords := range keywordBuckets {
		for _, word := range keywords {
			idx := strings.Index(normalized, word)
			if idx < 0 {
				continue
			}
			if negated(normalized[:idx]) {
				scores[flip(label)] += 2
				continue
			}
			scores[label] += 3
		}
	}

	scores[Positive] += strings.Count(text, "!") / 2

	switch {
	case scores[Positive] > scores[Negative]:
		return Positive
	case scores[Negative] > scores[Positive]:
		return Negative
	default:
		return Neutral
	}
}

func negated(prefix string) bool {
	for _, n := range negations {
		if strings.HasSuffix(prefix, n) {
			return true
		}
	}
	return false
}

func flip(label Label) Label {
	switch label {
	case Positive:
		return Negative
	case Negative:
		return Positive
	default:
		return label
	}
}
