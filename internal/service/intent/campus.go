package intent

import (
	"context"
	"strings"

	analysis "github.com/zhouzirui/campushelp/backend/internal/analysis/sentiment"
	"github.com/zhouzirui/campushelp/backend/internal/model/turn"
	"github.com/zhouzirui/campushelp/backend/internal/service/sentiment"
)

const (
	reversePrefix   = "reverse "
	sentimentPrefix = "sentiment "
)

// Reply texts of the CampusHelp chain.
const (
	EmptyReply    = "I didn't receive any text. Try typing 'menu'."
	GreetingReply = "Hi! I'm CampusHelp 🤖. I can help with deadlines, tutoring, or registration. Type 'menu' to see options."
	MenuReply     = "Here's what I can do:\n" +
		"1) Type 'deadlines' to get help finding assignment due dates\n" +
		"2) Type 'tutoring' to find tutoring resources\n" +
		"3) Type 'registration' for course registration help\n" +
		"4) Tell me: 'I am struggling with calculus' (I'll guide you)\n" +
		"5) Type 'reverse <text>' to reverse text\n" +
		"6) Type 'sentiment <text>' for sentiment analysis\n" +
		"7) Type 'bye' to exit"

	SentimentPromptReply        = "Please provide text. Example: sentiment I love this bot"
	SentimentNotConfiguredReply = "Sentiment service is not configured. Make sure the sentiment provider endpoint/key environment variables are set."
	SentimentErrorReply         = "Sentiment service error (check endpoint/key)."
	SentimentResultPrefix       = "Sentiment analysis result: "

	EmpathyPrefix = "I'm sorry you're feeling frustrated. "

	CalculusReply = "I can help you find tutoring sessions or study materials. Which would you like?" +
		"\n\nType: 'tutoring' or 'study materials'."
	TutoringReply = "Tutoring resources:\n" +
		"- Math Tutoring Center (Mon-Fri)\n" +
		"- Peer tutoring appointments\n" +
		"- Online tutoring options\n\n" +
		"Do you prefer *online* or *in-person* tutoring?"
	StudyMaterialsReply = "Study materials options:\n" +
		"- Practice problem sets\n" +
		"- Recommended notes/videos\n" +
		"- Review topics (limits, derivatives, integrals)\n\n" +
		"Which topic do you want help with: *limits*, *derivatives*, or *integrals*?"
	DeadlinesReply = "Deadlines help: Tell me the course name and assignment name, " +
		"and I'll guide you to where to check the due date (syllabus/LMS)."
	RegistrationReply = "Registration help: Are you trying to *add a class*, *drop a class*, or fix a *registration hold*?"
	FarewellReply     = "Goodbye! Thanks for chatting."
	FallbackReply     = "I didn't understand that. Are you asking about deadlines, tutoring, or registration? Type 'menu' to see options."
)

var (
	greetingWords     = []string{"hello", "hi", "hey"}
	distressWords     = []string{"struggling", "struggle", "hard", "help", "confused", "stressed"}
	deadlineWords     = []string{"deadline", "deadlines", "due", "assignment"}
	registrationWords = []string{"registration", "register", "enroll", "add class", "drop"}
	exitWords         = []string{"bye", "exit"}
)

// NewCampusRouter builds the CampusHelp chain. probe may be nil, which is
// treated as an unconfigured sentiment service.
func NewCampusRouter(probe sentiment.Probe) *Router {
	return NewRouter(Fallback(), CampusRules(probe)...)
}

// CampusRules returns the ordered CampusHelp rules. Specific predicates
// must stay ahead of broad ones.
func CampusRules(probe sentiment.Probe) []Rule {
	return []Rule{
		{
			Name:    "empty",
			Match:   turn.Turn.Empty,
			Respond: fixed(EmptyReply),
		},
		{
			Name:    "reverse",
			Match:   hasCommand(reversePrefix),
			Respond: respondReverse,
		},
		{
			Name:    "sentiment",
			Match:   hasCommand(sentimentPrefix),
			Respond: sentimentCommand(probe),
		},
		{
			Name:    "greeting",
			Match:   containsAny(greetingWords...),
			Respond: fixed(GreetingReply),
		},
		{
			Name: "menu",
			Match: func(t turn.Turn) bool {
				return t.Contains("menu") || t.Normalized == "help"
			},
			Respond: fixed(MenuReply),
		},
		{
			Name: "calculus",
			Match: func(t turn.Turn) bool {
				return t.Contains("calculus") && t.Contains(distressWords...)
			},
			Respond: empathetic(CalculusReply),
		},
		{
			Name:    "tutoring",
			Match:   containsAny("tutoring"),
			Respond: empathetic(TutoringReply),
		},
		{
			Name: "study-materials",
			Match: func(t turn.Turn) bool {
				return t.Contains("study materials", "resources") || (t.Contains("study") && t.Contains("material"))
			},
			Respond: empathetic(StudyMaterialsReply),
		},
		{
			Name:    "deadlines",
			Match:   containsAny(deadlineWords...),
			Respond: fixed(DeadlinesReply),
		},
		{
			Name:    "registration",
			Match:   containsAny(registrationWords...),
			Respond: fixed(RegistrationReply),
		},
		{
			Name:    "exit",
			Match:   containsAny(exitWords...),
			Respond: fixed(FarewellReply),
		},
	}
}

// Fallback is the catch-all last rule.
func Fallback() Rule {
	return Rule{
		Name:    "fallback",
		Match:   func(turn.Turn) bool { return true },
		Respond: fixed(FallbackReply),
	}
}

func fixed(text string) func(context.Context, turn.Turn) string {
	return func(context.Context, turn.Turn) string { return text }
}

// empathetic prepends EmpathyPrefix when the turn was classified negative.
func empathetic(text string) func(context.Context, turn.Turn) string {
	return func(_ context.Context, t turn.Turn) string {
		if t.Sentiment.IsNegative() {
			return EmpathyPrefix + text
		}
		return text
	}
}

func containsAny(words ...string) func(turn.Turn) bool {
	return func(t turn.Turn) bool { return t.Contains(words...) }
}

func hasCommand(prefix string) func(turn.Turn) bool {
	return func(t turn.Turn) bool {
		_, ok := t.Command(prefix)
		return ok
	}
}

func respondReverse(_ context.Context, t turn.Turn) string {
	rest, _ := t.Command(reversePrefix)
	return reverse(rest)
}

func reverse(s string) string {
	runes := []rune(s)
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}
	return string(runes)
}

func sentimentCommand(probe sentiment.Probe) func(context.Context, turn.Turn) string {
	return func(ctx context.Context, t turn.Turn) string {
		rest, _ := t.Command(sentimentPrefix)
		text := strings.TrimSpace(rest)
		if text == "" {
			return SentimentPromptReply
		}
		if probe == nil || !probe.Configured() {
			return SentimentNotConfiguredReply
		}

		outcome := probe.Classify(ctx, text)
		switch outcome.Status {
		case analysis.StatusOK:
			return SentimentResultPrefix + string(outcome.Label)
		case analysis.StatusUnavailable:
			return SentimentNotConfiguredReply
		default:
			return SentimentErrorReply
		}
	}
}
