package bot

import (
	"context"
	"log"
	"time"

	analysis "github.com/zhouzirui/campushelp/backend/internal/analysis/sentiment"
	"github.com/zhouzirui/campushelp/backend/internal/metrics"
	"github.com/zhouzirui/campushelp/backend/internal/model/activity"
	botModel "github.com/zhouzirui/campushelp/backend/internal/model/bot"
	"github.com/zhouzirui/campushelp/backend/internal/model/turn"
	"github.com/zhouzirui/campushelp/backend/internal/service/intent"
	"github.com/zhouzirui/campushelp/backend/internal/service/sentiment"
)

// Service turns inbound text into replies. It holds no per-conversation
// state and is safe for concurrent use.
type Service struct {
	profile botModel.Profile
	probe   sentiment.Probe
	router  *intent.Router
}

// NewService wires the dispatcher. probe may be nil.
func NewService(profile botModel.Profile, probe sentiment.Probe, router *intent.Router) *Service {
	if router == nil {
		router = intent.NewCampusRouter(probe)
	}
	return &Service{
		profile: profile,
		probe:   probe,
		router:  router,
	}
}

// Profile returns the bot identity.
func (s *Service) Profile() botModel.Profile {
	return s.profile
}

// Rules lists the rule names in priority order.
func (s *Service) Rules() []string {
	return s.router.Names()
}

// HandleMessage produces the reply for one inbound text. The probe runs once
// per non-empty turn, before routing, so any rule may use its outcome.
func (s *Service) HandleMessage(ctx context.Context, text string) intent.Reply {
	start := time.Now()

	outcome := analysis.Unavailable()
	if turn.Normalize(text) != "" && s.probe != nil && s.probe.Configured() {
		outcome = s.probe.Classify(ctx, text)
	}

	reply := s.router.Route(ctx, turn.New(text, outcome))

	metrics.TurnsTotal.WithLabelValues(reply.Rule).Inc()
	metrics.TurnDuration.Observe(time.Since(start).Seconds())
	log.Printf("[bot] routed turn rule=%s sentiment=%s len=%d", reply.Rule, describe(outcome), len(text))
	return reply
}

// Welcome returns one welcome text per added member, skipping the bot itself.
// recipientID is the id the channel uses for the bot; empty falls back to
// the profile id.
func (s *Service) Welcome(_ context.Context, membersAdded []activity.ChannelAccount, recipientID string) []string {
	if recipientID == "" {
		recipientID = s.profile.ID
	}

	welcomes := make([]string, 0, len(membersAdded))
	for _, member := range membersAdded {
		if member.ID == recipientID {
			continue
		}
		welcomes = append(welcomes, s.profile.Welcome)
	}

	if len(welcomes) > 0 {
		metrics.WelcomesTotal.Add(float64(len(welcomes)))
		log.Printf("[bot] welcoming %d new member(s)", len(welcomes))
	}
	return welcomes
}

func describe(o analysis.Outcome) string {
	if o.Status == analysis.StatusOK {
		return string(o.Label)
	}
	return string(o.Status)
}
