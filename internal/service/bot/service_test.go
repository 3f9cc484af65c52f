package bot

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	analysis "github.com/zhouzirui/campushelp/backend/internal/analysis/sentiment"
	"github.com/zhouzirui/campushelp/backend/internal/model/activity"
	botModel "github.com/zhouzirui/campushelp/backend/internal/model/bot"
	"github.com/zhouzirui/campushelp/backend/internal/service/intent"
)

type countingProbe struct {
	mu      sync.Mutex
	outcome analysis.Outcome
	texts   []string
}

func (p *countingProbe) Classify(_ context.Context, text string) analysis.Outcome {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.texts = append(p.texts, text)
	return p.outcome
}

func (p *countingProbe) Configured() bool { return true }

func newTestService(probe *countingProbe) *Service {
	if probe == nil {
		return NewService(botModel.Default("bot-1", ""), nil, nil)
	}
	return NewService(botModel.Default("bot-1", ""), probe, nil)
}

func TestHandleMessageEndToEnd(t *testing.T) {
	svc := newTestService(nil)
	ctx := context.Background()

	assert.Equal(t, "I didn't receive any text. Try typing 'menu'.", svc.HandleMessage(ctx, "").Text)
	assert.Equal(t, intent.MenuReply, svc.HandleMessage(ctx, "menu").Text)
	assert.Equal(t, "cba", svc.HandleMessage(ctx, "reverse abc").Text)
	assert.Equal(t, intent.FarewellReply, svc.HandleMessage(ctx, "bye").Text)
	assert.Contains(t, svc.HandleMessage(ctx, "xyzzy").Text, "didn't understand")
}

func TestHandleMessageProbesOncePerTurn(t *testing.T) {
	probe := &countingProbe{outcome: analysis.OK(analysis.Negative)}
	svc := newTestService(probe)

	reply := svc.HandleMessage(context.Background(), "tutoring")

	assert.Equal(t, intent.EmpathyPrefix+intent.TutoringReply, reply.Text)
	assert.Equal(t, []string{"tutoring"}, probe.texts)
}

func TestHandleMessageSkipsProbeForEmptyInput(t *testing.T) {
	probe := &countingProbe{outcome: analysis.OK(analysis.Negative)}
	svc := newTestService(probe)

	reply := svc.HandleMessage(context.Background(), "   ")

	assert.Equal(t, intent.EmptyReply, reply.Text)
	assert.Empty(t, probe.texts)
}

func TestHandleMessageProbeIndependentOfIntent(t *testing.T) {
	probe := &countingProbe{outcome: analysis.OK(analysis.Positive)}
	svc := newTestService(probe)

	svc.HandleMessage(context.Background(), "bye")
	assert.Equal(t, []string{"bye"}, probe.texts)
}

func TestHandleMessageFailedProbeStillReplies(t *testing.T) {
	probe := &countingProbe{outcome: analysis.Failed("connection refused")}
	svc := newTestService(probe)

	assert.Equal(t, intent.TutoringReply, svc.HandleMessage(context.Background(), "tutoring").Text)
	assert.Equal(t, intent.SentimentErrorReply, svc.HandleMessage(context.Background(), "sentiment meh").Text)
}

func TestHandleMessageConcurrent(t *testing.T) {
	svc := newTestService(&countingProbe{outcome: analysis.OK(analysis.Neutral)})

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Equal(t, "cba", svc.HandleMessage(context.Background(), "reverse abc").Text)
		}()
	}
	wg.Wait()
}

func TestWelcomeSkipsBot(t *testing.T) {
	svc := newTestService(nil)

	welcomes := svc.Welcome(context.Background(), []activity.ChannelAccount{
		{ID: "bot-1"},
		{ID: "user-1", Name: "Ada"},
	}, "bot-1")

	assert.Equal(t, []string{botModel.DefaultWelcome}, welcomes)
}

func TestWelcomeOnlyBotJoined(t *testing.T) {
	svc := newTestService(nil)

	welcomes := svc.Welcome(context.Background(), []activity.ChannelAccount{{ID: "bot-1"}}, "")
	assert.Empty(t, welcomes)
}

func TestWelcomeOnePerMember(t *testing.T) {
	svc := newTestService(nil)

	welcomes := svc.Welcome(context.Background(), []activity.ChannelAccount{{ID: "a"}, {ID: "b"}}, "channel-bot")
	assert.Len(t, welcomes, 2)
}
