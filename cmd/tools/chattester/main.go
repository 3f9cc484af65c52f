package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/zhouzirui/campushelp/backend/internal/config"
	"github.com/zhouzirui/campushelp/backend/internal/model/activity"
	botModel "github.com/zhouzirui/campushelp/backend/internal/model/bot"
	"github.com/zhouzirui/campushelp/backend/internal/service/bot"
	"github.com/zhouzirui/campushelp/backend/internal/service/sentiment"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)

	if err := godotenv.Load(); err != nil {
		log.Printf("[WARN] 无法加载 .env，改用系统环境变量: %v", err)
	}

	text := flag.String("text", "", "单条输入文本，留空则从标准输入逐行读取")
	welcome := flag.Bool("welcome", true, "开始前打印欢迎语")
	timeout := flag.Duration("timeout", 30*time.Second, "每轮对话的超时时间")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("配置加载失败: %v", err)
	}

	ctx := context.Background()
	probe, err := sentiment.NewFromConfig(ctx, cfg.Sentiment)
	if err != nil {
		log.Printf("[WARN] 情感分析后端初始化失败，继续以未配置状态运行: %v", err)
	}

	svc := bot.NewService(botModel.Default(cfg.Bot.ID, cfg.Bot.Name), probe, nil)
	t := &tester{bot: svc, out: os.Stdout, timeout: *timeout}

	if *welcome {
		t.greet()
	}

	if *text != "" {
		t.turn(*text)
		return
	}

	if err := t.repl(os.Stdin); err != nil {
		log.Fatalf("读取输入失败: %v", err)
	}
}

type tester struct {
	bot     *bot.Service
	out     io.Writer
	timeout time.Duration
}

func (t *tester) greet() {
	profile := t.bot.Profile()
	in := activity.Activity{
		Type:         activity.TypeConversationUpdate,
		Recipient:    &activity.ChannelAccount{ID: profile.ID, Name: profile.Name},
		MembersAdded: []activity.ChannelAccount{{ID: "tester"}},
	}
	t.print(t.bot.OnActivity(context.Background(), in))
}

func (t *tester) turn(text string) {
	ctx, cancel := context.WithTimeout(context.Background(), t.timeout)
	defer cancel()

	in := activity.Activity{
		Type: activity.TypeMessage,
		Text: text,
		From: &activity.ChannelAccount{ID: "tester"},
	}
	t.print(t.bot.OnActivity(ctx, in))
}

// repl 逐行读取输入，每行产生一条回复，直到 EOF
func (t *tester) repl(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	fmt.Fprint(t.out, "> ")
	for scanner.Scan() {
		t.turn(scanner.Text())
		fmt.Fprint(t.out, "> ")
	}
	fmt.Fprintln(t.out)
	return scanner.Err()
}

func (t *tester) print(replies []activity.Activity) {
	for _, reply := range replies {
		fmt.Fprintf(t.out, "%s: %s\n", t.bot.Profile().Name, reply.Text)
	}
}
