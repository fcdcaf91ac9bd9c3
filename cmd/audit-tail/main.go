// Command audit-tail follows the audit topic and prints matching events as
// JSON lines. It is the reviewer's view of the compliance stream.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/twmb/franz-go/pkg/kgo"

	"healthsphere/internal/platform/config"
	"healthsphere/internal/platform/logger"
	audit "healthsphere/pkg/platform/audit"
)

type options struct {
	brokers   string
	topic     string
	group     string
	doctorID  string
	category  string
	fromStart bool
}

func main() {
	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	cfg, err := config.FromEnv()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	opts := options{}
	flag.StringVar(&opts.brokers, "brokers", cfg.Audit.KafkaBrokers, "comma separated Kafka brokers")
	flag.StringVar(&opts.topic, "topic", cfg.Audit.Topic, "audit topic")
	flag.StringVar(&opts.group, "group", "", "consumer group; empty reads without committing")
	flag.StringVar(&opts.doctorID, "doctor", "", "only events for this doctor ID")
	flag.StringVar(&opts.category, "category", "", "only events in this category (compliance, security, operations)")
	flag.BoolVar(&opts.fromStart, "from-start", false, "read the topic from the earliest offset")
	flag.Parse()

	log := logger.New(cfg.LogLevel)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, opts, os.Stdout, log); err != nil {
		log.Error("audit tail failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, opts options, out io.Writer, log *slog.Logger) error {
	if strings.TrimSpace(opts.brokers) == "" {
		return fmt.Errorf("no kafka brokers: set KAFKA_BROKERS or -brokers")
	}

	offset := kgo.NewOffset().AtEnd()
	if opts.fromStart {
		offset = kgo.NewOffset().AtStart()
	}
	kopts := []kgo.Opt{
		kgo.SeedBrokers(strings.Split(opts.brokers, ",")...),
		kgo.ConsumeTopics(opts.topic),
		kgo.ConsumeResetOffset(offset),
	}
	if opts.group != "" {
		kopts = append(kopts, kgo.ConsumerGroup(opts.group))
	}
	client, err := kgo.NewClient(kopts...)
	if err != nil {
		return fmt.Errorf("create kafka consumer: %w", err)
	}
	defer client.Close()

	log.Info("tailing audit events", "topic", opts.topic, "group", opts.group)
	enc := json.NewEncoder(out)
	f := filter{doctorID: opts.doctorID, category: audit.EventCategory(opts.category)}

	for {
		fetches := client.PollFetches(ctx)
		if fetches.IsClientClosed() || ctx.Err() != nil {
			return nil
		}
		fetches.EachError(func(topic string, partition int32, err error) {
			log.Warn("fetch error", "topic", topic, "partition", partition, "error", err)
		})
		fetches.EachRecord(func(r *kgo.Record) {
			event, ok := decode(r.Value, log)
			if !ok || !f.match(event) {
				return
			}
			if err := enc.Encode(event); err != nil {
				log.Warn("write event", "error", err)
			}
		})
	}
}

func decode(value []byte, log *slog.Logger) (audit.Event, bool) {
	var event audit.Event
	if err := json.Unmarshal(value, &event); err != nil {
		log.Warn("skipping undecodable record", "error", err)
		return audit.Event{}, false
	}
	return event, true
}

type filter struct {
	doctorID string
	category audit.EventCategory
}

func (f filter) match(e audit.Event) bool {
	if f.doctorID != "" && e.DoctorID != f.doctorID {
		return false
	}
	if f.category != "" && e.Category != f.category {
		return false
	}
	return true
}
