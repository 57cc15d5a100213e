// Package adapter connects a robot to Twitter: stream events become inbound
// messages, and outgoing messages become threaded status updates.
package adapter

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/mikequentel/twitterbot/internal/metrics"
	"github.com/mikequentel/twitterbot/internal/model"
	"github.com/mikequentel/twitterbot/internal/postlog"
)

// DefaultPause is the delay between the statuses of one outgoing message.
const DefaultPause = 200 * time.Millisecond

// Robot is the bot framework side of the adapter.
type Robot interface {
	Name() string
	Receive(msg model.InboundMessage)
}

// Journal records posted statuses.
type Journal interface {
	Record(ctx context.Context, e postlog.Entry) error
}

type Options struct {
	Logger  *slog.Logger
	Metrics *metrics.Adapter
	Journal Journal
	Clock   clockwork.Clock

	// Pause between chunk posts; 0 posts back to back.
	Pause          time.Duration
	AutoFollowBack bool

	// OnFatal is called when the background listener fails. Defaults to
	// logging the error and exiting the process.
	OnFatal func(error)
}

type Adapter struct {
	rest   RESTClient
	stream Streamer
	robot  Robot

	logger         *slog.Logger
	metrics        *metrics.Adapter
	journal        Journal
	clock          clockwork.Clock
	pause          time.Duration
	autoFollowBack bool
	onFatal        func(error)
	footer         func() string
}

func New(rest RESTClient, stream Streamer, robot Robot, opts Options) *Adapter {
	a := &Adapter{
		rest:           rest,
		stream:         stream,
		robot:          robot,
		logger:         opts.Logger,
		metrics:        opts.Metrics,
		journal:        opts.Journal,
		clock:          opts.Clock,
		pause:          opts.Pause,
		autoFollowBack: opts.AutoFollowBack,
		onFatal:        opts.OnFatal,
		footer:         randomFooter,
	}
	if a.logger == nil {
		a.logger = slog.Default()
	}
	if a.clock == nil {
		a.clock = clockwork.NewRealClock()
	}
	if a.onFatal == nil {
		a.onFatal = func(err error) {
			a.logger.Error("Twitter listener failed", "error", err)
			os.Exit(1)
		}
	}
	return a
}

// Run starts the stream listener in the background and returns. A listener
// failure goes to OnFatal; cancelling ctx stops the listener quietly.
func (a *Adapter) Run(ctx context.Context) {
	a.logger.Debug("Twitter adapter started")
	go func() {
		if err := a.Listen(ctx); err != nil {
			a.onFatal(err)
		}
	}()
}

// Listen consumes the stream until ctx is done or an error occurs.
func (a *Adapter) Listen(ctx context.Context) error {
	err := a.stream.Subscribe(ctx, a.handle)
	if ctx.Err() != nil {
		return nil
	}
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	return nil
}

func (a *Adapter) handle(ev Event) error {
	a.metrics.ObserveEvent(ev.kind())

	switch ev := ev.(type) {
	case Post:
		tweet := ev
		if ev.Retweeted != nil {
			tweet = *ev.Retweeted
		}
		a.logger.Debug("tweeted", "author", tweet.Author, "text", tweet.Text)
		a.robot.Receive(model.InboundMessage{
			Body: tweet.Text,
			From: tweet.Author,
			Tweet: &model.Tweet{
				ID:     ev.ID,
				Text:   ev.Text,
				Author: ev.Author,
				Via:    ev.Source,
			},
		})
	case Follow:
		a.logger.Debug("followed", "source", ev.Source, "target", ev.Target)
		if a.autoFollowBack && ev.Target == a.robot.Name() {
			a.logger.Debug("Trying to follow back", "user", ev.Source)
			err := a.rest.Follow(ev.Source)
			a.metrics.ObserveFollowBack(err)
			if err != nil {
				return fmt.Errorf("follow back %s: %w", ev.Source, err)
			}
		}
	case Other:
	}
	return nil
}
