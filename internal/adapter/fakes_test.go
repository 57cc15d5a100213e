package adapter

import (
	"context"
	"errors"
	"sync"

	"github.com/mikequentel/twitterbot/internal/logging"
	"github.com/mikequentel/twitterbot/internal/model"
	"github.com/mikequentel/twitterbot/internal/postlog"
)

type updateCall struct {
	Text      string
	InReplyTo int64
}

type fakeREST struct {
	mu        sync.Mutex
	nextID    int64
	failAt    int // 1-based update call that fails; 0 never fails
	updates   []updateCall
	follows   []string
	followErr error
}

func newFakeREST() *fakeREST {
	return &fakeREST{nextID: 1000}
}

func (f *fakeREST) UpdateStatus(text string, inReplyTo int64) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updates = append(f.updates, updateCall{Text: text, InReplyTo: inReplyTo})
	if f.failAt == len(f.updates) {
		return 0, errors.New("twitter: 187 Status is a duplicate.")
	}
	f.nextID++
	return f.nextID, nil
}

func (f *fakeREST) Follow(screenName string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.follows = append(f.follows, screenName)
	return f.followErr
}

func (f *fakeREST) calls() []updateCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]updateCall(nil), f.updates...)
}

// fakeStream replays events, then blocks until ctx is done unless end is set.
type fakeStream struct {
	events []Event
	end    error
}

func (s *fakeStream) Subscribe(ctx context.Context, handle func(Event) error) error {
	for _, ev := range s.events {
		if err := handle(ev); err != nil {
			return err
		}
	}
	if s.end != nil {
		return s.end
	}
	<-ctx.Done()
	return ctx.Err()
}

type fakeRobot struct {
	name     string
	mu       sync.Mutex
	received []model.InboundMessage
}

func (r *fakeRobot) Name() string { return r.name }

func (r *fakeRobot) Receive(msg model.InboundMessage) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.received = append(r.received, msg)
}

type fakeJournal struct {
	entries []postlog.Entry
	err     error
}

func (j *fakeJournal) Record(_ context.Context, e postlog.Entry) error {
	j.entries = append(j.entries, e)
	return j.err
}

func newTestAdapter(rest RESTClient, stream Streamer, robot Robot, opts Options) *Adapter {
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}
	if robot == nil {
		robot = &fakeRobot{name: "ruboty"}
	}
	return New(rest, stream, robot, opts)
}
