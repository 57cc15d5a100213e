package adapter

import (
	"context"
	"errors"
	"fmt"

	"github.com/dghubble/go-twitter/twitter"
)

// ErrStreamClosed is returned when the stream ends without being cancelled.
var ErrStreamClosed = errors.New("twitter: user stream closed")

type userStream struct {
	client *twitter.Client
}

func (s *userStream) Subscribe(ctx context.Context, handle func(Event) error) error {
	stream, err := s.client.Streams.User(&twitter.StreamUserParams{
		With:          "followings",
		StallWarnings: twitter.Bool(true),
	})
	if err != nil {
		return err
	}
	defer stream.Stop()

	return consume(ctx, stream.Messages, newClassifier(), handle)
}

func consume(ctx context.Context, messages <-chan interface{}, c *classifier, handle func(Event) error) error {
	// go-twitter reports a failed connection as an error message right
	// before closing the channel.
	var lastErr error
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-messages:
			if !ok {
				if lastErr != nil {
					return fmt.Errorf("%w: %w", ErrStreamClosed, lastErr)
				}
				return ErrStreamClosed
			}
			if err, isErr := msg.(error); isErr {
				lastErr = err
				continue
			}
			if err := handle(c.classify(msg)); err != nil {
				return err
			}
		}
	}
}
