package adapter

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/mikequentel/twitterbot/internal/model"
	"github.com/mikequentel/twitterbot/internal/postlog"
)

// MaxStatusLength is the character limit of one status.
const MaxStatusLength = 140

// Say posts msg as a chain of statuses, each replying to the one before, and
// returns the id of the last status posted (0 if none). A failed post drops
// the rest of the chain; the error is logged, not returned.
func (a *Adapter) Say(msg model.OutgoingMessage) int64 {
	header := replyHeader(msg.To)
	footer := a.footer()
	bodyLength := MaxStatusLength - runeLen(header) - runeLen(footer)
	if bodyLength < 1 {
		panic(fmt.Sprintf("adapter: reply header %q leaves no room for a body", header))
	}

	var inReplyTo int64
	if msg.Original != nil {
		inReplyTo = msg.Original.ID
	}

	var last int64
	chunks := splitRunes(msg.Body, bodyLength)
	for i, chunk := range chunks {
		if i > 0 && a.pause > 0 {
			a.clock.Sleep(a.pause)
		}

		status := header + chunk + footer
		id, err := a.rest.UpdateStatus(status, inReplyTo)
		if err != nil {
			a.logger.Error("Twitter post error: "+err.Error(),
				"chunk", i+1, "chunks", len(chunks), "in_reply_to", inReplyTo)
			a.metrics.ObservePostFailure()
			return last
		}
		a.metrics.ObservePosted(inReplyTo != 0)
		a.record(id, inReplyTo, status)

		inReplyTo, last = id, id
	}
	return last
}

func (a *Adapter) record(id, inReplyTo int64, status string) {
	if a.journal == nil {
		return
	}
	err := a.journal.Record(context.Background(), postlog.Entry{
		StatusID:  id,
		InReplyTo: inReplyTo,
		Text:      status,
		PostedAt:  a.clock.Now(),
	})
	if err != nil {
		a.logger.Warn("post log write failed", "status_id", id, "error", err)
	}
}

func replyHeader(to string) string {
	if to == "" {
		return ""
	}
	return "@" + to + "\n"
}

// randomFooter returns a space and 3 distinct random digits. Twitter rejects
// repeated statuses; the footer keeps identical replies apart.
func randomFooter() string {
	d := rand.Perm(10)
	return fmt.Sprintf(" %d%d%d", d[0], d[1], d[2])
}

// splitRunes cuts s into consecutive pieces of n runes, the last possibly
// shorter. Empty s yields no pieces.
func splitRunes(s string, n int) []string {
	r := []rune(s)
	var out []string
	for len(r) > 0 {
		k := min(n, len(r))
		out = append(out, string(r[:k]))
		r = r[k:]
	}
	return out
}

func runeLen(s string) int { return len([]rune(s)) }
