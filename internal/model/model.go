package model

// Tweet is the platform status an inbound message was built from.
type Tweet struct {
	ID     int64
	Text   string
	Author string // screen name, without "@"
	Via    string // client name, eg: "Twitter for iPhone"
}

// --- robot -> adapter ---

type OutgoingMessage struct {
	Body     string
	To       string // reply target screen name; "" for a broadcast
	Original *Tweet // tweet being answered; nil starts a new thread
}

// --- adapter -> robot ---

type InboundMessage struct {
	Body  string
	From  string
	Tweet *Tweet // the event as received, a retweet stays a retweet here
}

// Reply builds a message answering m, threaded under the tweet it came from.
func (m InboundMessage) Reply(body string) OutgoingMessage {
	return OutgoingMessage{
		Body:     body,
		To:       m.From,
		Original: m.Tweet,
	}
}
