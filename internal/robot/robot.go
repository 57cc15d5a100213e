// Package robot is a small bot framework: it receives inbound messages,
// runs the first matching handler and talks back through an adapter.
package robot

import (
	"log/slog"
	"regexp"
	"strings"

	"github.com/mikequentel/twitterbot/internal/model"
)

// Sayer posts outgoing messages.
type Sayer interface {
	Say(msg model.OutgoingMessage) int64
}

// Handler answers messages addressed to the robot whose command matches
// Pattern. Command is the message body with the "@name" mention removed.
type Handler struct {
	Name    string
	Pattern *regexp.Regexp
	Action  func(r *Robot, msg model.InboundMessage, match []string)
}

type Robot struct {
	name     string
	logger   *slog.Logger
	sayer    Sayer
	handlers []Handler
}

func New(name string, logger *slog.Logger, handlers ...Handler) *Robot {
	if logger == nil {
		logger = slog.Default()
	}
	return &Robot{name: name, logger: logger, handlers: handlers}
}

func (r *Robot) Name() string { return r.name }

// SetAdapter must be called before the first Receive.
func (r *Robot) SetAdapter(s Sayer) { r.sayer = s }

func (r *Robot) Say(msg model.OutgoingMessage) int64 {
	if r.sayer == nil {
		r.logger.Warn("no adapter set, dropping message", "to", msg.To)
		return 0
	}
	return r.sayer.Say(msg)
}

func (r *Robot) Receive(msg model.InboundMessage) {
	if strings.EqualFold(msg.From, r.name) {
		return
	}
	command, ok := r.command(msg.Body)
	if !ok {
		return
	}
	for _, h := range r.handlers {
		if m := h.Pattern.FindStringSubmatch(command); m != nil {
			r.logger.Debug("handler matched", "handler", h.Name, "from", msg.From)
			h.Action(r, msg, m)
			return
		}
	}
}

// command strips the leading "@name" mention; messages without it are not
// addressed to the robot.
func (r *Robot) command(body string) (string, bool) {
	fields := strings.Fields(body)
	for i, f := range fields {
		if strings.EqualFold(strings.TrimRight(f, ":,"), "@"+r.name) {
			return strings.Join(append(fields[:i:i], fields[i+1:]...), " "), true
		}
	}
	return "", false
}

// Ping answers "ping" with "pong".
var Ping = Handler{
	Name:    "ping",
	Pattern: regexp.MustCompile(`(?i)^ping$`),
	Action: func(r *Robot, msg model.InboundMessage, _ []string) {
		r.Say(msg.Reply("pong"))
	},
}
