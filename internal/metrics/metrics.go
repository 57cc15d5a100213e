package metrics

import "github.com/prometheus/client_golang/prometheus"

// Adapter exposes counters for the Twitter adapter. A nil *Adapter is a no-op.
type Adapter struct {
	statusesPosted *prometheus.CounterVec
	postFailures   prometheus.Counter
	eventsReceived *prometheus.CounterVec
	followBacks    *prometheus.CounterVec
}

func New(reg prometheus.Registerer) *Adapter {
	m := &Adapter{
		statusesPosted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "twitterbot",
			Subsystem: "outbound",
			Name:      "statuses_posted_total",
			Help:      "Statuses posted, labelled by whether they continue a reply chain",
		}, []string{"reply"}),
		postFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "twitterbot",
			Subsystem: "outbound",
			Name:      "post_failures_total",
			Help:      "Outgoing messages aborted by a failed status update",
		}),
		eventsReceived: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "twitterbot",
			Subsystem: "inbound",
			Name:      "events_total",
			Help:      "Stream events received, by kind",
		}, []string{"kind"}),
		followBacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "twitterbot",
			Subsystem: "inbound",
			Name:      "follow_backs_total",
			Help:      "Follow-back attempts, by status",
		}, []string{"status"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.statusesPosted, m.postFailures, m.eventsReceived, m.followBacks)
	return m
}

func (m *Adapter) ObservePosted(reply bool) {
	if m == nil {
		return
	}
	label := "false"
	if reply {
		label = "true"
	}
	m.statusesPosted.WithLabelValues(label).Inc()
}

func (m *Adapter) ObservePostFailure() {
	if m == nil {
		return
	}
	m.postFailures.Inc()
}

func (m *Adapter) ObserveEvent(kind string) {
	if m == nil {
		return
	}
	m.eventsReceived.WithLabelValues(kind).Inc()
}

func (m *Adapter) ObserveFollowBack(err error) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.followBacks.WithLabelValues(status).Inc()
}
