package main

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Exporter collects metrics from a relay server.
type Exporter struct {
	address   string
	timeout   time.Duration
	namespace string

	up                   *prometheus.Desc
	roomsLive            *prometheus.Desc
	sessionsLive         *prometheus.Desc
	sessionsTotal        *prometheus.Desc
	refusedConns         *prometheus.Desc
	messagesInWebsock    *prometheus.Desc
	messagesOutWebsock   *prometheus.Desc
	messagesInAPI        *prometheus.Desc
	deliveryDrops        *prometheus.Desc
	notificationsCreated *prometheus.Desc
	notificationsSwept   *prometheus.Desc
	remindersSent        *prometheus.Desc
	messagesSent         *prometheus.Desc
	malloced             *prometheus.Desc
}

var errKeyNotFound = errors.New("key not found")

// NewExporter returns an initialized exporter.
func NewExporter(server, namespace string, timeout time.Duration) *Exporter {
	return &Exporter{
		address:   server,
		timeout:   timeout,
		namespace: namespace,
		up: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "up"),
			"If relay instance is reachable.",
			nil,
			nil,
		),
		roomsLive: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "rooms_live_count"),
			"Number of rooms with at least one subscribed session.",
			nil,
			nil,
		),
		sessionsLive: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "sessions_live_count"),
			"Number of currently active sessions.",
			nil,
			nil,
		),
		sessionsTotal: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "sessions_total"),
			"Total number of sessions since instance start.",
			nil,
			nil,
		),
		refusedConns: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "refused_connections_total"),
			"Connections refused at the handshake for a bad credential.",
			nil,
			nil,
		),
		messagesInWebsock: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "incoming_messages_websock_total"),
			"Messages received over websocket connections.",
			nil,
			nil,
		),
		messagesOutWebsock: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "outgoing_messages_websock_total"),
			"Messages sent over websocket connections.",
			nil,
			nil,
		),
		messagesInAPI: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "incoming_messages_api_total"),
			"Authenticated requests served by the JSON API.",
			nil,
			nil,
		),
		deliveryDrops: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "delivery_drops_total"),
			"Events dropped at delivery because a session's queue was full.",
			nil,
			nil,
		),
		notificationsCreated: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "notifications_created_total"),
			"Notifications persisted for fan-out.",
			nil,
			nil,
		),
		notificationsSwept: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "notifications_swept_total"),
			"Fully-read notifications reclaimed by the retention sweep.",
			nil,
			nil,
		),
		remindersSent: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "reminders_sent_total"),
			"Meeting reminders dispatched.",
			nil,
			nil,
		),
		messagesSent: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "messages_sent_total"),
			"Conversation messages accepted and persisted.",
			nil,
			nil,
		),
		malloced: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "malloced_bytes"),
			"Number of bytes of memory allocated and in use.",
			nil,
			nil,
		),
	}
}

// Describe describes all the metrics exported by the relay exporter. It
// implements prometheus.Collector.
func (e *Exporter) Describe(ch chan<- *prometheus.Desc) {
	ch <- e.up
	ch <- e.roomsLive
	ch <- e.sessionsLive
	ch <- e.sessionsTotal
	ch <- e.refusedConns
	ch <- e.messagesInWebsock
	ch <- e.messagesOutWebsock
	ch <- e.messagesInAPI
	ch <- e.deliveryDrops
	ch <- e.notificationsCreated
	ch <- e.notificationsSwept
	ch <- e.remindersSent
	ch <- e.messagesSent
	ch <- e.malloced
}

// Collect fetches statistics from the configured relay instance, and
// delivers them as Prometheus metrics. It implements prometheus.Collector.
func (e *Exporter) Collect(ch chan<- prometheus.Metric) {
	resp, err := http.Get(e.address)
	if err != nil {
		ch <- prometheus.MustNewConstMetric(e.up, prometheus.GaugeValue, 0)
		log.Println("Failed to connect to server", err)
		return
	}
	defer resp.Body.Close()

	up := float64(1)

	var stats map[string]interface{}
	err = json.NewDecoder(resp.Body).Decode(&stats)
	if err != nil {
		log.Println("Failed to fetch or parse response", err)
		up = 0
	} else {
		if err := e.parseStats(ch, stats); err != nil {
			up = 0
		}
	}

	ch <- prometheus.MustNewConstMetric(e.up, prometheus.GaugeValue, up)
}

func (e *Exporter) parseStats(ch chan<- prometheus.Metric, stats map[string]interface{}) error {
	return firstError(
		e.parseAndUpdate(ch, e.roomsLive, prometheus.GaugeValue, stats, "RoomsLive"),
		e.parseAndUpdate(ch, e.sessionsLive, prometheus.GaugeValue, stats, "LiveSessions"),
		e.parseAndUpdate(ch, e.sessionsTotal, prometheus.CounterValue, stats, "TotalSessions"),
		e.parseAndUpdate(ch, e.refusedConns, prometheus.CounterValue, stats, "RefusedConnectionsTotal"),
		e.parseAndUpdate(ch, e.messagesInWebsock, prometheus.CounterValue, stats, "IncomingMessagesWebsockTotal"),
		e.parseAndUpdate(ch, e.messagesOutWebsock, prometheus.CounterValue, stats, "OutgoingMessagesWebsockTotal"),
		e.parseAndUpdate(ch, e.messagesInAPI, prometheus.CounterValue, stats, "IncomingMessagesAPITotal"),
		e.parseAndUpdate(ch, e.deliveryDrops, prometheus.CounterValue, stats, "DeliveryDropsTotal"),
		e.parseAndUpdate(ch, e.notificationsCreated, prometheus.CounterValue, stats, "NotificationsCreatedTotal"),
		e.parseAndUpdate(ch, e.notificationsSwept, prometheus.CounterValue, stats, "NotificationsSweptTotal"),
		e.parseAndUpdate(ch, e.remindersSent, prometheus.CounterValue, stats, "RemindersSentTotal"),
		e.parseAndUpdate(ch, e.messagesSent, prometheus.CounterValue, stats, "MessagesSentTotal"),
		e.parseAndUpdate(ch, e.malloced, prometheus.GaugeValue, stats, "memstats.Alloc"),
	)
}

func (e *Exporter) parseAndUpdate(ch chan<- prometheus.Metric, desc *prometheus.Desc, valueType prometheus.ValueType,
	stats map[string]interface{}, key string) error {

	v, err := parseNumeric(stats, key)

	if err == errKeyNotFound {
		return nil
	}
	if err != nil {
		return err
	}

	ch <- prometheus.MustNewConstMetric(desc, valueType, v)
	return nil
}

func firstError(errs ...error) error {
	for _, v := range errs {
		if v != nil {
			return v
		}
	}
	return nil
}

func parseNumeric(stats map[string]interface{}, path string) (float64, error) {
	parts := strings.Split(path, ".")
	var value interface{}
	var found bool
	value = stats
	for i := 0; i < len(parts); i++ {
		subset, ok := value.(map[string]interface{})
		if !ok {
			log.Println("Invalid key path:", path)
			return 0, errKeyNotFound
		}
		value, found = subset[parts[i]]
		if !found {
			log.Println("Invalid key path:", path, "(", parts[i], ")")
			return 0, errKeyNotFound
		}
	}

	floatval, ok := value.(float64)
	if !ok {
		log.Println("Value at path is not a float64:", path, value)
		return 0, errKeyNotFound
	}

	return floatval, nil
}
