// Package netsink adapts the tinywasm SSE broadcaster into a logsink.Sink
// that publishes every log record to connected browser clients, the way
// Handler.PublishLog pushed tool logs over the "/logs" SSE channel
// (handler.go). Where handler.go wired SSE into one fixed MCP tool-log
// channel, Sink here is a general-purpose broadcaster for any
// logsink.Record stream and owns no HTTP routing of its own.
package netsink

import (
	"net/http"
	"time"

	"github.com/tinywasm/sse"
	"github.com/tinywasm/strfmt"
	"github.com/tinywasm/strfmt/logsink"
)

// Channel is the SSE channel every Sink publishes log lines to, mirroring
// handler.go's hardcoded "logs" channel name.
const Channel = "logs"

type channelProvider struct{}

func (channelProvider) ResolveChannels(r *http.Request) ([]string, error) {
	return []string{Channel}, nil
}

// Sink broadcasts rendered log lines to every subscriber of an SSE hub.
type Sink struct {
	hub *sse.SSEServer
}

// New constructs a Sink backed by a fresh SSE hub. handler returns an
// http.Handler suitable for mounting at a path such as "/logs".
func New() (*Sink, http.Handler) {
	tinySSE := sse.New(&sse.Config{
		Log: func(args ...any) {},
	})
	hub := tinySSE.Server(&sse.ServerConfig{
		ChannelProvider: channelProvider{},
	})
	return &Sink{hub: hub}, hub
}

// Write implements logsink.Sink: it renders rec as a single line through
// strfmt and publishes it to every connected subscriber.
func (s *Sink) Write(rec logsink.Record) {
	line := strfmt.Format("[{}] {} {}", rec.Time.Format(time.RFC3339), rec.Level.String(), rec.Message)
	s.hub.Publish([]byte(line), Channel)
}
