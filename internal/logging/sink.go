package logging

// Sink receives log messages that passed the Service gate. Implementations
// must be safe for concurrent use; the Service calls Write from whichever
// goroutine logged.
type Sink interface {
	Write(level Level, categories Category, context, message string)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(level Level, categories Category, context, message string)

// Write calls f.
func (f SinkFunc) Write(level Level, categories Category, context, message string) {
	f(level, categories, context, message)
}

// MultiSink fans every message out to each sink in order.
type MultiSink []Sink

// Write forwards the message to every sink.
func (m MultiSink) Write(level Level, categories Category, context, message string) {
	for _, s := range m {
		s.Write(level, categories, context, message)
	}
}

// DiscardSink drops every message.
var DiscardSink Sink = SinkFunc(func(Level, Category, string, string) {})

var (
	_ Sink = SinkFunc(nil)
	_ Sink = MultiSink(nil)
)
