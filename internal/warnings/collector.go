// Package warnings collects non-fatal anomalies found while rendering a
// document. A Collector belongs to exactly one build.
package warnings

import "fmt"

type Collector struct {
	messages []string
	seen     map[string]struct{}
}

func New() *Collector {
	return &Collector{seen: make(map[string]struct{})}
}

// Record appends a message. Identical messages are kept once.
func (c *Collector) Record(message string) {
	if c.seen == nil {
		c.seen = make(map[string]struct{})
	}
	if _, ok := c.seen[message]; ok {
		return
	}
	c.seen[message] = struct{}{}
	c.messages = append(c.messages, message)
}

func (c *Collector) Recordf(format string, args ...any) {
	c.Record(fmt.Sprintf(format, args...))
}

// Drain returns every recorded message in insertion order and empties the
// collector.
func (c *Collector) Drain() []string {
	out := c.messages
	c.messages = nil
	c.seen = make(map[string]struct{})
	return out
}

func (c *Collector) Len() int {
	return len(c.messages)
}
