package events

// EventCollector is embedded in aggregates to collect domain events during state transitions.
type EventCollector struct {
	events []DomainEvent
}

func (c *EventCollector) Record(event DomainEvent) {
	c.events = append(c.events, event)
}

// Events returns the pending events without clearing them.
func (c *EventCollector) Events() []DomainEvent {
	return c.events
}

// ClearEvents returns the pending events and empties the collector.
func (c *EventCollector) ClearEvents() []DomainEvent {
	collected := c.events
	c.events = nil
	return collected
}
