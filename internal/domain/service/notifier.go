package service

// ActivityNotifier pushes events to live subscribers. Implementations must
// not block.
type ActivityNotifier interface {
	Broadcast(eventType string, data interface{})
}
