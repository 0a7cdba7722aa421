package booking

// Notifier pushes customer-facing notifications off the request path.
type Notifier interface {
	Enqueue(userID uint, notifType, channel, title, message string, data map[string]any)
}
