package handlers

// HandlerBundle aggregates the handler groups for route registration.
type HandlerBundle struct {
	User         *UserHandler
	Booking      *BookingHandler
	Notification *NotificationHandler
	Review       *ReviewHandler
	Puja         *PujaHandler
	KYP          *KYPHandler
	WebSocket    *WebSocketHandler
}
