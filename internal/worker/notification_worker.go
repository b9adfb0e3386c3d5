package worker

import (
	"context"

	"github.com/soporteit/helpdesk-service/internal/events"
	"github.com/soporteit/helpdesk-service/internal/observability"
	"github.com/soporteit/helpdesk-service/internal/service"
)

// StartNotificationWorker registers the notification handlers and the
// transition metrics listener on the dispatcher.
func StartNotificationWorker(notificationService *service.NotificationService, dispatcher events.Dispatcher, metrics *observability.Metrics) {
	if notificationService != nil {
		notificationService.RegisterHandlers()
	}
	if dispatcher == nil || metrics == nil {
		return
	}
	dispatcher.Subscribe(events.EventTicketStatusChanged, func(ctx context.Context, event events.Event) error {
		if payload, ok := event.Payload.(events.TicketStatusChangedPayload); ok {
			metrics.RecordTransition(payload.NewStatus.Name())
		}
		return nil
	})
	dispatcher.Subscribe(events.EventTicketAssigned, func(ctx context.Context, event events.Event) error {
		metrics.RecordTransition("asignacion")
		return nil
	})
}
