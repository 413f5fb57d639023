package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/kkpa/jbh/internal/core/events"
	"github.com/kkpa/jbh/pkg/logger"
	"github.com/spf13/cobra"
)

var eventCmd = &cobra.Command{
	Use:   "event",
	Short: "Event management commands",
	Long:  `Publish entity events to an in-process bus to check the audit subscriber`,
}

var publishEventCmd = &cobra.Command{
	Use:   "publish <entity>.<created|updated|deleted>",
	Short: "Publish a test entity event",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return publishTestEvent(cmd.Context(), args[0], eventEntityID)
	},
}

var eventEntityID int64

func publishTestEvent(ctx context.Context, eventType string, id int64) error {
	entity, action, ok := strings.Cut(strings.ToLower(eventType), ".")
	if !ok || entity == "" {
		return fmt.Errorf("event type must look like <entity>.<action>, got %q", eventType)
	}
	switch events.Action(action) {
	case events.ActionCreated, events.ActionUpdated, events.ActionDeleted:
	default:
		return fmt.Errorf("unknown action %q", action)
	}

	lg := logger.LoggerWrapper()
	bus := events.NewEventBus(lg)
	bus.SubscribeEntity(events.AuditLogHandler(lg), entity)

	event := events.NewEntityEvent(entity, events.Action(action), id)
	lg.Info("publishing test event", "event_type", event.EventType(), "event_id", event.EventID())

	return bus.PublishSync(ctx, event)
}

func init() {
	publishEventCmd.Flags().Int64Var(&eventEntityID, "id", 1, "Entity id carried by the event")
	eventCmd.AddCommand(publishEventCmd)
}
