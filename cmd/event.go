package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/assetdesk/asset-management/internal/core/events"
	"github.com/assetdesk/asset-management/pkg/logger"
	"github.com/spf13/cobra"
)

var eventCmd = &cobra.Command{
	Use:   "event",
	Short: "Event bus commands",
	Long:  `Inspect the in-process event bus by publishing sample domain events`,
}

var publishEventCmd = &cobra.Command{
	Use:   "publish [event-type]",
	Short: "Publish a sample domain event",
	Long: `Publish a sample domain event to the bus and log what a subscriber receives.
Supported types: request.created, request.status_changed, asset.registered, asset.depreciated`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return publishSampleEvent(args[0])
	},
}

// sampleEvent builds a representative event through the same constructors
// the services publish with.
func sampleEvent(eventType string) (events.Event, error) {
	switch eventType {
	case events.EventTypeRequestCreated:
		return events.NewRequestCreatedEvent(1, 1, "laptop", 2), nil
	case events.EventTypeRequestStatusChanged:
		return events.NewRequestStatusChangedEvent(1, 1, "Pending", "Approved", 2), nil
	case events.EventTypeAssetRegistered:
		return events.NewAssetRegisteredEvent(1, "AST-0001", "250000", "engineering"), nil
	case events.EventTypeAssetDepreciated:
		return events.NewAssetDepreciatedEvent(1, "AST-0001", 13, "2708.33"), nil
	default:
		return nil, fmt.Errorf("unknown event type %q", eventType)
	}
}

func publishSampleEvent(eventType string) error {
	log := logger.LoggerWrapper()

	event, err := sampleEvent(eventType)
	if err != nil {
		return err
	}

	eventBus := events.NewEventBus(log)
	eventBus.Subscribe(eventType, func(ctx context.Context, e events.Event) error {
		log.Info("subscriber received event",
			"event_id", e.EventID(),
			"event_type", e.EventType(),
			"payload", e.Payload())
		return nil
	})

	log.Info("publishing sample event", "event_type", eventType, "event_id", event.EventID())

	if err := eventBus.Publish(context.Background(), event); err != nil {
		return err
	}

	// Publish dispatches asynchronously, give the subscriber a moment.
	time.Sleep(100 * time.Millisecond)
	log.Info("sample event published")
	return nil
}

func init() {
	eventCmd.AddCommand(publishEventCmd)
	rootCmd.AddCommand(eventCmd)
}
