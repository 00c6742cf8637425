package driving

import (
	"context"

	"github.com/custodia-labs/docwatch/internal/core/domain"
)

// ChangeFeed is the subscription endpoint for change notifications.
type ChangeFeed interface {
	// Subscribe registers a listener. The listener is dropped once ctx is
	// done or when it falls behind; the channel is then closed.
	Subscribe(ctx context.Context) (string, <-chan domain.ChangeMessage)

	// Unsubscribe removes a listener and closes its channel.
	Unsubscribe(id string)
}
