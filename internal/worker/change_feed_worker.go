package worker

import (
	"github.com/spec-kit/staffing-service/internal/service"
)

// StartChangeFeed registers the change feed handlers.
func StartChangeFeed(feed *service.ChangeFeed) {
	if feed == nil {
		return
	}
	feed.RegisterHandlers()
}
