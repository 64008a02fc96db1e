package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"go-gia/events"
	"go-gia/types"
)

// EventLister is satisfied by *events.Service.
type EventLister interface {
	List(ctx context.Context) ([]types.Event, events.Origin)
	Fallback() []types.Event
}

// DataSourceHeader tells clients whether the feed is live or fallback data.
const DataSourceHeader = "X-Data-Source"

// GetEvents always answers 200, even if building the feed panics.
func GetEvents(svc EventLister, log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.WithField("panic", r).Error("event feed failed, serving fallback events")
				c.Header(DataSourceHeader, string(events.Fallback))
				c.JSON(http.StatusOK, svc.Fallback())
			}
		}()

		list, origin := svc.List(c.Request.Context())
		c.Header(DataSourceHeader, string(origin))
		c.JSON(http.StatusOK, list)
	}
}
