package metrics

import (
	"github.com/angeloszaimis/go-dispatch/internal/httpmsg"
	"github.com/angeloszaimis/go-dispatch/internal/route"
)

// Handler returns a route handler serving the current metrics snapshot.
func (c *Collector) Handler() route.HandlerFunc {
	return func(req *httpmsg.Request, _ route.Params) (any, error) {
		return c.Snapshot(), nil
	}
}
