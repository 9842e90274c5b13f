package middleware

import (
	"context"

	sentinel "github.com/alibaba/sentinel-golang/api"
	"github.com/alibaba/sentinel-golang/core/base"
	"github.com/alibaba/sentinel-golang/core/flow"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/pkg/errors"
)

// InitFlow starts sentinel and limits resource to qps requests per second.
// A non-positive qps leaves the resource unlimited.
func InitFlow(resource string, qps float64) error {
	if err := sentinel.InitDefault(); err != nil {
		return errors.Wrap(err, "init sentinel")
	}
	if qps <= 0 {
		return nil
	}
	_, err := flow.LoadRules([]*flow.Rule{
		{
			Resource:               resource,
			TokenCalculateStrategy: flow.Direct,
			ControlBehavior:        flow.Reject,
			Threshold:              qps,
			StatIntervalInMs:       1000,
		},
	})
	return errors.Wrap(err, "load flow rules")
}

// FlowControl guards every request with a sentinel entry on resource and
// hands blocked requests to reject.
func FlowControl(resource string, reject app.HandlerFunc) app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		entry, blocked := sentinel.Entry(resource, sentinel.WithTrafficType(base.Inbound))
		if blocked != nil {
			hlog.CtxWarnf(ctx, "request %s blocked by flow rule %s", c.Path(), resource)
			reject(ctx, c)
			c.Abort()
			return
		}
		defer entry.Exit()
		c.Next(ctx)
	}
}
