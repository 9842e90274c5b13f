package main

import (
	"context"
	"io"
	"time"

	"VidTube.com/cmd/api/handlers"
	"VidTube.com/cmd/api/router"
	"VidTube.com/cmd/api/router/authfunc"
	"VidTube.com/cmd/content/dal"
	"VidTube.com/cmd/content/infras/redis"
	"VidTube.com/cmd/content/service"
	"VidTube.com/config"
	"VidTube.com/config/jaeger"
	"VidTube.com/config/pprof"
	"VidTube.com/pkg/errno"
	"VidTube.com/pkg/jwt"
	"VidTube.com/pkg/middleware"
	"VidTube.com/pkg/mq"
	"VidTube.com/pkg/oss"
	"VidTube.com/pkg/search"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/middlewares/server/recovery"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/hertz-contrib/cors"
)

// Init wires config, storage and the optional collaborators.
func Init() (*service.Deps, []io.Closer) {
	config.Init()
	ctx := context.Background()
	var closers []io.Closer

	if config.ConfigInfo.Jaeger.Enabled {
		closer, err := jaeger.Init(config.ConfigInfo.Jaeger.ServiceName, config.ConfigInfo.Jaeger.AgentAddr)
		if err != nil {
			hlog.Errorf("jaeger disabled: %v", err)
		} else {
			closers = append(closers, closer)
		}
	}

	deps := &service.Deps{Store: dal.Init()}

	media, err := oss.NewFromConfig(ctx)
	if err != nil {
		panic(err)
	}
	deps.Media = media
	deps.History = redis.Init()

	if config.ConfigInfo.Elastic.Enabled {
		client, err := search.NewElasticClient(config.ConfigInfo.Elastic.Urls...)
		if err != nil {
			panic(err)
		}
		index := search.NewElasticIndex(client, config.ConfigInfo.Elastic.Index)
		if err = index.EnsureIndex(ctx); err != nil {
			panic(err)
		}
		deps.Index = index
	}

	if config.ConfigInfo.RabbitMq.Enabled {
		producer, err := mq.NewProducer(config.RabbitMqURL())
		if err != nil {
			panic(err)
		}
		deps.Events = producer
		closers = append(closers, producer)
	}
	return deps, closers
}

func main() {
	deps, closers := Init()
	defer func() {
		for _, c := range closers {
			_ = c.Close()
		}
	}()
	pprof.Load(config.ConfigInfo.Server.PprofAddr)
	handlers.Init(deps, config.ConfigInfo.Server.UploadDir)

	timeout, err := time.ParseDuration(config.ConfigInfo.Jwt.Timeout)
	if err != nil {
		timeout = 24 * time.Hour
	}
	if err = jwt.Init(config.ConfigInfo.Jwt.Key, timeout, authfunc.Unauthorized); err != nil {
		panic(err)
	}
	if err = middleware.InitFlow(config.ConfigInfo.Flow.Resource, config.ConfigInfo.Flow.QPS); err != nil {
		panic(err)
	}

	r := server.New(
		server.WithHostPorts(config.ConfigInfo.Server.Addr),
		server.WithHandleMethodNotAllowed(true),
		server.WithMaxRequestBodySize(1024*1024*1024),
	)

	// 配置 CORS
	r.Use(cors.New(cors.Config{
		AllowOrigins:     config.ConfigInfo.Server.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// 错误处理
	r.Use(recovery.Recovery(recovery.WithRecoveryHandler(
		func(ctx context.Context, c *app.RequestContext, err interface{}, stack []byte) {
			hlog.SystemLogger().CtxErrorf(ctx, "[Recovery] err=%v\nstack=%s", err, stack)
			c.JSON(consts.StatusInternalServerError, handlers.ErrorResponse{
				StatusCode: errno.ServiceErrCode,
				Message:    errno.ServiceErr.ErrMsg,
				Errors:     []string{errno.ServiceErr.ErrMsg},
			})
		})))

	r.Use(middleware.FlowControl(config.ConfigInfo.Flow.Resource, func(ctx context.Context, c *app.RequestContext) {
		handlers.SendResponse(c, errno.NewErrNo(int64(consts.StatusTooManyRequests), "Too many requests"), nil)
	}))

	router.Register(r)
	r.Spin()
}
