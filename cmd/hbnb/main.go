package main

import (
	"context"
	"log/slog"
	"os"

	"hbnb/config"
	"hbnb/internal/delivery"
	"hbnb/internal/delivery/api"
	"hbnb/internal/delivery/api/router/handler"
	"hbnb/internal/infra/auth"
	logs "hbnb/internal/infra/log"
	"hbnb/internal/infra/metrics"
	"hbnb/internal/infra/persistence"
	"hbnb/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectService(),
		injectUsecase(),
		injectHandler(),
		injectDelivery(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Options(
		fx.Provide(
			config.New,
			logs.New,
			context.Background,
		),
		metrics.Module,
		persistence.Module,
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewBcryptHasher,
		),
	)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewLocationService,
			impl.NewAmenityService,
			impl.NewUserService,
			impl.NewPlaceService,
			impl.NewReviewService,
			impl.NewStatsService,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewLocationHandler,
			handler.NewAmenityHandler,
			handler.NewUserHandler,
			handler.NewPlaceHandler,
			handler.NewReviewHandler,
			handler.NewIndexHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				api.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

// startServer serves every delivery once the session has loaded.
func startServer(params startServerParams) {
	params.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			for _, d := range params.Deliveries {
				go func() {
					if err := d.Serve(context.Background()); err != nil {
						slog.Error("Failed to start server", slog.Any("error", err))
						os.Exit(1)
					}
				}()
			}

			return nil
		},
	})
}
