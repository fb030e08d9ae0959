package setup

import (
	"github.com/refugio-dev/refugio/internal/cloudinary"
	"github.com/refugio-dev/refugio/internal/config"
	"github.com/refugio-dev/refugio/internal/handler"
	"github.com/refugio-dev/refugio/internal/jwt"
	"github.com/refugio-dev/refugio/internal/markdown"
	"github.com/refugio-dev/refugio/internal/media"
	"github.com/refugio-dev/refugio/internal/middleware"
	"github.com/refugio-dev/refugio/internal/service"
	"github.com/refugio-dev/refugio/internal/storage/pg"
	"github.com/refugio-dev/refugio/internal/utils"
)

// Dependencies struct to hold all initialized dependencies.
type Dependencies struct {
	Storage *pg.Storage
	Handler *handler.Handler
	Auth    *middleware.Auth
	Sweeper *service.OrphanSweeper
}

// SetupDependencies initializes all dependencies required for the application.
func SetupDependencies(cfg *config.Config) (*Dependencies, error) {
	storage, err := pg.New(cfg.Public.Pg)
	if err != nil {
		return nil, err
	}

	transformer, err := media.NewTransformer(cfg.Public.Media)
	if err != nil {
		storage.Cleanup()
		return nil, err
	}

	store := cloudinary.New(cfg.Private.Cloudinary)
	mediaService := service.NewMedia(transformer, store, cfg.Public.Media.UploadWorkers)

	jwtService := jwt.New(cfg.JwtKey(), cfg.JwtTTL())
	auth := service.NewAuth(cfg.Private.AdminName, cfg.Private.AdminPasswordHash, jwtService)
	animal := service.NewAnimal(storage, mediaService, &utils.AnimalValidator{})
	news := service.NewNews(storage, mediaService, &utils.NewsValidator{}, markdown.New())

	h := handler.New(auth, animal, news, storage, cfg)

	return &Dependencies{
		Storage: storage,
		Handler: h,
		Auth:    middleware.NewAuth(jwtService),
		Sweeper: service.NewOrphanSweeper(storage, store, cfg.Public.Media.SweepSafetyAge),
	}, nil
}
