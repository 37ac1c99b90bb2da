package setup

import (
	"github.com/askboard-dev/askboard/internal/assets"
	"github.com/askboard-dev/askboard/internal/config"
	"github.com/askboard-dev/askboard/internal/geo"
	"github.com/askboard-dev/askboard/internal/handler"
	internal_jwt "github.com/askboard-dev/askboard/internal/jwt"
	"github.com/askboard-dev/askboard/internal/middleware"
	"github.com/askboard-dev/askboard/internal/service"
	"github.com/askboard-dev/askboard/internal/storage/fs"
	"github.com/askboard-dev/askboard/internal/storage/pg"
	"github.com/askboard-dev/askboard/internal/utils"
)

// Dependencies holds all initialized collaborators, constructed once and
// passed by reference into handlers.
type Dependencies struct {
	Storage        *pg.Storage
	Handler        *handler.Handler
	AuthMiddleware *middleware.Auth
	Config         *config.Config
}

func SetupDependencies(cfg *config.Config) (*Dependencies, error) {
	storage, err := pg.New(cfg)
	if err != nil {
		return nil, err
	}

	blobs, err := fs.New(cfg.Public.MediaRootPath)
	if err != nil {
		return nil, err
	}

	assetStore := assets.New(blobs)
	jwt := internal_jwt.New(cfg.JwtKey(), cfg.JwtTTL())
	authority := service.NewAuthority()
	textValidator := &utils.BodyTextValidator{}

	geocoder := geo.NewNominatim(cfg.Public.GeocodeBaseURL, cfg.GeoTimeout())
	maps := geo.NewStaticMap(cfg.Public.StaticMapURL, cfg.GeoTimeout())

	auth := service.NewAuth(storage, jwt)
	topic := service.NewTopic(storage, textValidator, authority, assetStore)
	message := service.NewMessage(storage, textValidator, authority)
	user := service.NewUser(storage, authority, assetStore)
	location := service.NewLocation(storage, authority, geocoder, maps, assetStore)

	h := handler.New(auth, topic, message, user, location, blobs, storage, cfg)

	return &Dependencies{
		Storage:        storage,
		Handler:        h,
		AuthMiddleware: middleware.NewAuth(jwt, cfg.Public.SecureCookies),
		Config:         cfg,
	}, nil
}
