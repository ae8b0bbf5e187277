package main

import (
	"github.com/rs/zerolog/log"

	"github.com/nightjar-labs/marquee/internal/storage"
)

// initStorage picks the media backend: DigitalOcean Spaces when configured,
// otherwise the local uploads directory served as static files.
func initStorage(env Environment) storage.Storage {
	if env.UseSpaces {
		spaces, err := storage.NewSpacesStorage(
			env.SpacesEndpoint,
			env.SpacesRegion,
			env.SpacesBucket,
			env.SpacesCDNURL,
			env.SpacesAccessKey,
			env.SpacesSecretKey,
		)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize Spaces storage")
		}
		log.Info().Str("bucket", env.SpacesBucket).Msg("using Spaces storage")
		return spaces
	}

	log.Info().Str("dir", env.UploadDir).Msg("using local storage")
	return storage.NewLocalStorage(env.UploadDir)
}
