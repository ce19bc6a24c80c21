package pipeline

import (
	"fmt"
	"time"

	"github.com/robalyx/stemdata/internal/archive"
	"github.com/robalyx/stemdata/internal/setup/config"
)

// Pack archives an existing build directory using the archive settings.
func Pack(cfg *config.Config, now time.Time) (string, error) {
	location, err := time.LoadLocation(cfg.Archive.Timezone)
	if err != nil {
		return "", fmt.Errorf("%w: archive timezone: %w", config.ErrInvalidConfig, err)
	}

	files, err := archive.Files(cfg.Output.BuildDir)
	if err != nil {
		return "", err
	}

	return archive.Pack(archive.Options{
		BuildDir: cfg.Output.BuildDir,
		DistDir:  cfg.Archive.DistDir,
		Prefix:   cfg.Archive.Prefix,
		Location: location,
	}, files, now)
}
