package cli

import (
	"context"

	"github.com/spf13/afero"

	"taskcli/internal/backend/local"
	"taskcli/internal/config"
	"taskcli/internal/logger"
	"taskcli/internal/service"
	"taskcli/internal/store"
)

// LocalServiceFactory returns a ServiceFactory backed by the tasks file on fs.
// The file is created with an empty collection if it does not exist yet.
func LocalServiceFactory(fs afero.Fs) ServiceFactory {
	return func(ctx context.Context, cfg *config.Config) (service.Service, error) {
		log := logger.FromContext(ctx).With("component", "store")
		st := store.New(fs, cfg.TasksPath(), store.WithLogger(log))
		if err := st.Initialize(); err != nil {
			return nil, err
		}
		return local.New(st), nil
	}
}
