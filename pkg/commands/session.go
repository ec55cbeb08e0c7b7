package commands

import (
	"context"
	"os"

	"github.com/charmbracelet/log"

	"tableflip.dev/taskrace/pkg/app"
	"tableflip.dev/taskrace/pkg/calendar"
	"tableflip.dev/taskrace/pkg/settings"
	"tableflip.dev/taskrace/pkg/store"
)

// session is what every command runs against: the loaded settings and a
// service over the active profile's store.
type session struct {
	Settings *settings.Settings
	Service  *app.Service
	Log      *log.Logger
}

func openSession() (*session, error) {
	logger := lo.Logger(os.Stderr)
	set, err := settings.Load()
	if err != nil {
		return nil, err
	}
	st, err := store.Open(set, logger)
	if err != nil {
		return nil, err
	}
	logger.Debug("session ready", "profile", set.Profile(), "backend", set.Backend(), "data", set.DataPath())
	return &session{
		Settings: set,
		Service: &app.Service{
			Store:    st,
			Settings: set,
			Clock:    calendar.SystemClock{},
			Log:      logger,
		},
		Log: logger,
	}, nil
}

// run opens a session, hands it to fn and closes it again. Errors go
// through the output options so --json reports them as JSON.
func run(ctx context.Context, fn func(ctx context.Context, s *session) error) error {
	if ctx == nil {
		ctx = context.Background()
	}
	s, err := openSession()
	if err != nil {
		return oo.HandleError(err)
	}
	err = fn(ctx, s)
	if cerr := s.Service.Close(); cerr != nil && err == nil {
		err = cerr
	}
	return oo.HandleError(err)
}
