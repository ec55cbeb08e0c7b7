package app

import (
	"fmt"

	"tableflip.dev/taskrace/pkg/store"
)

// Profiles switches the active profile. *settings.Settings implements it.
type Profiles interface {
	store.Config
	UseProfile(name string) error
}

// SwitchProfile activates the named profile, closes the current store handle
// and opens the profile's store in its place.
func (s *Service) SwitchProfile(p Profiles, name string) error {
	if err := p.UseProfile(name); err != nil {
		return err
	}
	if err := s.Close(); err != nil {
		return fmt.Errorf("app: closing store: %w", err)
	}
	next, err := store.Open(p, s.logger())
	if err != nil {
		return err
	}
	s.Store = next
	s.logger().Debug("switched profile", "profile", name)
	return nil
}
