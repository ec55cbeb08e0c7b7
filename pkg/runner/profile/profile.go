// Package profile provides runners that manage profiles.
package profile

import (
	"context"
	"errors"
	"fmt"
	"io"

	"tableflip.dev/taskrace/pkg/app"
	"tableflip.dev/taskrace/pkg/printers"
)

// Registry is the profile registry, implemented by *settings.Settings.
type Registry interface {
	app.Profiles
	Profile() string
	Profiles() []string
	AddProfile(name string) error
	RenameProfile(from, to string) error
	RemoveProfile(name string, purge bool) error
}

// Action selects what Profile does.
type Action int

const (
	List Action = iota
	Add
	Use
	Rename
	Remove
)

// Profile lists, adds, switches, renames or removes profiles. Switching goes
// through the service so its store handle is closed and the next profile's
// store opened.
type Profile struct {
	Service  *app.Service
	Registry Registry
	Action   Action
	Name     string
	NewName  string
	// Purge deletes the data of a removed profile.
	Purge bool
	JSON  bool
	Out   io.Writer
}

// Do performs the action and prints the profiles.
func (n *Profile) Do(ctx context.Context) error {
	if n.Registry == nil {
		return errors.New("can not manage profiles, no settings")
	}
	var err error
	switch n.Action {
	case Add:
		err = n.Registry.AddProfile(n.Name)
	case Use:
		if n.Service == nil {
			return errors.New("can not switch profile, no service")
		}
		err = n.Service.SwitchProfile(n.Registry, n.Name)
	case Rename:
		if n.Registry.Profile() == n.Name && n.Service != nil {
			// The data moves on disk, so let go of it first.
			if err := n.Service.Close(); err != nil {
				return fmt.Errorf("closing store: %w", err)
			}
		}
		err = n.Registry.RenameProfile(n.Name, n.NewName)
	case Remove:
		if n.Purge && n.Registry.Profile() == n.Name && n.Service != nil {
			if err := n.Service.Close(); err != nil {
				return fmt.Errorf("closing store: %w", err)
			}
		}
		err = n.Registry.RemoveProfile(n.Name, n.Purge)
	}
	if err != nil {
		return err
	}

	if n.JSON {
		return printers.JSON(n.Out, struct {
			Active   string   `json:"active"`
			Profiles []string `json:"profiles"`
		}{n.Registry.Profile(), n.Registry.Profiles()})
	}
	pp := printers.PrettyPrint{Out: n.Out}
	pp.Profiles(n.Registry.Profile(), n.Registry.Profiles()...)
	return nil
}
