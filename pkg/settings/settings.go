// Package settings loads the taskrace configuration and manages profiles.
package settings

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Keys understood by Settings.
const (
	KeyPath           = "path"
	KeyBackend        = "backend"
	KeyProfile        = "profile"
	KeyProfiles       = "profiles"
	KeyGlobalOrdering = "global_ordering"
)

// DefaultProfile is used when no profile has been chosen.
const DefaultProfile = "Default"

const configFile = "config.yaml"

var (
	// ErrUnknownProfile is returned when a named profile is not registered.
	ErrUnknownProfile = errors.New("settings: unknown profile")
	// ErrProfileExists is returned when adding or renaming onto a registered
	// profile.
	ErrProfileExists = errors.New("settings: profile already exists")
)

// Provider answers boolean preferences.
type Provider interface {
	GetBool(key string) bool
}

// Settings is the viper-backed configuration. It satisfies Provider and
// store.Config.
type Settings struct {
	mu sync.Mutex
	v  *viper.Viper
}

// Load reads the .taskrace config file from the given directories, or from
// $TASKRACE_CONFIG_PATH and the working directory when none are given, then
// merges the settings saved under the data path.
func Load(dirs ...string) (*Settings, error) {
	v := viper.New()
	v.SetDefault(KeyPath, "~/.taskrace")
	v.SetDefault(KeyBackend, "diskv")
	v.SetDefault(KeyProfile, DefaultProfile)
	v.SetDefault(KeyGlobalOrdering, false)
	v.SetConfigName(".taskrace") // .yaml is implicit
	v.SetEnvPrefix("TASKRACE")
	v.AutomaticEnv()

	if len(dirs) == 0 {
		if override := os.Getenv("TASKRACE_CONFIG_PATH"); override != "" {
			dirs = append(dirs, override)
		}
		dirs = append(dirs, "./")
	}
	for _, dir := range dirs {
		v.AddConfigPath(dir)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("settings: reading config file: %w", err)
		}
	}

	s := &Settings{v: v}
	saved := s.savedFile()
	if _, err := os.Stat(saved); err == nil {
		v.SetConfigFile(saved)
		if err := v.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("settings: reading %s: %w", saved, err)
		}
	}
	return s, nil
}

// Path is the expanded base directory holding profile data.
func (s *Settings) Path() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.path()
}

func (s *Settings) path() string {
	p := s.v.GetString(KeyPath)
	if expanded, err := homedir.Expand(p); err == nil {
		p = expanded
	}
	return p
}

// Backend names the store backend.
func (s *Settings) Backend() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.v.GetString(KeyBackend)
}

// Profile is the active profile.
func (s *Settings) Profile() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profile()
}

func (s *Settings) profile() string {
	if p := s.v.GetString(KeyProfile); p != "" {
		return p
	}
	return DefaultProfile
}

// DataPath locates the active profile's data.
func (s *Settings) DataPath() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dataPath(s.profile())
}

func (s *Settings) dataPath(profile string) string {
	return filepath.Join(s.path(), profile+"Data")
}

// GetBool implements Provider.
func (s *Settings) GetBool(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.v.GetBool(key)
}

// SetBool stores a boolean preference and saves the settings.
func (s *Settings) SetBool(key string, value bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.v.Set(key, value)
	return s.save()
}

// Profiles lists the registered profiles. The active profile is always
// included.
func (s *Settings) Profiles() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profiles()
}

func (s *Settings) profiles() []string {
	out := slices.Clone(s.v.GetStringSlice(KeyProfiles))
	if active := s.profile(); !slices.Contains(out, active) {
		out = append([]string{active}, out...)
	}
	return out
}

// AddProfile registers a new, empty profile.
func (s *Settings) AddProfile(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := validName(name); err != nil {
		return err
	}
	profiles := s.profiles()
	if slices.Contains(profiles, name) {
		return fmt.Errorf("%w: %s", ErrProfileExists, name)
	}
	s.v.Set(KeyProfiles, append(profiles, name))
	return s.save()
}

// UseProfile makes name the active profile.
func (s *Settings) UseProfile(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	profiles := s.profiles()
	if !slices.Contains(profiles, name) {
		return fmt.Errorf("%w: %s", ErrUnknownProfile, name)
	}
	s.v.Set(KeyProfiles, profiles)
	s.v.Set(KeyProfile, name)
	return s.save()
}

// RenameProfile renames a profile and moves its data along with it.
func (s *Settings) RenameProfile(from, to string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := validName(to); err != nil {
		return err
	}
	profiles := s.profiles()
	idx := slices.Index(profiles, from)
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrUnknownProfile, from)
	}
	if slices.Contains(profiles, to) {
		return fmt.Errorf("%w: %s", ErrProfileExists, to)
	}
	for _, suffix := range dataSuffixes {
		src, dst := s.dataPath(from)+suffix, s.dataPath(to)+suffix
		if _, err := os.Stat(src); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := os.Rename(src, dst); err != nil {
			return fmt.Errorf("settings: moving profile data: %w", err)
		}
	}
	profiles[idx] = to
	s.v.Set(KeyProfiles, profiles)
	if s.profile() == from {
		s.v.Set(KeyProfile, to)
	}
	return s.save()
}

// RemoveProfile unregisters a profile. Its data stays on disk unless purge is
// set. Removing the active profile activates the first remaining one, or a
// fresh default.
func (s *Settings) RemoveProfile(name string, purge bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	profiles := s.profiles()
	idx := slices.Index(profiles, name)
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrUnknownProfile, name)
	}
	if purge {
		for _, suffix := range dataSuffixes {
			if err := os.RemoveAll(s.dataPath(name) + suffix); err != nil {
				return fmt.Errorf("settings: removing profile data: %w", err)
			}
		}
	}
	profiles = slices.Delete(profiles, idx, idx+1)
	if s.profile() == name {
		if len(profiles) == 0 {
			profiles = []string{DefaultProfile}
		}
		s.v.Set(KeyProfile, profiles[0])
	}
	s.v.Set(KeyProfiles, profiles)
	return s.save()
}

// dataSuffixes covers the diskv directory and the sqlite database files.
var dataSuffixes = []string{"", ".db", ".db-wal", ".db-shm"}

func (s *Settings) savedFile() string {
	return filepath.Join(s.path(), configFile)
}

func (s *Settings) save() error {
	if err := os.MkdirAll(s.path(), 0o755); err != nil {
		return fmt.Errorf("settings: %w", err)
	}
	if err := s.v.WriteConfigAs(s.savedFile()); err != nil {
		return fmt.Errorf("settings: saving: %w", err)
	}
	return nil
}

func validName(name string) error {
	if strings.TrimSpace(name) == "" || strings.ContainsAny(name, `/\`) || strings.HasPrefix(name, ".") {
		return fmt.Errorf("settings: invalid profile name %q", name)
	}
	return nil
}
