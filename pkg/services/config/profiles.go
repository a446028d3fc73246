package config

import (
	"context"
	"fmt"

	"gopkg.in/ini.v1"
)

// Profile is one named engine configuration from the .costenginecfg
// INI file. Each profile points at its own database file.
type Profile struct {
	Name   string
	DBPath string
}

type Registry interface {
	GetProfiles(ctx context.Context) ([]Profile, error)
	GetProfile(ctx context.Context, name string) (Profile, error)
}

type cfgRegistry struct {
	cfg *ini.File
}

func NewRegistry(path string) (Registry, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, err
	}
	return &cfgRegistry{cfg: cfg}, nil
}

func (cr *cfgRegistry) GetProfiles(_ context.Context) ([]Profile, error) {
	var profiles []Profile
	for _, section := range cr.cfg.Sections() {
		if len(section.Keys()) > 0 {
			profiles = append(profiles, profileFromSection(section.Name(), section))
		}
	}
	return profiles, nil
}

func (cr *cfgRegistry) GetProfile(_ context.Context, name string) (Profile, error) {
	section, err := cr.cfg.GetSection(name)
	if err != nil {
		return Profile{}, fmt.Errorf("profile %s not found", name)
	}
	return profileFromSection(name, section), nil
}

func profileFromSection(name string, section *ini.Section) Profile {
	return Profile{
		Name:   name,
		DBPath: section.Key("db_path").String(),
	}
}
