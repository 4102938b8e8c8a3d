package services

import (
	"context"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// SeedAdmin is one admin entry of a seed file
type SeedAdmin struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	IsActive *bool  `yaml:"is_active"`
}

// SeedFile is the YAML document accepted by `admin seed`
//
//	admins:
//	  - username: root
//	    password: change-me-please
//	  - username: auditor
//	    password: another-secret
//	    is_active: false
type SeedFile struct {
	Admins []SeedAdmin `yaml:"admins"`
}

// SeedResult summarizes a seed run
type SeedResult struct {
	Created []string
	Skipped []string
}

// ParseSeed decodes a seed document
func ParseSeed(data []byte) (*SeedFile, error) {
	var seed SeedFile
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}
	return &seed, nil
}

// LoadSeedFile reads and decodes the seed file at path
func LoadSeedFile(path string) (*SeedFile, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path comes from the operator
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	return ParseSeed(data)
}

// Seed creates every admin in the file whose username is not taken yet
func (as *AdminService) Seed(ctx context.Context, seed *SeedFile) (*SeedResult, error) {
	result := &SeedResult{}

	for _, entry := range seed.Admins {
		active := entry.IsActive == nil || *entry.IsActive

		_, err := as.createAdmin(ctx, entry.Username, entry.Password, active)
		if errors.Is(err, ErrAdminExists) {
			result.Skipped = append(result.Skipped, entry.Username)
			continue
		}
		if err != nil {
			return result, fmt.Errorf("failed to seed admin %q: %w", entry.Username, err)
		}

		result.Created = append(result.Created, entry.Username)
		as.logger.Info().Str("username", entry.Username).Bool("is_active", active).Msg("admin user seeded")
	}

	return result, nil
}
