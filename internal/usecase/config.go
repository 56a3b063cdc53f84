package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/trebuchet-org/fundops/internal/domain"
)

// ConfigResult describes the local config after an operation
type ConfigResult struct {
	Config     *domain.LocalConfig
	ConfigPath string
	Exists     bool
	Key        domain.ConfigKey
	Value      string
}

// ManageConfig reads and edits .fundops/config.local.json
type ManageConfig struct {
	store LocalConfigStore
}

// NewManageConfig creates a new ManageConfig use case
func NewManageConfig(store LocalConfigStore) *ManageConfig {
	return &ManageConfig{store: store}
}

// Show returns the current local config
func (uc *ManageConfig) Show(ctx context.Context) (*ConfigResult, error) {
	cfg, err := uc.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	return &ConfigResult{
		Config:     cfg,
		ConfigPath: uc.store.GetPath(),
		Exists:     uc.store.Exists(),
	}, nil
}

// Set stores a value under key
func (uc *ManageConfig) Set(ctx context.Context, key, value string) (*ConfigResult, error) {
	normalized, err := parseConfigKey(key)
	if err != nil {
		return nil, err
	}
	if normalized == domain.ConfigKeyTimeout {
		if _, err := time.ParseDuration(value); err != nil {
			return nil, fmt.Errorf("invalid timeout %q: %w", value, err)
		}
	}

	cfg, err := uc.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	cfg.Set(normalized, value)

	if err := uc.store.Save(ctx, cfg); err != nil {
		return nil, fmt.Errorf("failed to save config: %w", err)
	}

	return &ConfigResult{
		Config:     cfg,
		ConfigPath: uc.store.GetPath(),
		Exists:     true,
		Key:        normalized,
		Value:      value,
	}, nil
}

// Remove clears key; Value holds the removed value
func (uc *ManageConfig) Remove(ctx context.Context, key string) (*ConfigResult, error) {
	if !uc.store.Exists() {
		return nil, fmt.Errorf("no config file found at %s", uc.store.GetPath())
	}
	normalized, err := parseConfigKey(key)
	if err != nil {
		return nil, err
	}

	cfg, err := uc.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	removed := cfg.Get(normalized)
	cfg.Set(normalized, "")

	if err := uc.store.Save(ctx, cfg); err != nil {
		return nil, fmt.Errorf("failed to save config: %w", err)
	}

	return &ConfigResult{
		Config:     cfg,
		ConfigPath: uc.store.GetPath(),
		Exists:     true,
		Key:        normalized,
		Value:      removed,
	}, nil
}

func parseConfigKey(key string) (domain.ConfigKey, error) {
	key = strings.ToLower(key)
	if !domain.IsValidConfigKey(key) {
		valid := lo.Map(domain.ValidConfigKeys(), func(k domain.ConfigKey, _ int) string { return string(k) })
		return "", fmt.Errorf("unknown config key: %s\nAvailable keys: %s", key, strings.Join(valid, ", "))
	}
	return domain.NormalizeConfigKey(key), nil
}
