package main

import (
	"nccompress/internal/config"
)

// commandContext carries the shared --config flag and caches the loaded
// configuration across subcommands.
type commandContext struct {
	configFlag *string
	cfg        *config.Config
	cfgPath    string
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	if c.cfg != nil {
		return c.cfg, nil
	}
	path := ""
	if c.configFlag != nil {
		path = *c.configFlag
	}
	cfg, resolved, _, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	c.cfg = cfg
	c.cfgPath = resolved
	return cfg, nil
}
