package config

// applyOperationDefaults applies global defaults to operation-specific configuration
func (c *Config) applyOperationDefaults(opCfg *OperationAIConfig) {
	if opCfg.Provider == "" {
		opCfg.Provider = c.AI.Provider
	}
	if opCfg.Model == "" {
		opCfg.Model = c.AI.Model
	}
	if opCfg.Timeout == nil {
		opCfg.Timeout = &c.AI.Timeout
	}
	if opCfg.APIKey == "" {
		opCfg.APIKey = c.AI.APIKey
	}
	if opCfg.MaxRetries == nil {
		opCfg.MaxRetries = &c.AI.MaxRetries
	}
	if opCfg.Temperature == nil {
		opCfg.Temperature = &c.AI.Temperature
	}
	if opCfg.UseSystemPrompts == nil {
		opCfg.UseSystemPrompts = &c.AI.UseSystemPrompts
	}

	// Prompts: operation level wins, file contents win over inline text
	p := &opCfg.CustomPrompts
	if p.SystemPrompt == "" {
		p.SystemPrompt = c.AI.CustomPrompts.SystemPrompt
	}
	if p.UserPrompt == "" {
		p.UserPrompt = c.AI.CustomPrompts.UserPrompt
	}
	if c.advisePrompts.System != "" {
		p.SystemPrompt = c.advisePrompts.System
	}
	if c.advisePrompts.User != "" {
		p.UserPrompt = c.advisePrompts.User
	}
}

// GetAdviseConfig returns the AI configuration for advise operations with fallback to global config
func (c *Config) GetAdviseConfig() OperationAIConfig {
	config := c.AI.Advise
	c.applyOperationDefaults(&config)
	return config
}
