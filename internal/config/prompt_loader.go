package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// LoadedPrompts holds prompt text read from files
type LoadedPrompts struct {
	System string
	User   string
}

// loadPromptsFromFiles reads the advise prompt files. Operation-level files
// take precedence over global ones.
func (c *Config) loadPromptsFromFiles() error {
	system := firstNonEmpty(c.AI.Advise.CustomPrompts.SystemPromptFile, c.AI.CustomPrompts.SystemPromptFile)
	user := firstNonEmpty(c.AI.Advise.CustomPrompts.UserPromptFile, c.AI.CustomPrompts.UserPromptFile)

	var loaded LoadedPrompts
	var err error
	if system != "" {
		if loaded.System, err = loadPromptFromFile(system, "system"); err != nil {
			return err
		}
	}
	if user != "" {
		if loaded.User, err = loadPromptFromFile(user, "user"); err != nil {
			return err
		}
	}
	c.advisePrompts = loaded

	switch {
	case loaded.System == "" && loaded.User == "":
		log.Println("[CONFIG] No custom prompt files loaded - using built-in defaults")
	default:
		log.Printf("[CONFIG] Custom advise prompts loaded (system=%t, user=%t)", loaded.System != "", loaded.User != "")
	}
	return nil
}

// loadPromptFromFile reads a prompt file, rejecting missing or blank files
func loadPromptFromFile(filePath, promptType string) (string, error) {
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to resolve absolute path for %s prompt file '%s': %w", promptType, filePath, err)
	}

	content, err := os.ReadFile(absPath)
	if os.IsNotExist(err) {
		return "", fmt.Errorf("%s prompt file not found: %s", promptType, absPath)
	}
	if err != nil {
		return "", fmt.Errorf("failed to read %s prompt file '%s': %w", promptType, absPath, err)
	}

	trimmed := strings.TrimSpace(string(content))
	if trimmed == "" {
		return "", fmt.Errorf("%s prompt file '%s' is empty", promptType, absPath)
	}

	log.Printf("[CONFIG] Loaded %s prompt from file: %s (%d characters)", promptType, absPath, len(trimmed))
	return trimmed, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
