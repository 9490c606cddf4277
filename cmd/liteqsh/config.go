package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const envPrefix = "LITEQSH_"

type shellConfig struct {
	// History is the liner history file path.
	History string
	// Trace logs each substituted statement before execution.
	Trace bool
}

// loadConfig fills shellConfig from LITEQSH_* environment variables
// over defaults. Viper's AutomaticEnv doesn't surface keys that no
// config file declares, so the environment is walked explicitly.
func loadConfig() (shellConfig, error) {
	v := viper.New()
	v.SetDefault("history", filepath.Join(os.TempDir(), ".liteqsh_history"))
	v.SetDefault("trace", false)

	for _, envStr := range os.Environ() {
		pair := strings.SplitN(envStr, "=", 2)
		key, value := pair[0], pair[1]
		if !strings.HasPrefix(key, envPrefix) {
			continue
		}
		// LITEQSH_HISTORY -> history
		propKey := strings.ToLower(strings.TrimPrefix(key, envPrefix))
		propKey = strings.ReplaceAll(propKey, "_", ".")
		v.Set(propKey, value)
	}

	return shellConfig{
		History: v.GetString("history"),
		Trace:   v.GetBool("trace"),
	}, nil
}
