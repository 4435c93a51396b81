package config

// GetDefault returns the default configuration.
func GetDefault() *Config {
	return &Config{
		Scan: ScanDefaults{
			Recursive: false,
			MaxDepth:  1,
			Workers:   0, // auto-size from CPU count
		},
		// Built-in system prefixes are always applied; these add to them.
		ProtectedPaths: []string{},
		ExcludeExts: []string{
			// Editor and filesystem noise that never helps a cleanup review.
			"swp",
			"lock",
		},
		Output: OutputConfig{
			Format:  "summary",
			NoColor: false,
		},
		Verbose: false,
	}
}
