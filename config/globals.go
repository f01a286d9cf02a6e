package config

// GlobalFlags contains common flags used across commands
type GlobalFlags struct {
	ConfigPath string
	Format     string

	// Repository selection
	Only    []string
	Exclude []string

	// Command-specific configurations
	Report ReportFlags
}

// ReportFlags holds report command specific configurations
type ReportFlags struct {
	Output  string
	Publish bool
}

// Global is the shared instance of GlobalFlags
var Global = GlobalFlags{}
