package contract

// ProfileConfig holds profiling configuration.
type ProfileConfig struct {
	Enabled bool
	Prefix  string
}

// ProcessProfilingConfig populates the profiling config from the flag value.
// An empty prefix disables profiling.
func ProcessProfilingConfig(profile *ProfileConfig, prefix string) error {
	profile.Enabled = prefix != ""
	profile.Prefix = prefix
	return nil
}
