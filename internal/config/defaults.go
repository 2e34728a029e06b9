package config

const (
	defaultOutputDir         = "~/ytscribe"
	defaultLogDir            = "~/.local/share/ytscribe/logs"
	defaultWorkDir           = "~/.local/share/ytscribe/work"
	defaultExtractorBinary   = "yt-dlp"
	defaultRequestsPerMinute = 30
	defaultInfoTimeout       = 60
	defaultCaptionsTimeout   = 180
	defaultPlaylistLimit     = 0
	defaultTranscriptFormat  = "text"
	defaultOverlapThreshold  = 5
	defaultBatchWorkers      = 2
	defaultLogFormat         = "console"
	defaultLogLevel          = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			OutputDir: defaultOutputDir,
			LogDir:    defaultLogDir,
			WorkDir:   defaultWorkDir,
		},
		Extractor: Extractor{
			Binary:            defaultExtractorBinary,
			Languages:         []string{"en"},
			RequestsPerMinute: defaultRequestsPerMinute,
			InfoTimeout:       defaultInfoTimeout,
			CaptionsTimeout:   defaultCaptionsTimeout,
			PlaylistLimit:     defaultPlaylistLimit,
		},
		Transcript: Transcript{
			Format:           defaultTranscriptFormat,
			Timestamps:       true,
			Deduplicate:      true,
			OverlapThreshold: defaultOverlapThreshold,
		},
		Batch: Batch{
			Workers: defaultBatchWorkers,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
