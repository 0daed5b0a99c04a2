package config

const (
	defaultLogDir      = "~/.local/share/ymlog/logs"
	defaultIndentWidth = 2
	defaultLevel       = "info"
	defaultTimestamps  = true
	defaultLock        = true
	defaultDurable     = true
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		LogDir: defaultLogDir,
		Stream: Stream{
			IndentWidth: defaultIndentWidth,
			Timestamps:  defaultTimestamps,
			Level:       defaultLevel,
		},
		Sink: Sink{
			Lock:    defaultLock,
			Durable: defaultDurable,
		},
		Session: Session{
			Enabled: false,
		},
	}
}
