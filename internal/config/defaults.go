package config

const (
	defaultConfigPath     = "~/.config/manimrun/config.toml"
	defaultProjectConfig  = "manimrun.toml"
	defaultOutputDir      = "media/videos"
	defaultRendererBinary = "manim"
	defaultQualityFlag    = "-pql"
	defaultVideoExtension = ".mp4"
	defaultSettleSeconds  = 2
	defaultRenderTimeout  = 0
	defaultLogFormat      = "console"
	defaultLogLevel       = "info"
	rendererBinaryEnv     = "MANIMRUN_RENDERER"
	lockFileName          = ".manimrun.lock"
	logFileName           = "manimrun.log"
)

// Default returns a Config populated with repository defaults. The renderer
// binary stays empty so normalization can consult MANIMRUN_RENDERER first.
func Default() Config {
	return Config{
		Paths: Paths{
			OutputDir: defaultOutputDir,
		},
		Renderer: Renderer{
			Flags:          []string{defaultQualityFlag},
			VideoExtension: defaultVideoExtension,
			SettleSeconds:  defaultSettleSeconds,
			TimeoutSeconds: defaultRenderTimeout,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
