package logging

// Component constants for structured logging
const (
	ComponentStartup    = "startup"
	ComponentShutdown   = "shutdown"
	ComponentDatabase   = "database"
	ComponentPresets    = "presets"
	ComponentAPIDither  = "api-dither"
	ComponentAPIStats   = "api-stats"
	ComponentRateLimit  = "rate-limit"
	ComponentHTTP       = "http"
	ComponentMaintainer = "maintainer"
)
