package registry

// Core keys for GlobalRegistry.
const (
	// Extension registries (cmd, cron, routes, offload hooks) stored in GlobalRegistry
	KeyRegistryCmd          = "registry:cmd"
	KeyRegistryCron         = "registry:cron"
	KeyRegistryRoutes       = "registry:routes"
	KeyRegistryConfigFilter = "registry:offload:config_filter"
	KeyRegistryConfigScript = "registry:offload:config_script"
)
