package config

import "time"

// Defaults applied when the matching variable is unset
const (
	DefaultPort        = "8080"
	DefaultLogLevel    = "info"
	DefaultLogFormat   = "text"
	DefaultLogDir      = "logs"
	DefaultEnvironment = "dev"
	DefaultServiceName = "aicore-challenges"
	DefaultVersion     = "dev"
	DefaultDBName      = "aicore"

	DefaultDBMaxConns        = 20
	DefaultDBMaxConnIdleTime = 5 * time.Minute
	DefaultDBMaxConnLifetime = 30 * time.Minute

	DefaultCatalogCacheSize = 16
	DefaultCatalogCacheTTL  = 30 * time.Second

	DefaultRequestTimeout = 15 * time.Second

	DefaultReconcileInterval  = 5 * time.Minute
	DefaultReconcileBatchSize = 100

	DefaultEventRetentionDays = 90
)
