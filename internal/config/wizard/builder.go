package wizard

import "github.com/imamik/rswatch/internal/config"

// BuildConfig creates a Config struct from the wizard result.
func BuildConfig(result *WizardResult) *config.Config {
	cfg := &config.Config{
		Project:             result.Project,
		Region:              result.Region,
		ConsumerCount:       result.ConsumerCount,
		ReplicasPerConsumer: result.ReplicasPerConsumer,
		AWSProfile:          result.AWSProfile,
		Metrics:             result.EnableMetrics,
		Archive:             config.ArchiveConfig{Bucket: result.ArchiveBucket},
	}
	cfg.ApplyDefaults()
	return cfg
}
