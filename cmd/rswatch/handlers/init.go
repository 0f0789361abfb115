package handlers

import (
	"context"
	"fmt"

	"github.com/imamik/rswatch/internal/config"
	"github.com/imamik/rswatch/internal/config/wizard"
)

// Factory function variables for init - can be replaced in tests.
var (
	// fileExists checks if a file exists.
	fileExists = wizard.FileExists

	// confirmOverwrite asks before replacing an existing file.
	confirmOverwrite = wizard.ConfirmOverwrite

	// runWizard runs the interactive wizard.
	runWizard = wizard.RunWizard

	// writeConfig writes the config to a file.
	writeConfig = wizard.WriteConfig
)

// Init runs the configuration wizard and writes the result to a file.
func Init(ctx context.Context, outputPath string, fullOutput bool) error {
	if fileExists(outputPath) {
		ok, err := confirmOverwrite(outputPath)
		if err != nil {
			return fmt.Errorf("failed to confirm overwrite: %w", err)
		}
		if !ok {
			fmt.Println("Aborted.")
			return nil
		}
	}

	printWelcome()

	result, err := runWizard(ctx)
	if err != nil {
		return fmt.Errorf("wizard canceled: %w", err)
	}

	cfg := wizard.BuildConfig(result)

	if err := writeConfig(cfg, outputPath, fullOutput); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	printInitSuccess(outputPath, cfg)

	return nil
}

// printWelcome prints the welcome message.
func printWelcome() {
	fmt.Println()
	fmt.Println("rswatch - Redshift Serverless deployment watcher")
	fmt.Println("================================================")
	fmt.Println()
	fmt.Println("This wizard writes the settings rswatch needs to follow a deployment.")
	fmt.Println()
}

// printInitSuccess prints the success message after config creation.
func printInitSuccess(outputPath string, cfg *config.Config) {
	fmt.Println()
	fmt.Printf("Configuration saved to: %s\n", outputPath)
	fmt.Println()
	fmt.Println("Deployment:")
	fmt.Printf("  Project:   %s\n", cfg.Project)
	fmt.Printf("  Region:    %s\n", cfg.Region)
	if cfg.ConsumerCount > 0 {
		fmt.Printf("  Consumers: %d\n", cfg.ConsumerCount)
	} else {
		fmt.Println("  Consumers: detect at startup")
	}
	if cfg.ReplicasPerConsumer > 0 {
		fmt.Printf("  Targets:   %d per consumer\n", cfg.ReplicasPerConsumer)
	}
	fmt.Println()
	fmt.Println("Next steps:")
	fmt.Printf("  rswatch watch -c %s\n", outputPath)
	fmt.Println()
}
