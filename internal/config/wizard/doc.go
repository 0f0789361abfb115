// Package wizard provides an interactive configuration wizard for rswatch.
//
// RunWizard asks for the deployment identity, topology and access settings
// using charmbracelet/huh forms. BuildConfig converts the answers to a
// config.Config and WriteConfig writes it as rswatch.yaml.
package wizard
