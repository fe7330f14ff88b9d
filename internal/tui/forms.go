package tui

import (
	"github.com/charmbracelet/huh"
)

var (
	logLevels  = []string{"debug", "info", "warn", "error"}
	logFormats = []string{"pretty", "json"}
)

func CreateManifestForm(values *ConfigValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("output").
				Title("Manifest File").
				Description("Relative to the box root unless absolute (.json or .yaml)").
				Value(&values.ManifestOutput).
				Placeholder("metadata.json").
				Validate(ValidateManifestPath),
		),
	)
}

func CreateDigestForm(values *ConfigValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("workers").
				Title("Workers").
				Description("Number of boxes hashed concurrently (1-64)").
				Value(&values.Workers).
				Placeholder("4").
				Validate(ValidateIntRange(1, 64)),
		),
	)
}

func CreateCacheForm(values *ConfigValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Key("enabled").
				Title("Enable Cache").
				Description("Skip rehashing boxes whose size and mtime did not change").
				Value(&values.CacheEnabled),

			huh.NewInput().
				Key("ttl").
				Title("Cache TTL").
				Description("How long a checksum is kept (0s keeps it forever)").
				Value(&values.CacheTTL).
				Placeholder("720h").
				Validate(ValidateDuration),

			huh.NewInput().
				Key("directory").
				Title("Cache Directory").
				Value(&values.CacheDirectory).
				Placeholder("~/.vagrant-metadata/cache"),
		),
	)
}

func CreateLoggingForm(values *ConfigValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("level").
				Title("Log Level").
				Options(huh.NewOptions(logLevels...)...).
				Value(&values.LogLevel),

			huh.NewSelect[string]().
				Key("format").
				Title("Log Format").
				Options(huh.NewOptions(logFormats...)...).
				Value(&values.LogFormat),
		),
	)
}

// GetFormForCategory returns the form editing the given category, or nil
// for an unknown ID
func GetFormForCategory(id string, values *ConfigValues, accessible bool) *huh.Form {
	var form *huh.Form
	switch id {
	case "manifest":
		form = CreateManifestForm(values)
	case "digest":
		form = CreateDigestForm(values)
	case "cache":
		form = CreateCacheForm(values)
	case "logging":
		form = CreateLoggingForm(values)
	default:
		return nil
	}
	return form.WithTheme(GetTheme(accessible)).WithAccessible(accessible)
}
