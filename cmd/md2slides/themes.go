package main

import (
	"fmt"
)

// runThemes lists the themes a conversion can use, marking the default.
func runThemes(args []string, env *Environment) error {
	flags, err := parseThemesFlags(args, env)
	if err != nil {
		return err
	}

	warnUnknownEnvVars(env.Stderr)
	cfg, err := loadConfig(flags.common.config, loadEnvConfig())
	if err != nil {
		return err
	}
	if flags.assets != "" {
		cfg.Assets.BasePath = flags.assets
	}

	_, registry, err := loadDeckAssets(cfg.Assets.BasePath)
	if err != nil {
		return err
	}

	for _, id := range registry.IDs() {
		th, _ := registry.Lookup(id)
		marker := " "
		if id == registry.DefaultID() {
			marker = "*"
		}
		if flags.common.quiet {
			fmt.Fprintln(env.Stdout, id)
			continue
		}
		fmt.Fprintf(env.Stdout, "%s %-16s %s\n", marker, id, th.Name)
	}
	return nil
}
