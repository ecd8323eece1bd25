package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/0xmhha/iceland/pkg/config"
	"github.com/0xmhha/iceland/pkg/fsutil"
)

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the configuration",
	}

	cmd.AddCommand(newConfigShowCmd(a), newConfigPathCmd(a))
	return cmd
}

func newConfigShowCmd(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := a.load()
			if err != nil {
				return err
			}

			switch format {
			case "json":
				return a.showJSON(rt.config)
			case "yaml", "":
				return a.showYAML(rt)
			default:
				return fmt.Errorf("unknown format %q (want yaml or json)", format)
			}
		},
	}

	cmd.Flags().StringVar(&format, "format", "yaml", "output format (yaml, json)")
	return cmd
}

// showYAML displays configuration in YAML format.
func (a *app) showYAML(rt *runtime) error {
	data, err := yaml.Marshal(rt.config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	source, err := configSource(rt.paths)
	if err != nil {
		return err
	}

	a.printf("# Effective configuration\n")
	a.printf("# Source: %s\n\n", source)
	a.printf("%s", data)
	return nil
}

// showJSON displays configuration in JSON format.
func (a *app) showJSON(cfg *config.Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	a.printf("%s\n", data)
	return nil
}

func newConfigPathCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Show where iceland keeps its state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := a.parseEnv()
			if err != nil {
				return err
			}
			paths := a.resolvePaths(env)

			a.printf("Base directory: %s\n\n", paths.Base)
			files := []string{
				paths.Config(),
				paths.CurrentArea(),
				paths.SessionStart(),
				paths.Sessions(),
				paths.StateDB(),
			}
			for _, p := range files {
				ok, err := fsutil.Exists(p)
				if err != nil {
					return err
				}
				state := "not found"
				if ok {
					state = "found"
				}
				a.printf("  %s [%s]\n", p, state)
			}
			return nil
		},
	}
}

// configSource describes where the configuration was loaded from.
func configSource(paths config.Paths) (string, error) {
	ok, err := fsutil.Exists(paths.Config())
	if err != nil {
		return "", err
	}
	if !ok {
		return "built-in defaults (run init to create " + paths.Config() + ")", nil
	}
	return paths.Config(), nil
}
