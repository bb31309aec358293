package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/presbrey/envtree/dotenv"
	"github.com/presbrey/envtree/envtree"
	"github.com/presbrey/envtree/findup"
	"github.com/presbrey/envtree/locate"
)

// errNoMatch makes the process exit non-zero without printing an error
var errNoMatch = errors.New("no match")

var validate = validator.New()

type findOptions struct {
	Names    []string `validate:"required,dive,required"`
	Dir      string
	StopAt   string
	Limit    int    `validate:"gte=0"`
	Type     string `validate:"oneof=file directory"`
	NoFollow bool
}

type parseOptions struct {
	Path     string
	Encoding string
	Format   string `validate:"oneof=dotenv json yaml toml"`
}

type loadOptions struct {
	Names    []string `validate:"required_without=Mode,dive,required"`
	Mode     string   `validate:"omitempty,alphanum"`
	Dir      string
	StopAt   string
	Encoding string
	Override bool
	Debug    bool
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "envtree",
		Short:         "Find and parse .env files",
		Long:          `A command-line utility for locating .env files in parent directories and inspecting their contents.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	rootCmd.AddCommand(newFindCmd(), newParseCmd(), newLoadCmd())
	return rootCmd
}

func newFindCmd() *cobra.Command {
	opts := findOptions{}

	cmd := &cobra.Command{
		Use:   "find NAME...",
		Short: "Find files or directories in the current or parent directories",
		Long:  `Walk from --dir up to --stop-at and print the absolute path of each match, nearest first. At each level the first NAME that exists wins.`,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Names = args
			if err := validate.Struct(opts); err != nil {
				return fmt.Errorf("invalid options: %w", err)
			}

			matches, err := findup.Multiple(opts.Names, &findup.Options{
				Dir:              opts.Dir,
				StopAt:           opts.StopAt,
				Limit:            opts.Limit,
				Type:             locate.Type(opts.Type),
				NoFollowSymlinks: opts.NoFollow,
			})
			if err != nil {
				return err
			}
			if len(matches) == 0 {
				return errNoMatch
			}

			for _, match := range matches {
				fmt.Fprintln(cmd.OutOrStdout(), match)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Dir, "dir", "", "directory to start from (default: working directory)")
	cmd.Flags().StringVar(&opts.StopAt, "stop-at", "", "last directory to search (default: filesystem root)")
	cmd.Flags().IntVar(&opts.Limit, "limit", 0, "maximum number of matches, 0 for all")
	cmd.Flags().StringVar(&opts.Type, "type", string(locate.File), "object type to match: file or directory")
	cmd.Flags().BoolVar(&opts.NoFollow, "no-follow", false, "do not follow symbolic links")

	return cmd
}

func newParseCmd() *cobra.Command {
	opts := parseOptions{}

	cmd := &cobra.Command{
		Use:   "parse [file]",
		Short: "Parse an env file and print its variables",
		Long:  `Parse an env file (default: .env in the working directory) and print the variables in the chosen format.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				opts.Path = args[0]
			}
			if err := validate.Struct(opts); err != nil {
				return fmt.Errorf("invalid options: %w", err)
			}

			path, err := dotenv.ResolvePath(opts.Path)
			if err != nil {
				return err
			}
			text, err := dotenv.ReadFile(path, opts.Encoding)
			if err != nil {
				return err
			}

			return writeEnv(cmd.OutOrStdout(), dotenv.Parse(text), opts.Format)
		},
	}

	cmd.Flags().StringVar(&opts.Encoding, "encoding", "", "charset of the file (default: UTF-8)")
	cmd.Flags().StringVarP(&opts.Format, "format", "f", "dotenv", "output format: dotenv, json, yaml or toml")

	return cmd
}

func newLoadCmd() *cobra.Command {
	opts := loadOptions{}

	cmd := &cobra.Command{
		Use:   "load",
		Short: "Show what loading the nearest env file would change",
		Long:  `Find the nearest env file and merge it into a copy of the current environment, printing the action taken for every variable. The real environment is not modified.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.Mode != "" && !cmd.Flags().Changed("name") {
				opts.Names = nil
			}
			if err := validate.Struct(opts); err != nil {
				return fmt.Errorf("invalid options: %w", err)
			}

			out := cmd.OutOrStdout()
			loader := envtree.New(&envtree.Config{
				EnvFileNames: opts.Names,
				Mode:         opts.Mode,
				Dir:          opts.Dir,
				StopAt:       opts.StopAt,
				Encoding:     opts.Encoding,
				Override:     opts.Override,
				Debug:        opts.Debug,
				Logger:       log.New(cmd.ErrOrStderr(), "", 0),
				Store:        dotenv.NewMapStore(os.Environ()),
			})

			res, err := loader.LoadEnv()
			if err != nil {
				return err
			}
			if res == nil {
				return errNoMatch
			}

			fmt.Fprintf(out, "# %s\n", res.Path)
			for _, change := range res.Changes {
				fmt.Fprintf(out, "%-10s %s\n", change.Action, change.Key)
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVarP(&opts.Names, "name", "n", []string{dotenv.DefaultFileName}, "env file names to try at each level, in order")
	cmd.Flags().StringVarP(&opts.Mode, "mode", "m", "", "try .env.<mode>.local, .env.local, .env.<mode> and .env instead of --name")
	cmd.Flags().StringVar(&opts.Dir, "dir", "", "directory to start from (default: working directory)")
	cmd.Flags().StringVar(&opts.StopAt, "stop-at", "", "last directory to search (default: filesystem root)")
	cmd.Flags().StringVar(&opts.Encoding, "encoding", "", "charset of the file (default: UTF-8)")
	cmd.Flags().BoolVar(&opts.Override, "override", false, "replace variables that are already set")
	cmd.Flags().BoolVar(&opts.Debug, "debug", false, "log variables that are already set")

	return cmd
}

// writeEnv prints env in the given format
func writeEnv(w io.Writer, env *dotenv.Env, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(env)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(env); err != nil {
			return err
		}
		return enc.Close()
	case "toml":
		return toml.NewEncoder(w).Encode(env.Map())
	}

	out, err := dotenv.Marshal(env)
	if err != nil {
		return err
	}
	if out != "" {
		_, err = fmt.Fprintln(w, out)
	}
	return err
}
