/*
Package envtree provides utilities for loading environment variables from .env files.

It searches the current directory and then each parent directory for the
nearest .env file, making it convenient for monorepos and nested project
structures where a command may run several levels below the project root.

# Quick Start

The simplest way to use envtree is with AutoLoad in your init function:

	package main

	import "github.com/presbrey/envtree/envtree"

	func init() {
		envtree.AutoLoad()
	}

	func main() {
		// Your environment variables are now loaded
	}

# Loading Strategies

envtree provides several ways to load environment files:

AutoLoad - For use in init(), loads with default settings and logs errors:

	envtree.AutoLoad()

LoadDefault - Returns error for explicit handling:

	if err := envtree.LoadDefault(); err != nil {
		log.Fatal(err)
	}

MustLoadDefault - Panics on error:

	envtree.MustLoadDefault()

Custom Configuration - Fine-grained control:

	config := &envtree.Config{
		EnvFileNames: []string{".env.local", ".env"},
		StopAt:       "/srv/app",
		Override:     true,
		Silent:       true,
	}
	loader := envtree.New(config)
	loader.Load()

# How It Works

The loader walks up the directory tree from the start directory, trying each
name in EnvFileNames at every level. The first directory with a match wins and
only that file is loaded; files further up the tree are not merged in.

For example, given this directory structure:

	/
	├── .env                    # Ignored
	└── projects/
	    ├── .env                # Loaded
	    └── myapp/
	        └── cmd/
	            └── main.go     # Your app runs here

The walk stops at StopAt (default: the filesystem root) even if nothing was
found. Finding nothing is not an error; it is only logged when Debug is set. GetEnvFilePaths lists every candidate file on the way up, nearest
first, without loading anything.

Variables that are already set are kept unless Override is true. With Debug
set, each such variable is logged along with whether it was replaced.

# Modes

Setting Mode instead of EnvFileNames tries mode-specific files first:

	loader := envtree.New(&envtree.Config{Mode: envtree.ModeFromEnv(nil)})

For mode "development" each level is checked for .env.development.local,
.env.local, .env.development and .env, in that order. Test mode skips
.env.local. ModeFromEnv reads APP_ENV and treats anything other than
"development" or "test" as production.

# Stores and Metrics

Variables go into a dotenv.Store. The default is the process environment;
dotenv.MapStore keeps them in memory for tests or dry runs. Setting
Config.Registerer records envtree_files_loaded_total, envtree_load_errors_total
and envtree_keys_total{action} with Prometheus.

# Thread Safety

Searching and parsing share no state between calls. Merging into the process
environment is not synchronized; callers loading concurrently into the same
Store must serialize access themselves.
*/
package envtree
