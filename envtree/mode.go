package envtree

import "github.com/presbrey/envtree/dotenv"

// ModeVar is the environment variable ModeFromEnv reads
const ModeVar = "APP_ENV"

// Modes recognised by ModeFromEnv
const (
	ModeDevelopment = "development"
	ModeProduction  = "production"
	ModeTest        = "test"
)

// ModeFromEnv reads ModeVar from store. "development" and "test" are kept;
// anything else, including an unset variable, is production.
func ModeFromEnv(store dotenv.Store) string {
	if store == nil {
		store = dotenv.OSStore{}
	}
	switch mode, _ := store.LookupEnv(ModeVar); mode {
	case ModeDevelopment, ModeTest:
		return mode
	}
	return ModeProduction
}

// FileNamesForMode returns the env file names tried for mode, most specific
// first: .env.<mode>.local, .env.local, .env.<mode>, .env.
// Test mode skips .env.local. An empty mode gives just .env.
func FileNamesForMode(mode string) []string {
	if mode == "" {
		return []string{dotenv.DefaultFileName}
	}
	names := []string{".env." + mode + ".local"}
	if mode != ModeTest {
		names = append(names, ".env.local")
	}
	return append(names, ".env."+mode, dotenv.DefaultFileName)
}
