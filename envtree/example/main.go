package main

import (
	"fmt"
	"log"
	"os"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/presbrey/envtree/dotenv"
	"github.com/presbrey/envtree/envtree"
)

func main() {
	// Collect into a copy of the environment so the example can show every
	// merge decision without touching the real one
	store := dotenv.NewMapStore(os.Environ())
	registry := prometheus.NewRegistry()

	loader := envtree.New(&envtree.Config{
		Mode:       envtree.ModeFromEnv(store),
		Debug:      true,
		Store:      store,
		Registerer: registry,
	})

	paths, err := loader.GetEnvFilePaths()
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Env files on the way to the root: %v\n", paths)

	res, err := loader.LoadEnv()
	if err != nil {
		log.Fatal(err)
	}
	if res == nil {
		fmt.Println("Nothing to load")
		return
	}

	for _, key := range res.Parsed.Keys() {
		value, _ := store.LookupEnv(key)
		fmt.Printf("%s=%s\n", key, value)
	}

	families, err := registry.Gather()
	if err != nil {
		log.Fatal(err)
	}
	for _, mf := range families {
		fmt.Printf("%s: %d series\n", mf.GetName(), len(mf.GetMetric()))
	}
}
