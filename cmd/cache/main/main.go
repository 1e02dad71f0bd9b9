package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"

	"golang.org/x/net/context"

	"github.com/fuad-daoud/discord-cache/cache"
	"github.com/fuad-daoud/discord-cache/logger/dlog"
	"github.com/fuad-daoud/discord-cache/platform"
	"github.com/fuad-daoud/discord-cache/store/graph"
	"github.com/fuad-daoud/discord-cache/store/memory"
	"github.com/fuad-daoud/discord-cache/store/spaces"
)

var (
	Store string
)

func init() {
	flag.StringVar(&Store, "store", "memory", "Backend to project onto: memory, graph or spaces")
	flag.Parse()
}

func main() {
	if err := dlog.Setup(); err != nil {
		panic(err)
	}

	backend, err := newBackend(Store)
	if err != nil {
		dlog.Error("Failed to build backend", "store", Store, "error", err)
		panic(err)
	}
	if closer, ok := backend.(interface{ Close(ctx context.Context) error }); ok {
		defer closer.Close(context.TODO())
	}

	client, err := platform.Setup(cache.New(backend))
	if err != nil {
		dlog.Error("Failed to open gateway", "error", err)
		panic(err)
	}
	defer platform.Close(client)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)
	<-stop
	dlog.Info("Graceful shutdown")
}

func newBackend(store string) (cache.Backend, error) {
	switch store {
	case "memory":
		return memory.New(), nil
	case "graph":
		cfg, err := graph.ConfigFromEnv()
		if err != nil {
			return nil, err
		}
		return graph.New(cfg)
	case "spaces":
		cfg, err := spaces.ConfigFromEnv()
		if err != nil {
			return nil, err
		}
		return spaces.New(cfg)
	default:
		return nil, fmt.Errorf("unknown store %q", store)
	}
}
