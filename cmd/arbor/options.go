package main

import (
	"context"
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
	redis "gopkg.in/redis.v5"

	"github.com/pbanos/arbor"
	"github.com/pbanos/arbor/emit"
	"github.com/pbanos/arbor/featurerange"
	"github.com/pbanos/arbor/forest"
	"github.com/pbanos/arbor/forest/json"
	"github.com/pbanos/arbor/forest/redisstore"
	"github.com/pbanos/arbor/voting"
)

// addCompileFlags adds the flags controlling compilation to a command.
func addCompileFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("forest", "f", "", "path to a JSON or YAML (.yml, .yaml) file with the forest")
	cmd.Flags().StringP("name", "n", "", "name of a forest kept in the redis store, instead of --forest")
	cmd.Flags().Uint64("max-value", featurerange.DefaultMaxValue, "largest value a feature match field can hold")
	cmd.Flags().String("tie-break", "lowest", "policy resolving voting ties: lowest, first or seeded")
	cmd.Flags().Int64("seed", 0, "seed of the seeded tie-break policy")
	cmd.Flags().Int("workers", runtime.NumCPU(), "number of trees compiled concurrently")
	cmd.Flags().Int("max-voting-entries", voting.DefaultMaxEntries, "largest voting table allowed")
}

func (rc *rootCmdConfig) compileOptions() (arbor.Options, error) {
	policy, err := voting.ParsePolicy(rc.v.GetString("tie-break"), rc.v.GetInt64("seed"))
	if err != nil {
		return arbor.Options{}, err
	}
	maxValue := rc.v.GetUint64("max-value")
	if maxValue == 0 {
		return arbor.Options{}, fmt.Errorf("max-value must be positive")
	}
	return arbor.Options{
		MaxValue:         maxValue,
		Policy:           policy,
		Workers:          rc.v.GetInt("workers"),
		MaxVotingEntries: rc.v.GetInt("max-voting-entries"),
		Logger:           rc.log,
	}, nil
}

func (rc *rootCmdConfig) emitConfig() (emit.Config, error) {
	c := emit.DefaultConfig(rc.v.GetString("program"))
	if control := rc.v.GetString("control"); control != "" {
		c.Control = control
	}
	if rc.v.IsSet("ports") {
		var ports []emit.Port
		if err := rc.v.UnmarshalKey("ports", &ports); err != nil {
			return emit.Config{}, fmt.Errorf("parsing ports: %v", err)
		}
		c.Ports = ports
	}
	if rc.v.GetBool("no-ports") {
		c.Ports = nil
	}
	return c, c.Validate()
}

/*
forestSource checks exactly one of the forest and name flags of a command
was set.
*/
func (rc *rootCmdConfig) forestSource() error {
	path, name := rc.v.GetString("forest"), rc.v.GetString("name")
	if (path == "") == (name == "") {
		return fmt.Errorf("exactly one of the forest and name flags must be set")
	}
	return nil
}

/*
loadForest reads the forest from the file given with --forest or the
store entry given with --name.
*/
func (rc *rootCmdConfig) loadForest(ctx context.Context) (*forest.Forest, error) {
	if path := rc.v.GetString("forest"); path != "" {
		rc.log.WithField("path", path).Debug("reading forest")
		return arbor.ReadForestFile(path)
	}
	return rc.fetchForest(ctx, rc.v.GetString("name"))
}

// fetchForest retrieves a forest from the store by name.
func (rc *rootCmdConfig) fetchForest(ctx context.Context, name string) (*forest.Forest, error) {
	store := rc.openStore()
	defer store.Close(ctx)
	rc.log.WithField("name", name).Debug("retrieving forest")
	f, err := store.Get(ctx, name)
	if err != nil {
		return nil, &arbor.ResourceError{Op: "retrieving forest", Path: name, Err: err}
	}
	if f == nil {
		return nil, &arbor.ResourceError{Op: "retrieving forest", Path: name, Err: fmt.Errorf("not found")}
	}
	return f, nil
}

/*
openStore returns the redis store at redis.addr or, when no address is
configured, a store kept in memory and shared by every command run with
this configuration.
*/
func (rc *rootCmdConfig) openStore() forest.Store {
	addr := rc.v.GetString("redis.addr")
	if addr == "" {
		if rc.memStore == nil {
			rc.log.Debug("no redis address set, keeping forests in memory")
			rc.memStore = forest.NewMemoryStore()
		}
		return rc.memStore
	}
	client := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   rc.v.GetInt("redis.db"),
	})
	prefix := rc.v.GetString("redis.prefix")
	if prefix == "" {
		prefix = "arbor:forest"
	}
	return redisstore.New(client, prefix, json.NewEncodeDecoder())
}
