package main

import (
	"context"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"

	"github.com/pbanos/arbor/forest"
)

type rootCmdConfig struct {
	v          *viper.Viper
	log        *logrus.Logger
	ctx        context.Context
	cancelFunc context.CancelFunc
	memStore   forest.Store
}

func main() {
	if err := cliParser().Execute(); err != nil {
		os.Exit(1)
	}
}

func cliParser() *cobra.Command {
	return newRootCmd(&rootCmdConfig{v: viper.New(), log: logrus.New()})
}

func newRootCmd(config *rootCmdConfig) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "arbor",
		Short: "arbor compiles decision forests into match table entries",
		Long: `A tool to compile fitted decision forests into the range, ternary and exact
match table entries of a line-rate classification pipeline, and to check
the compiled tables against the forests they come from`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return config.init(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			config.endContext()
		},
	}
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "log debug information")
	rootCmd.PersistentFlags().String("config", "", "path to a YAML file with configuration")
	rootCmd.PersistentFlags().String("redis-addr", "localhost:6379", "address of the redis server keeping named forests (empty to keep them in memory)")
	rootCmd.PersistentFlags().Int("redis-db", 0, "redis database number")
	rootCmd.PersistentFlags().String("redis-prefix", "arbor:forest", "prefix of the redis keys holding forests")
	rootCmd.AddCommand(versionCmd(), compileCmd(config), inspectCmd(config), verifyCmd(config), storeCmd(config))
	return rootCmd
}

// init binds flags, environment variables (prefixed with ARBOR_) and the
// config file, if any, and sets up logging.
func (rc *rootCmdConfig) init(cmd *cobra.Command) error {
	rc.v.SetEnvPrefix("arbor")
	rc.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	rc.v.AutomaticEnv()
	if err := rc.v.BindPFlags(cmd.Flags()); err != nil {
		return err
	}
	for key, name := range map[string]string{"redis.addr": "redis-addr", "redis.db": "redis-db", "redis.prefix": "redis-prefix"} {
		if flag := cmd.Flags().Lookup(name); flag != nil {
			if err := rc.v.BindPFlag(key, flag); err != nil {
				return err
			}
		}
	}
	if path := rc.v.GetString("config"); path != "" {
		rc.v.SetConfigFile(path)
		if err := rc.v.ReadInConfig(); err != nil {
			return err
		}
	}
	rc.log.SetOutput(os.Stderr)
	rc.log.SetFormatter(&prefixed.TextFormatter{})
	if rc.v.GetBool("verbose") {
		rc.log.SetLevel(logrus.DebugLevel)
	}
	return nil
}

// fail cancels the command context, logs the error and exits with the
// given code.
func (rc *rootCmdConfig) fail(code int, err error) {
	rc.endContext()
	rc.log.Error(err)
	os.Exit(code)
}

func (rc *rootCmdConfig) Context() context.Context {
	rc.setContextAndCancelFunc()
	return rc.ctx
}

func (rc *rootCmdConfig) ContextCancelFunc() context.CancelFunc {
	rc.setContextAndCancelFunc()
	return rc.cancelFunc
}

// endContext cancels the command context, if any. The next call to
// Context starts a new one.
func (rc *rootCmdConfig) endContext() {
	if rc.ctx == nil {
		return
	}
	rc.ContextCancelFunc()()
	rc.ctx, rc.cancelFunc = nil, nil
}

func (rc *rootCmdConfig) setContextAndCancelFunc() {
	if rc.ctx == nil {
		rc.ctx, rc.cancelFunc = context.WithCancel(context.Background())
	}
}
