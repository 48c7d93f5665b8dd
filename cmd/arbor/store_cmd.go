package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pbanos/arbor"
	"github.com/pbanos/arbor/forest/json"
)

func storeCmd(rootConfig *rootCmdConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "store",
		Short: "Manage named forests kept in redis",
		Long: `Save, retrieve and delete forests kept in redis under a name, so they can be
compiled with --name. With an empty --redis-addr forests are kept in memory
for the life of the process only`,
	}
	cmd.PersistentFlags().StringP("name", "n", "", "name of the forest in the store (required)")
	cmd.AddCommand(storePutCmd(rootConfig), storeGetCmd(rootConfig), storeRmCmd(rootConfig))
	return cmd
}

func (rc *rootCmdConfig) storeName() (string, error) {
	name := rc.v.GetString("name")
	if name == "" {
		return "", fmt.Errorf("required name flag was not set")
	}
	return name, nil
}

func storePutCmd(rootConfig *rootCmdConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "put",
		Short: "Save a forest under a name",
		Long:  `Read a forest from a file, validate it and save it in the store under a name`,
		Run: func(cmd *cobra.Command, args []string) {
			config := rootConfig
			name, err := config.storeName()
			if err != nil {
				config.fail(1, err)
			}
			path := config.v.GetString("forest")
			if path == "" {
				config.fail(1, fmt.Errorf("required forest flag was not set"))
			}
			f, err := arbor.ReadForestFile(path)
			if err != nil {
				config.fail(2, err)
			}
			if err = f.Validate(); err != nil {
				config.fail(3, err)
			}
			store := config.openStore()
			defer store.Close(config.Context())
			if err = store.Put(config.Context(), name, f); err != nil {
				config.fail(4, err)
			}
			config.log.WithField("name", name).Info("forest stored")
		},
	}
	cmd.Flags().StringP("forest", "f", "", "path to a JSON or YAML (.yml, .yaml) file with the forest (required)")
	return cmd
}

func storeGetCmd(rootConfig *rootCmdConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get",
		Short: "Retrieve a forest by name",
		Long:  `Retrieve a forest from the store and print it as JSON (defaults to STDOUT)`,
		Run: func(cmd *cobra.Command, args []string) {
			config := rootConfig
			name, err := config.storeName()
			if err != nil {
				config.fail(1, err)
			}
			f, err := config.fetchForest(config.Context(), name)
			if err != nil {
				config.fail(2, err)
			}
			if output := config.v.GetString("output"); output != "" {
				err = arbor.WriteForestFile(output, f)
			} else {
				err = json.WriteForest(cmd.OutOrStdout(), f)
			}
			if err != nil {
				config.fail(3, err)
			}
		},
	}
	cmd.Flags().StringP("output", "o", "", "path to the file the forest is written to (defaults to STDOUT)")
	return cmd
}

func storeRmCmd(rootConfig *rootCmdConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "rm",
		Short: "Delete a forest by name",
		Long:  `Delete a forest from the store`,
		Run: func(cmd *cobra.Command, args []string) {
			config := rootConfig
			name, err := config.storeName()
			if err != nil {
				config.fail(1, err)
			}
			store := config.openStore()
			defer store.Close(config.Context())
			if err = store.Delete(config.Context(), name); err != nil {
				config.fail(2, err)
			}
			config.log.WithField("name", name).Info("forest deleted")
		},
	}
}
