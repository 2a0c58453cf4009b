package main

import (
	"github.com/spf13/cobra"
)

const rootLongDesc string = `mmsearch runs the multimodal similarity search node.

Records pair a short description and an image locator with two embeddings,
one of the description and one of the image, in a shared vector space.

  mmsearch provision                    Create and load the collection
  mmsearch run vector-query -i q.json   Run one node on JSON inputs

Configuration is read from --config (YAML), then MMSEARCH_* environment
variables, e.g. MMSEARCH_QDRANT_ENDPOINT or MMSEARCH_SEARCH_COLLECTION_NAME.`

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "mmsearch",
		Short:         "Multimodal similarity search node",
		Long:          rootLongDesc,
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	cmd.PersistentFlags().StringP("config", "c", "", "Path to a YAML config file")
	cmd.PersistentFlags().BoolP("debug", "d", false, "Enable debug logging")

	cmd.AddCommand(newProvisionCmd())
	cmd.AddCommand(newRunCmd())

	return cmd
}

// loadFromFlags reads the app config using the persistent flags of cmd.
func loadFromFlags(cmd *cobra.Command) (AppConfig, error) {
	configFile, _ := cmd.Flags().GetString("config")
	v, err := initViper(configFile)
	if err != nil {
		return AppConfig{}, err
	}
	if f := cmd.Flags().Lookup("debug"); f != nil && f.Changed {
		v.Set("logger.level", "debug")
	}
	return loadConfig(v)
}
