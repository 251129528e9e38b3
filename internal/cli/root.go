package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile  string
	verbose  bool
	lang     string
	doctrine string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "mawarith",
	Short: "Mawarith - Islamic inheritance (fara'id) calculator",
	Long: `Mawarith computes estate divisions under Islamic inheritance law.

Given a family tree with one deceased person, it classifies every relative
into an heir category, applies the exclusion (hajb) rules, assigns fixed
(fardh) and residual (tasib) shares, and corrects the total to exactly one
through awl or radd.

All arithmetic is exact. Shares are fractions, never decimals.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Display the version number and build information for Mawarith.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("mawarith v0.2.1")
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.mawarith/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&lang, "lang", "en", "output language (en, ar)")
	rootCmd.PersistentFlags().StringVar(&doctrine, "doctrine", "standard", "doctrinal option set")

	// Bind flags to viper
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("output.language", rootCmd.PersistentFlags().Lookup("lang"))
	_ = viper.BindPFlag("doctrine", rootCmd.PersistentFlags().Lookup("doctrine"))

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in config file and ENV variables
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}

		// Search for config in home directory
		viper.AddConfigPath(home + "/.mawarith")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	// Read in environment variables that match MAWARITH_*
	viper.SetEnvPrefix("MAWARITH")
	viper.AutomaticEnv()

	// If a config file is found, read it in
	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}
