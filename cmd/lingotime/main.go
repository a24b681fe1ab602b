package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hrygo/lingotime/internal/profile"
	"github.com/hrygo/lingotime/internal/version"
	"github.com/hrygo/lingotime/store"
	"github.com/hrygo/lingotime/store/db"
)

// app is the state shared by the subcommands of one invocation.
type app struct {
	v      *viper.Viper
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	rootCmd := &cobra.Command{
		Use:   "lingotime",
		Short: "Multilingual temporal expression parser",
		Long: `lingotime reads a date and time out of short sentences written in
Chinese, Japanese, Korean or English, and returns what is left as content.`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "config file (default: ./lingotime.yaml if present)")
	flags.String("mode", "dev", `mode of server, can be "prod" or "dev" or "demo"`)
	flags.String("addr", "", "address of server")
	flags.Int("port", 8081, "port of server")
	flags.String("data", "", "data directory")
	flags.String("driver", "sqlite", "database driver")
	flags.String("dsn", "", "database source name (which driver name)")
	flags.String("timezone", "", "IANA timezone for sentences that name none (default: Local)")
	flags.String("log-level", "info", "log level: debug, info, warn or error")
	flags.String("log-format", "text", "log format: text or json")

	a.v.SetEnvPrefix("lingotime")
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	a.v.AutomaticEnv()
	for _, name := range []string{"mode", "addr", "port", "data", "driver", "dsn", "timezone", "log-level", "log-format"} {
		_ = a.v.BindPFlag(name, flags.Lookup(name))
	}

	rootCmd.AddCommand(
		newParseCmd(a),
		newServeCmd(a),
		newHistoryCmd(a),
		newVersionCmd(),
	)
	return rootCmd
}

// init reads the config file and sets up logging.
func (a *app) init(cmd *cobra.Command) error {
	configFile, _ := cmd.Flags().GetString("config")
	if configFile != "" {
		a.v.SetConfigFile(configFile)
	} else {
		a.v.SetConfigName("lingotime")
		a.v.SetConfigType("yaml")
		a.v.AddConfigPath(".")
	}
	if err := a.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return errors.Wrap(err, "failed to read config file")
		}
	}

	logger, err := newLogger(cmd.ErrOrStderr(), a.v.GetString("log-level"), a.v.GetString("log-format"))
	if err != nil {
		return err
	}
	a.logger = logger
	slog.SetDefault(logger)
	return nil
}

// profile assembles the profile: LINGOTIME_* variables first, then the config
// file and flags on top.
func (a *app) profile() (*profile.Profile, error) {
	p := &profile.Profile{
		Mode:   a.v.GetString("mode"),
		Addr:   a.v.GetString("addr"),
		Port:   a.v.GetInt("port"),
		Data:   a.v.GetString("data"),
		Driver: a.v.GetString("driver"),
		DSN:    a.v.GetString("dsn"),
	}
	p.FromEnv()

	if tz := a.v.GetString("timezone"); tz != "" {
		p.Timezone = tz
	}
	setBool := func(key string, dst *bool) {
		if a.v.IsSet(key) {
			*dst = a.v.GetBool(key)
		}
	}
	setString := func(key string, dst *string) {
		if a.v.IsSet(key) {
			*dst = a.v.GetString(key)
		}
	}
	setBool("audit.enabled", &p.AuditEnabled)
	setBool("fallback.dateparse", &p.FallbackDateparse)
	setBool("fallback.when", &p.FallbackWhen)
	setBool("fallback.naturaldate", &p.FallbackNaturalDate)
	setBool("llm.enabled", &p.LLMEnabled)
	setString("llm.provider", &p.LLMProvider)
	setString("llm.api_key", &p.LLMAPIKey)
	setString("llm.base_url", &p.LLMBaseURL)
	setString("llm.model", &p.LLMModel)

	if err := p.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}
	p.Version = version.GetCurrentVersion(p.Mode)
	return p, nil
}

// openStore opens and migrates the audit store.
func openStore(cmd *cobra.Command, p *profile.Profile) (*store.Store, error) {
	driver, err := db.NewDBDriver(p)
	if err != nil {
		return nil, err
	}
	st := store.New(driver, p)
	if err := st.Migrate(cmd.Context()); err != nil {
		st.Close()
		return nil, errors.Wrap(err, "failed to migrate store")
	}
	return st, nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "lingotime %s (commit: %s)\n", version.Version, version.Commit)
		},
	}
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
