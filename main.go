package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"syscall"
	"time"

	"github.com/charmbracelet/fang"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"resin_widget/api"
	"resin_widget/config"
	"resin_widget/logging"
	"resin_widget/ui"
)

type options struct {
	settingsPath string
	logLevel     string
	interval     time.Duration
	apiURL       string
	apiTimeout   time.Duration
	language     string
}

func main() {
	_ = godotenv.Load()

	env, err := config.ReadEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to read environment: %v\n", err)
		os.Exit(1)
	}

	opts := &options{}
	rootCmd := &cobra.Command{
		Use:   "resin_widget",
		Short: "Floating Genshin Impact daily note widget",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runWidget(cmd.Context(), opts)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.settingsPath, "settings", env.SettingsPath, "path to settings.ini")
	flags.StringVar(&opts.logLevel, "log-level", env.LogLevel, "log level (debug, info, warn, error)")
	flags.DurationVar(&opts.interval, "interval", env.RefreshInterval, "refresh interval (min 30s)")
	flags.StringVar(&opts.apiURL, "api-url", env.APIURL, "HoYoLAB API base URL (default "+api.DefaultBaseURL+")")
	flags.DurationVar(&opts.apiTimeout, "api-timeout", env.APITimeout, "HoYoLAB request timeout (default "+api.DefaultTimeout.String()+")")
	flags.StringVar(&opts.language, "language", env.Language, "x-rpc-language sent to HoYoLAB (default "+api.DefaultLanguage+")")

	rootCmd.AddCommand(notesCmd(opts), checkCmd(opts))

	if err := fang.Execute(context.Background(), rootCmd, fang.WithNotifySignal(os.Interrupt, syscall.SIGTERM)); err != nil {
		os.Exit(1)
	}
}

func runWidget(ctx context.Context, opts *options) error {
	logger, err := newLogger(opts)
	if err != nil {
		return err
	}

	settings, err := loadSettings(opts, logger)
	if err != nil {
		if ve := config.AsValidationError(err); ve != nil {
			ui.ShowWarning(ve.Error())
		}
		return err
	}

	ui.Run(ctx, ui.Deps{
		Settings: settings,
		NewFetcher: func(auth config.Auth) ui.NotesFetcher {
			return newClient(opts, auth, logger)
		},
		Interval: opts.interval,
		Logger:   logger,
	})
	return nil
}

func newLogger(opts *options) (*slog.Logger, error) {
	level, err := logging.Parse(opts.logLevel)
	if err != nil {
		return nil, err
	}
	logger := logging.New(os.Stderr, level)
	slog.SetDefault(logger)
	return logger, nil
}

func loadSettings(opts *options, logger *slog.Logger) (*config.Settings, error) {
	settings, err := config.Load(opts.settingsPath)
	if err != nil {
		return nil, err
	}

	a := settings.Auth
	logger.Debug("settings loaded",
		logging.Path(settings.Path()),
		logging.Secret("ltuid_v2", a.LtuidV2),
		logging.Secret("ltoken_v2", a.LtokenV2),
		logging.Secret("cookie_token_v2", a.CookieTokenV2),
		logging.Secret("account_mid_v2", a.AccountMidV2),
	)

	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return settings, nil
}

func newClient(opts *options, auth config.Auth, logger *slog.Logger) *api.Client {
	clientOpts := []api.Option{api.WithLogger(logger)}
	if opts.apiURL != "" {
		clientOpts = append(clientOpts, api.WithBaseURL(opts.apiURL))
	}
	if opts.apiTimeout > 0 {
		clientOpts = append(clientOpts, api.WithTimeout(opts.apiTimeout))
	}
	if opts.language != "" {
		clientOpts = append(clientOpts, api.WithLanguage(opts.language))
	}
	if auth.Server != "" {
		clientOpts = append(clientOpts, api.WithServer(auth.Server))
	}
	return api.New(api.Cookies{
		LtuidV2:       auth.LtuidV2,
		LtokenV2:      auth.LtokenV2,
		CookieTokenV2: auth.CookieTokenV2,
		AccountMidV2:  auth.AccountMidV2,
	}, clientOpts...)
}
