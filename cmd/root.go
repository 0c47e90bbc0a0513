package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/nerdwave-nick/multiverse/internal/api"
	"github.com/nerdwave-nick/multiverse/internal/api/health"
	"github.com/nerdwave-nick/multiverse/internal/api/views"
	"github.com/nerdwave-nick/multiverse/internal/frontend"
	"github.com/nerdwave-nick/multiverse/internal/gallery"
	"github.com/nerdwave-nick/multiverse/internal/pokeapi"
	"github.com/nerdwave-nick/multiverse/internal/session"
	"github.com/spf13/cobra"
)

const (
	cacheModeNone    = "none"
	cacheModeMemory  = "memory"
	cacheModeLayered = "layered"

	l2Badger = "badger"
	l2Redis  = "redis"
)

type RootOptions struct {
	ConfigPath     string
	LogLevel       string
	Port           int
	BaseURL        string
	AllowedOrigins []string
	CacheMode      string
	L2Backend      string
	DBPath         string
	RedisAddr      string
	GCInterval     int
	L2CacheTTL     int
	L1CacheTTL     int
	L1CacheSize    int
	SessionTTL     int
	SessionLimit   int
	FetchTimeout   int
}

func (o *RootOptions) Validate() error {
	concatErr := func(err error, olderr error) error {
		if olderr != nil {
			return fmt.Errorf("%s\n%w", err.Error(), olderr)
		}
		return err
	}
	var err error
	if o.BaseURL == "" {
		err = concatErr(fmt.Errorf("pokeapi-url can't be empty"), err)
	}
	switch o.CacheMode {
	case cacheModeNone, cacheModeMemory:
	case cacheModeLayered:
		switch o.L2Backend {
		case l2Badger:
			if o.DBPath == "" {
				err = concatErr(fmt.Errorf("db-path can't be empty"), err)
			}
			if o.GCInterval <= 0 {
				err = concatErr(fmt.Errorf("gc-interval must be greater than 0"), err)
			}
		case l2Redis:
			if o.RedisAddr == "" {
				err = concatErr(fmt.Errorf("redis-addr can't be empty"), err)
			}
		default:
			err = concatErr(fmt.Errorf("l2 must be one of %s, %s", l2Badger, l2Redis), err)
		}
		if o.L2CacheTTL <= 0 {
			err = concatErr(fmt.Errorf("l2-ttl must be greater than 0"), err)
		}
	default:
		err = concatErr(fmt.Errorf("cache must be one of %s, %s, %s", cacheModeNone, cacheModeMemory, cacheModeLayered), err)
	}
	if o.CacheMode != cacheModeNone {
		if o.L1CacheTTL <= 0 {
			err = concatErr(fmt.Errorf("l1-ttl must be greater than 0"), err)
		}
		if o.L1CacheSize <= 0 {
			err = concatErr(fmt.Errorf("l1-size must be greater than 0"), err)
		}
	}
	if o.SessionTTL <= 0 {
		err = concatErr(fmt.Errorf("session-ttl must be greater than 0"), err)
	}
	if o.SessionLimit <= 0 {
		err = concatErr(fmt.Errorf("session-limit must be greater than 0"), err)
	}
	if o.FetchTimeout < 0 {
		err = concatErr(fmt.Errorf("fetch-timeout can't be negative"), err)
	}
	if o.Port <= 0 {
		err = concatErr(fmt.Errorf("port must be greater than 0"), err)
	}
	return err
}

var rootOpts = &RootOptions{}

func Execute(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func init() {
	registerFlags(rootCmd, rootOpts)
}

func registerFlags(cmd *cobra.Command, opts *RootOptions) {
	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "Optional TOML file with option values. Flags given on the command line win over the file.")
	cmd.Flags().StringVarP(&opts.LogLevel, "level", "l", "info", "The log level. Valid levels are debug, info, warn, and error.")
	cmd.Flags().IntVarP(&opts.Port, "port", "p", 8080, "The port to listen on")
	cmd.Flags().StringVar(&opts.BaseURL, "pokeapi-url", pokeapi.DefaultBaseURL, "The base url of the pokeapi.")
	cmd.Flags().StringSliceVar(&opts.AllowedOrigins, "allowed-origins", nil, "Origins allowed to call the api cross origin. Empty allows all.")
	cmd.Flags().StringVar(&opts.CacheMode, "cache", cacheModeNone, "The pokeapi response cache: none, memory (l1 only) or layered (l1 + l2).")
	cmd.Flags().StringVar(&opts.L2Backend, "l2", l2Badger, "The l2 cache backend for the layered cache: badger or redis.")
	cmd.Flags().StringVar(&opts.DBPath, "db-path", ".badger", "The path of the badger db folder. Will be created when it doesn't exist.")
	cmd.Flags().StringVar(&opts.RedisAddr, "redis-addr", "localhost:6379", "The address of the redis server used as l2 cache.")
	cmd.Flags().IntVar(&opts.GCInterval, "gc-interval", 600, "The garbage collection interval of the badger db in seconds. Needs to be greater than 0.")
	cmd.Flags().IntVar(&opts.L2CacheTTL, "l2-ttl", 86400, "The ttl of the larger l2 cache in seconds. Needs to be greater than 0.")
	cmd.Flags().IntVar(&opts.L1CacheTTL, "l1-ttl", 7200, "The ttl of the smaller l1 cache in seconds. Needs to be greater than 0.")
	cmd.Flags().IntVar(&opts.L1CacheSize, "l1-size", 2000, "The size of the smaller l1 cache in number of items. Needs to be greater than 0.")
	cmd.Flags().IntVar(&opts.SessionTTL, "session-ttl", 7200, "How long a view session is kept in seconds. Needs to be greater than 0.")
	cmd.Flags().IntVar(&opts.SessionLimit, "session-limit", 10000, "The maximum number of view sessions kept in memory. Needs to be greater than 0.")
	cmd.Flags().IntVar(&opts.FetchTimeout, "fetch-timeout", 30, "Upper bound for fetching one gallery page in seconds. 0 disables the bound.")
}

func setLogLevel(level string) {
	switch strings.ToLower(level) {
	case "debug":
		slog.SetLogLoggerLevel(slog.LevelDebug)
	case "info":
		slog.SetLogLoggerLevel(slog.LevelInfo)
	case "warn":
		slog.SetLogLoggerLevel(slog.LevelWarn)
	case "error":
		slog.SetLogLoggerLevel(slog.LevelError)
	default:
		slog.Warn("no/invalid log level provided, setting to info")
		slog.SetLogLoggerLevel(slog.LevelInfo)
	}
}

var rootCmd = &cobra.Command{
	Use:   "multiverse",
	Short: "multiverse - browse the pokemon gallery and build a deck",
	Long:  "multiverse - browse the pokemon gallery and build a deck\n\nServes the gallery page and a json api backed by pokeapi, with optional caching of pokeapi responses",
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		if rootOpts.ConfigPath != "" {
			if err := applyConfigFile(cmd, rootOpts.ConfigPath); err != nil {
				return err
			}
		}
		if err := rootOpts.Validate(); err != nil {
			return fmt.Errorf("incorrect command usage:\n%w\n", err)
		}
		setLogLevel(rootOpts.LogLevel)
		return nil
	},
	Run: func(cmd *cobra.Command, _ []string) {
		err := rootMain(cmd.Context(), rootOpts)
		if err != nil {
			slog.Error("multiverse stopped", slog.Any("error", err))
			os.Exit(1)
		}
	},
}

func stopServerWithTimeout(server *http.Server) error {
	slog.Debug("shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err := server.Shutdown(ctx)
	if err != nil {
		slog.Error("shutting down http server", slog.Any("error", err))
		return err
	}
	return nil
}

// newServer leaves the write deadline unset when page fetches are unbounded.
func newServer(opts *RootOptions, handler http.Handler) *http.Server {
	server := &http.Server{
		ReadTimeout: 5 * time.Second,
		Addr:        fmt.Sprintf(":%d", opts.Port),
		Handler:     handler,
	}
	if opts.FetchTimeout > 0 {
		// a page fetch may take up to the fetch timeout
		server.WriteTimeout = time.Duration(opts.FetchTimeout)*time.Second + 30*time.Second
	}
	return server
}

func rootMain(parentCtx context.Context, opts *RootOptions) error {
	ctx, cancel := context.WithCancel(parentCtx)
	defer cancel()

	responseCache, closeCache, err := buildCache(ctx, opts)
	if err != nil {
		return err
	}
	defer closeCache()

	papiClient := pokeapi.NewClient(responseCache, *http.DefaultClient, pokeapi.WithBaseURL(opts.BaseURL))

	store, err := session.NewStore(
		gallery.NewAPISource(papiClient),
		opts.SessionLimit,
		time.Duration(opts.SessionTTL)*time.Second,
		gallery.WithFetchTimeout(time.Duration(opts.FetchTimeout)*time.Second),
	)
	if err != nil {
		return err
	}
	defer store.Close()

	frontend, err := frontend.GetAssetFS()
	if err != nil {
		return err
	}

	mux := http.NewServeMux()
	mux.Handle("/", http.FileServer(http.FS(frontend)))

	healthController := health.MakeController()
	viewsController := views.MakeController(store)

	router := api.MakeRouter(
		mux,
		[]api.Controller{
			healthController,
			viewsController,
		},
		api.RouterOptions{AllowedOrigins: opts.AllowedOrigins},
	)
	slog.Debug("router created, proceeding to start backend...")

	server := newServer(opts, router)

	go func() {
		defer cancel()
		slog.Info("server ready to listen...", slog.String("address", server.Addr), slog.String("cache", opts.CacheMode))
		if err := server.ListenAndServe(); err != nil {
			if errors.Is(err, http.ErrServerClosed) {
				return
			}
			slog.Error("error in listen and serve", slog.Any("error", err))
		}
	}()

	<-ctx.Done()
	return stopServerWithTimeout(server)
}
