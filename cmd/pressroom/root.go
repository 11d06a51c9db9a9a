package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/eringen/pressroom"
	"github.com/eringen/pressroom/content"
)

// fileConfig mirrors the keys accepted in pressroom.yaml and as PRESSROOM_*
// environment variables.
type fileConfig struct {
	Name          string        `mapstructure:"name"`
	URL           string        `mapstructure:"url"`
	Description   string        `mapstructure:"description"`
	Author        string        `mapstructure:"author"`
	Addr          string        `mapstructure:"addr"`
	Source        string        `mapstructure:"source"`
	ContentDir    string        `mapstructure:"content_dir"`
	PostsRoute    string        `mapstructure:"posts_route"`
	StaticDir     string        `mapstructure:"static_dir"`
	Watch         bool          `mapstructure:"watch"`
	DatabasePath  string        `mapstructure:"database_path"`
	AdminPassword string        `mapstructure:"admin_password"`
	SessionSecret string        `mapstructure:"session_secret"`
	CookieSecure  bool          `mapstructure:"cookie_secure"`
	PageCacheTTL  time.Duration `mapstructure:"page_cache_ttl"`
	WatchDebounce time.Duration `mapstructure:"watch_debounce"`
	ThumbWidth    int           `mapstructure:"thumb_width"`
	LogLevel      string        `mapstructure:"log_level"`
	LogFormat     string        `mapstructure:"log_format"`
}

// cli carries the state shared by the subcommands once the root command has
// loaded the configuration.
type cli struct {
	cfgFile string
	cfg     pressroom.SiteConfig
	log     *logrus.Logger
}

func newRootCmd() *cobra.Command {
	c := &cli{}
	root := &cobra.Command{
		Use:   "pressroom",
		Short: "pressroom - a Markdown blog engine",
		Long: `pressroom serves a blog from Markdown files with front matter or from a
SQLite store edited in the browser. Published posts are listed newest first
and grouped by tag.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.initializeConfig()
		},
	}
	root.PersistentFlags().StringVar(&c.cfgFile, "config", "", "config file (default is ./pressroom.yaml)")

	root.AddCommand(
		newServeCmd(c),
		newListCmd(c),
		newTagsCmd(c),
		newImportCmd(c),
		newVersionCmd(),
	)
	return root
}

func (c *cli) initializeConfig() error {
	cfg, log, err := loadConfig(viper.New(), c.cfgFile)
	if err != nil {
		return err
	}
	c.cfg = cfg
	c.log = log
	return nil
}

// loadConfig reads the optional config file and PRESSROOM_* variables into a
// SiteConfig. Keys left unset keep the pressroom defaults.
func loadConfig(v *viper.Viper, cfgFile string) (pressroom.SiteConfig, *logrus.Logger, error) {
	for key, def := range map[string]any{
		"name": "", "url": "", "description": "", "author": "",
		"addr": "", "source": pressroom.SourceFiles, "content_dir": "content",
		"posts_route": "/posts", "static_dir": "public", "watch": false,
		"database_path": "data/pressroom.db", "admin_password": "", "session_secret": "",
		"cookie_secure": false, "page_cache_ttl": 5 * time.Minute,
		"watch_debounce": 500 * time.Millisecond, "thumb_width": 480,
		"log_level": "info", "log_format": "text",
	} {
		v.SetDefault(key, def)
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("pressroom")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("PRESSROOM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	log := logrus.New()
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || cfgFile != "" {
			return pressroom.SiteConfig{}, nil, fmt.Errorf("read config: %w", err)
		}
	}

	var fc fileConfig
	if err := v.Unmarshal(&fc); err != nil {
		return pressroom.SiteConfig{}, nil, fmt.Errorf("decode config: %w", err)
	}

	level, err := logrus.ParseLevel(fc.LogLevel)
	if err != nil {
		return pressroom.SiteConfig{}, nil, fmt.Errorf("log_level: %w", err)
	}
	log.SetLevel(level)
	switch fc.LogFormat {
	case "json":
		log.SetFormatter(&logrus.JSONFormatter{})
	case "text", "":
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	default:
		return pressroom.SiteConfig{}, nil, fmt.Errorf("log_format: unknown format %q", fc.LogFormat)
	}
	if used := v.ConfigFileUsed(); used != "" {
		log.WithField("file", used).Debug("using config file")
	}

	return pressroom.SiteConfig{
		Name:          fc.Name,
		URL:           fc.URL,
		Description:   fc.Description,
		Author:        fc.Author,
		Addr:          fc.Addr,
		Source:        fc.Source,
		ContentDir:    fc.ContentDir,
		PostsRoute:    fc.PostsRoute,
		StaticDir:     fc.StaticDir,
		Watch:         fc.Watch,
		DatabasePath:  fc.DatabasePath,
		AdminPassword: fc.AdminPassword,
		SessionSecret: fc.SessionSecret,
		CookieSecure:  fc.CookieSecure,
		PageCacheTTL:  fc.PageCacheTTL,
		WatchDebounce: fc.WatchDebounce,
		ThumbWidth:    fc.ThumbWidth,
		Logger:        log,
	}, log, nil
}

// openSource opens the content source named in the config. The returned
// close func releases the SQLite store when one was opened.
func (c *cli) openSource() (pressroom.Source, func() error, error) {
	switch c.cfg.Source {
	case pressroom.SourceFiles:
		return content.NewLoader(c.cfg.ContentDir), func() error { return nil }, nil
	case pressroom.SourceSQLite:
		store, err := pressroom.NewStore(c.cfg.DatabasePath)
		if err != nil {
			return nil, nil, err
		}
		return store, store.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown source %q", c.cfg.Source)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the pressroom version",
		Args:  cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "pressroom %s\n", version)
		},
	}
}
