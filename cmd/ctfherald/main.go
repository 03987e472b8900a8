package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"os/user"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/pwncrew/ctfherald"
	"github.com/pwncrew/ctfherald/ctftime"
	"github.com/pwncrew/ctfherald/mattermost"
	"github.com/pwncrew/ctfherald/notify"
)

// Build version, injected during build.
var (
	version string
	commit  string
)

const DefaultConfigPath = "~/.ctfherald.toml"

// How far ahead and how many events to ask the API for. The notify filter
// narrows this down afterwards.
const (
	fetchWindow = 100 * 24 * time.Hour
	fetchLimit  = 100
)

func main() {
	// Propagate build information to root package to share globally.
	ctfherald.Version = version
	ctfherald.Commit = commit

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, os.Kill)
	defer cancel()

	m := NewMain()

	// Parse command line flags & load configuration.
	if err := m.ParseFlagAndConfig(ctx, os.Args[1:]); errors.Is(err, flag.ErrHelp) {
		os.Exit(1)
	} else if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := m.Run(ctx); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type Main struct {
	Config     ctfherald.Config
	ConfigPath string

	// Which upstream representation to fetch, "api" or "feed".
	Source string
}

func NewMain() *Main {
	return &Main{
		Config:     ctfherald.DefaultConfig(),
		ConfigPath: DefaultConfigPath,
	}
}

func (m *Main) ParseFlagAndConfig(ctx context.Context, args []string) error {
	f := flag.NewFlagSet("ctfherald", flag.ContinueOnError)
	f.StringVar(&m.ConfigPath, "config-path", DefaultConfigPath, "config file path")
	f.StringVar(&m.Source, "source", "api", `event source, "api" or "feed"`)
	if err := f.Parse(args); err != nil {
		return err
	}

	// Local development keeps its settings in a .env file. A missing file
	// is fine, the process environment wins either way.
	_ = godotenv.Load()

	// The expand() function is here to automatically expand "~" to the user's
	// home directory. This is a common task as configuration files are typing
	// under the home directory during local development.
	configPath, err := expand(m.ConfigPath)
	if err != nil {
		return err
	}

	// Read our TOML formatted configuration file. The file is optional as
	// long as the environment carries at least the webhook URL.
	config, err := ReadConfigFile(configPath)
	if os.IsNotExist(err) {
		config = ctfherald.DefaultConfig()
	} else if err != nil {
		return err
	}

	if err := applyEnv(&config); err != nil {
		return err
	}

	if err := config.Validate(); err != nil {
		return err
	}

	m.Config = config

	return nil
}

// Run executes one notification pass: fetch, filter, synthesize, post.
func (m *Main) Run(ctx context.Context) error {
	client := ctftime.NewClient()

	var (
		events []*ctfherald.Event
		err    error
	)
	switch m.Source {
	case "feed":
		events, err = client.UpcomingFeed(ctx)
	case "api":
		now := time.Now()
		finish := now.Add(fetchWindow)
		events, err = client.FindEvents(ctx, ctftime.EventFilter{
			Start:  &now,
			Finish: &finish,
			Limit:  fetchLimit,
		})
	default:
		return ctfherald.Errorf(ctfherald.EINVALID, "Unknown source %q.", m.Source)
	}
	if err != nil {
		return err
	}

	slog.Info("fetched events", "source", m.Source, "count", len(events))

	msg := notify.Payload(m.Config, events, time.Now().UTC())
	if msg == nil {
		slog.Info("no events worth posting")
		return nil
	}

	if err := mattermost.NewClient(m.Config.WebhookURL).Send(ctx, msg); err != nil {
		return err
	}

	slog.Info("posted upcoming events", "attachments", len(msg.Attachments))

	return nil
}

// applyEnv overlays the environment-variable surface on top of the file
// configuration. Variables that are set always win.
func applyEnv(config *ctfherald.Config) error {
	if v := os.Getenv("WEBHOOK_URL"); v != "" {
		config.WebhookURL = v
	}

	if v := os.Getenv("CHANNEL"); v != "" {
		config.Channel = v
	}

	if v := os.Getenv("BOT_ICON"); v != "" {
		config.BotIcon = v
	}

	if v := os.Getenv("COLOR_JEOPARDY"); v != "" {
		config.ColorJeopardy = v
	}

	if v := os.Getenv("COLOR_ATTACK_DEFENSE"); v != "" {
		config.ColorAttackDefense = v
	}

	if v := os.Getenv("DAYS_INTO_FUTURE"); v != "" {
		days, err := strconv.Atoi(v)
		if err != nil {
			return ctfherald.Errorf(ctfherald.EINVALID, "Cannot parse DAYS_INTO_FUTURE %q.", v)
		}
		config.LookaheadDays = days
	}

	if v := os.Getenv("ALWAYS_SHOW_CTFS"); v != "" {
		config.AlwaysShowCTFs = parseIDList(v)
	}

	return nil
}

// parseIDList splits a comma-separated list of series IDs. Entries that are
// not numbers become 0, which matches no series.
func parseIDList(value string) []int {
	parts := strings.Split(value, ",")
	ids := make([]int, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			id = 0
		}
		ids = append(ids, id)
	}
	return ids
}

// expand returns path using tilde expansion. This means that a file path that
// begins with the "~" will be expanded to prefix the user's home directory.
func expand(path string) (string, error) {
	// Ignore path if it hasn't a leading tilde.
	if path != "~" && !strings.HasPrefix(path, "~"+string(os.PathSeparator)) {
		return filepath.Clean(path), nil
	}

	// Fetch the current user to determine the home path.
	u, err := user.Current()
	if err != nil {
		return filepath.Clean(path), err
	} else if u.HomeDir == "" {
		return filepath.Clean(path), errors.New("home directory unset")
	}

	// If the path is composed only by the tilde return the home directory.
	if path == "~" {
		return u.HomeDir, nil
	}

	return filepath.Join(u.HomeDir, strings.TrimPrefix(path, "~"+string(os.PathSeparator))), nil
}

// ReadConfigFile unmarshals config from filename.
func ReadConfigFile(filename string) (ctfherald.Config, error) {
	config := ctfherald.DefaultConfig()
	if buf, err := os.ReadFile(filename); err != nil {
		return config, err
	} else if err := toml.Unmarshal(buf, &config); err != nil {
		return config, err
	}
	return config, nil
}
