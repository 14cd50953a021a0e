package commands

import (
	"flag"
	"fmt"
	"strings"

	"github.com/uhppoted/uhppoted-app-tracker/config"
	"github.com/uhppoted/uhppoted-app-tracker/log"
	"github.com/uhppoted/uhppoted-app-tracker/store"
)

const APP = "uhppoted-app-tracker"

const LOG_TAG = "tracker"

type Options struct {
	Config string
	Debug  bool
}

// command holds the options shared by all the commands that access the spreadsheets. The flag
// values override the corresponding configuration file settings.
type command struct {
	credentials string
	tasks       string
	projects    string
	users       string
}

func (c *command) flagset(name string) *flag.FlagSet {
	flagset := flag.NewFlagSet(name, flag.ExitOnError)

	flagset.StringVar(&c.credentials, "credentials", c.credentials, "Service account credentials file. Overrides "+config.CREDENTIALS)
	flagset.StringVar(&c.tasks, "tasks", c.tasks, "Tasks spreadsheet URL or ID. Overrides "+config.TASKS_SHEET)
	flagset.StringVar(&c.projects, "projects", c.projects, "Projects spreadsheet URL or ID. Overrides "+config.PROJECTS_SHEET)
	flagset.StringVar(&c.users, "users", c.users, "Credentials spreadsheet URL or ID. Overrides "+config.CREDENTIALS_SHEET)

	return flagset
}

// configure loads the configuration file, applies the command line overrides and sets up the
// logger.
func (c *command) configure(options *Options) (*config.Config, error) {
	conf := config.NewConfig()
	if err := conf.Load(options.Config); err != nil {
		return nil, err
	}

	if v := strings.TrimSpace(c.credentials); v != "" {
		conf.Credentials = v
	}

	if v := strings.TrimSpace(c.tasks); v != "" {
		conf.Sheets.Tasks = config.SpreadsheetID(v)
	}

	if v := strings.TrimSpace(c.projects); v != "" {
		conf.Sheets.Projects = config.SpreadsheetID(v)
	}

	if v := strings.TrimSpace(c.users); v != "" {
		conf.Sheets.Credentials = config.SpreadsheetID(v)
	}

	if err := log.SetLevel(conf.LogLevel); err != nil {
		return nil, err
	}

	log.SetFile(conf.LogFile)
	log.SetDebug(options.Debug)

	if err := conf.Validate(); err != nil {
		return nil, err
	}

	log.Debugf(LOG_TAG, "tasks:%v  projects:%v  users:%v", conf.Sheets.Tasks, conf.Sheets.Projects, conf.Sheets.Credentials)

	return conf, nil
}

// open creates the data store for the configured spreadsheets.
func (c *command) open(options *Options) (*store.Store, *config.Config, error) {
	conf, err := c.configure(options)
	if err != nil {
		return nil, nil, err
	}

	connector := store.NewConnector(conf.Credentials)
	opener := store.GoogleOpener(connector, map[store.Dataset]string{
		store.Tasks:       conf.Sheets.Tasks,
		store.Projects:    conf.Sheets.Projects,
		store.Credentials: conf.Sheets.Credentials,
	})

	s := store.NewStore(opener, store.Options{
		CacheTTL:      conf.CacheTTL,
		CacheSize:     conf.CacheSize,
		Interval:      conf.APIInterval,
		MaxRetries:    conf.MaxRetries,
		Backoff:       conf.Backoff,
		RepairHeaders: conf.RepairHeaders,
	})

	return s, conf, nil
}

func helpOptions(flagset *flag.FlagSet) {
	flagset.VisitAll(func(f *flag.Flag) {
		fmt.Printf("    --%-13s %s\n", f.Name, f.Usage)
	})

	fmt.Println()
	fmt.Println("  Options:")
	fmt.Println()
	fmt.Printf("    --%-13s %s\n", "config", "Configuration file. Defaults to "+DEFAULT_CONFIG)
	fmt.Printf("    --%-13s %s\n", "debug", "Displays internal information for diagnosing errors")
}

func normalise(v string) string {
	return strings.ToLower(strings.NewReplacer(" ", "", "_", "", "-", "").Replace(strings.TrimSpace(v)))
}

func clean(v string) string {
	return strings.TrimSpace(v)
}
