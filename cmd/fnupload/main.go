package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/DailyInvestors/Network-Repairs/internal/config"
	"github.com/DailyInvestors/Network-Repairs/internal/logging"
	"github.com/DailyInvestors/Network-Repairs/internal/upload"
)

// Version info (set during build)
var (
	Version   = "dev"
	BuildTime = "unknown"
)

// errUploadFailed marks a run whose response was an error; the message has
// already been printed.
var errUploadFailed = errors.New("upload failed")

// cliOptions holds flag values shared by every subcommand.
type cliOptions struct {
	configPath string
	endpoint   string
	token      string
	fieldName  string
	timeout    time.Duration
	insecure   bool
	verbose    bool
	dump       bool

	cfg    *config.AppConfig
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	opts := &cliOptions{}

	root := &cobra.Command{
		Use:   "fnupload",
		Short: "Upload a file to a function endpoint and show the response",
		Long: `fnupload sends one local file as multipart/form-data to an upload
endpoint, authenticating with a bearer token, and prints the JSON response
or the error message.

Run "fnupload tui" for the interactive picker.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.init()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if opts.logger != nil {
				_ = opts.logger.Sync()
			}
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "path to a YAML config file")
	flags.StringVar(&opts.endpoint, "endpoint", "", "upload endpoint URL (overrides config)")
	flags.StringVar(&opts.token, "token", "", "bearer token (overrides config)")
	flags.StringVar(&opts.fieldName, "field", "", "multipart field name (overrides config)")
	flags.DurationVar(&opts.timeout, "timeout", 0, "request timeout, 0 keeps the client default")
	flags.BoolVar(&opts.insecure, "insecure", false, "skip TLS certificate verification")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")
	flags.BoolVar(&opts.dump, "dump", false, "dump raw HTTP requests and responses")

	root.AddCommand(newUploadCmd(opts))
	root.AddCommand(newTUICmd(opts))
	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "fnupload %s (built %s)\n", Version, BuildTime)
		},
	})

	return root
}

// init loads configuration, applies flag overrides and builds the logger.
func (o *cliOptions) init() error {
	var cfg *config.AppConfig
	if o.configPath != "" {
		loaded, err := config.LoadConfig(o.configPath)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
	} else {
		cfg = config.FromEnvironment()
	}

	if o.endpoint != "" {
		cfg.Client.Endpoint = o.endpoint
	}
	if o.token != "" {
		cfg.Client.Token = o.token
	}
	if o.fieldName != "" {
		cfg.Client.FieldName = o.fieldName
	}
	if o.timeout > 0 {
		cfg.Client.Timeout = o.timeout.String()
	}
	if o.insecure {
		cfg.Client.InsecureSkipVerify = true
	}
	if o.verbose {
		cfg.Logging.Level = "debug"
	}
	o.cfg = cfg

	logger, err := logging.New(cfg.Logging.Level)
	if err != nil {
		return err
	}
	o.logger = logger
	return nil
}

// newComponent builds an upload component from the resolved configuration,
// logging through logger.
func (o *cliOptions) newComponent(logger *zap.Logger) *upload.Component {
	transport := upload.NewHTTPTransport(upload.TransportOptions{
		Timeout:            o.cfg.ClientTimeout(),
		UserAgent:          "fnupload/" + Version,
		InsecureSkipVerify: o.cfg.Client.InsecureSkipVerify,
		Dump:               o.dump,
	}, logger)

	return upload.NewComponent(transport, upload.Target{
		Endpoint:  o.cfg.Client.Endpoint,
		Token:     o.cfg.Client.Token,
		FieldName: o.cfg.Client.FieldName,
	}, logger)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		if !errors.Is(err, errUploadFailed) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		stop()
		os.Exit(1)
	}
}
