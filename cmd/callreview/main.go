package main

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	// Packages
	kong "github.com/alecthomas/kong"
	tablewriter "github.com/djthorpe/go-tablewriter"
	godotenv "github.com/joho/godotenv"
	callreview "github.com/mutablelogic/go-callreview"
	client "github.com/mutablelogic/go-callreview/pkg/client"
	config "github.com/mutablelogic/go-callreview/pkg/config"
	goclient "github.com/mutablelogic/go-client"
	logrus "github.com/sirupsen/logrus"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

type Globals struct {
	ConfigFile string `name:"config" help:"Configuration file (YAML)" type:"path" env:"CALLREVIEW_CONFIG"`
	Debug      bool   `name:"debug" help:"Enable debug output"`
	Provider   string `name:"provider" help:"Transcription provider (assemblyai, elevenlabs, gowhisper), overrides the configuration"`

	// Configuration, writer, logger and context
	cfg    config.Config
	writer *tablewriter.Writer
	log    *logrus.Entry
	ctx    context.Context
}

type CLI struct {
	Globals

	Analyze    AnalyzeCmd    `cmd:"analyze" help:"Transcribe a call recording and generate a review report"`
	Transcript TranscriptCmd `cmd:"transcript" help:"Transcribe a call recording and show the classified turns"`
	Process    ProcessCmd    `cmd:"process" help:"Merge and classify the utterances in a JSON file"`
	Serve      ServeCmd      `cmd:"serve" help:"Run the HTTP API"`
	Config     ConfigCmd     `cmd:"config" help:"Show the effective configuration"`
	Version    VersionCmd    `cmd:"version" help:"Show version information"`
}

////////////////////////////////////////////////////////////////////////////////
// MAIN

func main() {
	// The name of the executable
	name, err := os.Executable()
	if err != nil {
		panic(err)
	} else {
		name = filepath.Base(name)
	}

	// Secrets can be kept in a .env file
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logrus.WithError(err).Warn(".env")
	}

	// Create a cli parser
	cli := CLI{}
	cmd := kong.Parse(&cli,
		kong.Name(name),
		kong.Description("call recording review pipeline"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
	)

	// Set up logging
	logger := logrus.StandardLogger()
	logger.SetOutput(os.Stderr)
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if cli.Globals.Debug {
		logger.SetLevel(logrus.DebugLevel)
	}
	cli.Globals.log = logrus.NewEntry(logger)

	// Load configuration
	if cfg, err := config.Load(cli.Globals.ConfigFile); err != nil {
		cmd.FatalIfErrorf(err)
		return
	} else {
		cli.Globals.cfg = cfg
	}

	// Create a tablewriter object with text output
	writer := tablewriter.New(os.Stdout, tablewriter.OptOutputText())
	cli.Globals.writer = writer

	// Create a context
	var cancel context.CancelFunc
	cli.Globals.ctx, cancel = signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Run the command
	if err := cmd.Run(&cli.Globals); err != nil {
		cmd.FatalIfErrorf(err)
	}
}

////////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// service returns the pipeline service, with the provider clients when
// remote is true
func (app *Globals) service(remote bool, opts ...callreview.Opt) (*callreview.Service, error) {
	opts = append([]callreview.Opt{callreview.OptLogger(app.log)}, opts...)
	if remote {
		clientopts := []goclient.ClientOpt{}
		if app.Debug {
			clientopts = append(clientopts, goclient.OptTrace(os.Stderr, false))
		}
		c, err := client.New(app.cfg, clientopts...)
		if err != nil {
			return nil, err
		}
		app.log.WithField("providers", c.Providers()).Debug("transcription")
		opts = append(opts, callreview.OptTranscriber(c), callreview.OptReporter(c))
	}
	return callreview.New(app.cfg, opts...)
}

// opts returns the transcription options common to all commands
func (app *Globals) opts(language string) []client.Opt {
	return []client.Opt{
		client.OptProvider(app.Provider),
		client.OptLanguage(language),
	}
}
