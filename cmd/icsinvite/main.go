// Command icsinvite writes interview invitations and cancellations as
// RFC 5545 calendar documents.
//
//	icsinvite invite -request interview.toml -out invite.ics
//	icsinvite cancel -request interview.toml -sequence 1
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"

	ics "github.com/powerdashhr/interview-ics"
	"github.com/powerdashhr/interview-ics/internal/config"
)

const usage = "usage: icsinvite invite|cancel [flags]"

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("can't load .env", "error", err)
	}
	if err := run(os.Args[1:], os.Stdout, os.Stderr, time.Now); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintln(os.Stderr, "icsinvite:", err)
		}
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer, now func() time.Time) error {
	if len(args) == 0 {
		return errors.New(usage)
	}
	command := args[0]
	var method ics.Method
	switch command {
	case "invite":
		method = ics.MethodRequest
	case "cancel":
		method = ics.MethodCancel
	default:
		return fmt.Errorf("unknown command %q: %s", command, usage)
	}

	fs := flag.NewFlagSet(command, flag.ContinueOnError)
	fs.SetOutput(stderr)
	requestPath := fs.String("request", "", "Interview request TOML file")
	outPath := fs.String("out", "", "Write the document to this file instead of stdout")
	configPath := fs.String("config", "", "Path to TOML config file")
	start := fs.String("start", "", "Start time, RFC 3339 or natural language (overrides request)")
	end := fs.String("end", "", "End time, RFC 3339 or natural language (overrides request)")
	uid := fs.String("uid", "", "Event UID (overrides request)")
	uidSeed := fs.String("uid-seed", "", "Derive a stable UID from this seed (overrides request)")
	sequence := fs.Int("sequence", 0, "SEQUENCE number (overrides request)")
	uidDomain := fs.String("uid-domain", "", "Domain of generated UIDs (overrides config)")
	logLevel := fs.String("log-level", "", "Log level: debug, info, warn, error (overrides config)")
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}
	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	cfg, err := config.Load(config.LoaderOptions{
		ConfigPath: *configPath,
		FlagOverrides: config.FlagOverrides{
			UIDDomain:    uidDomain,
			LoggingLevel: logLevel,
		},
		Logger: slog.New(tint.NewHandler(stderr, nil)),
	})
	if err != nil {
		return err
	}
	level, err := config.ParseLevel(cfg.Logging.Level)
	if err != nil {
		return err
	}
	logger := slog.New(tint.NewHandler(stderr, &tint.Options{
		Level:      level,
		TimeFormat: time.RFC1123Z,
	}))

	req := &request{}
	if *requestPath != "" {
		if req, err = loadRequest(*requestPath); err != nil {
			return err
		}
	}
	if set["start"] {
		req.Start = *start
	}
	if set["end"] {
		req.End = *end
	}
	if set["uid"] {
		req.UID = *uid
	}
	if set["uid-seed"] {
		req.UIDSeed = *uidSeed
	}
	if set["sequence"] {
		req.Sequence = *sequence
	}

	meeting, err := req.meeting(newTimeParser(now))
	if err != nil {
		return err
	}

	builder := ics.NewBuilder(cfg.Settings(), ics.WithLogger(logger), ics.WithClock(now))
	var doc []byte
	switch method {
	case ics.MethodRequest:
		doc, err = builder.BuildInvite(ics.Invite{
			Meeting:  meeting,
			UID:      req.UID,
			UIDSeed:  req.UIDSeed,
			Sequence: req.Sequence,
		})
	case ics.MethodCancel:
		cancelUID := req.UID
		if cancelUID == "" && req.UIDSeed != "" {
			if cancelUID, err = ics.StableUID(req.UIDSeed, builder.Settings().UIDDomain); err != nil {
				return err
			}
		}
		doc, err = builder.BuildCancellation(ics.Cancellation{
			Meeting:  meeting,
			UID:      cancelUID,
			Sequence: req.Sequence,
		})
	}
	if err != nil {
		return err
	}

	if *outPath == "" {
		_, err = stdout.Write(doc)
		return err
	}
	if err := os.WriteFile(*outPath, doc, 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", *outPath, err)
	}
	logger.Info("calendar document written", "path", *outPath, "method", method, "bytes", len(doc))
	return nil
}
