// Package dlog is the process-wide structured logger: a colorized
// pretty stream for the terminal fanned out with plain text and json
// log files, archived into dated folders once a day.
package dlog

import (
	"log/slog"
	"os"

	"github.com/robfig/cron/v3"
	slogmulti "github.com/samber/slog-multi"
)

var multiLogger = slog.New(slog.NewTextHandler(os.Stdout, nil))
var archiver = &Archiver{}

// Setup upgrades the logger from the bare stdout handler to the
// pretty/text/json fanout backed by files under logs/, and schedules
// the archiver. ARCHIVE_CRON overrides the daily schedule.
func Setup() error {
	if err := os.MkdirAll("logs/buffered", os.ModePerm); err != nil {
		return err
	}

	opts := &slog.HandlerOptions{
		AddSource: true,
	}

	pretty, err := getPrettyHandler(archiver, opts)
	if err != nil {
		return err
	}
	text, err := getTextHandler(archiver, opts)
	if err != nil {
		return err
	}
	jsonHandler, err := getJsonHandler(archiver, opts)
	if err != nil {
		return err
	}

	multiLogger = slog.New(slogmulti.Fanout(pretty, text, jsonHandler))

	spec := os.Getenv("ARCHIVE_CRON")
	if spec == "" {
		spec = "@midnight"
	}
	c := cron.New()
	entryID, err := c.AddFunc(spec, archiver.process)
	if err != nil {
		return err
	}
	c.Start()
	Info("Created archive cron", "entryID", entryID, "spec", spec)
	return nil
}

func Info(msg string, args ...any) {
	multiLogger.Info(msg, args...)
}
func Error(msg string, args ...any) {
	multiLogger.Error(msg, args...)
}
func Warn(msg string, args ...any) {
	multiLogger.Warn(msg, args...)
}
func Debug(msg string, args ...any) {
	multiLogger.Debug(msg, args...)
}

func getJsonHandler(archiver *Archiver, opts *slog.HandlerOptions) (slog.Handler, error) {
	file, buffer, err := logFiles("default.json")
	if err != nil {
		return nil, err
	}
	return slog.NewJSONHandler(&BufferedFile{
		Archiver:   archiver,
		File:       file,
		BufferFile: buffer,
	}, opts), nil
}

func getTextHandler(archiver *Archiver, opts *slog.HandlerOptions) (slog.Handler, error) {
	file, buffer, err := logFiles("default.txt")
	if err != nil {
		return nil, err
	}
	return slog.NewTextHandler(&BufferedFile{
		Archiver:   archiver,
		File:       file,
		BufferFile: buffer,
	}, opts), nil
}

func getPrettyHandler(archiver *Archiver, opts *slog.HandlerOptions) (slog.Handler, error) {
	file, buffer, err := logFiles("pretty.log")
	if err != nil {
		return nil, err
	}
	return NewHandler(DualWriter{
		Stdout: os.Stdout,
		File: &BufferedFile{
			Archiver:   archiver,
			File:       file,
			BufferFile: buffer,
		},
	}, opts), nil
}

func logFiles(name string) (*os.File, *os.File, error) {
	file, err := os.OpenFile("logs/"+name, os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0600)
	if err != nil {
		return nil, nil, err
	}
	buffer, err := os.OpenFile("logs/buffered/"+name, os.O_APPEND|os.O_RDWR|os.O_CREATE, 0600)
	if err != nil {
		return nil, nil, err
	}
	return file, buffer, nil
}
