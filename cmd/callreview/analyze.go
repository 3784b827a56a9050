package main

import (
	"fmt"
	"os"
	"path/filepath"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

type AnalyzeCmd struct {
	Path     string `arg:"" help:"Path to the call recording" type:"existingfile"`
	Language string `flag:"language" help:"Language spoken in the call, overrides the configuration"`
	Json     bool   `flag:"json" help:"Output the whole report as JSON"`
}

type TranscriptCmd struct {
	Path     string `arg:"" help:"Path to the call recording" type:"existingfile"`
	Language string `flag:"language" help:"Language spoken in the call, overrides the configuration"`
	Format   string `flag:"format" enum:"table,text,srt,vtt" default:"table" help:"Output format"`
}

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

func (cmd *AnalyzeCmd) Run(app *Globals) error {
	service, err := app.service(true)
	if err != nil {
		return err
	}

	// Open the audio file
	f, err := os.Open(cmd.Path)
	if err != nil {
		return err
	}
	defer f.Close()

	// Run the pipeline
	report, err := service.Analyze(app.ctx, f, filepath.Base(cmd.Path), app.opts(cmd.Language)...)
	if err != nil {
		return err
	}

	// Output
	if cmd.Json {
		fmt.Println(report)
	} else {
		fmt.Println(report.Transcript)
		fmt.Println()
		fmt.Println(report.Report)
	}
	return nil
}

func (cmd *TranscriptCmd) Run(app *Globals) error {
	service, err := app.service(true)
	if err != nil {
		return err
	}

	// Open the audio file
	f, err := os.Open(cmd.Path)
	if err != nil {
		return err
	}
	defer f.Close()

	// Transcribe and classify
	turns, err := service.Transcribe(app.ctx, f, filepath.Base(cmd.Path), app.opts(cmd.Language)...)
	if err != nil {
		return err
	}
	return writeTurns(app, turns, cmd.Format)
}
