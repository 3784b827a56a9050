package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	// Packages
	tablewriter "github.com/djthorpe/go-tablewriter"
	dialogue "github.com/mutablelogic/go-callreview/pkg/dialogue"
	schema "github.com/mutablelogic/go-callreview/pkg/schema"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

type ProcessCmd struct {
	Path     string `arg:"" help:"JSON file with an array of utterances, or an object with an utterances field" type:"existingfile"`
	MinWords *int   `flag:"min-words" help:"Fragment threshold, overrides the configuration"`
	Format   string `flag:"format" enum:"table,text,srt,vtt" default:"table" help:"Output format"`
}

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

func (cmd *ProcessCmd) Run(app *Globals) error {
	data, err := os.ReadFile(cmd.Path)
	if err != nil {
		return err
	}
	utterances, err := decodeUtterances(data)
	if err != nil {
		return fmt.Errorf("%s: %w", cmd.Path, err)
	}

	service, err := app.service(false)
	if err != nil {
		return err
	}

	var turns []schema.Turn
	if cmd.MinWords != nil {
		turns, err = service.ProcessWithMinWords(utterances, *cmd.MinWords)
	} else {
		turns, err = service.Process(utterances)
	}
	if err != nil {
		return err
	}
	return writeTurns(app, turns, cmd.Format)
}

////////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func decodeUtterances(data []byte) ([]schema.Utterance, error) {
	data = bytes.TrimSpace(data)
	if bytes.HasPrefix(data, []byte("[")) {
		var utterances []schema.Utterance
		if err := json.Unmarshal(data, &utterances); err != nil {
			return nil, err
		}
		return utterances, nil
	}
	var doc struct {
		Utterances []schema.Utterance `json:"utterances"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return doc.Utterances, nil
}

func writeTurns(app *Globals, turns []schema.Turn, format string) error {
	if format == "table" {
		return app.writer.Write(turns, tablewriter.OptHeader())
	}
	return dialogue.Write(os.Stdout, format, turns)
}
