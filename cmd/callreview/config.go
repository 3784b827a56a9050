package main

import (
	"os"
)

type ConfigCmd struct{}

func (cmd *ConfigCmd) Run(app *Globals) error {
	return app.cfg.Write(os.Stdout)
}
