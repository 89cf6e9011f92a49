// Command zlob is a CLI front end for the zlob glob engine: glob, match,
// ignore-check, multi, and watch subcommands built on cobra/pflag, with
// .zlobrc layered configuration via viper and flag-combination validation
// via go-playground/validator.
package main

import (
	"log"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.SetFlags(0)
		log.Println("zlob:", err)
		os.Exit(1)
	}
}
