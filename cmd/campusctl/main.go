package main

import (
	"os"

	"github.com/sirupsen/logrus"

	"campus_hub/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		logrus.WithError(err).Error("campusctl failed")
		os.Exit(1)
	}
}
