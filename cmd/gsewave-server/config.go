package main

import (
	"os"
	"path"
	"time"

	"github.com/seisio/gsewave/cmd/gsewave-server/api"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

type Configuration struct {
	SpoolPath string

	API api.Config

	ShutdownTimeout time.Duration

	Logging struct {
		Telegram *struct {
			AppName   string
			AuthToken string
			ChatID    string
		}
	}
}

var ConfigDefault = Configuration{
	API: api.Config{
		Address:      ":8080",
		ServeTimeout: 30 * time.Second,
	},
	ShutdownTimeout: 5 * time.Second,
}

// readConfigurationFile does what the name implies
// kills the application when there is an error
func readConfigurationFile(confpath string) Configuration {
	conf := ConfigDefault

	if confpath == "" {
		return conf
	}

	logrus.WithField("path", confpath).Info("loading configuration file")

	f, err := os.Open(confpath)
	if err != nil {
		logrus.WithError(err).Fatal("could not open configuration file")
	}
	defer f.Close()

	err = yaml.NewDecoder(f).Decode(&conf)
	if err != nil {
		logrus.WithError(err).Fatal("could not parse configuration file")
	}

	if conf.SpoolPath != "" && !path.IsAbs(conf.SpoolPath) {
		conf.SpoolPath = path.Join(path.Dir(confpath), conf.SpoolPath)
	}

	return conf
}
