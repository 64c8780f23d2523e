package cmdapp

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

//Config keeps the worker settings: config file values overridden by env variables
var Config = viper.New()

//Log is the worker logger, configured from the logger.* settings
var Log = logrus.New()
