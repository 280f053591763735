package presenter

import "github.com/sirupsen/logrus"

var logger = logrus.WithField("component", "presenter")
