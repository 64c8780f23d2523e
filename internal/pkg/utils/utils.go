package utils

import (
	"net/url"
	"strings"

	"github.com/airenas/interviewcoach/internal/pkg/cmdapp"
	"github.com/pkg/errors"
)

//GetURLFromConfig retrieves optional URL from config and checks it. Returns "" if not set.
func GetURLFromConfig(name string) (string, error) {
	urlStr := strings.TrimSpace(cmdapp.Config.GetString(name))
	if urlStr == "" {
		return "", nil
	}
	return validateURL(urlStr, name)
}

func validateURL(urlStr, settingName string) (string, error) {
	u, err := url.Parse(urlStr)
	if err != nil {
		return "", errors.Wrapf(err, "Can't parse %s url %s", settingName, URLToLog(urlStr))
	}
	if u.Scheme == "" || u.Host == "" {
		return "", errors.Errorf("Wrong %s url %s", settingName, URLToLog(urlStr))
	}
	return u.String(), nil
}

//URLToLog removes pass from URL
func URLToLog(link string) string {
	u, err := url.Parse(link)
	if err == nil {
		if u.User != nil {
			if _, ok := u.User.Password(); ok {
				u.User = url.UserPassword(u.User.Username(), "----")
			}
		}
		return u.String()
	}
	return "----"
}
