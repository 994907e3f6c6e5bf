package client

import (
	"errors"
	"net/url"
)

// unwrapURLError strips the *url.Error wrapper, whose message repeats the
// full request URL.
func unwrapURLError(err error) error {
	var ue *url.Error
	if errors.As(err, &ue) {
		return ue.Err
	}
	return err
}
