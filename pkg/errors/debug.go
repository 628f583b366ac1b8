package errors

import (
	"errors"
	"fmt"

	"github.com/sahajbill/counter/pkg/upstream"
)

type ErrorDump struct {
	TopMessage string `json:"top_message"`
	Code       Code   `json:"code,omitempty"`

	Chain []string `json:"chain,omitempty"`

	UpstreamStatus  int    `json:"upstream_status,omitempty"`
	UpstreamCode    string `json:"upstream_code,omitempty"`
	UpstreamMessage string `json:"upstream_message,omitempty"`
}

func Dump(err error) ErrorDump {
	if err == nil {
		return ErrorDump{}
	}

	d := ErrorDump{
		TopMessage: err.Error(),
	}

	if te := As(err); te != nil {
		d.Code = te.Code()
	}

	for e := err; e != nil; e = errors.Unwrap(e) {
		d.Chain = append(d.Chain, fmt.Sprintf("%T: %v", e, e))
	}

	var apiErr *upstream.APIError
	if errors.As(err, &apiErr) {
		d.UpstreamStatus = apiErr.Status
		d.UpstreamCode = apiErr.Code
		d.UpstreamMessage = apiErr.Message
	}

	return d
}
