package controllers

import (
	"errors"

	pkgerrors "github.com/sahajbill/counter/pkg/errors"
	"github.com/sahajbill/counter/pkg/upstream"
)

// wrapUpstream maps a raw backend error to the coded form handlers return.
// A 401 from the backend means the forwarded token was rejected there.
func wrapUpstream(err error, action string) error {
	var apiErr *upstream.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.Status {
		case 401:
			return pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, upstreamMessage(apiErr, "invalid credentials"))
		case 404:
			return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, upstreamMessage(apiErr, action+" not found"))
		}
		return pkgerrors.Wrap(pkgerrors.CodeUpstream, err, upstreamMessage(apiErr, action+" failed"))
	}
	return pkgerrors.Wrap(pkgerrors.CodeUpstream, err, action+" failed")
}

func upstreamMessage(apiErr *upstream.APIError, fallback string) string {
	if apiErr != nil && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
