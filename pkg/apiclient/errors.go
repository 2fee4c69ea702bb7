package apiclient

import "errors"

var (
	ErrInvalidBaseURL = errors.New("apiclient.invalid_base_url")
	ErrEncodeBody     = errors.New("apiclient.encode_body_failed")
	ErrRequestFailed  = errors.New("apiclient.request_failed")
	ErrReadBody       = errors.New("apiclient.read_body_failed")
	ErrBodyTooLarge   = errors.New("apiclient.body_too_large")
	ErrNotJSON        = errors.New("apiclient.not_json")
	ErrDecode         = errors.New("apiclient.decode_failed")
)
