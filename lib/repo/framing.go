package repo

import (
	"net/http"
	"strconv"

	"github.com/pkg/errors"
)

const (
	HeaderReturnCode   = "X-Git-Return-Code"
	HeaderStderrLength = "X-Git-Stderr-Length"
)

// EncodeResult writes a result as a body with stdout followed by stderr,
// plus the headers needed to split them again.
func EncodeResult(header http.Header, result *Result) []byte {
	header.Set(HeaderReturnCode, strconv.Itoa(result.ExitCode))
	header.Set(HeaderStderrLength, strconv.Itoa(len(result.Stderr)))

	body := make([]byte, 0, len(result.Stdout)+len(result.Stderr))
	body = append(body, result.Stdout...)
	body = append(body, result.Stderr...)
	return body
}

// IsFramed tells if the headers come from EncodeResult.
func IsFramed(header http.Header) bool {
	return header.Get(HeaderReturnCode) != ""
}

func DecodeResult(header http.Header, body []byte) (*Result, error) {
	exitCode, err := strconv.Atoi(header.Get(HeaderReturnCode))
	if err != nil {
		return nil, errors.Wrapf(err, "invalid %v header", HeaderReturnCode)
	}

	stderrLength := 0
	if v := header.Get(HeaderStderrLength); v != "" {
		stderrLength, err = strconv.Atoi(v)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid %v header", HeaderStderrLength)
		}
	}

	if stderrLength < 0 || stderrLength > len(body) {
		return nil, errors.Errorf("stderr length %v outside of body with %v bytes", stderrLength, len(body))
	}

	split := len(body) - stderrLength
	return &Result{
		Stdout:   string(body[:split]),
		Stderr:   string(body[split:]),
		ExitCode: exitCode,
	}, nil
}
