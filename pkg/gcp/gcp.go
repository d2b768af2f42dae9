// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package gcp holds the pieces shared by the Google Cloud adapters:
// client option construction (credentials, user agent, endpoint overrides)
// and classification of Google API errors into the structured error taxonomy.
package gcp

import (
	"context"
	stderrors "errors"
	"fmt"
	"net"
	"net/http"
	"os"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/NVIDIA/cloud-health-snapshot/pkg/errors"
)

// CloudPlatformScope is the OAuth scope requested for all Google API clients.
const CloudPlatformScope = "https://www.googleapis.com/auth/cloud-platform"

// Options describes how Google API clients are constructed.
type Options struct {
	// CredentialsFile is a service account key file. Empty means application default credentials.
	CredentialsFile string

	// UserAgent is sent with every request.
	UserAgent string

	// Endpoint overrides the service base URL. Used with HTTPClient in tests.
	Endpoint string

	// HTTPClient, when set, is used as-is and no credentials are resolved.
	HTTPClient *http.Client
}

// ClientOptions resolves credentials and returns the options for a Google API client.
func (o Options) ClientOptions(ctx context.Context) ([]option.ClientOption, error) {
	var opts []option.ClientOption
	if o.UserAgent != "" {
		opts = append(opts, option.WithUserAgent(o.UserAgent))
	}
	if o.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(o.Endpoint))
	}
	if o.HTTPClient != nil {
		return append(opts, option.WithHTTPClient(o.HTTPClient)), nil
	}

	var (
		creds *google.Credentials
		err   error
	)
	if o.CredentialsFile != "" {
		data, rerr := os.ReadFile(o.CredentialsFile)
		if rerr != nil {
			return nil, errors.Wrap(errors.ErrCodeUnauthorized, "reading credentials file", rerr)
		}
		creds, err = google.CredentialsFromJSON(ctx, data, CloudPlatformScope) //nolint:staticcheck // key files are operator supplied
	} else {
		creds, err = google.FindDefaultCredentials(ctx, CloudPlatformScope)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeUnauthorized, "getting GCP credentials", err)
	}

	return append(opts, option.WithCredentials(creds)), nil
}

// Classify converts an error returned by a Google API call into a
// StructuredError carrying the operation and context. Nil stays nil.
func Classify(err error, op string, context map[string]any) error {
	if err == nil {
		return nil
	}
	var se *errors.StructuredError
	if stderrors.As(err, &se) {
		return err
	}
	if context == nil {
		context = map[string]any{}
	}
	context["operation"] = op
	return errors.WrapWithContext(codeFor(err), fmt.Sprintf("%s failed", op), err, context)
}

// IsNotFound reports whether err is a Google API 404.
func IsNotFound(err error) bool {
	var gerr *googleapi.Error
	return stderrors.As(err, &gerr) && gerr.Code == http.StatusNotFound
}

func codeFor(err error) errors.ErrorCode {
	var gerr *googleapi.Error
	if stderrors.As(err, &gerr) {
		switch {
		case gerr.Code == http.StatusUnauthorized, gerr.Code == http.StatusForbidden:
			return errors.ErrCodeUnauthorized
		case gerr.Code == http.StatusNotFound:
			return errors.ErrCodeNotFound
		case gerr.Code == http.StatusTooManyRequests:
			return errors.ErrCodeRateLimitExceeded
		case gerr.Code == http.StatusRequestTimeout, gerr.Code == http.StatusGatewayTimeout:
			return errors.ErrCodeTimeout
		case gerr.Code == http.StatusBadRequest:
			return errors.ErrCodeInvalidRequest
		case gerr.Code >= http.StatusInternalServerError:
			return errors.ErrCodeUnavailable
		}
		return errors.ErrCodeInternal
	}

	if stderrors.Is(err, context.DeadlineExceeded) {
		return errors.ErrCodeTimeout
	}
	var nerr net.Error
	if stderrors.As(err, &nerr) && nerr.Timeout() {
		return errors.ErrCodeTimeout
	}
	return errors.ErrCodeInternal
}
