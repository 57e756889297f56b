// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package handler

import "errors"

// errNoHandlersAreCreated is returned by NewHandlers when neither an HTTP nor
// a gRPC address is set, so there would be nothing to serve.
var errNoHandlersAreCreated = errors.New("no handlers are created")
