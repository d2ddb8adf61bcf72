// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the transport layer between the sync engine and
// the remote storage service.
//
// The primary abstraction is [Transport], which decouples the orchestrator
// from the wire protocol. The package ships an HTTP/REST implementation
// ([NewHTTPTransport]).
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic
// error handling (e.g. [ErrRemoteConflict] for 412, [ErrUnauthorized] for
// 401). Network and authentication failures are reported upward unchanged:
// retry and backoff policy belongs to the embedding application's scheduler,
// not to this engine.
package adapter

import (
	"context"

	"github.com/MKhiriev/go-local-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/transport_mock.go -package=mock

// Transport is the remote side of a sync round. Implementations attach
// authentication from the opaque [models.AuthInfo] and map wire failures to
// this package's sentinel errors.
type Transport interface {
	// FetchSince returns every record of the collection changed strictly
	// after the given server timestamp, together with the server clock and
	// the collection's current identity token.
	FetchSince(ctx context.Context, auth models.AuthInfo, collection string, since int64) (models.FetchResponse, error)

	// Upload sends a batch of outgoing records and returns the per-record
	// outcome. ifUnmodifiedSince carries the client's high-water timestamp;
	// the server answers [ErrRemoteConflict] when its state has advanced
	// past it, in which case the caller re-fetches before retrying.
	Upload(ctx context.Context, auth models.AuthInfo, collection string, ifUnmodifiedSince int64, records []models.OutgoingRecord) (models.UploadResult, error)
}
