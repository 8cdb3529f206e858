// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package grpc

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/MKhiriev/formdesk/internal/logger"
)

func check(t *testing.T, h *Handler, service string) healthpb.HealthCheckResponse_ServingStatus {
	t.Helper()
	resp, err := h.health.Check(context.Background(), &healthpb.HealthCheckRequest{Service: service})
	require.NoError(t, err)
	return resp.GetStatus()
}

func TestNewHandler_StartsNotServing(t *testing.T) {
	h := NewHandler(nil, logger.Nop())

	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, check(t, h, ""))
	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, check(t, h, ServiceName))
}

func TestSetServing(t *testing.T) {
	h := NewHandler(nil, logger.Nop())

	h.SetServing(true)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, check(t, h, ""))
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, check(t, h, ServiceName))

	h.SetServing(false)
	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, check(t, h, ServiceName))
}

func TestHealthCheck_UnknownService(t *testing.T) {
	h := NewHandler(nil, logger.Nop())

	_, err := h.health.Check(context.Background(), &healthpb.HealthCheckRequest{Service: "other"})

	assert.Equal(t, codes.NotFound, status.Code(err))
}

func TestUnaryLogging(t *testing.T) {
	buf := &bytes.Buffer{}
	h := NewHandler(nil, &logger.Logger{Logger: zerolog.New(buf)})

	ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs(traceIDKey, "trace-7"))
	info := &grpc.UnaryServerInfo{FullMethod: "/grpc.health.v1.Health/Check"}

	var seenTrace bool
	resp, err := h.UnaryLogging(ctx, "req", info, func(ctx context.Context, req any) (any, error) {
		logger.FromContext(ctx).Info().Msg("inside")
		seenTrace = bytes.Contains(buf.Bytes(), []byte(`"trace_id":"trace-7"`))
		return "resp", status.Error(codes.Unavailable, "down")
	})

	assert.Equal(t, "resp", resp)
	assert.Equal(t, codes.Unavailable, status.Code(err))
	assert.True(t, seenTrace)

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[len(lines)-1], &entry))
	assert.Equal(t, "/grpc.health.v1.Health/Check", entry["method"])
	assert.Equal(t, "Unavailable", entry["code"])
	assert.Equal(t, "trace-7", entry[logger.TraceIDField])
}
