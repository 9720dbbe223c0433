// Touchline - Sports Analysis Content Platform
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/touchline

package services

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/thejerf/suture/v4"
)

// fakeServer blocks in ListenAndServe until Shutdown when block is set.
type fakeServer struct {
	listenErr   error
	shutdownErr error
	block       bool

	listens   atomic.Int32
	shutdowns atomic.Int32
	started   chan struct{}
	stop      chan struct{}
	stopOnce  sync.Once
}

func newFakeServer() *fakeServer {
	return &fakeServer{
		started: make(chan struct{}, 1),
		stop:    make(chan struct{}),
	}
}

func (f *fakeServer) ListenAndServe() error {
	f.listens.Add(1)
	select {
	case f.started <- struct{}{}:
	default:
	}
	if f.listenErr != nil {
		return f.listenErr
	}
	if f.block {
		<-f.stop
		return http.ErrServerClosed
	}
	return nil
}

func (f *fakeServer) Shutdown(context.Context) error {
	f.shutdowns.Add(1)
	f.stopOnce.Do(func() { close(f.stop) })
	return f.shutdownErr
}

func waitStarted(t *testing.T, f *fakeServer) {
	t.Helper()
	select {
	case <-f.started:
	case <-time.After(time.Second):
		t.Fatal("server did not start")
	}
}

func TestHTTPServerService_Interface(t *testing.T) {
	var _ suture.Service = (*HTTPServerService)(nil)
	var _ HTTPServer = (*http.Server)(nil)
}

func TestNewHTTPServerService_Timeout(t *testing.T) {
	tests := []struct {
		name string
		in   time.Duration
		want time.Duration
	}{
		{"explicit", 3 * time.Second, 3 * time.Second},
		{"zero", 0, defaultShutdownTimeout},
		{"negative", -time.Second, defaultShutdownTimeout},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewHTTPServerService(newFakeServer(), tt.in)
			if svc.shutdownTimeout != tt.want {
				t.Errorf("shutdownTimeout = %v, want %v", svc.shutdownTimeout, tt.want)
			}
			if svc.String() != "http-server" {
				t.Errorf("String() = %q", svc.String())
			}
		})
	}
}

func TestHTTPServerService_GracefulShutdown(t *testing.T) {
	f := newFakeServer()
	f.block = true
	svc := NewHTTPServerService(f, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- svc.Serve(ctx) }()

	waitStarted(t, f)
	cancel()

	select {
	case err := <-errCh:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Serve() = %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
	if f.listens.Load() != 1 || f.shutdowns.Load() != 1 {
		t.Errorf("listens=%d shutdowns=%d, want 1 and 1", f.listens.Load(), f.shutdowns.Load())
	}
}

func TestHTTPServerService_Errors(t *testing.T) {
	bindErr := errors.New("bind: address already in use")
	drainErr := errors.New("drain timeout")

	tests := []struct {
		name    string
		server  func() *fakeServer
		cancel  bool
		wantErr error
	}{
		{
			name: "startup failure",
			server: func() *fakeServer {
				f := newFakeServer()
				f.listenErr = bindErr
				return f
			},
			wantErr: bindErr,
		},
		{
			name: "shutdown failure",
			server: func() *fakeServer {
				f := newFakeServer()
				f.block = true
				f.shutdownErr = drainErr
				return f
			},
			cancel:  true,
			wantErr: drainErr,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := tt.server()
			svc := NewHTTPServerService(f, time.Second)
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			errCh := make(chan error, 1)
			go func() { errCh <- svc.Serve(ctx) }()
			if tt.cancel {
				waitStarted(t, f)
				cancel()
			}

			select {
			case err := <-errCh:
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Serve() = %v, want %v", err, tt.wantErr)
				}
			case <-time.After(2 * time.Second):
				t.Fatal("Serve did not return")
			}
		})
	}
}

func TestHTTPServerService_ClosedExternally(t *testing.T) {
	f := newFakeServer()
	svc := NewHTTPServerService(f, time.Second)
	if err := svc.Serve(context.Background()); err != nil {
		t.Errorf("Serve() = %v, want nil", err)
	}
}

func TestHTTPServerService_UnderSupervisor(t *testing.T) {
	f := newFakeServer()
	f.block = true

	sup := suture.New("test", suture.Spec{
		FailureThreshold: 3,
		FailureBackoff:   10 * time.Millisecond,
		Timeout:          2 * time.Second,
	})
	sup.Add(NewHTTPServerService(f, time.Second))

	ctx, cancel := context.WithCancel(context.Background())
	errCh := sup.ServeBackground(ctx)

	waitStarted(t, f)
	cancel()
	<-errCh

	if f.shutdowns.Load() < 1 {
		t.Error("Shutdown was not called")
	}
}
