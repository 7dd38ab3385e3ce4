/*
Copyright © 2026 Lumen Labs
SPDX-License-Identifier: Apache-2.0
*/

package errors

import (
	"errors"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeConnection, "device unreachable")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if err.Code != ErrCodeConnection {
		t.Errorf("expected code %s, got %s", ErrCodeConnection, err.Code)
	}
	if err.Message != "device unreachable" {
		t.Errorf("expected message 'device unreachable', got %s", err.Message)
	}
	if err.Cause != nil {
		t.Errorf("expected nil cause, got %v", err.Cause)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("dial tcp: i/o timeout")
	err := Wrap(ErrCodeTimeout, "get operation timed out", cause)

	if err.Code != ErrCodeTimeout {
		t.Errorf("expected code %s, got %s", ErrCodeTimeout, err.Code)
	}
	if !errors.Is(err, cause) {
		t.Errorf("expected cause to be wrapped")
	}
}

func TestErrorString(t *testing.T) {
	err := New(ErrCodeConfiguration, "no filter defined")
	want := "[CONFIGURATION] no filter defined"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}

	wrapped := Wrap(ErrCodeParse, "bad response", errors.New("unexpected EOF"))
	want = "[PARSE] bad response: unexpected EOF"
	if wrapped.Error() != want {
		t.Errorf("Error() = %q, want %q", wrapped.Error(), want)
	}
}

func TestCodeOf(t *testing.T) {
	if got := CodeOf(New(ErrCodeAuthentication, "rejected")); got != ErrCodeAuthentication {
		t.Errorf("CodeOf = %s, want %s", got, ErrCodeAuthentication)
	}

	// Codes survive fmt wrapping.
	wrapped := Wrap(ErrCodeConnection, "unreachable", errors.New("refused"))
	if !IsConnection(wrapped) {
		t.Error("IsConnection should be true for wrapped connection error")
	}

	if got := CodeOf(errors.New("plain")); got != "" {
		t.Errorf("CodeOf(plain) = %s, want empty", got)
	}
}

func TestPredicates(t *testing.T) {
	if !IsConfiguration(New(ErrCodeConfiguration, "missing query")) {
		t.Error("IsConfiguration failed")
	}
	if !IsAuthentication(New(ErrCodeAuthentication, "bad password")) {
		t.Error("IsAuthentication failed")
	}
	if !IsParse(New(ErrCodeParse, "garbled")) {
		t.Error("IsParse failed")
	}
	if IsConnection(New(ErrCodeParse, "garbled")) {
		t.Error("IsConnection should be false for parse error")
	}
}
