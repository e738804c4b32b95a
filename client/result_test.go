package client

import (
	"errors"
	"testing"
)

func TestResultOk(t *testing.T) {
	r := Ok(42)

	if !r.Success() || r.Failure() {
		t.Error("Expected a successful result")
	}
	if r.Value() != 42 {
		t.Errorf("Expected value 42, got %d", r.Value())
	}
	if r.Err() != nil {
		t.Errorf("Expected nil error, got %v", r.Err())
	}

	value, err := r.Unpack()
	if value != 42 || err != nil {
		t.Errorf("Unpack mismatch: %d, %v", value, err)
	}
}

func TestResultFail(t *testing.T) {
	cause := errors.New("it broke")
	r := Fail[int](cause)

	if r.Success() || !r.Failure() {
		t.Error("Expected a failed result")
	}
	if r.Value() != 0 {
		t.Errorf("Expected the zero value, got %d", r.Value())
	}
	if !errors.Is(r.Err(), cause) {
		t.Errorf("Expected the original error, got %v", r.Err())
	}
}
