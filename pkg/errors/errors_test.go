// pkg/errors/errors_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test error creation, wrapping, and utility functions

package errors_test

import (
	stderrors "errors"
	"io/fs"
	"testing"

	"github.com/arthur-debert/keeper/pkg/errors"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    errors.ErrorCode
		message string
		wantStr string
	}{
		{
			name:    "not_found_error",
			code:    errors.ErrNotFound,
			message: "codec not found",
			wantStr: "[NOT_FOUND] codec not found",
		},
		{
			name:    "poisoned_error",
			code:    errors.ErrPoisoned,
			message: "registry is poisoned",
			wantStr: "[POISONED] registry is poisoned",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := errors.New(tt.code, tt.message)

			if err.Code != tt.code {
				t.Errorf("New() code = %v, want %v", err.Code, tt.code)
			}

			if err.Message != tt.message {
				t.Errorf("New() message = %q, want %q", err.Message, tt.message)
			}

			if err.Details == nil {
				t.Error("New() details should be initialized")
			}

			if got := err.Error(); got != tt.wantStr {
				t.Errorf("Error() = %q, want %q", got, tt.wantStr)
			}
		})
	}
}

func TestNewf(t *testing.T) {
	err := errors.Newf(errors.ErrConfigValid, "unknown codec %q", "xml")

	if err.Message != `unknown codec "xml"` {
		t.Errorf("Newf() message = %q", err.Message)
	}
}

func TestWrap(t *testing.T) {
	baseErr := stderrors.New("base error")

	t.Run("wrap_non_nil_error", func(t *testing.T) {
		err := errors.Wrap(baseErr, errors.ErrSerialize, "encode failed")

		if err.Code != errors.ErrSerialize {
			t.Errorf("Wrap() code = %v, want %v", err.Code, errors.ErrSerialize)
		}

		if err.Wrapped != baseErr {
			t.Error("Wrap() should preserve wrapped error")
		}

		wantStr := "[SERIALIZE] encode failed: base error"
		if got := err.Error(); got != wantStr {
			t.Errorf("Error() = %q, want %q", got, wantStr)
		}
	})

	t.Run("wrap_nil_error_returns_nil", func(t *testing.T) {
		err := errors.Wrap(nil, errors.ErrInternal, "internal error")
		if err != nil {
			t.Error("Wrap(nil) should return nil")
		}
	})
}

func TestWrapPath(t *testing.T) {
	pathErr := &fs.PathError{Op: "open", Path: "/data/settings.json", Err: fs.ErrNotExist}

	err := errors.WrapPath(pathErr, errors.ErrIO, "read", "/data/settings.json")

	if !errors.IsErrorCode(err, errors.ErrIO) {
		t.Fatalf("WrapPath() code = %v, want IO", err.Code)
	}
	if err.Details["path"] != "/data/settings.json" {
		t.Errorf("WrapPath() path detail = %v", err.Details["path"])
	}
	if err.Details["op"] != "read" {
		t.Errorf("WrapPath() op detail = %v", err.Details["op"])
	}
	if !stderrors.Is(err, fs.ErrNotExist) {
		t.Error("WrapPath() should keep fs.ErrNotExist reachable")
	}

	var target *fs.PathError
	if !stderrors.As(err, &target) {
		t.Error("WrapPath() should keep *fs.PathError reachable")
	}

	if errors.WrapPath(nil, errors.ErrIO, "read", "x") != nil {
		t.Error("WrapPath(nil) should return nil")
	}
}

func TestWithDetail(t *testing.T) {
	err := errors.New(errors.ErrDeserialize, "bad bytes").
		WithDetail("path", "/test/path").
		WithDetail("codec", "json")

	if err.Details["path"] != "/test/path" {
		t.Errorf("WithDetail() path = %v, want %v", err.Details["path"], "/test/path")
	}

	if err.Details["codec"] != "json" {
		t.Errorf("WithDetail() codec = %v, want %v", err.Details["codec"], "json")
	}
}

func TestIs(t *testing.T) {
	err1 := errors.New(errors.ErrIO, "error 1")
	err2 := errors.New(errors.ErrIO, "error 2")
	err3 := errors.New(errors.ErrDeserialize, "error 3")

	t.Run("same_code_is_equal", func(t *testing.T) {
		if !err1.Is(err2) {
			t.Error("Is() should return true for same code")
		}
	})

	t.Run("different_code_not_equal", func(t *testing.T) {
		if err1.Is(err3) {
			t.Error("Is() should return false for different codes")
		}
	})

	t.Run("works_with_errors_Is", func(t *testing.T) {
		if !stderrors.Is(err1, err2) {
			t.Error("errors.Is() should work with KeeperError")
		}
	})
}

func TestIsErrorCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     errors.ErrorCode
		expected bool
	}{
		{
			name:     "matching_code",
			err:      errors.New(errors.ErrNotFound, "not found"),
			code:     errors.ErrNotFound,
			expected: true,
		},
		{
			name:     "different_code",
			err:      errors.New(errors.ErrNotFound, "not found"),
			code:     errors.ErrInternal,
			expected: false,
		},
		{
			name:     "wrapped_error",
			err:      errors.Wrap(stderrors.New("base"), errors.ErrDataDir, "no home"),
			code:     errors.ErrDataDir,
			expected: true,
		},
		{
			name:     "non_keeper_error",
			err:      stderrors.New("standard error"),
			code:     errors.ErrNotFound,
			expected: false,
		},
		{
			name:     "nil_error",
			err:      nil,
			code:     errors.ErrNotFound,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errors.IsErrorCode(tt.err, tt.code); got != tt.expected {
				t.Errorf("IsErrorCode() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetErrorCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected errors.ErrorCode
	}{
		{
			name:     "keeper_error",
			err:      errors.New(errors.ErrSerialize, "encode"),
			expected: errors.ErrSerialize,
		},
		{
			name:     "standard_error",
			err:      stderrors.New("standard error"),
			expected: errors.ErrUnknown,
		},
		{
			name:     "nil_error",
			err:      nil,
			expected: errors.ErrUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errors.GetErrorCode(tt.err); got != tt.expected {
				t.Errorf("GetErrorCode() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetErrorDetails(t *testing.T) {
	err := errors.New(errors.ErrIO, "write").WithDetail("path", "a.json")
	if got := errors.GetErrorDetails(err); got["path"] != "a.json" {
		t.Errorf("GetErrorDetails() = %v", got)
	}
	if got := errors.GetErrorDetails(stderrors.New("plain")); got != nil {
		t.Errorf("GetErrorDetails(plain) = %v, want nil", got)
	}
}

func TestErrorChaining(t *testing.T) {
	rootCause := stderrors.New("root cause")
	ioErr := errors.Wrap(rootCause, errors.ErrIO, "cannot read file")
	configErr := errors.Wrap(ioErr, errors.ErrConfigLoad, "failed to load config")

	t.Run("top_level_has_correct_code", func(t *testing.T) {
		if !errors.IsErrorCode(configErr, errors.ErrConfigLoad) {
			t.Error("Top level should have ErrConfigLoad code")
		}
	})

	t.Run("can_find_middle_error", func(t *testing.T) {
		var keeperErr *errors.KeeperError
		if stderrors.As(configErr.Unwrap(), &keeperErr) {
			if !errors.IsErrorCode(keeperErr, errors.ErrIO) {
				t.Error("Middle error should have ErrIO code")
			}
		}
	})

	t.Run("can_find_root_cause", func(t *testing.T) {
		if !stderrors.Is(configErr, rootCause) {
			t.Error("Should find root cause with errors.Is")
		}
	})
}
