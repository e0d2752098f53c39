package errors

import (
	"fmt"
	"testing"
)

func TestExitError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *ExitError
		want string
	}{
		{
			name: "with underlying error",
			err:  NewExitError(ErrNotInModule, ExitUser),
			want: "not inside a module",
		},
		{
			name: "with wrapped error",
			err:  NewExitError(fmt.Errorf("loading config: %w", ErrInvalidConfig), ExitUser),
			want: "loading config: invalid configuration",
		},
		{
			name: "nil underlying error",
			err:  NewExitError(nil, ExitUser),
			want: "exit code 1",
		},
		{
			name: "silent exit",
			err:  NewSilentExit(3),
			want: "exit code 3",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("ExitError.Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExitError_Unwrap(t *testing.T) {
	tests := []struct {
		name       string
		err        *ExitError
		wantTarget error
		wantIs     bool
	}{
		{
			name:       "unwrap to sentinel error",
			err:        NewExitError(ErrToolchainMissing, ExitUser),
			wantTarget: ErrToolchainMissing,
			wantIs:     true,
		},
		{
			name:       "unwrap through cockroach wrap",
			err:        NewExitError(Wrap(ErrNotInModule, "checking module root"), ExitUser),
			wantTarget: ErrNotInModule,
			wantIs:     true,
		},
		{
			name:       "no match for different sentinel",
			err:        NewExitError(ErrNotFound, ExitUser),
			wantTarget: ErrInvalidConfig,
			wantIs:     false,
		},
		{
			name:       "nil underlying error",
			err:        NewExitError(nil, ExitUser),
			wantTarget: ErrNotFound,
			wantIs:     false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.wantTarget); got != tt.wantIs {
				t.Errorf("Is() = %v, want %v", got, tt.wantIs)
			}
		})
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"plain error", New("boom"), ExitUser},
		{"exit error", NewSystemError(New("disk"), "check disk"), ExitSystem},
		{"wrapped exit error", Wrap(NewSilentExit(4), "validate"), 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCode(tt.err); got != tt.want {
				t.Errorf("ExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestNewConstructors(t *testing.T) {
	t.Run("NewExitErrorWithSuggestion", func(t *testing.T) {
		err := New("oops")
		e := NewExitErrorWithSuggestion(err, 123, "try this")
		if e.Err != err {
			t.Errorf("Err = %v, want %v", e.Err, err)
		}
		if e.Code != 123 {
			t.Errorf("Code = %d, want 123", e.Code)
		}
		if e.Suggestion != "try this" {
			t.Errorf("Suggestion = %q, want 'try this'", e.Suggestion)
		}
	})

	t.Run("NewUserError", func(t *testing.T) {
		e := NewUserError(New("user error"), "check input")
		if e.Code != ExitUser {
			t.Errorf("Code = %d, want %d", e.Code, ExitUser)
		}
	})

	t.Run("NewSystemError", func(t *testing.T) {
		e := NewSystemError(New("system error"), "check logs")
		if e.Code != ExitSystem {
			t.Errorf("Code = %d, want %d", e.Code, ExitSystem)
		}
	})

	t.Run("NewConfigError", func(t *testing.T) {
		e := NewConfigError(New("config error"))
		if e.Code != ExitUser {
			t.Errorf("Code = %d, want %d", e.Code, ExitUser)
		}
		if e.Suggestion != "Run: modcheck doctor" {
			t.Errorf("Suggestion = %q, want 'Run: modcheck doctor'", e.Suggestion)
		}
	})

	t.Run("NewSilentExit", func(t *testing.T) {
		e := NewSilentExit(2)
		if !e.Silent || e.Code != 2 || e.Err != nil {
			t.Errorf("NewSilentExit(2) = %+v", e)
		}
	})
}

func TestErrorWrappingChain(t *testing.T) {
	wrappedOnce := Wrap(ErrInvalidFormat, "parsing --format")
	wrappedTwice := Wrapf(wrappedOnce, "format %q", "xml:out")
	exitErr := NewExitError(wrappedTwice, ExitUser)

	if !Is(exitErr, ErrInvalidFormat) {
		t.Error("Is() should find ErrInvalidFormat through wrapping chain")
	}

	var target *ExitError
	if !As(exitErr, &target) {
		t.Fatal("As() should find ExitError")
	}
	if target.Code != ExitUser {
		t.Errorf("ExitError.Code = %d, want %d", target.Code, ExitUser)
	}

	want := `format "xml:out": parsing --format: invalid report format`
	if got := exitErr.Error(); got != want {
		t.Errorf("ExitError.Error() = %q, want %q", got, want)
	}
}
