package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestErrorFormatting(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "without cause",
			err:  New(ErrCodeTemplateNotFound, "template %q not defined in registry", "jeecg-demo"),
			want: `TEMPLATE_NOT_FOUND: template "jeecg-demo" not defined in registry`,
		},
		{
			name: "with cause",
			err:  Wrap(ErrCodeGitCommand, stderrors.New("exit status 128"), "git pull origin master"),
			want: "GIT_COMMAND: git pull origin master: exit status 128",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIs(t *testing.T) {
	err := New(ErrCodeSubPathNotFound, "sub-path missing")
	if !Is(err, ErrCodeSubPathNotFound) {
		t.Error("Is should match the error's own code")
	}
	if Is(err, ErrCodeGitCommand) {
		t.Error("Is should not match a different code")
	}
	if Is(stderrors.New("plain"), ErrCodeGitCommand) {
		t.Error("Is should not match plain errors")
	}

	// Code checks must survive wrapping with %w.
	wrapped := fmt.Errorf("resolve failed: %w", err)
	if !Is(wrapped, ErrCodeSubPathNotFound) {
		t.Error("Is should unwrap fmt-wrapped errors")
	}
}

func TestUnwrap(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := Wrap(ErrCodeNetwork, cause, "search request failed")
	if !stderrors.Is(err, cause) {
		t.Error("errors.Is should find the wrapped cause")
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeConfigInvalid, "bad config")); got != ErrCodeConfigInvalid {
		t.Errorf("GetCode = %q, want %q", got, ErrCodeConfigInvalid)
	}
	if got := GetCode(stderrors.New("plain")); got != "" {
		t.Errorf("GetCode for plain error = %q, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	err := New(ErrCodeRegistryNotFound, "registry not found at templates.json")
	if got := UserMessage(err); got != "registry not found at templates.json" {
		t.Errorf("UserMessage = %q", got)
	}
	plain := stderrors.New("boom")
	if got := UserMessage(plain); got != "boom" {
		t.Errorf("UserMessage for plain error = %q", got)
	}
}

func TestRateLimitedError(t *testing.T) {
	e := &RateLimitedError{RetryAfter: 30}
	if got := e.Error(); got != "rate limited: retry after 30 seconds" {
		t.Errorf("Error() = %q", got)
	}
	if e.Code() != ErrCodeRateLimited {
		t.Errorf("Code() = %q, want %q", e.Code(), ErrCodeRateLimited)
	}
	if got := (&RateLimitedError{}).Error(); got != "rate limited" {
		t.Errorf("Error() without RetryAfter = %q", got)
	}
}
