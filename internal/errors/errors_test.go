package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name         string
		code         string
		wantCategory Category
		wantSeverity Severity
	}{
		{name: "config", code: ErrCodeConfigInvalid, wantCategory: CategoryConfig, wantSeverity: SeverityError},
		{name: "not found is fatal", code: ErrCodeIndexNotFound, wantCategory: CategoryIO, wantSeverity: SeverityFatal},
		{name: "corrupt is fatal", code: ErrCodeIndexCorrupt, wantCategory: CategoryIO, wantSeverity: SeverityFatal},
		{name: "unreadable file is warning", code: ErrCodeFileUnreadable, wantCategory: CategoryExtract, wantSeverity: SeverityWarning},
		{name: "validation", code: ErrCodeInvalidThreshold, wantCategory: CategoryValidation, wantSeverity: SeverityError},
		{name: "internal", code: ErrCodeInternal, wantCategory: CategoryInternal, wantSeverity: SeverityError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code, "boom", nil)
			assert.Equal(t, tt.wantCategory, err.Category)
			assert.Equal(t, tt.wantSeverity, err.Severity)
			assert.Contains(t, err.Error(), tt.code)
		})
	}
}

func TestWrap(t *testing.T) {
	cause := fmt.Errorf("disk on fire")
	err := Wrap(ErrCodeIndexWrite, cause)
	require.NotNil(t, err)
	assert.Equal(t, cause, err.Unwrap())
	assert.True(t, stderrors.Is(err, cause))

	assert.Nil(t, Wrap(ErrCodeIndexWrite, nil))
}

func TestIsByCode(t *testing.T) {
	nf := NotFoundError("/tmp/idx")
	other := New(ErrCodeIndexNotFound, "different message", nil)

	assert.True(t, stderrors.Is(nf, other), "errors with same code should match")
	assert.True(t, IsNotFound(nf))
	assert.True(t, IsFatal(nf))
	assert.False(t, IsNotFound(fmt.Errorf("plain")))
}

func TestNotFoundErrorSuggestion(t *testing.T) {
	err := NotFoundError("/home/u/.defrec/index.json")
	assert.Equal(t, "run 'defrec index' first", GetSuggestion(err))
	assert.Equal(t, "/home/u/.defrec/index.json", err.Details["location"])
}

func TestExtractionError(t *testing.T) {
	cause := fmt.Errorf("permission denied")
	err := ExtractionError("/src/a.py", cause)
	assert.True(t, IsExtractionFailure(err))
	assert.False(t, IsFatal(err))
	assert.Equal(t, "/src/a.py", err.Details["path"])
}

func TestWithDetailChaining(t *testing.T) {
	err := New(ErrCodeScanFailed, "scan failed", nil).
		WithDetail("root", "/src").
		WithDetail("strategy", "walk")
	assert.Equal(t, "/src", err.Details["root"])
	assert.Equal(t, "walk", err.Details["strategy"])
}

func TestGetCodeNonDefrec(t *testing.T) {
	assert.Equal(t, "", GetCode(fmt.Errorf("plain error")))
	assert.Equal(t, Category(""), GetCategory(fmt.Errorf("plain error")))
}
