// Package errors provides structured error handling for kitchenx.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Category represents the error category.
type Category string

// Error categories.
const (
	CategoryConfig   Category = "configuration"
	CategoryDocker   Category = "docker"
	CategoryBuild    Category = "build"
	CategoryHostVars Category = "hostvars"
	CategoryIO       Category = "io"
	CategoryInternal Category = "internal"
)

// Error codes for each category.
const (
	// Config errors
	CodeConfigNotFound   = "CONFIG_NOT_FOUND"
	CodeConfigParse      = "CONFIG_PARSE"
	CodeConfigValidation = "CONFIG_VALIDATION"

	// Docker errors
	CodeDockerNotRunning = "DOCKER_NOT_RUNNING"
	CodeDockerConnect    = "DOCKER_CONNECT"
	CodeDockerImage      = "DOCKER_IMAGE"

	// Build errors
	CodeBuildFailed      = "BUILD_FAILED"
	CodePathResolution   = "PATH_RESOLUTION"
	CodeResourceCreation = "RESOURCE_CREATION"
	CodeImageIDParse     = "IMAGE_ID_PARSE"

	// Host vars errors
	CodeHostVarsParse = "HOSTVARS_PARSE"

	// IO errors
	CodeFileRead = "FILE_READ"

	// Internal errors
	CodeInternal = "INTERNAL"
)

// KXError is a structured error with category, code, and user-friendly hints.
type KXError struct {
	Category Category
	Code     string
	Message  string
	Cause    error
	Hint     string
	Context  map[string]string
}

// Error implements the error interface.
func (e *KXError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s/%s] %s: %v", e.Category, e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s/%s] %s", e.Category, e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *KXError) Unwrap() error {
	return e.Cause
}

// WithHint adds a hint to the error.
func (e *KXError) WithHint(hint string) *KXError {
	e.Hint = hint
	return e
}

// WithContext adds context to the error.
func (e *KXError) WithContext(key, value string) *KXError {
	if e.Context == nil {
		e.Context = make(map[string]string)
	}
	e.Context[key] = value
	return e
}

// New creates a new KXError.
func New(category Category, code string, message string) *KXError {
	return &KXError{
		Category: category,
		Code:     code,
		Message:  message,
		Context:  make(map[string]string),
	}
}

// Newf creates a new KXError with formatted message.
func Newf(category Category, code string, format string, args ...interface{}) *KXError {
	return New(category, code, fmt.Sprintf(format, args...))
}

// Wrap wraps an existing error as a KXError.
func Wrap(err error, category Category, code string, message string) *KXError {
	e := New(category, code, message)
	e.Cause = err
	return e
}

// Wrapf wraps an existing error with a formatted message.
func Wrapf(err error, category Category, code string, format string, args ...interface{}) *KXError {
	return Wrap(err, category, code, fmt.Sprintf(format, args...))
}

// Is checks if the error is a KXError with the given code.
func Is(err error, code string) bool {
	var kxErr *KXError
	if errors.As(err, &kxErr) {
		return kxErr.Code == code
	}
	return false
}

// GetCategory returns the category of a KXError, or empty string if not a KXError.
func GetCategory(err error) Category {
	var kxErr *KXError
	if errors.As(err, &kxErr) {
		return kxErr.Category
	}
	return ""
}

// GetCode returns the code of a KXError, or empty string if not a KXError.
func GetCode(err error) string {
	var kxErr *KXError
	if errors.As(err, &kxErr) {
		return kxErr.Code
	}
	return ""
}

// AsKXError attempts to convert an error to a KXError.
func AsKXError(err error) (*KXError, bool) {
	var kxErr *KXError
	if errors.As(err, &kxErr) {
		return kxErr, true
	}
	return nil, false
}

// Config errors constructors.

// ConfigNotFound creates a config not found error.
func ConfigNotFound(path string) *KXError {
	return Newf(CategoryConfig, CodeConfigNotFound, "config file not found: %s", path).
		WithContext("path", path).
		WithHint("Pass --config with an existing file or omit it to use defaults")
}

// ConfigParse creates a config parse error.
func ConfigParse(path string, cause error) *KXError {
	return Wrap(cause, CategoryConfig, CodeConfigParse, "failed to parse configuration").
		WithContext("path", path).
		WithHint("Check for YAML or JSON syntax errors in the configuration file")
}

// ConfigValidation creates a validation error.
func ConfigValidation(message string) *KXError {
	return New(CategoryConfig, CodeConfigValidation, message)
}

// Docker errors constructors.

// DockerNotRunning creates a docker not running error.
func DockerNotRunning(cause error) *KXError {
	return Wrap(cause, CategoryDocker, CodeDockerNotRunning, "Docker daemon is not running").
		WithHint("Start the Docker daemon or check the configured socket")
}

// DockerConnect creates a docker client construction error.
func DockerConnect(cause error) *KXError {
	return Wrap(cause, CategoryDocker, CodeDockerConnect, "failed to connect to Docker").
		WithHint("Ensure Docker is running and you have permission to access the Docker socket")
}

// DockerImage creates an image inspection error.
func DockerImage(image string, cause error) *KXError {
	return Wrapf(cause, CategoryDocker, CodeDockerImage, "image %s not found after build", image).
		WithContext("image", image)
}

// Build errors constructors.

// BuildFailed creates a build failed error. Stderr from the build tool is
// attached as context so it survives into the user-facing report.
func BuildFailed(exitCode int, stderr string, cause error) *KXError {
	e := Wrap(cause, CategoryBuild, CodeBuildFailed, "image build failed").
		WithContext("exit_code", fmt.Sprintf("%d", exitCode)).
		WithHint("Check the build output for errors")
	if s := strings.TrimSpace(stderr); s != "" {
		e.WithContext("stderr", s)
	}
	return e
}

// PathResolution creates an error for a definition path that cannot be
// expressed relative to the working directory.
func PathResolution(path, cwd string, cause error) *KXError {
	return Wrap(cause, CategoryBuild, CodePathResolution, "cannot express build definition path relative to working directory").
		WithContext("path", path).
		WithContext("cwd", cwd).
		WithHint("Place build_tempdir inside the working directory or disable build_context")
}

// ResourceCreation creates an error for a temp file that could not be created or written.
func ResourceCreation(dir string, cause error) *KXError {
	return Wrap(cause, CategoryBuild, CodeResourceCreation, "failed to create build definition file").
		WithContext("dir", dir).
		WithHint("Ensure build_tempdir exists and is writable")
}

// ImageIDParse creates an error for a successful build whose output carried no image id.
func ImageIDParse(output string) *KXError {
	e := New(CategoryBuild, CodeImageIDParse, "could not parse image id from build output")
	if s := strings.TrimSpace(output); s != "" {
		lines := strings.Split(s, "\n")
		e.WithContext("last_line", lines[len(lines)-1])
	}
	return e
}

// Host vars errors constructors.

// HostVarsParse creates a host vars parse error.
func HostVarsParse(path string, cause error) *KXError {
	return Wrap(cause, CategoryHostVars, CodeHostVarsParse, "failed to parse host vars").
		WithContext("path", path)
}

// IO errors constructors.

// FileRead creates a file read error.
func FileRead(path string, cause error) *KXError {
	return Wrapf(cause, CategoryIO, CodeFileRead, "failed to read file: %s", path).
		WithContext("path", path)
}

// Internal creates an internal error.
func Internal(message string, cause error) *KXError {
	return Wrap(cause, CategoryInternal, CodeInternal, message)
}
