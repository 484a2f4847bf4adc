package main

import (
	"errors"
	"os"

	md2typst "github.com/alnah/go-md2typst"
	"github.com/alnah/go-md2typst/internal/config"
	"github.com/alnah/go-md2typst/internal/fonts"
)

// Exit codes for the md2typst CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess  = 0 // Successful conversion
	ExitGeneral  = 1 // General/unexpected error, or a failed batch
	ExitUsage    = 2 // Invalid flags, config, or validation
	ExitIO       = 3 // File not found, permission denied
	ExitCompiler = 4 // typst missing or compile diagnostics
)

// exitCodeFor returns the exit code for err, matching wrapped errors.
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	if errors.Is(err, md2typst.ErrCompilerNotFound) ||
		errors.Is(err, md2typst.ErrCompile) {
		return ExitCompiler
	}

	if errors.Is(err, ErrUsage) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidField) ||
		errors.Is(err, md2typst.ErrEmptyMarkdown) ||
		errors.Is(err, md2typst.ErrStyleNotFound) ||
		errors.Is(err, md2typst.ErrInvalidTemplate) ||
		errors.Is(err, md2typst.ErrInvalidAssetPath) ||
		errors.Is(err, ErrMultipleInputsNeedDir) ||
		errors.Is(err, ErrConflictingTOC) ||
		errors.Is(err, ErrInvalidExtension) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, ErrWatchNeedsFiles) {
		return ExitUsage
	}

	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadMarkdown) ||
		errors.Is(err, ErrWritePDF) ||
		errors.Is(err, ErrCreateOutputDir) ||
		errors.Is(err, fonts.ErrDownload) {
		return ExitIO
	}

	return ExitGeneral
}
