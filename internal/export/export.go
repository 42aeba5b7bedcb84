// Package export serializes rendered artifacts into downloadable files: the resume
// document, the portfolio site archive and its full-page preview, and PDFs.
package export

import (
	"fmt"
	"regexp"
	"strings"
)

// Default names used when a value is missing.
const (
	DefaultBaseName    = "resume"
	DefaultProduct     = "buildmyfolio"
	DefaultCandidate   = "Candidate"
	DefaultSiteRoot    = "portfolio-site"
	ResumeDocType      = "application/msword"
	ZipType            = "application/zip"
	HTMLType           = "text/html; charset=utf-8"
	PDFType            = "application/pdf"
	resumeDocSuffix    = "-resume.doc"
	siteFolderSuffix   = "-site"
	resumeDocSelector  = "#resumeDoc"
	resumeNameSelector = ".resume-name"
)

// Notice is an error whose text is shown to the user as-is.
type Notice string

func (n Notice) Error() string {
	return string(n)
}

// Precondition failures.
const (
	ErrNoResume    Notice = "Generate a resume first."
	ErrNoPortfolio Notice = "Generate your portfolio first."
	ErrArchive     Notice = "Unable to create zip package."
)

// PreconditionError reports an export that was aborted before producing any output.
type PreconditionError struct {
	Action string
	Cause  error
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("%s aborted: %v", e.Action, e.Cause)
}

func (e *PreconditionError) Unwrap() error {
	return e.Cause
}

// UserMessage returns the message to show the user.
func (e *PreconditionError) UserMessage() string {
	return e.Cause.Error()
}

// File is a generated download.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

var nonAlnumRun = regexp.MustCompile(`[^a-z0-9]+`)

// SanitizeFilename lower-cases value, replaces every run of characters outside [a-z0-9]
// with one hyphen, and trims leading and trailing hyphens. An empty value uses fallback.
func SanitizeFilename(value, fallback string) string {
	if value == "" {
		value = fallback
	}
	s := nonAlnumRun.ReplaceAllString(strings.ToLower(value), "-")
	s = strings.TrimPrefix(s, "-")
	s = strings.TrimSuffix(s, "-")
	if s == "" && value != fallback {
		return SanitizeFilename(fallback, fallback)
	}
	return s
}
