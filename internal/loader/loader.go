package loader

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/pb33f/libopenapi"
	"github.com/pb33f/libopenapi/datamodel"
	v3 "github.com/pb33f/libopenapi/datamodel/high/v3"
	v3low "github.com/pb33f/libopenapi/datamodel/low/v3"
	"github.com/pb33f/libopenapi/index"
)

var (
	ErrReadDocument       = errors.New("reading OpenAPI document")
	ErrParseDocument      = errors.New("parsing OpenAPI document")
	ErrUnsupportedVersion = errors.New("unsupported OpenAPI version")
)

type Result struct {
	Document *libopenapi.DocumentModel[v3.Document]
	Version  string
	Warnings []string
	RawData  []byte
}

// LoadFile reads and parses a bundled OpenAPI document (JSON or YAML).
// Only references local to the document are followed.
func LoadFile(path string) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadDocument, err)
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving absolute path: %w", err)
	}

	return loadWithConfig(data, newConfig(filepath.Dir(absPath)))
}

// Load parses a document held in memory.
func Load(data []byte) (*Result, error) {
	return loadWithConfig(data, newConfig(""))
}

func newConfig(basePath string) *datamodel.DocumentConfiguration {
	return &datamodel.DocumentConfiguration{
		BasePath:              basePath,
		AllowFileReferences:   false,
		AllowRemoteReferences: false,
		Logger:                slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func loadWithConfig(data []byte, config *datamodel.DocumentConfiguration) (*Result, error) {
	doc, err := libopenapi.NewDocumentWithConfiguration(data, config)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParseDocument, err)
	}

	version := doc.GetVersion()
	if !strings.HasPrefix(version, "3.") {
		return nil, fmt.Errorf("%w: %s (only 3.x supported)", ErrUnsupportedVersion, version)
	}

	model, err := doc.BuildV3Model()
	problems := flattenErrors(err)
	if model == nil {
		// BuildV3Model gives up on any unresolved reference. Build the
		// model directly so those references only surface as warnings.
		model, problems, err = buildLenient(doc.GetSpecInfo(), config, err)
		if err != nil {
			return nil, err
		}
	}

	result := &Result{
		Document: model,
		Version:  version,
		RawData:  data,
	}

	seen := make(map[string]bool)
	for _, e := range problems {
		msg := warningFor(e)
		if seen[msg] {
			continue
		}
		seen[msg] = true
		result.Warnings = append(result.Warnings, msg)
	}

	if strings.HasPrefix(version, "3.0") {
		result.Warnings = append(result.Warnings, "OpenAPI 3.0.x detected; some 3.1 features unavailable")
	}

	return result, nil
}

// buildLenient builds the high level model even when references are
// missing, returning what went wrong alongside it.
func buildLenient(info *datamodel.SpecInfo, config *datamodel.DocumentConfiguration, cause error) (*libopenapi.DocumentModel[v3.Document], []error, error) {
	if cause == nil {
		cause = errors.New("no model produced")
	}
	if info == nil {
		return nil, nil, fmt.Errorf("%w: building model: %w", ErrParseDocument, cause)
	}

	lowDoc, problems := v3low.CreateDocumentFromConfig(info, config)
	if lowDoc == nil {
		if problems == nil {
			problems = cause
		}
		return nil, nil, fmt.Errorf("%w: building model: %w", ErrParseDocument, problems)
	}

	highDoc := v3.NewDocument(lowDoc)
	if lowDoc.Index != nil {
		highDoc.Rolodex = lowDoc.Index.GetRolodex()
	}

	return &libopenapi.DocumentModel[v3.Document]{
		Model: *highDoc,
		Index: lowDoc.Index,
	}, flattenErrors(problems), nil
}

var schemaRefPattern = regexp.MustCompile("#/components/schemas/([^'\"`\\s/]+)")

// warningFor reports a missing schema the same way the renderer does, so a
// single dangling reference yields a single warning.
func warningFor(err error) string {
	var (
		refErr   *index.ResolvingError
		indexErr *index.IndexingError
	)
	missing := errors.As(err, &indexErr) ||
		(errors.As(err, &refErr) && refErr.CircularReference == nil)
	if missing {
		if m := schemaRefPattern.FindStringSubmatch(err.Error()); m != nil {
			return fmt.Sprintf("Reference %s not found in components.schemas", m[1])
		}
	}
	return err.Error()
}

func flattenErrors(err error) []error {
	if err == nil {
		return nil
	}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		var out []error
		for _, e := range joined.Unwrap() {
			out = append(out, flattenErrors(e)...)
		}
		return out
	}
	return []error{err}
}
