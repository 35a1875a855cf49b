/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package cluster

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	cnserrors "github.com/NVIDIA/cluster-definition/pkg/errors"
	"github.com/NVIDIA/cluster-definition/pkg/header"
	"github.com/NVIDIA/cluster-definition/pkg/schema"
	"github.com/google/uuid"
	"golang.org/x/text/language"
)

// Option is a functional option for configuring Validator instances.
type Option func(*Validator)

// WithVersion sets the version string included in reports.
func WithVersion(version string) Option {
	return func(v *Validator) {
		v.version = version
	}
}

// WithLocale sets the locale used for messages when the caller does not
// request one. Unsupported locales fall back to English.
func WithLocale(tag language.Tag) Option {
	return func(v *Validator) {
		v.locale = tag
	}
}

// Validator checks cluster definitions against Schema, Defaults and Rules.
// It is immutable and safe for concurrent use.
type Validator struct {
	engine    *schema.Engine
	formatter *schema.Formatter
	locale    language.Tag
	version   string
}

// NewValidator compiles the cluster schema. An error means the schema,
// rules or message tables are malformed.
func NewValidator(opts ...Option) (*Validator, error) {
	v := &Validator{locale: DefaultLocale}
	for _, opt := range opts {
		opt(v)
	}

	defaults, err := loadDefaults()
	if err != nil {
		return nil, cnserrors.Wrap(cnserrors.ErrCodeSchemaConstruction, "invalid default document", err)
	}

	reg, err := Registry()
	if err != nil {
		return nil, err
	}

	v.engine, err = schema.NewEngine(Schema(),
		schema.WithRegistry(reg),
		schema.WithDefaults(defaults),
		schema.WithRules(Rules()...),
	)
	if err != nil {
		return nil, err
	}

	if v.formatter, err = NewFormatter(); err != nil {
		return nil, err
	}
	v.locale = v.formatter.Match(v.locale)
	return v, nil
}

// MustNewValidator is NewValidator that panics on error.
func MustNewValidator(opts ...Option) *Validator {
	v, err := NewValidator(opts...)
	if err != nil {
		panic(err)
	}
	return v
}

// Formatter returns the message formatter.
func (v *Validator) Formatter() *schema.Formatter { return v.formatter }

// Locale returns the default message locale.
func (v *Validator) Locale() language.Tag { return v.locale }

// Version returns the configured version string.
func (v *Validator) Version() string { return v.version }

// Defaults returns a copy of the default document.
func (v *Validator) Defaults() map[string]any { return v.engine.Defaults() }

// Validate merges the defaults into raw and checks the result. raw is not
// modified.
func (v *Validator) Validate(raw map[string]any) *schema.Result {
	start := time.Now()
	res := v.engine.Validate(raw)
	duration := time.Since(start)

	validationDuration.Observe(duration.Seconds())
	result := "valid"
	if !res.Valid() {
		result = "invalid"
	}
	validationTotal.WithLabelValues(result).Inc()
	for _, viol := range res.Violations {
		violationsTotal.WithLabelValues(string(viol.Kind)).Inc()
	}

	slog.Debug("validation completed",
		"valid", res.Valid(),
		"violations", len(res.Violations),
		"duration", duration,
	)
	return res
}

// SelfCheck fails when the schema and defaults reject a single-master cluster.
// It bypasses the validation metrics and serves as a readiness check.
func (v *Validator) SelfCheck(_ context.Context) error {
	res := v.engine.Validate(map[string]any{"hosts": []any{
		map[string]any{"address": "127.0.0.1", "role": "master"},
	}})
	if !res.Valid() {
		return cnserrors.Wrap(cnserrors.ErrCodeUnavailable,
			"validator rejects a minimal cluster definition", v.configError(res))
	}
	return nil
}

// Load returns the normalized document, or a *ConfigError listing every
// violation.
func (v *Validator) Load(raw map[string]any) (map[string]any, error) {
	res := v.Validate(raw)
	if !res.Valid() {
		return nil, v.configError(res)
	}
	return res.Document, nil
}

func (v *Validator) configError(res *schema.Result) *ConfigError {
	e := &ConfigError{
		Violations: res.Violations,
		Messages:   make(map[string][]string, len(res.Violations)),
	}
	for _, viol := range res.Violations {
		s := viol.Subject()
		if _, ok := e.Messages[s]; !ok {
			e.subjects = append(e.subjects, s)
		}
		e.Messages[s] = append(e.Messages[s], v.formatter.FormatIn(v.locale, viol))
	}
	return e
}

// ConfigError is returned by Load for an invalid document.
type ConfigError struct {
	Violations []schema.Violation

	// Messages maps each path or rule name to its rendered messages.
	Messages map[string][]string

	subjects []string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "invalid cluster configuration (%d problems)", len(e.Violations))
	sep := ": "
	for _, s := range e.subjects {
		for _, m := range e.Messages[s] {
			b.WriteString(sep)
			b.WriteString(m)
			sep = "; "
		}
	}
	return b.String()
}

// Unwrap exposes ErrCodeValidationFailed to errors.IsCode.
func (e *ConfigError) Unwrap() error {
	return cnserrors.New(cnserrors.ErrCodeValidationFailed, "cluster configuration is invalid")
}

// ReportKind is the Kind of a Report.
const ReportKind = "ValidationReport"

// Report is the serializable outcome of validating one document.
type Report struct {
	header.Header `json:",inline" yaml:",inline"`

	ID       string         `json:"id" yaml:"id"`
	Source   string         `json:"source,omitempty" yaml:"source,omitempty"`
	Version  string         `json:"version,omitempty" yaml:"version,omitempty"`
	Locale   string         `json:"locale" yaml:"locale"`
	Valid    bool           `json:"valid" yaml:"valid"`
	Errors   []ReportError  `json:"errors,omitempty" yaml:"errors,omitempty"`
	Document map[string]any `json:"document,omitempty" yaml:"document,omitempty"`
}

// ReportError is one rendered violation.
type ReportError struct {
	Path    string `json:"path,omitempty" yaml:"path,omitempty"`
	Rule    string `json:"rule,omitempty" yaml:"rule,omitempty"`
	Kind    string `json:"kind" yaml:"kind"`
	Key     string `json:"key" yaml:"key"`
	Message string `json:"message" yaml:"message"`
}

// ReportOption customizes Report.
type ReportOption func(*Report, *language.Tag)

// ReportSource records where the document was read from.
func ReportSource(source string) ReportOption {
	return func(r *Report, _ *language.Tag) {
		r.Source = source
	}
}

// ReportLocale renders messages in the supported locale closest to tag.
func ReportLocale(tag language.Tag) ReportOption {
	return func(_ *Report, t *language.Tag) {
		*t = tag
	}
}

// ReportDocument includes the normalized document in a valid report.
func ReportDocument() ReportOption {
	return func(r *Report, _ *language.Tag) {
		r.Document = map[string]any{}
	}
}

// Report renders res.
func (v *Validator) Report(res *schema.Result, opts ...ReportOption) *Report {
	r := &Report{
		Header:  *header.New(header.WithKind(ReportKind)),
		ID:      uuid.New().String(),
		Version: v.version,
		Valid:   res.Valid(),
	}
	tag := v.locale
	for _, opt := range opts {
		opt(r, &tag)
	}
	tag = v.formatter.Match(tag)
	r.Locale = tag.String()

	if r.Document != nil {
		r.Document = res.Document
	}
	for _, viol := range res.Violations {
		re := ReportError{
			Rule:    viol.Rule,
			Kind:    string(viol.Kind),
			Key:     string(viol.Key),
			Message: v.formatter.FormatIn(tag, viol),
		}
		if viol.Rule == "" {
			re.Path = viol.Subject()
		}
		r.Errors = append(r.Errors, re)
	}
	return r
}
