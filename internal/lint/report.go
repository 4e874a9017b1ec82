package lint

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// ReportFormat selects how a Summary is written to the command output.
type ReportFormat string

// Supported report formats.
const (
	ReportFormatNone ReportFormat = "none"
	ReportFormatText ReportFormat = "text"
	ReportFormatYAML ReportFormat = "yaml"
	ReportFormatJSON ReportFormat = "json"
)

const (
	reportIndentWidthConstant           = 2
	reportJSONIndentConstant            = "  "
	reportTextSectionTemplateConstant   = "No usage found for the following %d %s:\n"
	reportTextEntryTemplateConstant     = "  - %s\n"
	reportTextCleanTemplateConstant     = "All %d %s referenced\n"
	reportTextClassesNounConstant       = "classes"
	reportTextSecretsNounConstant       = "secrets files"
	unsupportedReportFormatTemplate     = "unsupported report format: %s"
	reportEncodingErrorTemplateConstant = "unable to encode report: %w"
)

// ReportFormats lists the accepted report format names, default first.
func ReportFormats() []string {
	return []string{string(ReportFormatNone), string(ReportFormatText), string(ReportFormatYAML), string(ReportFormatJSON)}
}

// WriteReport renders summary to writer in the requested format. ReportFormatNone writes nothing.
func WriteReport(writer io.Writer, summary Summary, format ReportFormat) error {
	switch format {
	case ReportFormatNone:
		return nil
	case ReportFormatText:
		return writeTextReport(writer, summary)
	case ReportFormatYAML:
		encoder := yaml.NewEncoder(writer)
		encoder.SetIndent(reportIndentWidthConstant)
		if encodeError := encoder.Encode(summary); encodeError != nil {
			return fmt.Errorf(reportEncodingErrorTemplateConstant, encodeError)
		}
		return encoder.Close()
	case ReportFormatJSON:
		encoder := json.NewEncoder(writer)
		encoder.SetIndent("", reportJSONIndentConstant)
		if encodeError := encoder.Encode(summary); encodeError != nil {
			return fmt.Errorf(reportEncodingErrorTemplateConstant, encodeError)
		}
		return nil
	default:
		return fmt.Errorf(unsupportedReportFormatTemplate, format)
	}
}

func writeTextReport(writer io.Writer, summary Summary) error {
	builder := &strings.Builder{}
	appendTextSection(builder, summary.Classes, reportTextClassesNounConstant)
	appendTextSection(builder, summary.Secrets, reportTextSecretsNounConstant)
	_, writeError := io.WriteString(writer, builder.String())
	return writeError
}

func appendTextSection(builder *strings.Builder, result *CheckResult, noun string) {
	if result == nil {
		return
	}
	if !result.HasOrphans() {
		fmt.Fprintf(builder, reportTextCleanTemplateConstant, result.Declared, noun)
		return
	}
	fmt.Fprintf(builder, reportTextSectionTemplateConstant, len(result.Orphans), noun)
	for _, orphan := range result.Orphans {
		fmt.Fprintf(builder, reportTextEntryTemplateConstant, orphan)
	}
}
