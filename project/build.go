package project

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.gatech.edu/ECEInnovation/JCPU-Assembler/assembler"
	"github.gatech.edu/ECEInnovation/JCPU-Assembler/util"
)

// FormatDiagnostic renders d as `file:line:col: message` with 1-based line and
// column numbers.
func FormatDiagnostic(file string, d assembler.Diagnostic) string {
	message := d.Message
	if d.Severity == assembler.Warning {
		message = "warning: " + message
	}
	return fmt.Sprintf("%s:%d:%d: %s", file, d.Range.Start.Line+1, d.Range.Start.Char+1, message)
}

// OutputPath is where the binary for source is written: the source's base
// name with a .bin extension, inside dir.
func OutputPath(dir, source string) string {
	base := strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))
	return filepath.Join(dir, base+".bin")
}

// Build assembles every source of the project. A file that fails does not
// stop the others; its result is recorded as failed. Outputs are flat, so a
// source whose output path is already taken by an earlier one fails instead
// of overwriting it.
func Build(cfg *Config) *Report {
	report := NewReport()

	files, err := cfg.SourceFiles()
	if err != nil {
		result := FileResult{Name: DefaultConfigPath}
		result.SetStatus(false)
		result.OutputPrintLn(err.Error())
		report.AddFile(result)
		return report
	}

	outputDir := cfg.resolve(cfg.OutputDir)
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		result := FileResult{Name: outputDir}
		result.SetStatus(false)
		result.OutputPrintLn(fmt.Sprintf("could not create output directory: %v", err))
		report.AddFile(result)
		return report
	}

	owners := make(map[string]string)
	for _, file := range files {
		binPath := OutputPath(outputDir, file)
		if owner, taken := owners[binPath]; taken {
			result := FileResult{Name: file}
			result.SetStatus(false)
			result.OutputPrintLn(fmt.Sprintf("output %s is already written by %s", binPath, owner))
			report.AddFile(result)
			continue
		}
		owners[binPath] = file
		report.AddFile(buildFile(cfg, file, binPath))
	}
	return report
}

func buildFile(cfg *Config, file, binPath string) FileResult {
	result := FileResult{Name: file}

	b, err := os.ReadFile(file)
	if err != nil {
		result.SetStatus(false)
		result.OutputPrintLn(err.Error())
		return result
	}

	res := assembler.AssembleWithConfig(string(b), cfg.AssemblerConfig())
	result.Diagnostics = res.Diagnostics
	for _, d := range res.Diagnostics {
		result.OutputPrintLn(FormatDiagnostic(file, d))
	}
	if res.HasErrors() {
		result.SetStatus(false)
		util.LogF("build: %s failed", file)
		return result
	}

	if err := os.WriteFile(binPath, assembler.WordsToBytes(res.Words), 0644); err != nil {
		result.SetStatus(false)
		result.OutputPrintLn(err.Error())
		return result
	}
	if cfg.Listing {
		lstPath := strings.TrimSuffix(binPath, ".bin") + ".lst"
		if err := os.WriteFile(lstPath, []byte(res.Listing()), 0644); err != nil {
			result.SetStatus(false)
			result.OutputPrintLn(err.Error())
			return result
		}
	}

	result.Words = len(res.Words)
	result.SetStatus(true)
	result.OutputPrintLn(fmt.Sprintf("wrote %d words to %s", len(res.Words), binPath))
	util.LogF("build: %s -> %s", file, binPath)
	return result
}
